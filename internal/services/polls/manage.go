package polls

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/14kear/online_polls/internal/entity"
	"github.com/14kear/online_polls/internal/storage"
	"github.com/14kear/sso-prettyslog/slogpretty/errors"
)

type NewPollInput struct {
	Text    string
	Choice1 string
	Choice2 string
}

type PollWithChoices struct {
	Poll    entity.Poll     `json:"poll"`
	Choices []entity.Choice `json:"choices"`
}

// CanAddPoll fails with ErrPermissionDenied unless actor may create polls.
func (p *Polls) CanAddPoll(ctx context.Context, actor entity.User) error {
	const op = "polls.CanAddPoll"

	ok, err := p.permissions.HasPermission(ctx, actor.ID, PermAddPoll)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	return nil
}

// CreatePoll publishes an active poll owned by actor with its two initial choices.
func (p *Polls) CreatePoll(ctx context.Context, actor entity.User, in NewPollInput) (entity.Poll, error) {
	const op = "polls.CreatePoll"

	log := p.log.With(slog.String("op", op), slog.Int64("uid", actor.ID))

	if err := p.CanAddPoll(ctx, actor); err != nil {
		log.Warn("poll creation refused", sl.Err(err))
		return entity.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	fields := map[string]string{}
	text := checkText(fields, "text", in.Text, maxPollText)
	choice1 := checkText(fields, "choice1", in.Choice1, maxChoiceText)
	choice2 := checkText(fields, "choice2", in.Choice2, maxChoiceText)
	if len(fields) > 0 {
		return entity.Poll{}, fmt.Errorf("%s: %w", op, &ValidationError{Fields: fields})
	}

	pubDate := p.now().UTC()
	id, err := p.polls.SavePollWithChoices(ctx, text, pubDate, actor.ID, []string{choice1, choice2})
	if err != nil {
		log.Error("failed to save poll", sl.Err(err))
		return entity.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	p.audit(ctx, &entity.Log{UserID: actor.ID, Action: ActionCreatePoll, PollID: &id})

	log.Info("poll created", slog.Int64("poll_id", id))
	return entity.Poll{ID: id, Text: text, PubDate: pubDate, Active: true, OwnerID: actor.ID}, nil
}

// PollForEdit returns the poll with its choices for its owner.
func (p *Polls) PollForEdit(ctx context.Context, actor entity.User, pollID int64) (PollWithChoices, error) {
	const op = "polls.PollForEdit"

	poll, err := p.ownedPoll(ctx, actor, pollID)
	if err != nil {
		return PollWithChoices{}, fmt.Errorf("%s: %w", op, err)
	}

	choices, err := p.choices.ChoicesByPollID(ctx, pollID)
	if err != nil {
		return PollWithChoices{}, fmt.Errorf("%s: %w", op, err)
	}

	return PollWithChoices{Poll: poll, Choices: choices}, nil
}

// UpdatePoll changes text and publication date. A zero pubDate keeps the
// current one.
func (p *Polls) UpdatePoll(ctx context.Context, actor entity.User, pollID int64, text string, pubDate time.Time) (entity.Poll, error) {
	const op = "polls.UpdatePoll"

	log := p.log.With(slog.String("op", op), slog.Int64("uid", actor.ID), slog.Int64("poll_id", pollID))

	poll, err := p.ownedPoll(ctx, actor, pollID)
	if err != nil {
		return entity.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	fields := map[string]string{}
	text = checkText(fields, "text", text, maxPollText)
	if len(fields) > 0 {
		return entity.Poll{}, fmt.Errorf("%s: %w", op, &ValidationError{Fields: fields})
	}

	if pubDate.IsZero() {
		pubDate = poll.PubDate
	}

	if err := p.polls.UpdatePoll(ctx, pollID, text, pubDate); err != nil {
		if errors.Is(err, storage.ErrPollNotFound) {
			return entity.Poll{}, fmt.Errorf("%s: %w", op, ErrPollNotFound)
		}
		log.Error("failed to update poll", sl.Err(err))
		return entity.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	p.audit(ctx, &entity.Log{UserID: actor.ID, Action: ActionUpdatePoll, PollID: &pollID})

	poll.Text = text
	poll.PubDate = pubDate
	return poll, nil
}

func (p *Polls) DeletePoll(ctx context.Context, actor entity.User, pollID int64) error {
	const op = "polls.DeletePoll"

	log := p.log.With(slog.String("op", op), slog.Int64("uid", actor.ID), slog.Int64("poll_id", pollID))

	if _, err := p.ownedPoll(ctx, actor, pollID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := p.polls.DeletePoll(ctx, pollID); err != nil {
		if errors.Is(err, storage.ErrPollNotFound) {
			return fmt.Errorf("%s: %w", op, ErrPollNotFound)
		}
		log.Error("failed to delete poll", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	p.audit(ctx, &entity.Log{UserID: actor.ID, Action: ActionDeletePoll, PollID: &pollID})

	log.Info("poll deleted")
	return nil
}

func (p *Polls) AddChoice(ctx context.Context, actor entity.User, pollID int64, text string) (entity.Choice, error) {
	const op = "polls.AddChoice"

	if _, err := p.ownedPoll(ctx, actor, pollID); err != nil {
		return entity.Choice{}, fmt.Errorf("%s: %w", op, err)
	}

	fields := map[string]string{}
	text = checkText(fields, "choice_text", text, maxChoiceText)
	if len(fields) > 0 {
		return entity.Choice{}, fmt.Errorf("%s: %w", op, &ValidationError{Fields: fields})
	}

	id, err := p.choices.SaveChoice(ctx, pollID, text)
	if err != nil {
		p.log.Error("failed to save choice", slog.String("op", op), sl.Err(err))
		return entity.Choice{}, fmt.Errorf("%s: %w", op, err)
	}

	p.audit(ctx, &entity.Log{UserID: actor.ID, Action: ActionAddChoice, PollID: &pollID, ChoiceID: &id})

	return entity.Choice{ID: id, PollID: pollID, ChoiceText: text}, nil
}

func (p *Polls) ChoiceForEdit(ctx context.Context, actor entity.User, choiceID int64) (entity.Choice, error) {
	const op = "polls.ChoiceForEdit"

	choice, _, err := p.ownedChoice(ctx, actor, choiceID)
	if err != nil {
		return entity.Choice{}, fmt.Errorf("%s: %w", op, err)
	}

	return choice, nil
}

func (p *Polls) UpdateChoice(ctx context.Context, actor entity.User, choiceID int64, text string) (entity.Choice, error) {
	const op = "polls.UpdateChoice"

	choice, _, err := p.ownedChoice(ctx, actor, choiceID)
	if err != nil {
		return entity.Choice{}, fmt.Errorf("%s: %w", op, err)
	}

	fields := map[string]string{}
	text = checkText(fields, "choice_text", text, maxChoiceText)
	if len(fields) > 0 {
		return entity.Choice{}, fmt.Errorf("%s: %w", op, &ValidationError{Fields: fields})
	}

	if err := p.choices.UpdateChoice(ctx, choiceID, text); err != nil {
		if errors.Is(err, storage.ErrChoiceNotFound) {
			return entity.Choice{}, fmt.Errorf("%s: %w", op, ErrChoiceNotFound)
		}
		p.log.Error("failed to update choice", slog.String("op", op), sl.Err(err))
		return entity.Choice{}, fmt.Errorf("%s: %w", op, err)
	}

	p.audit(ctx, &entity.Log{UserID: actor.ID, Action: ActionUpdateChoice, PollID: &choice.PollID, ChoiceID: &choiceID})

	choice.ChoiceText = text
	return choice, nil
}

// DeleteChoice removes a choice together with its votes and returns what was
// removed.
func (p *Polls) DeleteChoice(ctx context.Context, actor entity.User, choiceID int64) (entity.Choice, error) {
	const op = "polls.DeleteChoice"

	choice, _, err := p.ownedChoice(ctx, actor, choiceID)
	if err != nil {
		return entity.Choice{}, fmt.Errorf("%s: %w", op, err)
	}

	if p.settings.MinChoices > 0 {
		n, err := p.choices.CountChoices(ctx, choice.PollID)
		if err != nil {
			return entity.Choice{}, fmt.Errorf("%s: %w", op, err)
		}
		if n-1 < p.settings.MinChoices {
			return entity.Choice{}, fmt.Errorf("%s: %w", op, ErrTooFewChoices)
		}
	}

	if err := p.choices.DeleteChoice(ctx, choiceID); err != nil {
		if errors.Is(err, storage.ErrChoiceNotFound) {
			return entity.Choice{}, fmt.Errorf("%s: %w", op, ErrChoiceNotFound)
		}
		p.log.Error("failed to delete choice", slog.String("op", op), sl.Err(err))
		return entity.Choice{}, fmt.Errorf("%s: %w", op, err)
	}

	p.audit(ctx, &entity.Log{UserID: actor.ID, Action: ActionDeleteChoice, PollID: &choice.PollID, ChoiceID: &choiceID})

	return choice, nil
}
