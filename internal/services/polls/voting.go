package polls

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/14kear/online_polls/internal/entity"
	"github.com/14kear/online_polls/internal/storage"
	"github.com/14kear/sso-prettyslog/slogpretty/errors"
)

const (
	ViewDetail  = "detail"
	ViewResults = "results"
)

// PollView is what a visitor of a poll page sees: the voting form while the
// poll is active, the tallies once it has ended.
type PollView struct {
	View    string              `json:"view"`
	Poll    entity.Poll         `json:"poll"`
	Choices []entity.Choice     `json:"choices,omitempty"`
	CanVote bool                `json:"can_vote"`
	Results *entity.PollResults `json:"results,omitempty"`
}

// PollDetail needs no identity. viewer may be anonymous.
func (p *Polls) PollDetail(ctx context.Context, viewer entity.User, pollID int64) (PollView, error) {
	const op = "polls.PollDetail"

	poll, err := p.poll(ctx, pollID)
	if err != nil {
		return PollView{}, fmt.Errorf("%s: %w", op, err)
	}

	if !poll.Active {
		results, err := p.results(ctx, poll)
		if err != nil {
			return PollView{}, fmt.Errorf("%s: %w", op, err)
		}
		return PollView{View: ViewResults, Poll: poll, Results: &results}, nil
	}

	choices, err := p.choices.ChoicesByPollID(ctx, pollID)
	if err != nil {
		return PollView{}, fmt.Errorf("%s: %w", op, err)
	}

	canVote := false
	if !viewer.IsAnonymous() {
		voted, err := p.votes.HasVoted(ctx, viewer.ID, pollID)
		if err != nil {
			return PollView{}, fmt.Errorf("%s: %w", op, err)
		}
		canVote = !voted
	}

	return PollView{View: ViewDetail, Poll: poll, Choices: choices, CanVote: canVote}, nil
}

// Vote records actor's single vote on the poll and returns the updated
// tallies. choiceID zero means nothing was selected.
func (p *Polls) Vote(ctx context.Context, actor entity.User, pollID, choiceID int64) (entity.PollResults, error) {
	const op = "polls.Vote"

	log := p.log.With(slog.String("op", op), slog.Int64("uid", actor.ID), slog.Int64("poll_id", pollID))

	poll, err := p.poll(ctx, pollID)
	if err != nil {
		return entity.PollResults{}, fmt.Errorf("%s: %w", op, err)
	}

	voted, err := p.votes.HasVoted(ctx, actor.ID, pollID)
	if err != nil {
		return entity.PollResults{}, fmt.Errorf("%s: %w", op, err)
	}
	if voted {
		return entity.PollResults{}, fmt.Errorf("%s: %w", op, ErrDuplicateVote)
	}

	if choiceID == 0 {
		return entity.PollResults{}, fmt.Errorf("%s: %w", op, ErrNoChoiceSelected)
	}

	choice, err := p.choices.Choice(ctx, choiceID)
	if err != nil {
		if errors.Is(err, storage.ErrChoiceNotFound) {
			return entity.PollResults{}, fmt.Errorf("%s: %w", op, ErrInvalidChoice)
		}
		return entity.PollResults{}, fmt.Errorf("%s: %w", op, err)
	}
	if choice.PollID != pollID {
		log.Warn("choice from another poll", slog.Int64("choice_id", choiceID), slog.Int64("choice_poll_id", choice.PollID))
		return entity.PollResults{}, fmt.Errorf("%s: %w", op, ErrInvalidChoice)
	}

	if !poll.Active {
		return entity.PollResults{}, fmt.Errorf("%s: %w", op, ErrPollInactive)
	}

	voteID, err := p.votes.SaveVote(ctx, actor.ID, pollID, choiceID)
	if err != nil {
		if errors.Is(err, storage.ErrVoteAlreadyExists) {
			return entity.PollResults{}, fmt.Errorf("%s: %w", op, ErrDuplicateVote)
		}
		log.Error("failed to save vote", sl.Err(err))
		return entity.PollResults{}, fmt.Errorf("%s: %w", op, err)
	}

	p.audit(ctx, &entity.Log{UserID: actor.ID, Action: ActionVote, PollID: &pollID, ChoiceID: &choiceID, VoteID: &voteID})

	log.Info("vote recorded", slog.Int64("choice_id", choiceID))

	results, err := p.results(ctx, poll)
	if err != nil {
		return entity.PollResults{}, fmt.Errorf("%s: %w", op, err)
	}
	return results, nil
}

// EndPoll closes voting. Ending an already closed poll changes nothing and
// writes no audit entry.
func (p *Polls) EndPoll(ctx context.Context, actor entity.User, pollID int64) (entity.PollResults, error) {
	const op = "polls.EndPoll"

	poll, err := p.ownedPoll(ctx, actor, pollID)
	if err != nil {
		return entity.PollResults{}, fmt.Errorf("%s: %w", op, err)
	}

	if poll.Active {
		changed, err := p.polls.DeactivatePoll(ctx, pollID)
		if err != nil {
			p.log.Error("failed to end poll", slog.String("op", op), sl.Err(err))
			return entity.PollResults{}, fmt.Errorf("%s: %w", op, err)
		}
		if changed {
			p.audit(ctx, &entity.Log{UserID: actor.ID, Action: ActionEndPoll, PollID: &pollID})
		}
		poll.Active = false
	}

	results, err := p.results(ctx, poll)
	if err != nil {
		return entity.PollResults{}, fmt.Errorf("%s: %w", op, err)
	}
	return results, nil
}

func (p *Polls) Results(ctx context.Context, pollID int64) (entity.PollResults, error) {
	const op = "polls.Results"

	poll, err := p.poll(ctx, pollID)
	if err != nil {
		return entity.PollResults{}, fmt.Errorf("%s: %w", op, err)
	}

	results, err := p.results(ctx, poll)
	if err != nil {
		return entity.PollResults{}, fmt.Errorf("%s: %w", op, err)
	}
	return results, nil
}

func (p *Polls) results(ctx context.Context, poll entity.Poll) (entity.PollResults, error) {
	choices, err := p.votes.ChoiceResults(ctx, poll.ID)
	if err != nil {
		return entity.PollResults{}, err
	}

	res := entity.PollResults{Poll: poll, Choices: choices}
	for _, c := range choices {
		res.TotalVotes += c.Votes
	}
	if res.Choices == nil {
		res.Choices = []entity.ChoiceResult{}
	}
	return res, nil
}

// PollLogs returns the audit trail of a poll to its owner, newest first.
func (p *Polls) PollLogs(ctx context.Context, actor entity.User, pollID int64) ([]entity.Log, error) {
	const op = "polls.PollLogs"

	if _, err := p.ownedPoll(ctx, actor, pollID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logs, err := p.logs.LogsByPollID(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if logs == nil {
		logs = []entity.Log{}
	}

	return logs, nil
}
