// Package polls implements poll management and voting: listing, creation,
// owner-only edits of polls and choices, single-vote enforcement and tallies.
package polls

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/14kear/online_polls/internal/entity"
	"github.com/14kear/online_polls/internal/storage"
	"github.com/14kear/sso-prettyslog/slogpretty/errors"
)

const PermAddPoll = "polls.add_poll"

const (
	ActionCreatePoll   = "create_poll"
	ActionUpdatePoll   = "update_poll"
	ActionDeletePoll   = "delete_poll"
	ActionEndPoll      = "end_poll"
	ActionAddChoice    = "add_choice"
	ActionUpdateChoice = "update_choice"
	ActionDeleteChoice = "delete_choice"
	ActionVote         = "vote"
)

const (
	maxPollText   = 255
	maxChoiceText = 255
)

//go:generate mockgen -source=polls.go -destination=../mocks/polls.go -package=mocks

type PollStorage interface {
	SavePollWithChoices(ctx context.Context, text string, pubDate time.Time, ownerID int64, choices []string) (int64, error)
	Poll(ctx context.Context, id int64) (entity.Poll, error)
	ListPolls(ctx context.Context, q entity.PollQuery, limit, offset int) ([]entity.PollSummary, error)
	CountPolls(ctx context.Context, q entity.PollQuery) (int, error)
	UpdatePoll(ctx context.Context, id int64, text string, pubDate time.Time) error
	DeletePoll(ctx context.Context, id int64) error
	DeactivatePoll(ctx context.Context, id int64) (bool, error)
}

type ChoiceStorage interface {
	SaveChoice(ctx context.Context, pollID int64, text string) (int64, error)
	Choice(ctx context.Context, id int64) (entity.Choice, error)
	ChoicesByPollID(ctx context.Context, pollID int64) ([]entity.Choice, error)
	CountChoices(ctx context.Context, pollID int64) (int, error)
	UpdateChoice(ctx context.Context, id int64, text string) error
	DeleteChoice(ctx context.Context, id int64) error
}

type VoteStorage interface {
	SaveVote(ctx context.Context, userID, pollID, choiceID int64) (int64, error)
	HasVoted(ctx context.Context, userID, pollID int64) (bool, error)
	ChoiceResults(ctx context.Context, pollID int64) ([]entity.ChoiceResult, error)
}

type LogStorage interface {
	SaveLog(ctx context.Context, log *entity.Log) (int64, error)
	LogsByPollID(ctx context.Context, pollID int64) ([]entity.Log, error)
}

type PermissionChecker interface {
	HasPermission(ctx context.Context, userID int64, codename string) (bool, error)
}

type Settings struct {
	PageSize     int
	MinePageSize int
	// MinChoices is the smallest number of choices a poll may be left with
	// after a deletion. Zero disables the check.
	MinChoices int
}

type Polls struct {
	log         *slog.Logger
	polls       PollStorage
	choices     ChoiceStorage
	votes       VoteStorage
	logs        LogStorage
	permissions PermissionChecker
	settings    Settings
	now         func() time.Time
}

func New(
	log *slog.Logger,
	polls PollStorage,
	choices ChoiceStorage,
	votes VoteStorage,
	logs LogStorage,
	permissions PermissionChecker,
	settings Settings,
) *Polls {
	if settings.PageSize <= 0 {
		settings.PageSize = 6
	}
	if settings.MinePageSize <= 0 {
		settings.MinePageSize = 7
	}

	return &Polls{
		log:         log,
		polls:       polls,
		choices:     choices,
		votes:       votes,
		logs:        logs,
		permissions: permissions,
		settings:    settings,
		now:         time.Now,
	}
}

func (p *Polls) poll(ctx context.Context, id int64) (entity.Poll, error) {
	poll, err := p.polls.Poll(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrPollNotFound) {
			return entity.Poll{}, ErrPollNotFound
		}
		return entity.Poll{}, err
	}
	return poll, nil
}

// ownedPoll loads the poll and checks that actor owns it.
func (p *Polls) ownedPoll(ctx context.Context, actor entity.User, id int64) (entity.Poll, error) {
	poll, err := p.poll(ctx, id)
	if err != nil {
		return entity.Poll{}, err
	}
	if actor.ID != poll.OwnerID {
		return entity.Poll{}, ErrForbidden
	}
	return poll, nil
}

// ownedChoice resolves choice -> poll -> owner.
func (p *Polls) ownedChoice(ctx context.Context, actor entity.User, id int64) (entity.Choice, entity.Poll, error) {
	choice, err := p.choices.Choice(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrChoiceNotFound) {
			return entity.Choice{}, entity.Poll{}, ErrChoiceNotFound
		}
		return entity.Choice{}, entity.Poll{}, err
	}

	poll, err := p.ownedPoll(ctx, actor, choice.PollID)
	if err != nil {
		return entity.Choice{}, entity.Poll{}, err
	}

	return choice, poll, nil
}

// audit records a successful mutation. Failures are logged and swallowed so
// the mutation itself is still reported as done.
func (p *Polls) audit(ctx context.Context, entry *entity.Log) {
	entry.CreatedAt = p.now().UTC()
	if _, err := p.logs.SaveLog(ctx, entry); err != nil {
		p.log.Error("failed to save audit log",
			slog.String("action", entry.Action),
			slog.Int64("uid", entry.UserID),
			sl.Err(err),
		)
	}
}

func checkText(fields map[string]string, field, value string, max int) string {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		fields[field] = "This field is required."
	case utf8.RuneCountInString(value) > max:
		fields[field] = fmt.Sprintf("Ensure this value has at most %d characters.", max)
	}
	return value
}
