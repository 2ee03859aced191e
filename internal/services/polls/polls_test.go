package polls

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"testing"
	"time"

	"github.com/14kear/online_polls/internal/entity"
	"github.com/14kear/online_polls/internal/services/mocks"
	"github.com/14kear/online_polls/internal/storage"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pollMocks struct {
	polls       *mocks.MockPollStorage
	choices     *mocks.MockChoiceStorage
	votes       *mocks.MockVoteStorage
	logs        *mocks.MockLogStorage
	permissions *mocks.MockPermissionChecker
}

var (
	owner    = entity.User{ID: 1, Username: "alice"}
	stranger = entity.User{ID: 2, Username: "bob"}
	fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
)

func newTestPolls(t *testing.T, settings Settings) (*Polls, pollMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := pollMocks{
		polls:       mocks.NewMockPollStorage(ctrl),
		choices:     mocks.NewMockChoiceStorage(ctrl),
		votes:       mocks.NewMockVoteStorage(ctrl),
		logs:        mocks.NewMockLogStorage(ctrl),
		permissions: mocks.NewMockPermissionChecker(ctrl),
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := New(log, m.polls, m.choices, m.votes, m.logs, m.permissions, settings)
	p.now = func() time.Time { return fixedNow }
	return p, m
}

func activePoll() entity.Poll {
	return entity.Poll{ID: 10, Text: "Best Language?", PubDate: fixedNow, Active: true, OwnerID: owner.ID}
}

func expectAudit(m pollMocks, action string) *gomock.Call {
	return m.logs.EXPECT().SaveLog(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l *entity.Log) (int64, error) {
			if l.Action != action {
				return 0, errors.New("unexpected action " + l.Action)
			}
			return 1, nil
		})
}

func TestNewListQuery(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantSort   entity.PollSort
		wantSearch string
		wantPage   string
		wantParams string
	}{
		{name: "empty", raw: "", wantSort: entity.PollSortDefault},
		{name: "name wins over date", raw: "date=&name=", wantSort: entity.PollSortName, wantParams: "date=&name="},
		{name: "date wins over vote", raw: "vote=1&date=1", wantSort: entity.PollSortDate, wantParams: "date=1&vote=1"},
		{name: "vote", raw: "vote=", wantSort: entity.PollSortVotes, wantParams: "vote="},
		{name: "page is stripped", raw: "search=color&page=3", wantSearch: "color", wantPage: "3", wantParams: "search=color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.raw)
			require.NoError(t, err)

			q := NewListQuery(values)
			assert.Equal(t, tt.wantSort, q.Filter.Sort)
			assert.Equal(t, tt.wantSearch, q.Filter.Search)
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantParams, q.Params)
		})
	}
}

func TestListPolls_ResolvesPage(t *testing.T) {
	p, m := newTestPolls(t, Settings{PageSize: 6})
	filter := entity.PollQuery{Search: "color"}

	m.polls.EXPECT().CountPolls(gomock.Any(), filter).Return(13, nil)
	m.polls.EXPECT().ListPolls(gomock.Any(), filter, 6, 12).Return([]entity.PollSummary{{Poll: entity.Poll{ID: 99}}}, nil)

	page, err := p.ListPolls(context.Background(), ListQuery{Filter: filter, Page: "42", Params: "search=color"})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page.Number)
	assert.Equal(t, "search=color", page.Params)
	assert.Equal(t, "color", page.SearchTerm)
	require.Len(t, page.Polls, 1)
}

func TestListByOwner(t *testing.T) {
	p, m := newTestPolls(t, Settings{})
	filter := entity.PollQuery{OwnerID: owner.ID}

	m.polls.EXPECT().CountPolls(gomock.Any(), filter).Return(0, nil)
	m.polls.EXPECT().ListPolls(gomock.Any(), filter, 7, 0).Return([]entity.PollSummary{}, nil)

	page, err := p.ListByOwner(context.Background(), owner, "")
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page.NumPages)
	assert.Empty(t, page.Polls)
}

func TestCreatePoll(t *testing.T) {
	t.Run("permission denied", func(t *testing.T) {
		p, m := newTestPolls(t, Settings{})
		m.permissions.EXPECT().HasPermission(gomock.Any(), owner.ID, PermAddPoll).Return(false, nil)

		_, err := p.CreatePoll(context.Background(), owner, NewPollInput{Text: "Q", Choice1: "a", Choice2: "b"})
		require.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("validation", func(t *testing.T) {
		p, m := newTestPolls(t, Settings{})
		m.permissions.EXPECT().HasPermission(gomock.Any(), owner.ID, PermAddPoll).Return(true, nil)

		_, err := p.CreatePoll(context.Background(), owner, NewPollInput{Text: "  ", Choice1: "a"})
		require.ErrorIs(t, err, ErrValidation)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "text")
		assert.Contains(t, verr.Fields, "choice2")
		assert.NotContains(t, verr.Fields, "choice1")
	})

	t.Run("success", func(t *testing.T) {
		p, m := newTestPolls(t, Settings{})
		m.permissions.EXPECT().HasPermission(gomock.Any(), owner.ID, PermAddPoll).Return(true, nil)
		m.polls.EXPECT().SavePollWithChoices(gomock.Any(), "Best Language?", fixedNow, owner.ID, []string{"Go", "Rust"}).Return(int64(10), nil)
		expectAudit(m, ActionCreatePoll)

		poll, err := p.CreatePoll(context.Background(), owner, NewPollInput{Text: " Best Language? ", Choice1: "Go", Choice2: "Rust"})
		require.NoError(t, err)
		assert.Equal(t, int64(10), poll.ID)
		assert.True(t, poll.Active)
		assert.Equal(t, owner.ID, poll.OwnerID)
	})

	t.Run("audit failure does not fail the request", func(t *testing.T) {
		p, m := newTestPolls(t, Settings{})
		m.permissions.EXPECT().HasPermission(gomock.Any(), owner.ID, PermAddPoll).Return(true, nil)
		m.polls.EXPECT().SavePollWithChoices(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(11), nil)
		m.logs.EXPECT().SaveLog(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("logs table locked"))

		_, err := p.CreatePoll(context.Background(), owner, NewPollInput{Text: "Q", Choice1: "a", Choice2: "b"})
		require.NoError(t, err)
	})
}

// Every owner-gated operation must refuse a stranger before touching storage.
func TestOwnershipIsEnforced(t *testing.T) {
	ctx := context.Background()
	choice := entity.Choice{ID: 100, PollID: 10, ChoiceText: "Go"}

	ops := map[string]func(p *Polls) error{
		"edit form": func(p *Polls) error { _, err := p.PollForEdit(ctx, stranger, 10); return err },
		"update":    func(p *Polls) error { _, err := p.UpdatePoll(ctx, stranger, 10, "hijacked", time.Time{}); return err },
		"delete":    func(p *Polls) error { return p.DeletePoll(ctx, stranger, 10) },
		"add choice": func(p *Polls) error {
			_, err := p.AddChoice(ctx, stranger, 10, "Java")
			return err
		},
		"end":  func(p *Polls) error { _, err := p.EndPoll(ctx, stranger, 10); return err },
		"logs": func(p *Polls) error { _, err := p.PollLogs(ctx, stranger, 10); return err },
	}
	choiceOps := map[string]func(p *Polls) error{
		"choice edit form": func(p *Polls) error { _, err := p.ChoiceForEdit(ctx, stranger, 100); return err },
		"update choice":    func(p *Polls) error { _, err := p.UpdateChoice(ctx, stranger, 100, "Java"); return err },
		"delete choice":    func(p *Polls) error { _, err := p.DeleteChoice(ctx, stranger, 100); return err },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			p, m := newTestPolls(t, Settings{})
			m.polls.EXPECT().Poll(gomock.Any(), int64(10)).Return(activePoll(), nil)

			require.ErrorIs(t, op(p), ErrForbidden)
		})
	}

	for name, op := range choiceOps {
		t.Run(name, func(t *testing.T) {
			p, m := newTestPolls(t, Settings{MinChoices: 2})
			m.choices.EXPECT().Choice(gomock.Any(), int64(100)).Return(choice, nil)
			m.polls.EXPECT().Poll(gomock.Any(), int64(10)).Return(activePoll(), nil)

			require.ErrorIs(t, op(p), ErrForbidden)
		})
	}
}

func TestUpdatePoll_KeepsPubDate(t *testing.T) {
	p, m := newTestPolls(t, Settings{})
	poll := activePoll()

	m.polls.EXPECT().Poll(gomock.Any(), poll.ID).Return(poll, nil)
	m.polls.EXPECT().UpdatePoll(gomock.Any(), poll.ID, "Best Editor?", poll.PubDate).Return(nil)
	expectAudit(m, ActionUpdatePoll)

	updated, err := p.UpdatePoll(context.Background(), owner, poll.ID, "Best Editor?", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "Best Editor?", updated.Text)
}

func TestDeletePoll_NotFound(t *testing.T) {
	p, m := newTestPolls(t, Settings{})
	m.polls.EXPECT().Poll(gomock.Any(), int64(404)).Return(entity.Poll{}, storage.ErrPollNotFound)

	require.ErrorIs(t, p.DeletePoll(context.Background(), owner, 404), ErrPollNotFound)
}

func TestAddChoice(t *testing.T) {
	p, m := newTestPolls(t, Settings{})
	m.polls.EXPECT().Poll(gomock.Any(), int64(10)).Return(activePoll(), nil)
	m.choices.EXPECT().SaveChoice(gomock.Any(), int64(10), "Zig").Return(int64(103), nil)
	expectAudit(m, ActionAddChoice)

	choice, err := p.AddChoice(context.Background(), owner, 10, "Zig")
	require.NoError(t, err)
	assert.Equal(t, int64(103), choice.ID)
	assert.Equal(t, int64(10), choice.PollID)
}

func TestDeleteChoice_MinChoices(t *testing.T) {
	choice := entity.Choice{ID: 100, PollID: 10, ChoiceText: "Go"}

	t.Run("floor reached", func(t *testing.T) {
		p, m := newTestPolls(t, Settings{MinChoices: 2})
		m.choices.EXPECT().Choice(gomock.Any(), int64(100)).Return(choice, nil)
		m.polls.EXPECT().Poll(gomock.Any(), int64(10)).Return(activePoll(), nil)
		m.choices.EXPECT().CountChoices(gomock.Any(), int64(10)).Return(2, nil)

		_, err := p.DeleteChoice(context.Background(), owner, 100)
		require.ErrorIs(t, err, ErrTooFewChoices)
	})

	t.Run("no floor", func(t *testing.T) {
		p, m := newTestPolls(t, Settings{})
		m.choices.EXPECT().Choice(gomock.Any(), int64(100)).Return(choice, nil)
		m.polls.EXPECT().Poll(gomock.Any(), int64(10)).Return(activePoll(), nil)
		m.choices.EXPECT().DeleteChoice(gomock.Any(), int64(100)).Return(nil)
		expectAudit(m, ActionDeleteChoice)

		deleted, err := p.DeleteChoice(context.Background(), owner, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(10), deleted.PollID)
	})

	t.Run("missing choice", func(t *testing.T) {
		p, m := newTestPolls(t, Settings{})
		m.choices.EXPECT().Choice(gomock.Any(), int64(100)).Return(entity.Choice{}, storage.ErrChoiceNotFound)

		_, err := p.DeleteChoice(context.Background(), owner, 100)
		require.ErrorIs(t, err, ErrChoiceNotFound)
	})
}

func TestPollDetail(t *testing.T) {
	t.Run("inactive poll shows results", func(t *testing.T) {
		p, m := newTestPolls(t, Settings{})
		poll := activePoll()
		poll.Active = false

		m.polls.EXPECT().Poll(gomock.Any(), poll.ID).Return(poll, nil)
		m.votes.EXPECT().ChoiceResults(gomock.Any(), poll.ID).Return([]entity.ChoiceResult{
			{Choice: entity.Choice{ID: 1, ChoiceText: "Go"}, Votes: 3},
			{Choice: entity.Choice{ID: 2, ChoiceText: "Rust"}, Votes: 2},
		}, nil)

		view, err := p.PollDetail(context.Background(), stranger, poll.ID)
		require.NoError(t, err)
		assert.Equal(t, ViewResults, view.View)
		require.NotNil(t, view.Results)
		assert.Equal(t, int64(5), view.Results.TotalVotes)
		assert.False(t, view.CanVote)
	})

	t.Run("active poll for anonymous visitor", func(t *testing.T) {
		p, m := newTestPolls(t, Settings{})
		m.polls.EXPECT().Poll(gomock.Any(), int64(10)).Return(activePoll(), nil)
		m.choices.EXPECT().ChoicesByPollID(gomock.Any(), int64(10)).Return([]entity.Choice{{ID: 1}, {ID: 2}}, nil)

		view, err := p.PollDetail(context.Background(), entity.User{}, 10)
		require.NoError(t, err)
		assert.Equal(t, ViewDetail, view.View)
		assert.Len(t, view.Choices, 2)
		assert.False(t, view.CanVote)
	})

	t.Run("active poll for user who has not voted", func(t *testing.T) {
		p, m := newTestPolls(t, Settings{})
		m.polls.EXPECT().Poll(gomock.Any(), int64(10)).Return(activePoll(), nil)
		m.choices.EXPECT().ChoicesByPollID(gomock.Any(), int64(10)).Return([]entity.Choice{{ID: 1}}, nil)
		m.votes.EXPECT().HasVoted(gomock.Any(), stranger.ID, int64(10)).Return(false, nil)

		view, err := p.PollDetail(context.Background(), stranger, 10)
		require.NoError(t, err)
		assert.True(t, view.CanVote)
	})

	t.Run("missing poll", func(t *testing.T) {
		p, m := newTestPolls(t, Settings{})
		m.polls.EXPECT().Poll(gomock.Any(), int64(10)).Return(entity.Poll{}, storage.ErrPollNotFound)

		_, err := p.PollDetail(context.Background(), stranger, 10)
		require.ErrorIs(t, err, ErrPollNotFound)
	})
}

func TestVote(t *testing.T) {
	ctx := context.Background()
	goChoice := entity.Choice{ID: 1, PollID: 10, ChoiceText: "Go"}

	t.Run("success", func(t *testing.T) {
		p, m := newTestPolls(t, Settings{})
		m.polls.EXPECT().Poll(gomock.Any(), int64(10)).Return(activePoll(), nil)
		m.votes.EXPECT().HasVoted(gomock.Any(), stranger.ID, int64(10)).Return(false, nil)
		m.choices.EXPECT().Choice(gomock.Any(), int64(1)).Return(goChoice, nil)
		m.votes.EXPECT().SaveVote(gomock.Any(), stranger.ID, int64(10), int64(1)).Return(int64(55), nil)
		m.logs.EXPECT().SaveLog(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, l *entity.Log) (int64, error) {
				require.NotNil(t, l.VoteID)
				assert.Equal(t, int64(55), *l.VoteID)
				assert.Equal(t, ActionVote, l.Action)
				return 1, nil
			})
		m.votes.EXPECT().ChoiceResults(gomock.Any(), int64(10)).Return([]entity.ChoiceResult{
			{Choice: goChoice, Votes: 1},
			{Choice: entity.Choice{ID: 2, PollID: 10, ChoiceText: "Rust"}},
		}, nil)

		res, err := p.Vote(ctx, stranger, 10, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.TotalVotes)
		assert.Equal(t, int64(1), res.Choices[0].Votes)
	})

	t.Run("already voted without choice", func(t *testing.T) {
		p, m := newTestPolls(t, Settings{})
		m.polls.EXPECT().Poll(gomock.Any(), int64(10)).Return(activePoll(), nil)
		m.votes.EXPECT().HasVoted(gomock.Any(), stranger.ID, int64(10)).Return(true, nil)

		_, err := p.Vote(ctx, stranger, 10, 0)
		require.ErrorIs(t, err, ErrDuplicateVote)
	})

	t.Run("no choice selected", func(t *testing.T) {
		p, m := newTestPolls(t, Settings{})
		m.polls.EXPECT().Poll(gomock.Any(), int64(10)).Return(activePoll(), nil)
		m.votes.EXPECT().HasVoted(gomock.Any(), stranger.ID, int64(10)).Return(false, nil)

		_, err := p.Vote(ctx, stranger, 10, 0)
		require.ErrorIs(t, err, ErrNoChoiceSelected)
	})

	t.Run("choice of another poll", func(t *testing.T) {
		p, m := newTestPolls(t, Settings{})
		m.polls.EXPECT().Poll(gomock.Any(), int64(10)).Return(activePoll(), nil)
		m.votes.EXPECT().HasVoted(gomock.Any(), stranger.ID, int64(10)).Return(false, nil)
		m.choices.EXPECT().Choice(gomock.Any(), int64(7)).Return(entity.Choice{ID: 7, PollID: 99}, nil)

		_, err := p.Vote(ctx, stranger, 10, 7)
		require.ErrorIs(t, err, ErrInvalidChoice)
	})

	t.Run("unknown choice", func(t *testing.T) {
		p, m := newTestPolls(t, Settings{})
		m.polls.EXPECT().Poll(gomock.Any(), int64(10)).Return(activePoll(), nil)
		m.votes.EXPECT().HasVoted(gomock.Any(), stranger.ID, int64(10)).Return(false, nil)
		m.choices.EXPECT().Choice(gomock.Any(), int64(8)).Return(entity.Choice{}, storage.ErrChoiceNotFound)

		_, err := p.Vote(ctx, stranger, 10, 8)
		require.ErrorIs(t, err, ErrInvalidChoice)
	})

	t.Run("inactive poll", func(t *testing.T) {
		p, m := newTestPolls(t, Settings{})
		poll := activePoll()
		poll.Active = false
		m.polls.EXPECT().Poll(gomock.Any(), int64(10)).Return(poll, nil)
		m.votes.EXPECT().HasVoted(gomock.Any(), stranger.ID, int64(10)).Return(false, nil)
		m.choices.EXPECT().Choice(gomock.Any(), int64(1)).Return(goChoice, nil)

		_, err := p.Vote(ctx, stranger, 10, 1)
		require.ErrorIs(t, err, ErrPollInactive)
	})

	t.Run("unique constraint race", func(t *testing.T) {
		p, m := newTestPolls(t, Settings{})
		m.polls.EXPECT().Poll(gomock.Any(), int64(10)).Return(activePoll(), nil)
		m.votes.EXPECT().HasVoted(gomock.Any(), stranger.ID, int64(10)).Return(false, nil)
		m.choices.EXPECT().Choice(gomock.Any(), int64(1)).Return(goChoice, nil)
		m.votes.EXPECT().SaveVote(gomock.Any(), stranger.ID, int64(10), int64(1)).Return(int64(0), storage.ErrVoteAlreadyExists)

		_, err := p.Vote(ctx, stranger, 10, 1)
		require.ErrorIs(t, err, ErrDuplicateVote)
	})
}

func TestEndPoll(t *testing.T) {
	ctx := context.Background()

	t.Run("active poll is closed once", func(t *testing.T) {
		p, m := newTestPolls(t, Settings{})
		m.polls.EXPECT().Poll(gomock.Any(), int64(10)).Return(activePoll(), nil)
		m.polls.EXPECT().DeactivatePoll(gomock.Any(), int64(10)).Return(true, nil)
		expectAudit(m, ActionEndPoll).Times(1)
		m.votes.EXPECT().ChoiceResults(gomock.Any(), int64(10)).Return(nil, nil)

		res, err := p.EndPoll(ctx, owner, 10)
		require.NoError(t, err)
		assert.False(t, res.Poll.Active)
		assert.NotNil(t, res.Choices)
	})

	t.Run("already inactive is a no-op", func(t *testing.T) {
		p, m := newTestPolls(t, Settings{})
		poll := activePoll()
		poll.Active = false
		m.polls.EXPECT().Poll(gomock.Any(), int64(10)).Return(poll, nil)
		m.polls.EXPECT().DeactivatePoll(gomock.Any(), gomock.Any()).Times(0)
		m.logs.EXPECT().SaveLog(gomock.Any(), gomock.Any()).Times(0)
		m.votes.EXPECT().ChoiceResults(gomock.Any(), int64(10)).Return(nil, nil)

		res, err := p.EndPoll(ctx, owner, 10)
		require.NoError(t, err)
		assert.False(t, res.Poll.Active)
	})

	t.Run("lost race records nothing", func(t *testing.T) {
		p, m := newTestPolls(t, Settings{})
		m.polls.EXPECT().Poll(gomock.Any(), int64(10)).Return(activePoll(), nil)
		m.polls.EXPECT().DeactivatePoll(gomock.Any(), int64(10)).Return(false, nil)
		m.logs.EXPECT().SaveLog(gomock.Any(), gomock.Any()).Times(0)
		m.votes.EXPECT().ChoiceResults(gomock.Any(), int64(10)).Return(nil, nil)

		_, err := p.EndPoll(ctx, owner, 10)
		require.NoError(t, err)
	})
}

func TestPollLogs(t *testing.T) {
	p, m := newTestPolls(t, Settings{})
	m.polls.EXPECT().Poll(gomock.Any(), int64(10)).Return(activePoll(), nil)
	m.logs.EXPECT().LogsByPollID(gomock.Any(), int64(10)).Return(nil, nil)

	logs, err := p.PollLogs(context.Background(), owner, 10)
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"b": "bad", "a": "worse"}}
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "validation error: a: worse; b: bad", err.Error())
}
