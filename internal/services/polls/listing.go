package polls

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/14kear/online_polls/internal/entity"
	"github.com/14kear/online_polls/internal/lib/paginator"
	"github.com/14kear/sso-prettyslog/slogpretty/errors"
)

// ListQuery is a poll listing request decoded from a query string.
type ListQuery struct {
	Filter entity.PollQuery
	Page   string
	// Params is the query string without the page parameter, for building
	// links to other pages of the same listing.
	Params string
}

type PollPage struct {
	Polls      []entity.PollSummary `json:"polls"`
	Page       paginator.Page       `json:"page"`
	Params     string               `json:"params"`
	SearchTerm string               `json:"search_term"`
}

// NewListQuery decodes sort, search and page. Only the first present sort key
// of name, date and vote applies.
func NewListQuery(values url.Values) ListQuery {
	var q ListQuery

	switch {
	case values.Has("name"):
		q.Filter.Sort = entity.PollSortName
	case values.Has("date"):
		q.Filter.Sort = entity.PollSortDate
	case values.Has("vote"):
		q.Filter.Sort = entity.PollSortVotes
	}

	q.Filter.Search = values.Get("search")
	q.Page = values.Get("page")

	rest := url.Values{}
	for k, v := range values {
		if k == "page" {
			continue
		}
		rest[k] = v
	}
	q.Params = rest.Encode()

	return q
}

func (p *Polls) ListPolls(ctx context.Context, q ListQuery) (PollPage, error) {
	const op = "polls.ListPolls"

	page, err := p.listPage(ctx, q.Filter, q.Page, p.settings.PageSize)
	if err != nil {
		p.log.Error("failed to list polls", slog.String("op", op), sl.Err(err))
		return PollPage{}, fmt.Errorf("%s: %w", op, err)
	}

	page.Params = q.Params
	page.SearchTerm = q.Filter.Search
	return page, nil
}

// ListByOwner lists the polls owned by owner in creation order.
func (p *Polls) ListByOwner(ctx context.Context, owner entity.User, rawPage string) (PollPage, error) {
	const op = "polls.ListByOwner"

	page, err := p.listPage(ctx, entity.PollQuery{OwnerID: owner.ID}, rawPage, p.settings.MinePageSize)
	if err != nil {
		p.log.Error("failed to list polls", slog.String("op", op), slog.Int64("uid", owner.ID), sl.Err(err))
		return PollPage{}, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

func (p *Polls) listPage(ctx context.Context, filter entity.PollQuery, rawPage string, perPage int) (PollPage, error) {
	count, err := p.polls.CountPolls(ctx, filter)
	if err != nil {
		return PollPage{}, err
	}

	page := paginator.Resolve(rawPage, count, perPage)

	polls, err := p.polls.ListPolls(ctx, filter, perPage, page.Offset())
	if err != nil {
		return PollPage{}, err
	}

	return PollPage{Polls: polls, Page: page}, nil
}
