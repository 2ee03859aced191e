package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/14kear/online_polls/internal/entity"
	"github.com/14kear/online_polls/internal/storage"
)

// SavePollWithChoices inserts an active poll and its choices in one transaction.
func (s *Storage) SavePollWithChoices(ctx context.Context, text string, pubDate time.Time, ownerID int64, choices []string) (int64, error) {
	const op = "storage.sqlstore.SavePollWithChoices"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	var pollID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO polls (text, pub_date, active, owner_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		text, pubDate.UTC(), true, ownerID,
	).Scan(&pollID)
	if err != nil {
		return 0, fmt.Errorf("%s: insert poll: %w", op, err)
	}

	for _, choice := range choices {
		if _, err := tx.ExecContext(ctx, `INSERT INTO choices (poll_id, choice_text) VALUES ($1, $2)`, pollID, choice); err != nil {
			return 0, fmt.Errorf("%s: insert choice: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return pollID, nil
}

func (s *Storage) Poll(ctx context.Context, id int64) (entity.Poll, error) {
	const op = "storage.sqlstore.Poll"

	query := `SELECT id, text, pub_date, active, owner_id FROM polls WHERE id = $1`

	var poll entity.Poll
	err := s.db.QueryRowContext(ctx, query, id).Scan(&poll.ID, &poll.Text, &poll.PubDate, &poll.Active, &poll.OwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Poll{}, fmt.Errorf("%s: %w", op, storage.ErrPollNotFound)
		}
		return entity.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	return poll, nil
}

// pollFilter builds the WHERE clause. lower names the SQL function that folds
// the poll text, matching the strings.ToLower applied to the search term.
func pollFilter(q entity.PollQuery, lower string) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if q.Search != "" {
		args = append(args, "%"+escapeLike(strings.ToLower(q.Search))+"%")
		conds = append(conds, fmt.Sprintf(`%s(p.text) LIKE $%d ESCAPE '\'`, lower, len(args)))
	}
	if q.OwnerID != 0 {
		args = append(args, q.OwnerID)
		conds = append(conds, fmt.Sprintf(`p.owner_id = $%d`, len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func pollOrder(sort entity.PollSort) string {
	switch sort {
	case entity.PollSortName:
		return " ORDER BY p.text ASC, p.id ASC"
	case entity.PollSortDate:
		return " ORDER BY p.pub_date ASC, p.id ASC"
	case entity.PollSortVotes:
		return " ORDER BY vote_count ASC, p.id ASC"
	default:
		return " ORDER BY p.id ASC"
	}
}

func (s *Storage) ListPolls(ctx context.Context, q entity.PollQuery, limit, offset int) ([]entity.PollSummary, error) {
	const op = "storage.sqlstore.ListPolls"

	where, args := pollFilter(q, s.lower)
	args = append(args, limit, offset)

	query := `SELECT p.id, p.text, p.pub_date, p.active, p.owner_id, COUNT(v.id) AS vote_count
		FROM polls p LEFT JOIN votes v ON v.poll_id = p.id` +
		where +
		` GROUP BY p.id, p.text, p.pub_date, p.active, p.owner_id` +
		pollOrder(q.Sort) +
		fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	polls := make([]entity.PollSummary, 0, limit)
	for rows.Next() {
		var p entity.PollSummary
		if err := rows.Scan(&p.ID, &p.Text, &p.PubDate, &p.Active, &p.OwnerID, &p.VoteCount); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		polls = append(polls, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return polls, nil
}

func (s *Storage) CountPolls(ctx context.Context, q entity.PollQuery) (int, error) {
	const op = "storage.sqlstore.CountPolls"

	where, args := pollFilter(q, s.lower)

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM polls p`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

func (s *Storage) UpdatePoll(ctx context.Context, id int64, text string, pubDate time.Time) error {
	const op = "storage.sqlstore.UpdatePoll"

	res, err := s.db.ExecContext(ctx, `UPDATE polls SET text = $1, pub_date = $2 WHERE id = $3`, text, pubDate.UTC(), id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPollNotFound)
	}

	return nil
}

func (s *Storage) DeletePoll(ctx context.Context, id int64) error {
	const op = "storage.sqlstore.DeletePoll"

	res, err := s.db.ExecContext(ctx, `DELETE FROM polls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPollNotFound)
	}

	return nil
}

// DeactivatePoll flips an active poll to inactive. It reports false when the
// poll was already inactive or does not exist.
func (s *Storage) DeactivatePoll(ctx context.Context, id int64) (bool, error) {
	const op = "storage.sqlstore.DeactivatePoll"

	res, err := s.db.ExecContext(ctx, `UPDATE polls SET active = $1 WHERE id = $2 AND active = $3`, false, id, true)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return n > 0, nil
}
