package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/14kear/online_polls/internal/entity"
	"github.com/14kear/online_polls/internal/storage"
)

func (s *Storage) SaveChoice(ctx context.Context, pollID int64, text string) (int64, error) {
	const op = "storage.sqlstore.SaveChoice"

	var id int64
	err := s.db.QueryRowContext(ctx, `INSERT INTO choices (poll_id, choice_text) VALUES ($1, $2) RETURNING id`, pollID, text).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) Choice(ctx context.Context, id int64) (entity.Choice, error) {
	const op = "storage.sqlstore.Choice"

	var choice entity.Choice
	err := s.db.QueryRowContext(ctx, `SELECT id, poll_id, choice_text FROM choices WHERE id = $1`, id).
		Scan(&choice.ID, &choice.PollID, &choice.ChoiceText)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Choice{}, fmt.Errorf("%s: %w", op, storage.ErrChoiceNotFound)
		}
		return entity.Choice{}, fmt.Errorf("%s: %w", op, err)
	}

	return choice, nil
}

func (s *Storage) ChoicesByPollID(ctx context.Context, pollID int64) ([]entity.Choice, error) {
	const op = "storage.sqlstore.ChoicesByPollID"

	rows, err := s.db.QueryContext(ctx, `SELECT id, poll_id, choice_text FROM choices WHERE poll_id = $1 ORDER BY id`, pollID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var choices []entity.Choice
	for rows.Next() {
		var choice entity.Choice
		if err := rows.Scan(&choice.ID, &choice.PollID, &choice.ChoiceText); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		choices = append(choices, choice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return choices, nil
}

func (s *Storage) CountChoices(ctx context.Context, pollID int64) (int, error) {
	const op = "storage.sqlstore.CountChoices"

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM choices WHERE poll_id = $1`, pollID).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

func (s *Storage) UpdateChoice(ctx context.Context, id int64, text string) error {
	const op = "storage.sqlstore.UpdateChoice"

	res, err := s.db.ExecContext(ctx, `UPDATE choices SET choice_text = $1 WHERE id = $2`, text, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrChoiceNotFound)
	}

	return nil
}

func (s *Storage) DeleteChoice(ctx context.Context, id int64) error {
	const op = "storage.sqlstore.DeleteChoice"

	res, err := s.db.ExecContext(ctx, `DELETE FROM choices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrChoiceNotFound)
	}

	return nil
}
