package sqlstore

import (
	"context"
	"fmt"

	"github.com/14kear/online_polls/internal/entity"
)

func (s *Storage) SaveLog(ctx context.Context, log *entity.Log) (int64, error) {
	const op = "storage.sqlstore.SaveLog"

	if log.CreatedAt.IsZero() {
		log.CreatedAt = s.now()
	}

	query := `INSERT INTO logs (user_id, action, poll_id, choice_id, vote_id, created_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	err := s.db.QueryRowContext(ctx, query, log.UserID, log.Action, log.PollID, log.ChoiceID, log.VoteID, log.CreatedAt.UTC()).Scan(&log.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return log.ID, nil
}

// LogsByPollID returns the audit entries of a poll, newest first.
func (s *Storage) LogsByPollID(ctx context.Context, pollID int64) ([]entity.Log, error) {
	const op = "storage.sqlstore.LogsByPollID"

	query := `SELECT id, user_id, action, poll_id, choice_id, vote_id, created_at FROM logs WHERE poll_id = $1 ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var logs []entity.Log
	for rows.Next() {
		var log entity.Log
		if err := rows.Scan(&log.ID, &log.UserID, &log.Action, &log.PollID, &log.ChoiceID, &log.VoteID, &log.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return logs, nil
}
