package sqlstore

import (
	"context"
	"fmt"

	"github.com/14kear/online_polls/internal/entity"
	"github.com/14kear/online_polls/internal/storage"
)

func (s *Storage) SaveVote(ctx context.Context, userID, pollID, choiceID int64) (int64, error) {
	const op = "storage.sqlstore.SaveVote"

	query := `INSERT INTO votes (user_id, poll_id, choice_id, created_at) VALUES ($1, $2, $3, $4) RETURNING id`

	var id int64
	err := s.db.QueryRowContext(ctx, query, userID, pollID, choiceID, s.now()).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrVoteAlreadyExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) HasVoted(ctx context.Context, userID, pollID int64) (bool, error) {
	const op = "storage.sqlstore.HasVoted"

	var voted bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM votes WHERE user_id = $1 AND poll_id = $2)`, userID, pollID).Scan(&voted)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return voted, nil
}

// ChoiceResults returns every choice of the poll with its vote count, ordered by id.
func (s *Storage) ChoiceResults(ctx context.Context, pollID int64) ([]entity.ChoiceResult, error) {
	const op = "storage.sqlstore.ChoiceResults"

	query := `SELECT c.id, c.poll_id, c.choice_text, COUNT(v.id)
		FROM choices c LEFT JOIN votes v ON v.choice_id = c.id
		WHERE c.poll_id = $1
		GROUP BY c.id, c.poll_id, c.choice_text
		ORDER BY c.id`

	rows, err := s.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var results []entity.ChoiceResult
	for rows.Next() {
		var r entity.ChoiceResult
		if err := rows.Scan(&r.ID, &r.PollID, &r.ChoiceText, &r.Votes); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return results, nil
}
