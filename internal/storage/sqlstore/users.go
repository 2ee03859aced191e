package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/14kear/online_polls/internal/entity"
	"github.com/14kear/online_polls/internal/storage"
)

// SaveUser inserts the account together with its permissions. Nothing is
// stored when any of the inserts fails.
func (s *Storage) SaveUser(ctx context.Context, username string, passHash []byte, permissions []string) (int64, error) {
	const op = "storage.sqlstore.SaveUser"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	query := `INSERT INTO users (username, pass_hash, created_at) VALUES ($1, $2, $3) RETURNING id`

	var id int64
	err = tx.QueryRowContext(ctx, query, username, passHash, s.now()).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrUserAlreadyExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := grantPermissions(ctx, tx, id, permissions); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) User(ctx context.Context, username string) (entity.User, error) {
	const op = "storage.sqlstore.User"

	query := `SELECT id, username, pass_hash, created_at FROM users WHERE username = $1`

	var user entity.User
	err := s.db.QueryRowContext(ctx, query, username).Scan(&user.ID, &user.Username, &user.PassHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return entity.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) UserByID(ctx context.Context, id int64) (entity.User, error) {
	const op = "storage.sqlstore.UserByID"

	query := `SELECT id, username, pass_hash, created_at FROM users WHERE id = $1`

	var user entity.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Username, &user.PassHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return entity.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func grantPermissions(ctx context.Context, tx *sql.Tx, userID int64, codenames []string) error {
	query := `INSERT INTO user_permissions (user_id, codename) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	for _, codename := range codenames {
		if _, err := tx.ExecContext(ctx, query, userID, codename); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) HasPermission(ctx context.Context, userID int64, codename string) (bool, error) {
	const op = "storage.sqlstore.HasPermission"

	query := `SELECT EXISTS(SELECT 1 FROM user_permissions WHERE user_id = $1 AND codename = $2)`

	var ok bool
	if err := s.db.QueryRowContext(ctx, query, userID, codename).Scan(&ok); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return ok, nil
}
