// Package redis keeps the registry of live login sessions.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/14kear/online_polls/internal/storage"
	goredis "github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

type SessionStorage struct {
	rdb *goredis.Client
}

func New(ctx context.Context, addr, password string, db int) (*SessionStorage, error) {
	const op = "storage.redis.New"

	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &SessionStorage{rdb: rdb}, nil
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (s *SessionStorage) SaveSession(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error {
	const op = "storage.redis.SaveSession"

	if err := s.rdb.Set(ctx, sessionKey(sessionID), userID, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *SessionStorage) SessionUserID(ctx context.Context, sessionID string) (int64, error) {
	const op = "storage.redis.SessionUserID"

	val, err := s.rdb.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrSessionNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	uid, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: malformed session value: %w", op, err)
	}

	return uid, nil
}

func (s *SessionStorage) DeleteSession(ctx context.Context, sessionID string) error {
	const op = "storage.redis.DeleteSession"

	n, err := s.rdb.Del(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrSessionNotFound)
	}

	return nil
}

func (s *SessionStorage) Close() error {
	return s.rdb.Close()
}
