package storage

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrPollNotFound      = errors.New("poll not found")
	ErrChoiceNotFound    = errors.New("choice not found")
	ErrVoteAlreadyExists = errors.New("vote already exists")
	ErrSessionNotFound   = errors.New("session not found")
)
