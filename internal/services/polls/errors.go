package polls

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrForbidden        = errors.New("only the owner can do that")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidation       = errors.New("validation error")
	ErrPollNotFound     = errors.New("poll not found")
	ErrChoiceNotFound   = errors.New("choice not found")
	ErrDuplicateVote    = errors.New("already voted on this poll")
	ErrInvalidChoice    = errors.New("choice does not belong to this poll")
	ErrNoChoiceSelected = errors.New("no choice selected")
	ErrPollInactive     = errors.New("poll is no longer active")
	ErrTooFewChoices    = errors.New("poll would have too few choices")
)

// ValidationError carries a message per rejected input field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
