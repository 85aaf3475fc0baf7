package service

import (
	"errors"
	"fmt"

	"github.com/carson-networks/finance-tracker/internal/operator/actions"
)

var (
	ErrNotFound             = actions.ErrNotFound
	ErrInvalidCategory      = actions.ErrInvalidCategory
	ErrDailyLimitReached    = actions.ErrDailyLimitReached
	ErrInvalidInput         = errors.New("invalid input")
	ErrRateLimited          = errors.New("rate limit exceeded")
	ErrAssistantUnavailable = errors.New("assistant unavailable")
)

// ValidationError describes a rejected field. It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
