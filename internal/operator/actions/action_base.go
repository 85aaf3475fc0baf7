package actions

import (
	"context"
	"errors"

	"github.com/carson-networks/finance-tracker/internal/storage"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrDailyLimitReached = errors.New("daily transaction limit reached")
)

type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
