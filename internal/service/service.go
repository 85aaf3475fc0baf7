package service

import (
	"context"

	"github.com/carson-networks/finance-tracker/internal/cache"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

// actionProcessor runs a write action in its own database transaction.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	User        *UserService
	Category    *CategoryService
	Transaction *TransactionService
	Stats       *StatsService
	Assistant   *AssistantService
}

type Options struct {
	Clock                 Clock
	MaxTransactionsPerDay int
	UserCache             cache.Cache[*User]
	Assistant             AssistantOptions
}

// NewService creates a new Service with the given storage.
func NewService(store *storage.Storage, op actionProcessor, opts Options) *Service {
	categories := NewCategoryService(store)
	transactions := NewTransactionService(store, op, opts.Clock, opts.MaxTransactionsPerDay)
	return &Service{
		User:        NewUserService(store, op, opts.UserCache),
		Category:    categories,
		Transaction: transactions,
		Stats:       NewStatsService(store, opts.Clock),
		Assistant:   NewAssistantService(store, op, opts.Clock, opts.Assistant),
	}
}
