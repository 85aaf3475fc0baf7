package service

import (
	"context"

	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 1000
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage    *storage.Storage
	operator   actionProcessor
	clock      Clock
	dailyLimit int
}

// NewTransactionService creates a new TransactionService. A dailyLimit of zero disables the limit.
func NewTransactionService(store *storage.Storage, op actionProcessor, clock Clock, dailyLimit int) *TransactionService {
	return &TransactionService{storage: store, operator: op, clock: clock, dailyLimit: dailyLimit}
}

// ListTransactions returns a page of the user's transactions, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, query TransactionQuery) ([]Transaction, error) {
	limit := query.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 0 {
		return nil, invalid("limit", "must not be negative")
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if query.Offset < 0 {
		return nil, invalid("offset", "must not be negative")
	}
	if query.Type != nil && !query.Type.Valid() {
		return nil, invalid("type", "must be 'income' or 'expense'")
	}
	if err := validateRange(query.StartDate, query.EndDate); err != nil {
		return nil, err
	}

	stopTimer := logging.GetLogData(ctx).AddTiming("listTransactionsMs")
	rows, err := s.storage.Transactions.List(ctx, &sqlconfig.TransactionFilter{
		UserID:     query.UserID,
		Type:       query.Type,
		CategoryID: query.CategoryID,
		StartDate:  query.StartDate,
		EndDate:    query.EndDate,
		Limit:      limit,
		Offset:     query.Offset,
	})
	stopTimer()
	if err != nil {
		return nil, err
	}

	transactions := make([]Transaction, len(rows))
	for i, row := range rows {
		transactions[i] = transactionFromRow(row)
	}
	return transactions, nil
}

// GetTransaction reports another user's transaction as not found.
func (s *TransactionService) GetTransaction(ctx context.Context, userID, id int64) (*Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil || row.UserID != userID {
		return nil, ErrNotFound
	}
	tx := transactionFromRow(row)
	return &tx, nil
}

func (s *TransactionService) CreateTransaction(ctx context.Context, input NewTransaction) (*Transaction, error) {
	if !input.Type.Valid() {
		return nil, invalid("type", "must be 'income' or 'expense'")
	}
	amount, err := NormalizeAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	description, err := normalizeDescription(input.Description)
	if err != nil {
		return nil, err
	}

	today := s.clock.Today()
	date := today
	if input.Date != nil {
		if err := validateDate(*input.Date, today); err != nil {
			return nil, err
		}
		date = AsDate(*input.Date)
	}

	action := &actions.CreateTransaction{
		Create: sqlconfig.TransactionCreate{
			UserID:          input.UserID,
			Type:            input.Type,
			Amount:          amount,
			CategoryID:      input.CategoryID,
			Description:     description,
			TransactionDate: date,
		},
		DailyLimit: s.dailyLimit,
		DayStart:   s.clock.StartOfDay(),
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	logging.GetLogData(ctx).AddData("transactionID", action.ID)

	return s.GetTransaction(ctx, input.UserID, action.ID)
}

func (s *TransactionService) UpdateTransaction(ctx context.Context, userID, id int64, changes TransactionChanges) (*Transaction, error) {
	if changes.empty() {
		return nil, invalid("body", "no fields to update")
	}

	update := sqlconfig.TransactionUpdate{CategoryID: changes.CategoryID}
	if changes.Amount != nil {
		amount, err := NormalizeAmount(*changes.Amount)
		if err != nil {
			return nil, err
		}
		update.Amount = &amount
	}
	if changes.Description != nil {
		description, err := normalizeDescription(*changes.Description)
		if err != nil {
			return nil, err
		}
		update.Description = &description
	}
	if changes.Date != nil {
		if err := validateDate(*changes.Date, s.clock.Today()); err != nil {
			return nil, err
		}
		date := AsDate(*changes.Date)
		update.TransactionDate = &date
	}

	if err := s.operator.Process(ctx, &actions.UpdateTransaction{ID: id, UserID: userID, Update: update}); err != nil {
		return nil, err
	}

	return s.GetTransaction(ctx, userID, id)
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, id int64) error {
	return s.operator.Process(ctx, &actions.DeleteTransaction{ID: id, UserID: userID})
}
