package transaction

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-tracker/internal/service"
)

// mockTransactionService implements every transaction handler interface.
type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) ListTransactions(ctx context.Context, query service.TransactionQuery) ([]service.Transaction, error) {
	args := m.Called(ctx, query)
	txs, _ := args.Get(0).([]service.Transaction)
	return txs, args.Error(1)
}

func (m *mockTransactionService) GetTransaction(ctx context.Context, userID, id int64) (*service.Transaction, error) {
	args := m.Called(ctx, userID, id)
	tx, _ := args.Get(0).(*service.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, input service.NewTransaction) (*service.Transaction, error) {
	args := m.Called(ctx, input)
	tx, _ := args.Get(0).(*service.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionService) UpdateTransaction(ctx context.Context, userID, id int64, changes service.TransactionChanges) (*service.Transaction, error) {
	args := m.Called(ctx, userID, id, changes)
	tx, _ := args.Get(0).(*service.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionService) DeleteTransaction(ctx context.Context, userID, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}
