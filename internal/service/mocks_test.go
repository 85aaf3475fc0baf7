package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-tracker/internal/ai"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

type mockUserTable struct{ mock.Mock }

func (m *mockUserTable) FindByID(ctx context.Context, id int64) (*sqlconfig.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*sqlconfig.User)
	return u, args.Error(1)
}

func (m *mockUserTable) FindByIDForUpdate(ctx context.Context, id int64) (*sqlconfig.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*sqlconfig.User)
	return u, args.Error(1)
}

func (m *mockUserTable) FindByTelegramID(ctx context.Context, telegramUserID int64) (*sqlconfig.User, error) {
	args := m.Called(ctx, telegramUserID)
	u, _ := args.Get(0).(*sqlconfig.User)
	return u, args.Error(1)
}

func (m *mockUserTable) Insert(ctx context.Context, profile *sqlconfig.UserProfile) (*sqlconfig.User, error) {
	args := m.Called(ctx, profile)
	u, _ := args.Get(0).(*sqlconfig.User)
	return u, args.Error(1)
}

func (m *mockUserTable) UpdateProfile(ctx context.Context, id int64, profile *sqlconfig.UserProfile) (*sqlconfig.User, error) {
	args := m.Called(ctx, id, profile)
	u, _ := args.Get(0).(*sqlconfig.User)
	return u, args.Error(1)
}

func (m *mockUserTable) List(ctx context.Context, filter *sqlconfig.UserFilter) ([]*sqlconfig.User, error) {
	args := m.Called(ctx, filter)
	u, _ := args.Get(0).([]*sqlconfig.User)
	return u, args.Error(1)
}

func (m *mockUserTable) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserTable) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockCategoryTable struct{ mock.Mock }

func (m *mockCategoryTable) FindByID(ctx context.Context, id int64) (*sqlconfig.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*sqlconfig.Category)
	return c, args.Error(1)
}

func (m *mockCategoryTable) FindByName(ctx context.Context, name string, categoryType sqlconfig.TransactionType) (*sqlconfig.Category, error) {
	args := m.Called(ctx, name, categoryType)
	c, _ := args.Get(0).(*sqlconfig.Category)
	return c, args.Error(1)
}

func (m *mockCategoryTable) List(ctx context.Context, filter *sqlconfig.CategoryFilter) ([]*sqlconfig.Category, error) {
	args := m.Called(ctx, filter)
	c, _ := args.Get(0).([]*sqlconfig.Category)
	return c, args.Error(1)
}

func (m *mockCategoryTable) Insert(ctx context.Context, create *sqlconfig.CategoryCreate) (int64, error) {
	args := m.Called(ctx, create)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCategoryTable) Update(ctx context.Context, id int64, update *sqlconfig.CategoryUpdate) (bool, error) {
	args := m.Called(ctx, id, update)
	return args.Bool(0), args.Error(1)
}

func (m *mockCategoryTable) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockTransactionTable struct{ mock.Mock }

func (m *mockTransactionTable) FindByID(ctx context.Context, id int64) (*sqlconfig.Transaction, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*sqlconfig.Transaction)
	return t, args.Error(1)
}

func (m *mockTransactionTable) Insert(ctx context.Context, create *sqlconfig.TransactionCreate) (int64, error) {
	args := m.Called(ctx, create)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTransactionTable) List(ctx context.Context, filter *sqlconfig.TransactionFilter) ([]*sqlconfig.Transaction, error) {
	args := m.Called(ctx, filter)
	t, _ := args.Get(0).([]*sqlconfig.Transaction)
	return t, args.Error(1)
}

func (m *mockTransactionTable) Update(ctx context.Context, id int64, userID int64, update *sqlconfig.TransactionUpdate) (bool, error) {
	args := m.Called(ctx, id, userID, update)
	return args.Bool(0), args.Error(1)
}

func (m *mockTransactionTable) Delete(ctx context.Context, id int64, userID int64) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTransactionTable) CountCreatedSince(ctx context.Context, userID int64, since time.Time) (int64, error) {
	args := m.Called(ctx, userID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTransactionTable) Totals(ctx context.Context, userID int64, start, end time.Time) (*sqlconfig.Totals, error) {
	args := m.Called(ctx, userID, start, end)
	t, _ := args.Get(0).(*sqlconfig.Totals)
	return t, args.Error(1)
}

func (m *mockTransactionTable) CategoryTotals(ctx context.Context, userID int64, txType sqlconfig.TransactionType, start, end *time.Time) ([]*sqlconfig.CategoryTotal, error) {
	args := m.Called(ctx, userID, txType, start, end)
	t, _ := args.Get(0).([]*sqlconfig.CategoryTotal)
	return t, args.Error(1)
}

func (m *mockTransactionTable) DailyTotals(ctx context.Context, userID int64, txType sqlconfig.TransactionType, start, end time.Time) ([]*sqlconfig.DailyTotal, error) {
	args := m.Called(ctx, userID, txType, start, end)
	t, _ := args.Get(0).([]*sqlconfig.DailyTotal)
	return t, args.Error(1)
}

type mockConversationTable struct{ mock.Mock }

func (m *mockConversationTable) Insert(ctx context.Context, userID int64, userMessage, assistantMessage string) error {
	return m.Called(ctx, userID, userMessage, assistantMessage).Error(0)
}

func (m *mockConversationTable) ListRecent(ctx context.Context, userID int64, limit int) ([]*sqlconfig.ConversationTurn, error) {
	args := m.Called(ctx, userID, limit)
	t, _ := args.Get(0).([]*sqlconfig.ConversationTurn)
	return t, args.Error(1)
}

func (m *mockConversationTable) DeleteForUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockProcessor struct{ mock.Mock }

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	return m.Called(ctx, action).Error(0)
}

type mockGenerator struct{ mock.Mock }

func (m *mockGenerator) Generate(ctx context.Context, req ai.GenerateRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type testDeps struct {
	users         *mockUserTable
	categories    *mockCategoryTable
	transactions  *mockTransactionTable
	conversations *mockConversationTable
	processor     *mockProcessor
	store         *storage.Storage
	clock         Clock
}

// testNow is 2025-06-15 10:00 UTC.
var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestDeps() *testDeps {
	d := &testDeps{
		users:         new(mockUserTable),
		categories:    new(mockCategoryTable),
		transactions:  new(mockTransactionTable),
		conversations: new(mockConversationTable),
		processor:     new(mockProcessor),
		clock:         Clock{Location: time.UTC, Now: func() time.Time { return testNow }},
	}
	d.store = &storage.Storage{
		Users:         d.users,
		Categories:    d.categories,
		Transactions:  d.transactions,
		Conversations: d.conversations,
	}
	return d
}

func ptr[T any](v T) *T { return &v }
