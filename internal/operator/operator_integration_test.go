package operator_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/operator"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
	"github.com/carson-networks/finance-tracker/internal/storage/storagetest"
)

type failingAction struct{}

func (failingAction) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Users.Insert(ctx, &sqlconfig.UserProfile{TelegramUserID: 999}); err != nil {
		return err
	}
	return errors.New("boom")
}

func TestOperatorDelegator_Actions(t *testing.T) {
	s := storagetest.New(t)
	d := operator.NewOperatorDelegator(s, 4, logrus.New())
	d.Start()
	defer d.Stop()
	ctx := context.Background()

	ensure := &actions.EnsureUser{Profile: sqlconfig.UserProfile{TelegramUserID: 7, FirstName: "Ivan"}}
	require.NoError(t, d.Process(ctx, ensure))
	require.NotNil(t, ensure.User)
	assert.True(t, ensure.Created)

	again := &actions.EnsureUser{Profile: sqlconfig.UserProfile{TelegramUserID: 7, FirstName: "Ivan"}}
	require.NoError(t, d.Process(ctx, again))
	assert.False(t, again.Created)
	assert.Equal(t, ensure.User.ID, again.User.ID)

	groceries, err := s.Categories.FindByName(ctx, "groceries", sqlconfig.TransactionTypeExpense)
	require.NoError(t, err)
	salary, err := s.Categories.FindByName(ctx, "salary", sqlconfig.TransactionTypeIncome)
	require.NoError(t, err)

	// the daily limit holds under concurrent creates
	const limit = 3
	var wg sync.WaitGroup
	var mu sync.Mutex
	var limited int
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := d.Process(ctx, &actions.CreateTransaction{
				Create: sqlconfig.TransactionCreate{
					UserID:          ensure.User.ID,
					Type:            sqlconfig.TransactionTypeExpense,
					Amount:          decimal.RequireFromString("10"),
					CategoryID:      &groceries.ID,
					TransactionDate: time.Now(),
				},
				DailyLimit: limit,
				DayStart:   time.Now().Add(-time.Hour),
			})
			if errors.Is(err, actions.ErrDailyLimitReached) {
				mu.Lock()
				limited++
				mu.Unlock()
				return
			}
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 3, limited)

	mismatched := &actions.CreateTransaction{Create: sqlconfig.TransactionCreate{
		UserID:     ensure.User.ID,
		Type:       sqlconfig.TransactionTypeExpense,
		Amount:     decimal.RequireFromString("1"),
		CategoryID: &salary.ID,
	}}
	assert.ErrorIs(t, d.Process(ctx, mismatched), actions.ErrInvalidCategory)

	rows, err := s.Transactions.List(ctx, &sqlconfig.TransactionFilter{UserID: ensure.User.ID})
	require.NoError(t, err)
	require.Len(t, rows, limit)

	description := "market"
	require.NoError(t, d.Process(ctx, &actions.UpdateTransaction{
		ID: rows[0].ID, UserID: ensure.User.ID,
		Update: sqlconfig.TransactionUpdate{Description: &description},
	}))
	assert.ErrorIs(t, d.Process(ctx, &actions.UpdateTransaction{
		ID: rows[0].ID, UserID: ensure.User.ID,
		Update: sqlconfig.TransactionUpdate{CategoryID: &salary.ID},
	}), actions.ErrInvalidCategory)
	assert.ErrorIs(t, d.Process(ctx, &actions.DeleteTransaction{ID: rows[0].ID, UserID: ensure.User.ID + 1}), actions.ErrNotFound)
	require.NoError(t, d.Process(ctx, &actions.DeleteTransaction{ID: rows[0].ID, UserID: ensure.User.ID}))

	// failed actions roll back their writes
	assert.EqualError(t, d.Process(ctx, failingAction{}), "boom")
	ghost, err := s.Users.FindByTelegramID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, ghost)

	require.NoError(t, d.Process(ctx, &actions.SaveConversationTurn{UserID: ensure.User.ID, UserMessage: "q", AssistantMessage: "a"}))
	reset := &actions.ResetConversation{UserID: ensure.User.ID}
	require.NoError(t, d.Process(ctx, reset))
	assert.Equal(t, int64(1), reset.Deleted)
}

func TestOperatorDelegator_ProcessAfterStop(t *testing.T) {
	d := operator.NewOperatorDelegator(nil, 1, logrus.New())
	d.Start()
	d.Stop()

	err := d.Process(context.Background(), &actions.DeleteTransaction{ID: 1, UserID: 1})
	assert.ErrorIs(t, err, operator.ErrStopped)
}
