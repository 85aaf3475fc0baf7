package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

type CreateTransaction struct {
	Create sqlconfig.TransactionCreate
	// DailyLimit caps rows created since DayStart; zero disables the check.
	DailyLimit int
	DayStart   time.Time

	ID int64
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	// Serializes concurrent creates for the same user so the limit check holds.
	user, err := writer.Users.FindByIDForUpdate(ctx, t.Create.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %d: %w", t.Create.UserID, ErrNotFound)
	}

	if t.DailyLimit > 0 {
		created, err := writer.Transactions.CountCreatedSince(ctx, t.Create.UserID, t.DayStart)
		if err != nil {
			return err
		}
		if created >= int64(t.DailyLimit) {
			return ErrDailyLimitReached
		}
	}

	if t.Create.CategoryID != nil {
		if err := checkCategory(ctx, writer, *t.Create.CategoryID, t.Create.Type); err != nil {
			return err
		}
	}

	id, err := writer.Transactions.Insert(ctx, &t.Create)
	if err != nil {
		return err
	}
	t.ID = id

	return nil
}

func checkCategory(ctx context.Context, writer *storage.Writer, categoryID int64, txType sqlconfig.TransactionType) error {
	category, err := writer.Categories.FindByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category == nil || !category.IsActive {
		return fmt.Errorf("category %d does not exist: %w", categoryID, ErrInvalidCategory)
	}
	if category.Type != txType {
		return fmt.Errorf("category %d is for %s, not %s: %w", categoryID, category.Type, txType, ErrInvalidCategory)
	}
	return nil
}
