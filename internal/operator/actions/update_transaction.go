package actions

import (
	"context"

	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

type UpdateTransaction struct {
	ID     int64
	UserID int64
	Update sqlconfig.TransactionUpdate
}

func (u *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transactions.FindByID(ctx, u.ID)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != u.UserID {
		return ErrNotFound
	}

	if u.Update.CategoryID != nil {
		if err := checkCategory(ctx, writer, *u.Update.CategoryID, existing.Type); err != nil {
			return err
		}
	}

	updated, err := writer.Transactions.Update(ctx, u.ID, u.UserID, &u.Update)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotFound
	}

	return nil
}
