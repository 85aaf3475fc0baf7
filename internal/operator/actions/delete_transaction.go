package actions

import (
	"context"

	"github.com/carson-networks/finance-tracker/internal/storage"
)

type DeleteTransaction struct {
	ID     int64
	UserID int64
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	deleted, err := writer.Transactions.Delete(ctx, d.ID, d.UserID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
