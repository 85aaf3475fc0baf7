package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

// Writer exposes the tables bound to a single database transaction.
type Writer struct {
	tx            bob.Tx
	Users         sqlconfig.IUserTable
	Categories    sqlconfig.ICategoryTable
	Transactions  sqlconfig.ITransactionTable
	Conversations sqlconfig.IConversationTable
}

func NewWriter(tx bob.Tx) Writer {
	return Writer{
		tx:            tx,
		Users:         sqlconfig.NewUsersTable(tx),
		Categories:    sqlconfig.NewCategoriesTable(tx),
		Transactions:  sqlconfig.NewTransactionsTable(tx),
		Conversations: sqlconfig.NewConversationsTable(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
