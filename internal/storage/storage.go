package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-tracker/internal/config"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

// Storage serves reads straight from the pool. Writes go through Write.
type Storage struct {
	DB            *sql.DB
	bobDB         bob.DB
	Users         sqlconfig.IUserTable
	Categories    sqlconfig.ICategoryTable
	Transactions  sqlconfig.ITransactionTable
	Conversations sqlconfig.IConversationTable
}

func NewStorage(ctx context.Context, env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}

	return NewStorageFromDB(db), nil
}

func NewStorageFromDB(db *sql.DB) *Storage {
	bobDB := bob.NewDB(db)
	return &Storage{
		DB:            db,
		bobDB:         bobDB,
		Users:         sqlconfig.NewUsersTable(bobDB),
		Categories:    sqlconfig.NewCategoriesTable(bobDB),
		Transactions:  sqlconfig.NewTransactionsTable(bobDB),
		Conversations: sqlconfig.NewConversationsTable(bobDB),
	}
}

// Write opens a transaction. The caller must Commit or Rollback the returned Writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bobDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	writer := NewWriter(tx)
	return &writer, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
