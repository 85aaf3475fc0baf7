// Package storagetest starts disposable Postgres instances for integration tests.
package storagetest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/carson-networks/finance-tracker/internal/storage"
)

// New returns a migrated Storage backed by a fresh container. It skips under -short.
func New(t *testing.T) *storage.Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()
	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("finance"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("testpassword"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	migrationDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	result, err := storage.RunMigrations(migrationDB)
	require.NoError(t, err)
	require.Equal(t, uint(3), result.CurrentVersion)

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return storage.NewStorageFromDB(db)
}
