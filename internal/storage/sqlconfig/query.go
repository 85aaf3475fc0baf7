package sqlconfig

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/scan"
)

const dateLayout = "2006-01-02"

// findOne runs q and maps sql.ErrNoRows to a nil result.
func findOne[T any](ctx context.Context, exec bob.Executor, q bob.Query, m scan.Mapper[T]) (*T, error) {
	row, err := bob.One(ctx, exec, q, m)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func allRows[T any](ctx context.Context, exec bob.Executor, q bob.Query) ([]*T, error) {
	rows, err := bob.All(ctx, exec, q, scan.StructMapper[T]())
	if err != nil {
		return nil, err
	}
	result := make([]*T, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func affected(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// dateArg renders a calendar date so Postgres compares it as DATE regardless of session time zone.
func dateArg(t time.Time) string {
	return t.Format(dateLayout)
}
