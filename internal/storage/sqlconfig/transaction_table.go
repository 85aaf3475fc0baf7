package sqlconfig

import (
	"context"
	"time"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

func selectTransactions() bob.BaseQuery[*dialect.SelectQuery] {
	return psql.Select(
		sm.Columns(
			"t.id", "t.user_id", "t.type", "t.amount", "t.category_id",
			"c.name AS category_name", "c.icon AS category_icon",
			"t.description", "t.transaction_date", "t.created_at", "t.updated_at",
		),
		sm.From("transactions").As("t"),
		sm.LeftJoin("categories").As("c").On(
			psql.Quote("c", "id").EQ(psql.Quote("t", "category_id")),
		),
	)
}

// FindByID retrieves a transaction by primary key.
func (t *TransactionsTable) FindByID(ctx context.Context, id int64) (*Transaction, error) {
	q := selectTransactions()
	q.Apply(sm.Where(psql.Quote("t", "id").EQ(psql.Arg(id))))
	return findOne(ctx, t.exec, q, scan.StructMapper[Transaction]())
}

// Insert creates a new transaction and returns its generated ID.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (int64, error) {
	date := create.TransactionDate
	if date.IsZero() {
		date = time.Now()
	}
	q := psql.Insert(
		im.Into("transactions", "user_id", "type", "amount", "category_id", "description", "transaction_date"),
		im.Values(
			psql.Arg(create.UserID),
			psql.Arg(create.Type),
			psql.Arg(create.Amount),
			psql.Arg(create.CategoryID),
			psql.Arg(create.Description),
			psql.Arg(dateArg(date)),
		),
		im.Returning("id"),
	)
	return bob.One(ctx, t.exec, q, scan.SingleColumnMapper[int64])
}

// List returns the newest transactions first. A positive limit is honored exactly.
func (t *TransactionsTable) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	q := selectTransactions()
	q.Apply(
		sm.Where(psql.Quote("t", "user_id").EQ(psql.Arg(filter.UserID))),
		sm.OrderBy(psql.Quote("t", "transaction_date")).Desc(),
		sm.OrderBy(psql.Quote("t", "created_at")).Desc(),
		sm.OrderBy(psql.Quote("t", "id")).Desc(),
	)
	if filter.Type != nil {
		q.Apply(sm.Where(psql.Quote("t", "type").EQ(psql.Arg(*filter.Type))))
	}
	if filter.CategoryID != nil {
		q.Apply(sm.Where(psql.Quote("t", "category_id").EQ(psql.Arg(*filter.CategoryID))))
	}
	if filter.StartDate != nil {
		q.Apply(sm.Where(psql.Quote("t", "transaction_date").GTE(psql.Arg(dateArg(*filter.StartDate)))))
	}
	if filter.EndDate != nil {
		q.Apply(sm.Where(psql.Quote("t", "transaction_date").LTE(psql.Arg(dateArg(*filter.EndDate)))))
	}
	if filter.Limit > 0 {
		q.Apply(sm.Limit(filter.Limit))
	}
	if filter.Offset > 0 {
		q.Apply(sm.Offset(filter.Offset))
	}
	return allRows[Transaction](ctx, t.exec, q)
}

func (t *TransactionsTable) Update(ctx context.Context, id int64, userID int64, update *TransactionUpdate) (bool, error) {
	q := psql.Update(
		um.Table("transactions"),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	changed := false
	if update.Amount != nil {
		q.Apply(um.SetCol("amount").ToArg(*update.Amount))
		changed = true
	}
	if update.CategoryID != nil {
		q.Apply(um.SetCol("category_id").ToArg(*update.CategoryID))
		changed = true
	}
	if update.Description != nil {
		q.Apply(um.SetCol("description").ToArg(*update.Description))
		changed = true
	}
	if update.TransactionDate != nil {
		q.Apply(um.SetCol("transaction_date").ToArg(dateArg(*update.TransactionDate)))
		changed = true
	}
	if !changed {
		existing, err := t.FindByID(ctx, id)
		if err != nil {
			return false, err
		}
		return existing != nil && existing.UserID == userID, nil
	}
	return affected(bob.Exec(ctx, t.exec, q))
}

func (t *TransactionsTable) Delete(ctx context.Context, id int64, userID int64) (bool, error) {
	q := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		dm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	return affected(bob.Exec(ctx, t.exec, q))
}

// CountCreatedSince counts rows inserted at or after since, regardless of their transaction date.
func (t *TransactionsTable) CountCreatedSince(ctx context.Context, userID int64, since time.Time) (int64, error) {
	q := psql.Select(
		sm.Columns("COUNT(*)"),
		sm.From("transactions"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("created_at").GTE(psql.Arg(since))),
	)
	return bob.One(ctx, t.exec, q, scan.SingleColumnMapper[int64])
}

func (t *TransactionsTable) Totals(ctx context.Context, userID int64, start, end time.Time) (*Totals, error) {
	q := psql.Select(
		sm.Columns(
			"COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0) AS income",
			"COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0) AS expenses",
			"COUNT(*) AS count",
		),
		sm.From("transactions"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("transaction_date").GTE(psql.Arg(dateArg(start)))),
		sm.Where(psql.Quote("transaction_date").LTE(psql.Arg(dateArg(end)))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[Totals]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// CategoryTotals skips uncategorized rows and orders by total, largest first.
func (t *TransactionsTable) CategoryTotals(ctx context.Context, userID int64, txType TransactionType, start, end *time.Time) ([]*CategoryTotal, error) {
	q := psql.Select(
		sm.Columns(
			"c.id AS category_id", "c.name", "c.icon",
			"COUNT(t.id) AS count",
			"SUM(t.amount) AS total",
			"ROUND(AVG(t.amount), 2) AS average",
		),
		sm.From("transactions").As("t"),
		sm.InnerJoin("categories").As("c").On(
			psql.Quote("c", "id").EQ(psql.Quote("t", "category_id")),
		),
		sm.Where(psql.Quote("t", "user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("t", "type").EQ(psql.Arg(txType))),
		sm.GroupBy(psql.Quote("c", "id")),
		sm.GroupBy(psql.Quote("c", "name")),
		sm.GroupBy(psql.Quote("c", "icon")),
		sm.OrderBy("total").Desc(),
		sm.OrderBy(psql.Quote("c", "id")).Asc(),
	)
	if start != nil {
		q.Apply(sm.Where(psql.Quote("t", "transaction_date").GTE(psql.Arg(dateArg(*start)))))
	}
	if end != nil {
		q.Apply(sm.Where(psql.Quote("t", "transaction_date").LTE(psql.Arg(dateArg(*end)))))
	}
	return allRows[CategoryTotal](ctx, t.exec, q)
}

// DailyTotals returns one row per day that has transactions, oldest first.
func (t *TransactionsTable) DailyTotals(ctx context.Context, userID int64, txType TransactionType, start, end time.Time) ([]*DailyTotal, error) {
	q := psql.Select(
		sm.Columns(
			"transaction_date AS date",
			"SUM(amount) AS total",
			"COUNT(*) AS count",
		),
		sm.From("transactions"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.Where(psql.Quote("type").EQ(psql.Arg(txType))),
		sm.Where(psql.Quote("transaction_date").GTE(psql.Arg(dateArg(start)))),
		sm.Where(psql.Quote("transaction_date").LTE(psql.Arg(dateArg(end)))),
		sm.GroupBy("transaction_date"),
		sm.OrderBy("transaction_date").Asc(),
	)
	return allRows[DailyTotal](ctx, t.exec, q)
}
