package sqlconfig

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var categoryColumns = []any{"id", "name", "icon", "type", "is_active", "created_at"}

var _ ICategoryTable = (*CategoriesTable)(nil)

type CategoriesTable struct {
	exec bob.Executor
}

func NewCategoriesTable(exec bob.Executor) *CategoriesTable {
	return &CategoriesTable{exec: exec}
}

func (t *CategoriesTable) FindByID(ctx context.Context, id int64) (*Category, error) {
	q := psql.Select(
		sm.Columns(categoryColumns...),
		sm.From("categories"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	return findOne(ctx, t.exec, q, scan.StructMapper[Category]())
}

// FindByName matches case-insensitively within one transaction type.
func (t *CategoriesTable) FindByName(ctx context.Context, name string, categoryType TransactionType) (*Category, error) {
	q := psql.Select(
		sm.Columns(categoryColumns...),
		sm.From("categories"),
		sm.Where(psql.And(
			psql.Raw("LOWER(name) = LOWER(?)", name),
			psql.Quote("type").EQ(psql.Arg(categoryType)),
		)),
		sm.OrderBy("id").Asc(),
		sm.Limit(1),
	)
	return findOne(ctx, t.exec, q, scan.StructMapper[Category]())
}

func (t *CategoriesTable) List(ctx context.Context, filter *CategoryFilter) ([]*Category, error) {
	q := psql.Select(
		sm.Columns(categoryColumns...),
		sm.From("categories"),
		sm.OrderBy("id").Asc(),
	)
	if filter != nil {
		var where []bob.Expression
		if filter.Type != nil {
			where = append(where, psql.Quote("type").EQ(psql.Arg(*filter.Type)))
		}
		if filter.ActiveOnly {
			where = append(where, psql.Quote("is_active").EQ(psql.Arg(true)))
		}
		applyWhere(q, where)
	}
	return allRows[Category](ctx, t.exec, q)
}

func (t *CategoriesTable) Insert(ctx context.Context, create *CategoryCreate) (int64, error) {
	q := psql.Insert(
		im.Into("categories", "name", "icon", "type"),
		im.Values(psql.Arg(create.Name), psql.Arg(create.Icon), psql.Arg(create.Type)),
		im.Returning("id"),
	)
	return bob.One(ctx, t.exec, q, scan.SingleColumnMapper[int64])
}

func (t *CategoriesTable) Update(ctx context.Context, id int64, update *CategoryUpdate) (bool, error) {
	q := psql.Update(
		um.Table("categories"),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	changed := false
	if update.Name != nil {
		q.Apply(um.SetCol("name").ToArg(*update.Name))
		changed = true
	}
	if update.Icon != nil {
		q.Apply(um.SetCol("icon").ToArg(*update.Icon))
		changed = true
	}
	if update.IsActive != nil {
		q.Apply(um.SetCol("is_active").ToArg(*update.IsActive))
		changed = true
	}
	if !changed {
		existing, err := t.FindByID(ctx, id)
		return existing != nil, err
	}
	return affected(bob.Exec(ctx, t.exec, q))
}

func (t *CategoriesTable) Count(ctx context.Context) (int64, error) {
	q := psql.Select(sm.Columns("COUNT(*)"), sm.From("categories"))
	return bob.One(ctx, t.exec, q, scan.SingleColumnMapper[int64])
}

func applyWhere(q bob.BaseQuery[*dialect.SelectQuery], where []bob.Expression) {
	switch len(where) {
	case 0:
	case 1:
		q.Apply(sm.Where(where[0]))
	default:
		q.Apply(sm.Where(psql.And(where...)))
	}
}
