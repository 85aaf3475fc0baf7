package sqlconfig

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var userColumns = []any{"id", "telegram_user_id", "username", "first_name", "last_name", "created_at", "updated_at"}

var _ IUserTable = (*UsersTable)(nil)

type UsersTable struct {
	exec bob.Executor
}

func NewUsersTable(exec bob.Executor) *UsersTable {
	return &UsersTable{exec: exec}
}

func (t *UsersTable) FindByID(ctx context.Context, id int64) (*User, error) {
	q := psql.Select(
		sm.Columns(userColumns...),
		sm.From("users"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	return findOne(ctx, t.exec, q, scan.StructMapper[User]())
}

// FindByIDForUpdate locks the row until the surrounding transaction ends.
func (t *UsersTable) FindByIDForUpdate(ctx context.Context, id int64) (*User, error) {
	q := psql.Select(
		sm.Columns(userColumns...),
		sm.From("users"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.ForUpdate(),
	)
	return findOne(ctx, t.exec, q, scan.StructMapper[User]())
}

func (t *UsersTable) FindByTelegramID(ctx context.Context, telegramUserID int64) (*User, error) {
	q := psql.Select(
		sm.Columns(userColumns...),
		sm.From("users"),
		sm.Where(psql.Quote("telegram_user_id").EQ(psql.Arg(telegramUserID))),
	)
	return findOne(ctx, t.exec, q, scan.StructMapper[User]())
}

// Insert creates the user, or refreshes the profile when the Telegram id already exists.
func (t *UsersTable) Insert(ctx context.Context, profile *UserProfile) (*User, error) {
	q := psql.Insert(
		im.Into("users", "telegram_user_id", "username", "first_name", "last_name"),
		im.Values(
			psql.Arg(profile.TelegramUserID),
			psql.Arg(profile.Username),
			psql.Arg(profile.FirstName),
			psql.Arg(profile.LastName),
		),
		im.OnConflict("telegram_user_id").DoUpdate(
			im.SetExcluded("username", "first_name", "last_name"),
		),
		im.Returning(userColumns...),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[User]())
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (t *UsersTable) UpdateProfile(ctx context.Context, id int64, profile *UserProfile) (*User, error) {
	q := psql.Update(
		um.Table("users"),
		um.SetCol("username").ToArg(profile.Username),
		um.SetCol("first_name").ToArg(profile.FirstName),
		um.SetCol("last_name").ToArg(profile.LastName),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(userColumns...),
	)
	return findOne(ctx, t.exec, q, scan.StructMapper[User]())
}

func (t *UsersTable) List(ctx context.Context, filter *UserFilter) ([]*User, error) {
	q := psql.Select(
		sm.Columns(userColumns...),
		sm.From("users"),
		sm.OrderBy("id").Asc(),
	)
	if filter != nil {
		if filter.Limit > 0 {
			q.Apply(sm.Limit(filter.Limit))
		}
		if filter.Offset > 0 {
			q.Apply(sm.Offset(filter.Offset))
		}
	}
	return allRows[User](ctx, t.exec, q)
}

func (t *UsersTable) Count(ctx context.Context) (int64, error) {
	q := psql.Select(sm.Columns("COUNT(*)"), sm.From("users"))
	return bob.One(ctx, t.exec, q, scan.SingleColumnMapper[int64])
}

func (t *UsersTable) Delete(ctx context.Context, id int64) (bool, error) {
	q := psql.Delete(
		dm.From("users"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	return affected(bob.Exec(ctx, t.exec, q))
}
