package sqlconfig

import (
	"context"
	"time"
)

// User represents a users record.
type User struct {
	ID             int64     `db:"id"`
	TelegramUserID int64     `db:"telegram_user_id"`
	Username       string    `db:"username"`
	FirstName      string    `db:"first_name"`
	LastName       string    `db:"last_name"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// UserProfile carries the Telegram-provided identity fields.
type UserProfile struct {
	TelegramUserID int64
	Username       string
	FirstName      string
	LastName       string
}

type UserFilter struct {
	Limit  int
	Offset int
}

// IUserTable defines the interface for user storage operations.
// Lookups return a nil user and nil error when nothing matches.
type IUserTable interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*User, error)
	FindByTelegramID(ctx context.Context, telegramUserID int64) (*User, error)
	Insert(ctx context.Context, profile *UserProfile) (*User, error)
	UpdateProfile(ctx context.Context, id int64, profile *UserProfile) (*User, error)
	List(ctx context.Context, filter *UserFilter) ([]*User, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
