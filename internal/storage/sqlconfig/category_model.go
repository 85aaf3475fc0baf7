package sqlconfig

import (
	"context"
	"time"
)

// Category represents a categories record.
type Category struct {
	ID        int64           `db:"id"`
	Name      string          `db:"name"`
	Icon      string          `db:"icon"`
	Type      TransactionType `db:"type"`
	IsActive  bool            `db:"is_active"`
	CreatedAt time.Time       `db:"created_at"`
}

type CategoryCreate struct {
	Name string
	Icon string
	Type TransactionType
}

// CategoryUpdate applies only the non-nil fields.
type CategoryUpdate struct {
	Name     *string
	Icon     *string
	IsActive *bool
}

type CategoryFilter struct {
	Type       *TransactionType
	ActiveOnly bool
}

// ICategoryTable defines the interface for category storage operations.
type ICategoryTable interface {
	FindByID(ctx context.Context, id int64) (*Category, error)
	FindByName(ctx context.Context, name string, categoryType TransactionType) (*Category, error)
	List(ctx context.Context, filter *CategoryFilter) ([]*Category, error)
	Insert(ctx context.Context, create *CategoryCreate) (int64, error)
	Update(ctx context.Context, id int64, update *CategoryUpdate) (bool, error)
	Count(ctx context.Context) (int64, error)
}
