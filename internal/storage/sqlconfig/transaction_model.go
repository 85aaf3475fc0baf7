package sqlconfig

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a transaction record joined with its category.
type Transaction struct {
	ID              int64           `db:"id"`
	UserID          int64           `db:"user_id"`
	Type            TransactionType `db:"type"`
	Amount          decimal.Decimal `db:"amount"`
	CategoryID      *int64          `db:"category_id"`
	CategoryName    *string         `db:"category_name"`
	CategoryIcon    *string         `db:"category_icon"`
	Description     string          `db:"description"`
	TransactionDate time.Time       `db:"transaction_date"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	UserID          int64
	Type            TransactionType
	Amount          decimal.Decimal
	CategoryID      *int64
	Description     string
	TransactionDate time.Time
}

// TransactionUpdate applies only the non-nil fields.
type TransactionUpdate struct {
	Amount          *decimal.Decimal
	CategoryID      *int64
	Description     *string
	TransactionDate *time.Time
}

// TransactionFilter specifies filters for listing transactions. Dates are inclusive.
type TransactionFilter struct {
	UserID     int64
	Type       *TransactionType
	CategoryID *int64
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}

// Totals aggregates a user's transactions over a date range.
type Totals struct {
	Income   decimal.Decimal `db:"income"`
	Expenses decimal.Decimal `db:"expenses"`
	Count    int64           `db:"count"`
}

type CategoryTotal struct {
	CategoryID int64           `db:"category_id"`
	Name       string          `db:"name"`
	Icon       string          `db:"icon"`
	Count      int64           `db:"count"`
	Total      decimal.Decimal `db:"total"`
	Average    decimal.Decimal `db:"average"`
}

type DailyTotal struct {
	Date  time.Time       `db:"date"`
	Total decimal.Decimal `db:"total"`
	Count int64           `db:"count"`
}

// ITransactionTable defines the interface for transaction storage operations.
// Mutations are scoped by user so one user can never touch another's rows.
type ITransactionTable interface {
	FindByID(ctx context.Context, id int64) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (int64, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	Update(ctx context.Context, id int64, userID int64, update *TransactionUpdate) (bool, error)
	Delete(ctx context.Context, id int64, userID int64) (bool, error)
	CountCreatedSince(ctx context.Context, userID int64, since time.Time) (int64, error)
	Totals(ctx context.Context, userID int64, start, end time.Time) (*Totals, error)
	CategoryTotals(ctx context.Context, userID int64, txType TransactionType, start, end *time.Time) ([]*CategoryTotal, error)
	DailyTotals(ctx context.Context, userID int64, txType TransactionType, start, end time.Time) ([]*DailyTotal, error)
}
