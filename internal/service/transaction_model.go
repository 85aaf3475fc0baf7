package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

type Transaction struct {
	ID              int64
	UserID          int64
	Type            TransactionType
	Amount          decimal.Decimal
	CategoryID      *int64
	CategoryName    string
	CategoryIcon    string
	Description     string
	TransactionDate time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewTransaction is the input for CreateTransaction. A nil Date means today.
type NewTransaction struct {
	UserID      int64
	Type        TransactionType
	Amount      decimal.Decimal
	CategoryID  *int64
	Description string
	Date        *time.Time
}

// TransactionChanges applies only the non-nil fields.
type TransactionChanges struct {
	Amount      *decimal.Decimal
	CategoryID  *int64
	Description *string
	Date        *time.Time
}

func (c TransactionChanges) empty() bool {
	return c.Amount == nil && c.CategoryID == nil && c.Description == nil && c.Date == nil
}

// TransactionQuery filters a user's transactions. Dates are inclusive.
type TransactionQuery struct {
	UserID     int64
	Type       *TransactionType
	CategoryID *int64
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}

func transactionFromRow(row *sqlconfig.Transaction) Transaction {
	tx := Transaction{
		ID:              row.ID,
		UserID:          row.UserID,
		Type:            row.Type,
		Amount:          row.Amount,
		CategoryID:      row.CategoryID,
		Description:     row.Description,
		TransactionDate: row.TransactionDate,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
	if row.CategoryName != nil {
		tx.CategoryName = *row.CategoryName
	}
	if row.CategoryIcon != nil {
		tx.CategoryIcon = *row.CategoryIcon
	}
	return tx
}
