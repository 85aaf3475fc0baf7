package service

import (
	"github.com/carson-networks/finance-tracker/internal/ai"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

type TransactionType = sqlconfig.TransactionType

const (
	TransactionTypeIncome  = sqlconfig.TransactionTypeIncome
	TransactionTypeExpense = sqlconfig.TransactionTypeExpense
)

// Fallback categories used when a requested name is unknown.
const (
	DefaultExpenseCategory = ai.DefaultExpenseCategory
	DefaultIncomeCategory  = ai.DefaultIncomeCategory
)

type Category struct {
	ID       int64
	Name     string
	Icon     string
	Type     TransactionType
	IsActive bool
}

func DefaultCategoryName(t TransactionType) string {
	if t == TransactionTypeIncome {
		return DefaultIncomeCategory
	}
	return DefaultExpenseCategory
}

func categoryFromRow(row *sqlconfig.Category) Category {
	return Category{
		ID:       row.ID,
		Name:     row.Name,
		Icon:     row.Icon,
		Type:     row.Type,
		IsActive: row.IsActive,
	}
}
