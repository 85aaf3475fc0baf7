package transaction

import (
	"time"

	"github.com/carson-networks/finance-tracker/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID              int64   `json:"id" doc:"Transaction id"`
	Type            string  `json:"type" enum:"income,expense" doc:"Transaction type"`
	Amount          float64 `json:"amount" doc:"Amount, always positive"`
	CategoryID      *int64  `json:"category_id" doc:"Category id, null when uncategorized"`
	CategoryName    *string `json:"category_name" doc:"Category name"`
	CategoryIcon    *string `json:"category_icon" doc:"Category icon"`
	Description     string  `json:"description" doc:"Free-form description"`
	TransactionDate string  `json:"transaction_date" doc:"Date as YYYY-MM-DD"`
	CreatedAt       string  `json:"created_at" doc:"RFC3339 creation time"`
}

// MessageBody is returned by write endpoints alongside the affected transaction.
type MessageBody struct {
	Transaction
	Message string `json:"message"`
}

func toTransaction(tx *service.Transaction) Transaction {
	out := Transaction{
		ID:              tx.ID,
		Type:            string(tx.Type),
		Amount:          tx.Amount.InexactFloat64(),
		CategoryID:      tx.CategoryID,
		Description:     tx.Description,
		TransactionDate: tx.TransactionDate.Format(service.DateLayout),
		CreatedAt:       tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.CategoryID != nil {
		name, icon := tx.CategoryName, tx.CategoryIcon
		out.CategoryName, out.CategoryIcon = &name, &icon
	}
	return out
}

// parseOptionalDate parses a YYYY-MM-DD query or body value. Empty means unset.
func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := service.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
