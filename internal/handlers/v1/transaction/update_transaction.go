package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// UpdateTransactionBody changes only the fields that are present.
type UpdateTransactionBody struct {
	Amount      *float64 `json:"amount,omitempty" doc:"New amount"`
	CategoryID  *int64   `json:"category_id,omitempty" doc:"New category, must match the transaction type"`
	Description *string  `json:"description,omitempty" maxLength:"200" doc:"New description"`
	Date        *string  `json:"date,omitempty" doc:"New date, YYYY-MM-DD"`
}

type UpdateTransactionInput struct {
	ID   int64 `path:"id" doc:"Transaction id"`
	Body UpdateTransactionBody
}

type UpdateTransactionOutput struct {
	Body MessageBody
}

type transactionUpdater interface {
	UpdateTransaction(ctx context.Context, userID, id int64, changes service.TransactionChanges) (*service.Transaction, error)
}

// UpdateTransactionHandler handles PUT /api/transactions/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
}

func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/api/transactions/{id}",
		Summary:     "Update transaction",
		Description: "Partially updates one of the caller's transactions.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseUpdateTransactionInput(input *UpdateTransactionInput) (service.TransactionChanges, error) {
	changes := service.TransactionChanges{
		CategoryID:  input.Body.CategoryID,
		Description: input.Body.Description,
	}
	if input.Body.Amount != nil {
		amount := decimal.NewFromFloat(*input.Body.Amount)
		changes.Amount = &amount
	}
	if input.Body.Date != nil {
		date, err := service.ParseDate(*input.Body.Date)
		if err != nil {
			return changes, err
		}
		changes.Date = &date
	}
	return changes, nil
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	user, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	changes, err := parseUpdateTransactionInput(input)
	if err != nil {
		return nil, httperr.FromService(err, "invalid transaction")
	}

	tx, err := h.TransactionService.UpdateTransaction(ctx, user.ID, input.ID, changes)
	if err != nil {
		return nil, httperr.FromService(err, "failed to update transaction")
	}

	return &UpdateTransactionOutput{Body: MessageBody{
		Transaction: toTransaction(tx),
		Message:     "Transaction updated successfully",
	}}, nil
}
