package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
)

type DeleteTransactionOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

type transactionDeleter interface {
	DeleteTransaction(ctx context.Context, userID, id int64) error
}

// DeleteTransactionHandler handles DELETE /api/transactions/{id}.
type DeleteTransactionHandler struct {
	TransactionService transactionDeleter
}

func NewDeleteTransactionHandler(svc transactionDeleter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{TransactionService: svc}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodDelete,
		Path:        "/api/transactions/{id}",
		Summary:     "Delete transaction",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *TransactionIDInput) (*DeleteTransactionOutput, error) {
	user, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.TransactionService.DeleteTransaction(ctx, user.ID, input.ID); err != nil {
		return nil, httperr.FromService(err, "failed to delete transaction")
	}

	out := &DeleteTransactionOutput{}
	out.Body.Message = "Transaction deleted successfully"
	return out, nil
}
