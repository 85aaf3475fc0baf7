package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-tracker/internal/service"
)

type TransactionIDInput struct {
	ID int64 `path:"id" doc:"Transaction id"`
}

type GetTransactionOutput struct {
	Body Transaction
}

type transactionGetter interface {
	GetTransaction(ctx context.Context, userID, id int64) (*service.Transaction, error)
}

// GetTransactionHandler handles GET /api/transactions/{id}.
type GetTransactionHandler struct {
	TransactionService transactionGetter
}

func NewGetTransactionHandler(svc transactionGetter) *GetTransactionHandler {
	return &GetTransactionHandler{TransactionService: svc}
}

func (h *GetTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        "/api/transactions/{id}",
		Summary:     "Get transaction",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *GetTransactionHandler) handle(ctx context.Context, input *TransactionIDInput) (*GetTransactionOutput, error) {
	user, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := h.TransactionService.GetTransaction(ctx, user.ID, input.ID)
	if err != nil {
		return nil, httperr.FromService(err, "failed to get transaction")
	}
	return &GetTransactionOutput{Body: toTransaction(tx)}, nil
}
