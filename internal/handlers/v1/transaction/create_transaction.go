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

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	Type        string  `json:"type" enum:"income,expense" doc:"Transaction type"`
	Amount      float64 `json:"amount" doc:"Positive amount, rounded to cents"`
	CategoryID  int64   `json:"category_id" doc:"Category matching the transaction type"`
	Description string  `json:"description,omitempty" maxLength:"200" doc:"Optional description"`
	Date        string  `json:"date,omitempty" doc:"YYYY-MM-DD, defaults to today"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Body MessageBody
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	CreateTransaction(ctx context.Context, input service.NewTransaction) (*service.Transaction, error)
}

// CreateTransactionHandler handles POST /api/transactions.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/api/transactions",
		Summary:       "Create transaction",
		Description:   "Creates a transaction for the caller.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

// parseCreateTransactionInput parses and validates the API input.
func parseCreateTransactionInput(userID int64, input *CreateTransactionInput) (service.NewTransaction, error) {
	txType, err := service.ParseTransactionType(input.Body.Type)
	if err != nil {
		return service.NewTransaction{}, err
	}
	date, err := parseOptionalDate(input.Body.Date)
	if err != nil {
		return service.NewTransaction{}, err
	}

	categoryID := input.Body.CategoryID
	return service.NewTransaction{
		UserID:      userID,
		Type:        txType,
		Amount:      decimal.NewFromFloat(input.Body.Amount),
		CategoryID:  &categoryID,
		Description: input.Body.Description,
		Date:        date,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	user, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	newTx, err := parseCreateTransactionInput(user.ID, input)
	if err != nil {
		return nil, httperr.FromService(err, "invalid transaction")
	}

	tx, err := h.TransactionService.CreateTransaction(ctx, newTx)
	if err != nil {
		return nil, httperr.FromService(err, "failed to create transaction")
	}

	return &CreateTransactionOutput{Body: MessageBody{
		Transaction: toTransaction(tx),
		Message:     "Transaction created successfully",
	}}, nil
}
