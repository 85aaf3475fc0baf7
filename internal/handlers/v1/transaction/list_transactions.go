package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	Limit      int    `query:"limit" doc:"Page size, defaults to 50 and is capped at 1000"`
	Offset     int    `query:"offset" doc:"Number of transactions to skip"`
	Type       string `query:"type" enum:"income,expense" doc:"Only transactions of this type"`
	CategoryID int64  `query:"category_id" doc:"Only transactions in this category"`
	StartDate  string `query:"start_date" doc:"Inclusive start date, YYYY-MM-DD"`
	EndDate    string `query:"end_date" doc:"Inclusive end date, YYYY-MM-DD"`
}

// ListTransactionsResponseBody is the response body for listing transactions.
type ListTransactionsResponseBody struct {
	Transactions []Transaction `json:"transactions" doc:"Newest first"`
	Count        int           `json:"count" doc:"Number of transactions in this page"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body ListTransactionsResponseBody
}

// transactionLister is the interface for listing transactions.
type transactionLister interface {
	ListTransactions(ctx context.Context, query service.TransactionQuery) ([]service.Transaction, error)
}

// ListTransactionsHandler handles GET /api/transactions.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

// NewListTransactionsHandler creates a new ListTransactionsHandler.
func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/api/transactions",
		Summary:     "List transactions",
		Description: "Returns the caller's transactions, newest first, with optional filters.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseListTransactionsInput turns query parameters into a service query for userID.
func parseListTransactionsInput(userID int64, input *ListTransactionsInput) (service.TransactionQuery, error) {
	query := service.TransactionQuery{
		UserID: userID,
		Limit:  input.Limit,
		Offset: input.Offset,
	}

	if input.Type != "" {
		txType, err := service.ParseTransactionType(input.Type)
		if err != nil {
			return query, err
		}
		query.Type = &txType
	}
	if input.CategoryID != 0 {
		categoryID := input.CategoryID
		query.CategoryID = &categoryID
	}

	var err error
	if query.StartDate, err = parseOptionalDate(input.StartDate); err != nil {
		return query, err
	}
	if query.EndDate, err = parseOptionalDate(input.EndDate); err != nil {
		return query, err
	}
	return query, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	user, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	logData := logging.GetLogData(ctx)

	query, err := parseListTransactionsInput(user.ID, input)
	if err != nil {
		return nil, httperr.FromService(err, "invalid query")
	}

	stopTimer := logData.AddTiming("listTransactionsMs")
	transactions, err := h.TransactionService.ListTransactions(ctx, query)
	stopTimer()
	if err != nil {
		return nil, httperr.FromService(err, "failed to list transactions")
	}
	logData.AddData("transactionCount", len(transactions))

	resp := ListTransactionsResponseBody{
		Transactions: make([]Transaction, len(transactions)),
		Count:        len(transactions),
	}
	for i := range transactions {
		resp.Transactions[i] = toTransaction(&transactions[i])
	}

	return &ListTransactionsOutput{Body: resp}, nil
}
