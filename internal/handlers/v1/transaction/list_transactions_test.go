package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/handlertest"
	"github.com/carson-networks/finance-tracker/internal/service"
)

func newListTestAPI(t *testing.T, svc transactionLister) humatest.TestAPI {
	t.Helper()
	api := handlertest.NewAPI(t, handlertest.User)
	NewListTransactionsHandler(svc).Register(api)
	return api
}

// -- parseListTransactionsInput unit tests --

func TestParseListTransactionsInput_NoFilters(t *testing.T) {
	query, err := parseListTransactionsInput(1, &ListTransactionsInput{})
	assert.NoError(t, err)
	assert.Equal(t, service.TransactionQuery{UserID: 1}, query)
}

func TestParseListTransactionsInput_AllFilters(t *testing.T) {
	query, err := parseListTransactionsInput(1, &ListTransactionsInput{
		Limit:      10,
		Offset:     40,
		Type:       "income",
		CategoryID: 13,
		StartDate:  "2025-06-01",
		EndDate:    "2025-06-30",
	})

	assert.NoError(t, err)
	assert.Equal(t, 10, query.Limit)
	assert.Equal(t, 40, query.Offset)
	assert.Equal(t, service.TransactionTypeIncome, *query.Type)
	assert.Equal(t, int64(13), *query.CategoryID)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *query.StartDate)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), *query.EndDate)
}

func TestParseListTransactionsInput_InvalidDate(t *testing.T) {
	_, err := parseListTransactionsInput(1, &ListTransactionsInput{EndDate: "June"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

// -- HTTP integration tests --

func TestHTTP_ListTransactions(t *testing.T) {
	uncategorized := sampleTransaction(2)
	uncategorized.CategoryID, uncategorized.CategoryName, uncategorized.CategoryIcon = nil, "", ""

	mockSvc := new(mockTransactionService)
	mockSvc.On("ListTransactions", mock.Anything, mock.MatchedBy(func(q service.TransactionQuery) bool {
		return q.UserID == handlertest.User.ID && q.Limit == 2 && q.Type != nil && *q.Type == service.TransactionTypeExpense
	})).Return([]service.Transaction{*sampleTransaction(1), *uncategorized}, nil)

	resp := newListTestAPI(t, mockSvc).Get("/api/transactions?limit=2&type=expense")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListTransactionsResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Count)
	assert.Len(t, body.Transactions, 2)
	assert.Equal(t, "🛒", *body.Transactions[0].CategoryIcon)
	assert.Nil(t, body.Transactions[1].CategoryID)
	assert.Nil(t, body.Transactions[1].CategoryName)
	assert.Equal(t, "2025-06-01T12:30:00Z", body.Transactions[0].CreatedAt)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_NoResults(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("ListTransactions", mock.Anything, mock.Anything).Return(([]service.Transaction)(nil), nil)

	resp := newListTestAPI(t, mockSvc).Get("/api/transactions")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListTransactionsResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body.Transactions)
	assert.Zero(t, body.Count)
}

func TestHTTP_ListTransactions_InvalidType(t *testing.T) {
	mockSvc := new(mockTransactionService)

	resp := newListTestAPI(t, mockSvc).Get("/api/transactions?type=loan")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "ListTransactions")
}

func TestHTTP_ListTransactions_NegativeOffset(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("ListTransactions", mock.Anything, mock.Anything).
		Return(([]service.Transaction)(nil), &service.ValidationError{Field: "offset", Message: "must not be negative"})

	resp := newListTestAPI(t, mockSvc).Get("/api/transactions?offset=-1")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_ListTransactions_ServiceError(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("ListTransactions", mock.Anything, mock.Anything).
		Return(([]service.Transaction)(nil), errors.New("database unavailable"))

	resp := newListTestAPI(t, mockSvc).Get("/api/transactions")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockSvc.AssertExpectations(t)
}
