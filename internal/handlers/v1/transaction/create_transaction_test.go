package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/handlertest"
	"github.com/carson-networks/finance-tracker/internal/service"
)

func newCreateTestAPI(t *testing.T, svc transactionCreator) humatest.TestAPI {
	t.Helper()
	api := handlertest.NewAPI(t, handlertest.User)
	NewCreateTransactionHandler(svc).Register(api)
	return api
}

func sampleTransaction(id int64) *service.Transaction {
	categoryID := int64(3)
	return &service.Transaction{
		ID:              id,
		UserID:          handlertest.User.ID,
		Type:            service.TransactionTypeExpense,
		Amount:          decimal.RequireFromString("12.50"),
		CategoryID:      &categoryID,
		CategoryName:    "Groceries",
		CategoryIcon:    "🛒",
		Description:     "Coffee",
		TransactionDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:       time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	}
}

// -- parseCreateTransactionInput unit tests --

func TestParseCreateTransactionInput_ValidInput(t *testing.T) {
	input := &CreateTransactionInput{Body: CreateTransactionBody{
		Type:        "Expense",
		Amount:      123.45,
		CategoryID:  3,
		Description: "Test Transaction",
		Date:        "2025-01-15",
	}}

	parsed, err := parseCreateTransactionInput(7, input)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), parsed.UserID)
	assert.Equal(t, service.TransactionTypeExpense, parsed.Type)
	assert.True(t, parsed.Amount.Equal(decimal.RequireFromString("123.45")))
	assert.Equal(t, int64(3), *parsed.CategoryID)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), *parsed.Date)
}

func TestParseCreateTransactionInput_ValidInputWithoutDate(t *testing.T) {
	input := &CreateTransactionInput{Body: CreateTransactionBody{Type: "income", Amount: 99.99, CategoryID: 13}}

	parsed, err := parseCreateTransactionInput(7, input)
	assert.NoError(t, err)
	assert.Nil(t, parsed.Date)
	assert.Empty(t, parsed.Description)
}

func TestParseCreateTransactionInput_InvalidDate(t *testing.T) {
	input := &CreateTransactionInput{Body: CreateTransactionBody{Type: "income", Amount: 1, CategoryID: 13, Date: "15.01.2025"}}

	_, err := parseCreateTransactionInput(7, input)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

// -- HTTP integration tests (full Huma stack via humatest) --

func TestHTTP_CreateTransaction_Success(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx service.NewTransaction) bool {
		return tx.UserID == handlertest.User.ID &&
			*tx.CategoryID == 3 &&
			tx.Amount.Equal(decimal.RequireFromString("12.50")) &&
			tx.Description == "Coffee"
	})).Return(sampleTransaction(9), nil)

	resp := newCreateTestAPI(t, mockSvc).Post("/api/transactions", CreateTransactionBody{
		Type:        "expense",
		Amount:      12.50,
		CategoryID:  3,
		Description: "Coffee",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body MessageBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(9), body.ID)
	assert.Equal(t, 12.5, body.Amount)
	assert.Equal(t, "2025-06-01", body.TransactionDate)
	assert.Equal(t, "Groceries", *body.CategoryName)
	assert.Equal(t, "Transaction created successfully", body.Message)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateTransaction_MissingRequiredFields(t *testing.T) {
	mockSvc := new(mockTransactionService)

	// Huma schema validation rejects the request before the handler runs.
	resp := newCreateTestAPI(t, mockSvc).Post("/api/transactions", map[string]any{
		"type": "expense",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateTransaction")
}

func TestHTTP_CreateTransaction_InvalidType(t *testing.T) {
	mockSvc := new(mockTransactionService)

	resp := newCreateTestAPI(t, mockSvc).Post("/api/transactions", CreateTransactionBody{
		Type:       "transfer",
		Amount:     10,
		CategoryID: 3,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateTransaction")
}

func TestHTTP_CreateTransaction_InvalidDate(t *testing.T) {
	mockSvc := new(mockTransactionService)

	resp := newCreateTestAPI(t, mockSvc).Post("/api/transactions", CreateTransactionBody{
		Type:       "expense",
		Amount:     10,
		CategoryID: 3,
		Date:       "yesterday",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateTransaction")
}

func TestHTTP_CreateTransaction_ServiceErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &service.ValidationError{Field: "amount", Message: "must be greater than zero"}, http.StatusBadRequest},
		{"wrong category", service.ErrInvalidCategory, http.StatusBadRequest},
		{"daily limit", service.ErrDailyLimitReached, http.StatusTooManyRequests},
		{"database", errors.New("database unavailable"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(mockTransactionService)
			mockSvc.On("CreateTransaction", mock.Anything, mock.Anything).Return(nil, tt.err)

			resp := newCreateTestAPI(t, mockSvc).Post("/api/transactions", CreateTransactionBody{
				Type:       "expense",
				Amount:     10,
				CategoryID: 3,
			})

			assert.Equal(t, tt.want, resp.Code)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHTTP_CreateTransaction_Unauthenticated(t *testing.T) {
	mockSvc := new(mockTransactionService)
	api := handlertest.NewAPI(t, nil)
	NewCreateTransactionHandler(mockSvc).Register(api)

	resp := api.Post("/api/transactions", CreateTransactionBody{Type: "expense", Amount: 10, CategoryID: 3})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateTransaction")
}
