package transaction

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/handlertest"
	"github.com/carson-networks/finance-tracker/internal/service"
)

func TestHTTP_GetTransaction(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("GetTransaction", mock.Anything, handlertest.User.ID, int64(9)).Return(sampleTransaction(9), nil)
	mockSvc.On("GetTransaction", mock.Anything, handlertest.User.ID, int64(10)).Return(nil, service.ErrNotFound)

	api := handlertest.NewAPI(t, handlertest.User)
	NewGetTransactionHandler(mockSvc).Register(api)

	resp := api.Get("/api/transactions/9")
	assert.Equal(t, http.StatusOK, resp.Code)
	var body Transaction
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "expense", body.Type)

	resp = api.Get("/api/transactions/10")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_UpdateTransaction_Partial(t *testing.T) {
	updated := sampleTransaction(9)
	updated.Amount = decimal.NewFromInt(20)

	mockSvc := new(mockTransactionService)
	mockSvc.On("UpdateTransaction", mock.Anything, handlertest.User.ID, int64(9), mock.MatchedBy(func(c service.TransactionChanges) bool {
		return c.Amount != nil && c.Amount.Equal(decimal.NewFromInt(20)) &&
			c.CategoryID == nil && c.Description == nil &&
			c.Date != nil && c.Date.Equal(time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC))
	})).Return(updated, nil)

	api := handlertest.NewAPI(t, handlertest.User)
	NewUpdateTransactionHandler(mockSvc).Register(api)

	resp := api.Put("/api/transactions/9", map[string]any{"amount": 20, "date": "2025-05-30"})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body MessageBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 20.0, body.Amount)
	assert.Equal(t, "Transaction updated successfully", body.Message)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_UpdateTransaction_Errors(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("UpdateTransaction", mock.Anything, handlertest.User.ID, int64(5), mock.Anything).Return(nil, service.ErrNotFound)

	api := handlertest.NewAPI(t, handlertest.User)
	NewUpdateTransactionHandler(mockSvc).Register(api)

	resp := api.Put("/api/transactions/5", map[string]any{"description": "x"})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = api.Put("/api/transactions/5", map[string]any{"date": "31/12/2025"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNumberOfCalls(t, "UpdateTransaction", 1)
}

func TestHTTP_DeleteTransaction(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("DeleteTransaction", mock.Anything, handlertest.User.ID, int64(9)).Return(nil)
	mockSvc.On("DeleteTransaction", mock.Anything, handlertest.User.ID, int64(10)).Return(service.ErrNotFound)

	api := handlertest.NewAPI(t, handlertest.User)
	NewDeleteTransactionHandler(mockSvc).Register(api)

	resp := api.Delete("/api/transactions/9")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Transaction deleted successfully")

	resp = api.Delete("/api/transactions/10")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
