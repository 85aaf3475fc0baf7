package httperr

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/service"
)

// FromService maps a service error onto a huma error. message describes unexpected failures.
func FromService(err error, message string) error {
	var validation *service.ValidationError
	switch {
	case errors.As(err, &validation):
		return huma.NewError(http.StatusBadRequest, validation.Error())
	case errors.Is(err, service.ErrInvalidInput):
		return huma.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCategory):
		return huma.NewError(http.StatusBadRequest, "category does not exist or does not match the transaction type")
	case errors.Is(err, service.ErrNotFound):
		return huma.NewError(http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrDailyLimitReached):
		return huma.NewError(http.StatusTooManyRequests, "daily transaction limit reached")
	case errors.Is(err, service.ErrRateLimited):
		return huma.NewError(http.StatusTooManyRequests, "too many requests, try again later")
	case errors.Is(err, service.ErrAssistantUnavailable):
		return huma.NewError(http.StatusServiceUnavailable, "assistant is unavailable")
	default:
		return huma.NewError(http.StatusInternalServerError, message, err)
	}
}
