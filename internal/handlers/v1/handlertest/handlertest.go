// Package handlertest builds humatest APIs with an authenticated user already in the request context.
package handlertest

import (
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"

	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// User is the caller every handlertest API authenticates as.
var User = &service.User{
	ID:             1,
	TelegramUserID: 4242,
	Username:       "ann",
	FirstName:      "Ann",
	LastName:       "Lee",
	CreatedAt:      time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
}

// NewAPI returns a test API. A nil user leaves requests unauthenticated.
func NewAPI(t *testing.T, user *service.User) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	if user != nil {
		api.UseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
			next(huma.WithContext(ctx, auth.WithUser(ctx.Context(), user)))
		})
	}
	return api
}
