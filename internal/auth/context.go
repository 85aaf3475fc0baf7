package auth

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/service"
)

type userKey struct{}

func WithUser(ctx context.Context, user *service.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

func UserFrom(ctx context.Context) (*service.User, bool) {
	user, ok := ctx.Value(userKey{}).(*service.User)
	return user, ok && user != nil
}

// RequireUser returns the authenticated user or a 401 huma error.
func RequireUser(ctx context.Context) (*service.User, error) {
	user, ok := UserFrom(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("unauthorized")
	}
	return user, nil
}
