package user

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/auth"
)

// User is the API response model for the calling user.
type User struct {
	ID             int64  `json:"id"`
	TelegramUserID int64  `json:"telegram_user_id"`
	Username       string `json:"username"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	FullName       string `json:"full_name"`
	CreatedAt      string `json:"created_at" doc:"RFC3339 registration time"`
}

type GetUserOutput struct {
	Body User
}

// GetUserHandler handles GET /api/user. The user is already resolved by the auth middleware.
type GetUserHandler struct{}

func NewGetUserHandler() *GetUserHandler {
	return &GetUserHandler{}
}

func (h *GetUserHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-user",
		Method:      http.MethodGet,
		Path:        "/api/user",
		Summary:     "Current user",
		Tags:        []string{"User"},
	}, h.handle)
}

func (h *GetUserHandler) handle(ctx context.Context, _ *struct{}) (*GetUserOutput, error) {
	u, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	return &GetUserOutput{Body: User{
		ID:             u.ID,
		TelegramUserID: u.TelegramUserID,
		Username:       u.Username,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		FullName:       u.FullName(),
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
	}}, nil
}
