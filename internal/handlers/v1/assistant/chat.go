package assistant

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httperr"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

type ChatBody struct {
	Message         string `json:"message" doc:"Question for the assistant"`
	NewConversation bool   `json:"new_conversation,omitempty" doc:"Drop earlier history and start over with a fresh data summary"`
}

type ChatInput struct {
	Body ChatBody
}

type ChatOutput struct {
	Body struct {
		Response string `json:"response"`
		Success  bool   `json:"success"`
	}
}

type ResetOutput struct {
	Body struct {
		Message string `json:"message"`
		Success bool   `json:"success"`
	}
}

type assistant interface {
	Chat(ctx context.Context, userID int64, message string, newConversation bool) (string, error)
	Reset(ctx context.Context, userID int64) error
}

// Handler serves POST /api/ai/chat and POST /api/ai/reset.
type Handler struct {
	Assistant assistant
}

func NewHandler(svc assistant) *Handler {
	return &Handler{Assistant: svc}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "ai-chat",
		Method:      http.MethodPost,
		Path:        "/api/ai/chat",
		Summary:     "Ask the assistant",
		Description: "Answers a question about the caller's finances.",
		Tags:        []string{"Assistant"},
	}, h.chat)
	huma.Register(api, huma.Operation{
		OperationID: "ai-reset",
		Method:      http.MethodPost,
		Path:        "/api/ai/reset",
		Summary:     "Reset the conversation",
		Tags:        []string{"Assistant"},
	}, h.reset)
}

func (h *Handler) chat(ctx context.Context, input *ChatInput) (*ChatOutput, error) {
	user, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	logging.GetLogData(ctx).AddData("newConversation", input.Body.NewConversation)
	reply, err := h.Assistant.Chat(ctx, user.ID, input.Body.Message, input.Body.NewConversation)
	if err != nil {
		return nil, httperr.FromService(err, "assistant failed to answer")
	}

	out := &ChatOutput{}
	out.Body.Response = reply
	out.Body.Success = true
	return out, nil
}

func (h *Handler) reset(ctx context.Context, _ *struct{}) (*ResetOutput, error) {
	user, err := auth.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.Assistant.Reset(ctx, user.ID); err != nil {
		return nil, httperr.FromService(err, "failed to reset conversation")
	}

	out := &ResetOutput{}
	out.Body.Message = "Conversation reset"
	out.Body.Success = true
	return out, nil
}
