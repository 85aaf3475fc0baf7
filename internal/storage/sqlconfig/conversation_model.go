package sqlconfig

import (
	"context"
	"time"
)

// ConversationTurn is one user message and the assistant's reply.
type ConversationTurn struct {
	ID               int64     `db:"id"`
	UserID           int64     `db:"user_id"`
	UserMessage      string    `db:"user_message"`
	AssistantMessage string    `db:"assistant_message"`
	CreatedAt        time.Time `db:"created_at"`
}

type IConversationTable interface {
	Insert(ctx context.Context, userID int64, userMessage, assistantMessage string) error
	// ListRecent returns at most limit turns, oldest first.
	ListRecent(ctx context.Context, userID int64, limit int) ([]*ConversationTurn, error)
	DeleteForUser(ctx context.Context, userID int64) (int64, error)
}
