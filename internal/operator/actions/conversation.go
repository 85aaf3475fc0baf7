package actions

import (
	"context"

	"github.com/carson-networks/finance-tracker/internal/storage"
)

type SaveConversationTurn struct {
	UserID           int64
	UserMessage      string
	AssistantMessage string
}

func (s *SaveConversationTurn) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Conversations.Insert(ctx, s.UserID, s.UserMessage, s.AssistantMessage)
}

type ResetConversation struct {
	UserID int64

	Deleted int64
}

func (r *ResetConversation) Perform(ctx context.Context, writer *storage.Writer) error {
	deleted, err := writer.Conversations.DeleteForUser(ctx, r.UserID)
	if err != nil {
		return err
	}
	r.Deleted = deleted
	return nil
}
