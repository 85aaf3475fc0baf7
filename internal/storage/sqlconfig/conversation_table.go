package sqlconfig

import (
	"context"
	"slices"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

var _ IConversationTable = (*ConversationsTable)(nil)

type ConversationsTable struct {
	exec bob.Executor
}

func NewConversationsTable(exec bob.Executor) *ConversationsTable {
	return &ConversationsTable{exec: exec}
}

func (t *ConversationsTable) Insert(ctx context.Context, userID int64, userMessage, assistantMessage string) error {
	q := psql.Insert(
		im.Into("ai_conversations", "user_id", "user_message", "assistant_message"),
		im.Values(psql.Arg(userID), psql.Arg(userMessage), psql.Arg(assistantMessage)),
	)
	_, err := bob.Exec(ctx, t.exec, q)
	return err
}

func (t *ConversationsTable) ListRecent(ctx context.Context, userID int64, limit int) ([]*ConversationTurn, error) {
	q := psql.Select(
		sm.Columns("id", "user_id", "user_message", "assistant_message", "created_at"),
		sm.From("ai_conversations"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
		sm.Limit(limit),
	)
	turns, err := allRows[ConversationTurn](ctx, t.exec, q)
	if err != nil {
		return nil, err
	}
	slices.Reverse(turns)
	return turns, nil
}

func (t *ConversationsTable) DeleteForUser(ctx context.Context, userID int64) (int64, error) {
	q := psql.Delete(
		dm.From("ai_conversations"),
		dm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
