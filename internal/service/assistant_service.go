package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/ai"
	"github.com/carson-networks/finance-tracker/internal/format"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/ratelimit"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

const MaxChatMessageLength = 4000

type AssistantOptions struct {
	// Model is nil when no AI backend is configured.
	Model          ai.Generator
	Limiter        *ratelimit.KeyedLimiter
	SystemPrompt   string
	HistoryTurns   int
	ContextLimit   int
	CurrencySymbol string
}

// AssistantService answers questions about a user's finances and keeps the chat history.
type AssistantService struct {
	storage  *storage.Storage
	operator actionProcessor
	clock    Clock
	opts     AssistantOptions
}

func NewAssistantService(store *storage.Storage, op actionProcessor, clock Clock, opts AssistantOptions) *AssistantService {
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = ai.DefaultAssistantPrompt
	}
	if opts.HistoryTurns <= 0 {
		opts.HistoryTurns = 10
	}
	if opts.ContextLimit <= 0 {
		opts.ContextLimit = MaxListLimit
	}
	return &AssistantService{storage: store, operator: op, clock: clock, opts: opts}
}

func (s *AssistantService) Available() bool {
	return s.opts.Model != nil
}

// AllowAIRequest spends one unit of the user's hourly AI budget.
func (s *AssistantService) AllowAIRequest(userID int64) bool {
	if s.opts.Limiter == nil {
		return true
	}
	return s.opts.Limiter.Allow(strconv.FormatInt(userID, 10))
}

// Chat sends message to the model. A new conversation drops the stored history
// and opens with a summary of the user's transactions.
func (s *AssistantService) Chat(ctx context.Context, userID int64, message string, newConversation bool) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", invalid("message", "must not be empty")
	}
	if utf8.RuneCountInString(message) > MaxChatMessageLength {
		return "", invalid("message", "must be at most %d characters", MaxChatMessageLength)
	}
	if !s.Available() {
		return "", ErrAssistantUnavailable
	}
	if !s.AllowAIRequest(userID) {
		return "", ErrRateLimited
	}

	prompt := message
	var history []ai.Turn
	if newConversation {
		if err := s.Reset(ctx, userID); err != nil {
			return "", err
		}
		summary, err := s.transactionContext(ctx, userID)
		if err != nil {
			return "", err
		}
		prompt = summary + "\n\n" + message
	} else {
		turns, err := s.storage.Conversations.ListRecent(ctx, userID, s.opts.HistoryTurns)
		if err != nil {
			return "", err
		}
		for _, turn := range turns {
			history = append(history,
				ai.Turn{Role: ai.RoleUser, Text: turn.UserMessage},
				ai.Turn{Role: ai.RoleModel, Text: turn.AssistantMessage},
			)
		}
	}

	stopTimer := logging.GetLogData(ctx).AddTiming("aiMs")
	reply, err := s.opts.Model.Generate(ctx, ai.GenerateRequest{
		System:      s.opts.SystemPrompt,
		History:     history,
		Prompt:      prompt,
		Temperature: 0.7,
	})
	stopTimer()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssistantUnavailable, err)
	}

	// The stored turn keeps the prompt actually sent so later turns retain the data summary.
	if err := s.operator.Process(ctx, &actions.SaveConversationTurn{
		UserID:           userID,
		UserMessage:      prompt,
		AssistantMessage: reply,
	}); err != nil {
		return "", err
	}

	return reply, nil
}

func (s *AssistantService) Reset(ctx context.Context, userID int64) error {
	return s.operator.Process(ctx, &actions.ResetConversation{UserID: userID})
}

func (s *AssistantService) transactionContext(ctx context.Context, userID int64) (string, error) {
	rows, err := s.storage.Transactions.List(ctx, &sqlconfig.TransactionFilter{
		UserID: userID,
		Limit:  s.opts.ContextLimit,
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Today is %s. ", s.clock.Today().Format(DateLayout))
	if len(rows) == 0 {
		b.WriteString("The user has no recorded transactions yet.")
		return b.String(), nil
	}

	income, expenses := decimal.Zero, decimal.Zero
	fmt.Fprintf(&b, "The user's %d most recent transactions (date | type | amount | category | description):\n", len(rows))
	for _, row := range rows {
		tx := transactionFromRow(row)
		if tx.Type == TransactionTypeIncome {
			income = income.Add(tx.Amount)
		} else {
			expenses = expenses.Add(tx.Amount)
		}
		category := tx.CategoryName
		if category == "" {
			category = "uncategorized"
		}
		fmt.Fprintf(&b, "%s | %s | %s | %s | %s\n",
			tx.TransactionDate.Format(DateLayout), tx.Type,
			format.Amount(tx.Amount, s.opts.CurrencySymbol), category, tx.Description)
	}
	fmt.Fprintf(&b, "Totals: income %s, expenses %s, balance %s.",
		format.Amount(income, s.opts.CurrencySymbol),
		format.Amount(expenses, s.opts.CurrencySymbol),
		format.Amount(income.Sub(expenses), s.opts.CurrencySymbol))

	return b.String(), nil
}
