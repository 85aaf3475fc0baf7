// Package bot runs the Telegram side of the tracker in webhook mode.
package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/ai"
	"github.com/carson-networks/finance-tracker/internal/cache"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// DraftTTL is how long an unconfirmed parse result can still be saved.
const DraftTTL = 15 * time.Minute

// sender is the part of *tgbotapi.BotAPI the bot uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	MakeRequest(endpoint string, params tgbotapi.Params) (*tgbotapi.APIResponse, error)
}

type userEnsurer interface {
	EnsureUser(ctx context.Context, profile service.UserProfile) (*service.User, error)
}

type categoryService interface {
	ListCategories(ctx context.Context, categoryType *service.TransactionType) ([]service.Category, error)
	ResolveByName(ctx context.Context, name string, categoryType service.TransactionType) (*service.Category, error)
}

type transactionCreator interface {
	CreateTransaction(ctx context.Context, input service.NewTransaction) (*service.Transaction, error)
}

type monthlyStats interface {
	MonthlyStats(ctx context.Context, userID int64, year int, month int) (*service.MonthlyStats, error)
}

type aiGate interface {
	Available() bool
	AllowAIRequest(userID int64) bool
}

type textParser interface {
	Parse(ctx context.Context, text string, categories []ai.CategoryOption, today time.Time) ([]ai.ParsedTransaction, error)
}

// Deps are the services the bot talks to. Parser is nil when no AI backend is configured.
type Deps struct {
	Users        userEnsurer
	Categories   categoryService
	Transactions transactionCreator
	Stats        monthlyStats
	AI           aiGate
	Parser       textParser
}

type Options struct {
	WebAppURL      string
	CurrencySymbol string
	Clock          service.Clock
	// Drafts defaults to an in-memory LRU with DraftTTL.
	Drafts cache.Cache[[]Draft]
}

type Bot struct {
	api    sender
	deps   Deps
	opts   Options
	logger *logrus.Logger
}

func New(api sender, deps Deps, opts Options, logger *logrus.Logger) *Bot {
	if opts.Drafts == nil {
		opts.Drafts = cache.NewLRUCache[[]Draft](1000, DraftTTL)
	}
	if opts.Clock.Now == nil {
		opts.Clock = service.NewClock(time.UTC)
	}
	return &Bot{api: api, deps: deps, opts: opts, logger: logger}
}

// HandleUpdate dispatches one Telegram update.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	switch {
	case update.CallbackQuery != nil:
		return b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		return b.handleMessage(ctx, update.Message)
	default:
		return nil
	}
}

func (b *Bot) ensureUser(ctx context.Context, from *tgbotapi.User) (*service.User, error) {
	if from == nil {
		return nil, errors.New("update has no sender")
	}
	return b.deps.Users.EnsureUser(ctx, service.UserProfile{
		TelegramUserID: from.ID,
		Username:       from.UserName,
		FirstName:      from.FirstName,
		LastName:       from.LastName,
	})
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.Chat == nil {
		return nil
	}
	user, err := b.ensureUser(ctx, msg.From)
	if err != nil {
		_ = b.reply(msg.Chat.ID, msgError)
		return err
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			return b.start(msg.Chat.ID, user)
		case "help":
			return b.reply(msg.Chat.ID, msgHelp)
		case "categories":
			return b.categories(ctx, msg.Chat.ID)
		case "stats":
			return b.stats(ctx, msg.Chat.ID, user)
		default:
			return b.reply(msg.Chat.ID, msgUnknownCommand)
		}
	}

	if msg.Text == "" {
		return b.reply(msg.Chat.ID, msgTextOnly)
	}
	return b.parseText(ctx, msg.Chat.ID, user, msg.Text)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	user, err := b.ensureUser(ctx, cb.From)
	if err != nil {
		_ = b.answer(cb.ID, msgError)
		return err
	}

	action, batchID := parseCallbackData(cb.Data)
	switch action {
	case callbackSave:
		return b.saveDrafts(ctx, cb, user, batchID)
	case callbackCancel:
		b.opts.Drafts.Delete(draftKey(user.ID, batchID))
		b.edit(cb, msgCancelled)
		return b.answer(cb.ID, "")
	default:
		return b.answer(cb.ID, "")
	}
}

// draftKey scopes a batch to its owner so a forwarded button cannot save someone else's drafts.
func draftKey(userID int64, batchID string) string {
	return strconv.FormatInt(userID, 10) + ":" + batchID
}

func callbackData(action, batchID string) string {
	return action + ":" + batchID
}

func parseCallbackData(data string) (action, batchID string) {
	action, batchID, _ = strings.Cut(data, ":")
	return action, batchID
}

func (b *Bot) reply(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) answer(callbackID, text string) error {
	_, err := b.api.Request(tgbotapi.NewCallback(callbackID, text))
	return err
}

// edit replaces the text of the message a callback came from. Failures are only logged.
func (b *Bot) edit(cb *tgbotapi.CallbackQuery, text string) {
	if cb.Message == nil || cb.Message.Chat == nil {
		return
	}
	edit := tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(edit); err != nil {
		b.logger.WithError(err).Warn("Bot.edit")
	}
}
