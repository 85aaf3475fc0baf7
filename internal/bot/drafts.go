package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/ai"
	"github.com/carson-networks/finance-tracker/internal/format"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// Draft is a parsed transaction waiting for the user to confirm it.
type Draft struct {
	Type         service.TransactionType
	Amount       decimal.Decimal
	CategoryName string
	CategoryIcon string
	Description  string
	Date         time.Time
}

func (b *Bot) parseText(ctx context.Context, chatID int64, user *service.User, text string) error {
	if b.deps.Parser == nil || b.deps.AI == nil || !b.deps.AI.Available() {
		return b.reply(chatID, msgAIDisabled)
	}
	if !b.deps.AI.AllowAIRequest(user.ID) {
		return b.reply(chatID, msgRateLimited)
	}

	categories, err := b.deps.Categories.ListCategories(ctx, nil)
	if err != nil {
		_ = b.reply(chatID, msgError)
		return err
	}
	options := make([]ai.CategoryOption, len(categories))
	for i, c := range categories {
		options[i] = ai.CategoryOption{Name: c.Name, Icon: c.Icon, Type: string(c.Type)}
	}

	parsed, err := b.deps.Parser.Parse(ctx, text, options, b.opts.Clock.Today())
	if err != nil {
		_ = b.reply(chatID, msgError)
		return err
	}
	if len(parsed) == 0 {
		return b.reply(chatID, msgCantParse)
	}

	drafts := make([]Draft, len(parsed))
	for i, p := range parsed {
		drafts[i] = Draft{
			Type:         service.TransactionType(p.Type),
			Amount:       p.Amount,
			CategoryName: p.CategoryName,
			CategoryIcon: p.CategoryIcon,
			Description:  p.Description,
			Date:         p.Date,
		}
	}
	// Each confirmation owns its batch, so an older Save button never saves newer drafts.
	batchID := uuid.Must(uuid.NewV4()).String()
	b.opts.Drafts.Set(draftKey(user.ID, batchID), drafts)

	msg := tgbotapi.NewMessage(chatID, b.confirmationText(drafts))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(msgSave, callbackData(callbackSave, batchID)),
		tgbotapi.NewInlineKeyboardButtonData(msgCancel, callbackData(callbackCancel, batchID)),
	))
	_, err = b.api.Send(msg)
	return err
}

func (b *Bot) confirmationText(drafts []Draft) string {
	var sb strings.Builder
	if len(drafts) == 1 {
		sb.WriteString("I found this transaction:\n\n")
	} else {
		fmt.Fprintf(&sb, "I found %d transactions:\n\n", len(drafts))
	}
	for _, d := range drafts {
		emoji := "💸"
		if d.Type == service.TransactionTypeIncome {
			emoji = "💰"
		}
		fmt.Fprintf(&sb, "%s <b>%s</b> %s %s",
			emoji,
			format.SignedAmount(d.Amount, d.Type == service.TransactionTypeIncome, b.opts.CurrencySymbol),
			d.CategoryIcon,
			html.EscapeString(d.CategoryName))
		if d.Description != "" {
			fmt.Fprintf(&sb, " — %s", html.EscapeString(d.Description))
		}
		fmt.Fprintf(&sb, " (%s)\n", d.Date.Format("02.01.2006"))
	}
	sb.WriteString(msgConfirmFooter)
	return sb.String()
}

// saveDrafts stores every pending draft. It stops at the daily limit and reports how many were saved.
func (b *Bot) saveDrafts(ctx context.Context, cb *tgbotapi.CallbackQuery, user *service.User, batchID string) error {
	drafts, ok := b.opts.Drafts.Take(draftKey(user.ID, batchID))
	if !ok || len(drafts) == 0 {
		b.edit(cb, msgNothingToSave)
		return b.answer(cb.ID, msgNothingToSave)
	}

	saved, failed := 0, 0
	var limitHit bool
	for _, d := range drafts {
		category, err := b.deps.Categories.ResolveByName(ctx, d.CategoryName, d.Type)
		if err != nil {
			b.logger.WithError(err).WithField("category", d.CategoryName).Warn("Bot.saveDrafts.ResolveByName")
			failed++
			continue
		}
		date := d.Date
		_, err = b.deps.Transactions.CreateTransaction(ctx, service.NewTransaction{
			UserID:      user.ID,
			Type:        d.Type,
			Amount:      d.Amount,
			CategoryID:  &category.ID,
			Description: d.Description,
			Date:        &date,
		})
		if errors.Is(err, service.ErrDailyLimitReached) {
			limitHit = true
			break
		}
		if err != nil {
			b.logger.WithError(err).Warn("Bot.saveDrafts.CreateTransaction")
			failed++
			continue
		}
		saved++
	}

	text := fmt.Sprintf("✅ Saved %d of %d.", saved, len(drafts))
	if failed > 0 {
		text += fmt.Sprintf(" %d could not be saved.", failed)
	}
	if limitHit {
		text += "\n" + msgDailyLimit
	}
	b.edit(cb, text)
	return b.answer(cb.ID, "")
}
