package bot

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/carson-networks/finance-tracker/internal/format"
	"github.com/carson-networks/finance-tracker/internal/service"
)

type webAppInfo struct {
	URL string `json:"url"`
}

type keyboardButton struct {
	Text   string      `json:"text"`
	WebApp *webAppInfo `json:"web_app,omitempty"`
}

type replyKeyboard struct {
	Keyboard       [][]keyboardButton `json:"keyboard"`
	ResizeKeyboard bool               `json:"resize_keyboard"`
	IsPersistent   bool               `json:"is_persistent"`
}

func (b *Bot) start(chatID int64, user *service.User) error {
	if err := b.reply(chatID, fmt.Sprintf(msgWelcome, html.EscapeString(user.FullName()))); err != nil {
		return err
	}
	if b.opts.WebAppURL == "" {
		return nil
	}

	// The pinned library version predates web_app buttons, so the keyboard is sent as raw params.
	params := tgbotapi.Params{}
	params.AddNonZero64("chat_id", chatID)
	params["text"] = msgOpenAppPrompt
	if err := params.AddInterface("reply_markup", replyKeyboard{
		Keyboard:       [][]keyboardButton{{{Text: msgOpenApp, WebApp: &webAppInfo{URL: b.opts.WebAppURL}}}},
		ResizeKeyboard: true,
		IsPersistent:   true,
	}); err != nil {
		return err
	}
	_, err := b.api.MakeRequest("sendMessage", params)
	return err
}

func (b *Bot) categories(ctx context.Context, chatID int64) error {
	expense, income := service.TransactionTypeExpense, service.TransactionTypeIncome

	expenses, err := b.deps.Categories.ListCategories(ctx, &expense)
	if err != nil {
		_ = b.reply(chatID, msgError)
		return err
	}
	incomes, err := b.deps.Categories.ListCategories(ctx, &income)
	if err != nil {
		_ = b.reply(chatID, msgError)
		return err
	}

	var sb strings.Builder
	sb.WriteString("<b>📁 Expense categories:</b>\n")
	writeCategories(&sb, expenses)
	sb.WriteString("\n<b>💰 Income categories:</b>\n")
	writeCategories(&sb, incomes)
	return b.reply(chatID, sb.String())
}

func writeCategories(sb *strings.Builder, categories []service.Category) {
	for _, c := range categories {
		fmt.Fprintf(sb, "%s %s\n", c.Icon, html.EscapeString(c.Name))
	}
}

func (b *Bot) stats(ctx context.Context, chatID int64, user *service.User) error {
	stats, err := b.deps.Stats.MonthlyStats(ctx, user.ID, 0, 0)
	if err != nil {
		_ = b.reply(chatID, msgError)
		return err
	}
	if stats.Count == 0 {
		return b.reply(chatID, msgNoStats)
	}

	symbol := b.opts.CurrencySymbol
	text := fmt.Sprintf("📊 <b>%s %d</b>\n\n"+
		"💰 Income: %s\n"+
		"💸 Expenses: %s\n"+
		"💼 Balance: %s\n\n"+
		"Transactions: %d",
		stats.Month, stats.Year,
		format.Amount(stats.Income, symbol),
		format.Amount(stats.Expenses, symbol),
		format.Amount(stats.Balance, symbol),
		stats.Count)
	return b.reply(chatID, text)
}
