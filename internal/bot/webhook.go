package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/carson-networks/finance-tracker/internal/logging"
)

const webhookBasePath = "/webhook"

// WebhookPath is /webhook, or /webhook/<secret> when a secret is configured.
func WebhookPath(secret string) string {
	if secret == "" {
		return webhookBasePath
	}
	return webhookBasePath + "/" + secret
}

// SetWebhook points Telegram at baseURL + WebhookPath(secret).
func (b *Bot) SetWebhook(baseURL, secret string) error {
	wh, err := tgbotapi.NewWebhook(strings.TrimRight(baseURL, "/") + WebhookPath(secret))
	if err != nil {
		return fmt.Errorf("webhook url: %w", err)
	}
	if _, err := b.api.Request(wh); err != nil {
		return fmt.Errorf("setWebhook: %w", err)
	}
	b.logger.WithField("path", WebhookPath(secret)).Info("Bot.SetWebhook.Complete")
	return nil
}

func (b *Bot) DeleteWebhook() error {
	_, err := b.api.Request(tgbotapi.DeleteWebhookConfig{})
	return err
}

// WebhookHandler accepts Telegram updates. It answers 200 even when processing fails so Telegram does not redeliver.
func (b *Bot) WebhookHandler(timeout time.Duration) func(http.ResponseWriter, *http.Request, *logging.LogData) error {
	return func(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return errors.New("webhook: method not POST")
		}

		var update tgbotapi.Update
		if err := json.NewDecoder(req.Body).Decode(&update); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return fmt.Errorf("webhook: decode update: %w", err)
		}
		logData.AddData("updateID", update.UpdateID)

		ctx, cancel := context.WithTimeout(req.Context(), timeout)
		defer cancel()

		stopTimer := logData.AddTiming("updateMs")
		err := b.HandleUpdate(ctx, update)
		stopTimer()

		w.WriteHeader(http.StatusOK)
		return err
	}
}
