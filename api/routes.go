package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/auth"
	"github.com/carson-networks/finance-tracker/internal/bot"
	"github.com/carson-networks/finance-tracker/internal/config"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/assistant"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/category"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/stats"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/status"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/transaction"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/user"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/webapp"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger  *logrus.Logger
	Config  *config.Config
	Service *service.Service
	Storage *storage.Storage
	// Bot is nil when no Telegram token is configured.
	Bot *bot.Bot
}

// Handler builds the full route table: the huma API under /api, plain status routes, the webapp and the webhook.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	api := humago.New(mux, huma.DefaultConfig("Finance Tracker API", "1.0.0"))
	api.UseMiddleware(logging.Middleware(r.Logger))
	api.UseMiddleware(r.timeoutMiddleware)
	authenticator := auth.NewAuthenticator(r.Config.TelegramBotToken, r.Config.InitDataMaxAge, r.Config.AllowHeaderAuth)
	api.UseMiddleware(auth.Middleware(api, authenticator, r.Service.User, r.Logger))

	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(api)
	transaction.NewGetTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewCreateTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewUpdateTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewDeleteTransactionHandler(r.Service.Transaction).Register(api)
	category.NewListCategoriesHandler(r.Service.Category).Register(api)
	stats.NewHandler(r.Service.Stats).Register(api)
	user.NewGetUserHandler().Register(api)
	assistant.NewHandler(r.Service.Assistant).Register(api)

	statusHandler := status.NewHandler(r.Storage, r.Bot != nil, r.Config.WebAppDir)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))
	mux.HandleFunc("/health", logging.LoggingWrapper("Health", r.Logger, statusHandler.Health))

	webapp.Register(mux, r.Config.WebAppDir)

	if r.Bot != nil {
		mux.HandleFunc(bot.WebhookPath(r.Config.WebhookSecret),
			logging.LoggingWrapper("Webhook", r.Logger, r.Bot.WebhookHandler(r.Config.RequestTimeout)))
	}

	return mux
}

func (r *Rest) timeoutMiddleware(ctx huma.Context, next func(huma.Context)) {
	timeoutCtx, cancel := context.WithTimeout(ctx.Context(), r.Config.RequestTimeout)
	defer cancel()
	next(huma.WithContext(ctx, timeoutCtx))
}

// Serve blocks until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Config.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      r.Config.RequestTimeout + r.Config.AITimeout,
		IdleTimeout:       time.Duration(60) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Config.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
