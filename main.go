package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/finance-tracker/api"
	"github.com/carson-networks/finance-tracker/internal/ai"
	"github.com/carson-networks/finance-tracker/internal/bot"
	"github.com/carson-networks/finance-tracker/internal/cache"
	"github.com/carson-networks/finance-tracker/internal/config"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/operator"
	"github.com/carson-networks/finance-tracker/internal/ratelimit"
	"github.com/carson-networks/finance-tracker/internal/service"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	if err := envConfig.Validate(); err != nil {
		logger.WithError(err).Fatal("config.Validate")
		return
	}
	logger.WithField("environment", envConfig.Environment).Info("finance-tracker starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if envConfig.RunMigrations {
		migrate(envConfig, logger)
	}

	dbStorage, err := storage.NewStorage(ctx, envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	op := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers, logger)
	op.Start()
	defer op.Stop()

	userCache := cache.NewLRUCache[*service.User](1000, 10*time.Minute)
	drafts := cache.NewLRUCache[[]bot.Draft](1000, bot.DraftTTL)
	aiLimiter := ratelimit.NewKeyedLimiter(envConfig.MaxAIRequestsPerHour, time.Hour)

	cacheManager := cache.NewManager(logger)
	cacheManager.Register(userCache)
	cacheManager.Register(drafts)
	cacheManager.Register(aiLimiter)
	cacheManager.StartCleanup(5 * time.Minute)
	defer cacheManager.Stop()

	var model ai.Generator
	if envConfig.AIEnabled() {
		client, err := ai.NewClient(ctx, envConfig.GeminiAPIKey, envConfig.GeminiModel, envConfig.AITimeout, envConfig.GeminiRequestsPerMinute)
		if err != nil {
			logger.WithError(err).Warn("ai.NewClient: assistant disabled")
		} else {
			model = client
		}
	} else {
		logger.Info("GEMINI_API_KEY not set: assistant disabled")
	}

	clock := service.NewClock(envConfig.Location())
	svc := service.NewService(dbStorage, op, service.Options{
		Clock:                 clock,
		MaxTransactionsPerDay: envConfig.MaxTransactionsPerDay,
		UserCache:             userCache,
		Assistant: service.AssistantOptions{
			Model:          model,
			Limiter:        aiLimiter,
			SystemPrompt:   envConfig.AISystemPrompt,
			CurrencySymbol: envConfig.CurrencySymbol,
		},
	})

	telegramBot := newBot(envConfig, svc, model, clock, drafts, logger)

	httpRest := api.Rest{
		Logger:  logger,
		Config:  envConfig,
		Service: svc,
		Storage: dbStorage,
		Bot:     telegramBot,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpRest.Serve(gctx)
	})
	if telegramBot != nil && envConfig.WebhookBaseURL != "" {
		g.Go(func() error {
			if err := telegramBot.SetWebhook(envConfig.WebhookBaseURL, envConfig.WebhookSecret); err != nil {
				logger.WithError(err).Error("Bot.SetWebhook")
			} else {
				logger.WithField("path", bot.WebhookPath(envConfig.WebhookSecret)).Info("Bot.SetWebhook.registered")
			}

			<-gctx.Done()
			if err := telegramBot.DeleteWebhook(); err != nil {
				logger.WithError(err).Warn("Bot.DeleteWebhook")
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("finance-tracker stopped with error")
		return
	}
	logger.Info("finance-tracker stopped")
}

func migrate(envConfig *config.Config, logger *logrus.Logger) {
	db, err := sql.Open("postgres", envConfig.PostgresDSN())
	if err != nil {
		logger.WithError(err).Fatal("sql.Open")
		return
	}

	result, err := storage.RunMigrations(db)
	if err != nil {
		logger.WithError(err).Fatal("storage.RunMigrations")
		return
	}

	logger.WithFields(logrus.Fields{
		"preMigrationVersion":  result.PreviousVersion,
		"postMigrationVersion": result.CurrentVersion,
	}).Info("Migration status")
}

// newBot returns nil when no token is configured or Telegram rejects it.
func newBot(
	envConfig *config.Config,
	svc *service.Service,
	model ai.Generator,
	clock service.Clock,
	drafts cache.Cache[[]bot.Draft],
	logger *logrus.Logger,
) *bot.Bot {
	if !envConfig.BotEnabled() {
		logger.Info("TELEGRAM_BOT_TOKEN not set: bot disabled")
		return nil
	}

	botAPI, err := tgbotapi.NewBotAPI(envConfig.TelegramBotToken)
	if err != nil {
		logger.WithError(err).Error("tgbotapi.NewBotAPI: bot disabled")
		return nil
	}
	logger.WithField("username", botAPI.Self.UserName).Info("Bot authorized")

	deps := bot.Deps{
		Users:        svc.User,
		Categories:   svc.Category,
		Transactions: svc.Transaction,
		Stats:        svc.Stats,
		AI:           svc.Assistant,
	}
	if model != nil {
		deps.Parser = ai.NewTextParser(model)
	}

	return bot.New(botAPI, deps, bot.Options{
		WebAppURL:      envConfig.TelegramWebAppURL,
		CurrencySymbol: envConfig.CurrencySymbol,
		Clock:          clock,
		Drafts:         drafts,
	}, logger)
}
