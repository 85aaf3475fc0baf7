package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DatabaseURL      string
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string
	RunMigrations    bool

	TelegramBotToken  string
	TelegramWebAppURL string
	WebhookBaseURL    string
	WebhookSecret     string
	InitDataMaxAge    time.Duration
	AllowHeaderAuth   bool
	WebAppDir         string

	GeminiAPIKey   string
	GeminiModel    string
	AISystemPrompt string
	AITimeout      time.Duration

	// GeminiRequestsPerMinute paces all outbound model calls. Zero disables pacing.
	GeminiRequestsPerMinute int

	LogLevel       string
	Environment    string
	Timezone       string
	CurrencySymbol string

	MaxTransactionsPerDay int
	MaxAIRequestsPerHour  int
	RequestTimeout        time.Duration
	OperatorWorkers       int
}

func ProcessEnvironmentVariables() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		Port:                    "8080",
		PostgresAddress:         "localhost",
		PostgresPort:            "5433",
		PostgresDB:              "postgres",
		PostgresUsername:        "postgres",
		PostgresPassword:        "testpassword",
		RunMigrations:           true,
		InitDataMaxAge:          24 * time.Hour,
		WebAppDir:               "./webapp",
		GeminiModel:             "gemini-2.5-flash",
		AITimeout:               30 * time.Second,
		GeminiRequestsPerMinute: 60,
		LogLevel:                "info",
		Environment:             "production",
		Timezone:                "UTC",
		CurrencySymbol:          "₽",
		MaxTransactionsPerDay:   100,
		MaxAIRequestsPerHour:    50,
		RequestTimeout:          30 * time.Second,
		OperatorWorkers:         4,
	}

	var errs []error

	setString(&env.Port, "PORT")
	setString(&env.DatabaseURL, "DATABASE_URL")
	setString(&env.PostgresAddress, "POSTGRES_ADDRESS")
	setString(&env.PostgresPort, "POSTGRES_PORT")
	setString(&env.PostgresDB, "POSTGRES_DB")
	setString(&env.PostgresUsername, "POSTGRES_USERNAME")
	setString(&env.PostgresPassword, "POSTGRES_PASSWORD")
	errs = append(errs, setBool(&env.RunMigrations, "RUN_MIGRATIONS"))

	setString(&env.TelegramBotToken, "TELEGRAM_BOT_TOKEN")
	setString(&env.TelegramWebAppURL, "TELEGRAM_WEBAPP_URL")
	setString(&env.WebhookBaseURL, "RENDER_EXTERNAL_URL")
	setString(&env.WebhookBaseURL, "WEBHOOK_BASE_URL")
	setString(&env.WebhookSecret, "WEBHOOK_SECRET")
	errs = append(errs, setDuration(&env.InitDataMaxAge, "INIT_DATA_MAX_AGE"))
	errs = append(errs, setBool(&env.AllowHeaderAuth, "ALLOW_HEADER_AUTH"))
	setString(&env.WebAppDir, "WEBAPP_DIR")

	setString(&env.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&env.GeminiModel, "GEMINI_MODEL")
	setString(&env.AISystemPrompt, "AI_SYSTEM_PROMPT")
	errs = append(errs, setSeconds(&env.AITimeout, "AI_TIMEOUT"))
	errs = append(errs, setInt(&env.GeminiRequestsPerMinute, "GEMINI_REQUESTS_PER_MINUTE"))

	setString(&env.LogLevel, "LOG_LEVEL")
	setString(&env.Environment, "ENVIRONMENT")
	setString(&env.Timezone, "TIMEZONE")
	setString(&env.CurrencySymbol, "CURRENCY_SYMBOL")

	errs = append(errs, setInt(&env.MaxTransactionsPerDay, "MAX_TRANSACTIONS_PER_DAY"))
	errs = append(errs, setInt(&env.MaxAIRequestsPerHour, "MAX_AI_REQUESTS_PER_HOUR"))
	errs = append(errs, setSeconds(&env.RequestTimeout, "REQUEST_TIMEOUT"))
	errs = append(errs, setInt(&env.OperatorWorkers, "OPERATOR_WORKERS"))

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &env, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %q", c.Port))
	}
	if c.MaxTransactionsPerDay < 1 {
		errs = append(errs, errors.New("MAX_TRANSACTIONS_PER_DAY must be positive"))
	}
	if c.MaxAIRequestsPerHour < 1 {
		errs = append(errs, errors.New("MAX_AI_REQUESTS_PER_HOUR must be positive"))
	}
	if c.GeminiRequestsPerMinute < 0 {
		errs = append(errs, errors.New("GEMINI_REQUESTS_PER_MINUTE must not be negative"))
	}
	if c.OperatorWorkers < 1 {
		errs = append(errs, errors.New("OPERATOR_WORKERS must be positive"))
	}
	if c.RequestTimeout <= 0 || c.AITimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT and AI_TIMEOUT must be positive"))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}
	if c.WebhookBaseURL != "" {
		u, err := url.Parse(c.WebhookBaseURL)
		if err != nil || u.Scheme != "https" || u.Host == "" {
			errs = append(errs, fmt.Errorf("WEBHOOK_BASE_URL must be an absolute https URL, got %q", c.WebhookBaseURL))
		}
	}
	if strings.Contains(c.WebhookSecret, "/") {
		errs = append(errs, errors.New("WEBHOOK_SECRET must not contain '/'"))
	}

	return errors.Join(errs...)
}

// PostgresDSN prefers DATABASE_URL and otherwise assembles one from the POSTGRES_* settings.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

func (c *Config) BotEnabled() bool {
	return c.TelegramBotToken != ""
}

func (c *Config) AIEnabled() bool {
	return c.GeminiAPIKey != ""
}

func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func setString(field *string, key string) {
	if value := os.Getenv(key); len(value) != 0 {
		*field = value
	}
}

func setInt(field *int, key string) error {
	value := os.Getenv(key)
	if len(value) == 0 {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*field = parsed
	return nil
}

func setBool(field *bool, key string) error {
	value := os.Getenv(key)
	if len(value) == 0 {
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*field = parsed
	return nil
}

func setDuration(field *time.Duration, key string) error {
	value := os.Getenv(key)
	if len(value) == 0 {
		return nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*field = parsed
	return nil
}

// setSeconds accepts a bare number of seconds for compatibility with existing deployments.
func setSeconds(field *time.Duration, key string) error {
	value := os.Getenv(key)
	if len(value) == 0 {
		return nil
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		*field = time.Duration(seconds) * time.Second
		return nil
	}
	return setDuration(field, key)
}
