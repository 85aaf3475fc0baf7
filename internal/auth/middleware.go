package auth

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

const (
	HeaderInitData = "X-Telegram-Init-Data"
	HeaderUserID   = "X-Telegram-User-Id"
	schemeTMA      = "tma "
)

type userEnsurer interface {
	EnsureUser(ctx context.Context, profile service.UserProfile) (*service.User, error)
}

// Authenticator turns request headers into a Telegram identity.
type Authenticator struct {
	BotToken string
	MaxAge   time.Duration
	// AllowHeaderAuth trusts a bare X-Telegram-User-Id header. Development only.
	AllowHeaderAuth bool
}

func NewAuthenticator(botToken string, maxAge time.Duration, allowHeaderAuth bool) *Authenticator {
	return &Authenticator{BotToken: botToken, MaxAge: maxAge, AllowHeaderAuth: allowHeaderAuth}
}

// Identify prefers signed init data and falls back to the user id header when allowed.
func (a *Authenticator) Identify(header func(string) string) (service.UserProfile, error) {
	raw := header(HeaderInitData)
	if authz := header("Authorization"); raw == "" && len(authz) > len(schemeTMA) && strings.EqualFold(authz[:len(schemeTMA)], schemeTMA) {
		raw = authz[len(schemeTMA):]
	}

	if raw != "" {
		if a.BotToken == "" {
			return service.UserProfile{}, ErrInvalidSignature
		}
		data, err := ValidateInitData(raw, a.BotToken, a.MaxAge)
		if err != nil {
			return service.UserProfile{}, err
		}
		return service.UserProfile{
			TelegramUserID: data.User.ID,
			Username:       data.User.Username,
			FirstName:      data.User.FirstName,
			LastName:       data.User.LastName,
		}, nil
	}

	if a.AllowHeaderAuth {
		if id, err := strconv.ParseInt(header(HeaderUserID), 10, 64); err == nil && id > 0 {
			return service.UserProfile{TelegramUserID: id}, nil
		}
	}

	return service.UserProfile{}, ErrMissingCredentials
}

// Middleware authenticates every /api/ operation and stores the user in the request context.
func Middleware(api huma.API, a *Authenticator, users userEnsurer, logger *logrus.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		op := ctx.Operation()
		if op == nil || !strings.HasPrefix(op.Path, "/api/") {
			next(ctx)
			return
		}

		profile, err := a.Identify(ctx.Header)
		if err != nil {
			logger.WithError(err).WithField("path", op.Path).Info("Auth.Middleware.Rejected")
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "unauthorized")
			return
		}

		user, err := users.EnsureUser(ctx.Context(), profile)
		if err != nil {
			if errors.Is(err, service.ErrInvalidInput) {
				_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "unauthorized")
				return
			}
			logger.WithError(err).Error("Auth.Middleware.EnsureUser")
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "failed to resolve user")
			return
		}

		logging.GetLogData(ctx.Context()).AddData("userID", user.ID)
		next(huma.WithContext(ctx, WithUser(ctx.Context(), user)))
	}
}
