package auth

import (
	"errors"
	"fmt"
	"time"

	initdata "github.com/telegram-mini-apps/init-data-golang"
)

var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidSignature   = errors.New("invalid init data signature")
	ErrExpired            = errors.New("init data expired")
	ErrMalformed          = errors.New("malformed init data")
)

// TelegramUser is the user object embedded in Mini App init data.
type TelegramUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	LanguageCode string `json:"language_code"`
}

type InitData struct {
	User     TelegramUser
	AuthDate time.Time
	QueryID  string
}

// ValidateInitData checks the Mini App init data signature against botToken.
// A zero maxAge disables the auth_date check.
func ValidateInitData(raw, botToken string, maxAge time.Duration) (*InitData, error) {
	if raw == "" {
		return nil, ErrMissingCredentials
	}
	if err := initdata.Validate(raw, botToken, maxAge); err != nil {
		return nil, validationError(err)
	}

	parsed, err := initdata.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if parsed.User.ID <= 0 {
		return nil, fmt.Errorf("%w: user id", ErrMalformed)
	}

	return &InitData{
		User: TelegramUser{
			ID:           parsed.User.ID,
			FirstName:    parsed.User.FirstName,
			LastName:     parsed.User.LastName,
			Username:     parsed.User.Username,
			LanguageCode: parsed.User.LanguageCode,
		},
		AuthDate: parsed.AuthDate(),
		QueryID:  parsed.QueryID,
	}, nil
}

func validationError(err error) error {
	switch {
	case errors.Is(err, initdata.ErrSignInvalid):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	case errors.Is(err, initdata.ErrExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
