package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

type User struct {
	ID             int64
	TelegramUserID int64
	Username       string
	FirstName      string
	LastName       string
	CreatedAt      time.Time
}

// UserProfile is the identity Telegram reports for a user.
type UserProfile struct {
	TelegramUserID int64
	Username       string
	FirstName      string
	LastName       string
}

// FullName prefers first and last name, then username, then a placeholder.
func (u *User) FullName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name != "" {
		return name
	}
	if u.Username != "" {
		return u.Username
	}
	return fmt.Sprintf("User %d", u.TelegramUserID)
}

func (u *User) matches(p UserProfile) bool {
	if p.Username == "" && p.FirstName == "" && p.LastName == "" {
		return true
	}
	return u.Username == p.Username && u.FirstName == p.FirstName && u.LastName == p.LastName
}

func userFromRow(row *sqlconfig.User) *User {
	return &User{
		ID:             row.ID,
		TelegramUserID: row.TelegramUserID,
		Username:       row.Username,
		FirstName:      row.FirstName,
		LastName:       row.LastName,
		CreatedAt:      row.CreatedAt,
	}
}
