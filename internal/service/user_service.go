package service

import (
	"context"
	"strconv"
	"time"

	"github.com/carson-networks/finance-tracker/internal/cache"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

// UserService resolves Telegram identities to stored users.
type UserService struct {
	storage  *storage.Storage
	operator actionProcessor
	cache    cache.Cache[*User]
}

// NewUserService uses a small in-memory cache when userCache is nil.
func NewUserService(store *storage.Storage, op actionProcessor, userCache cache.Cache[*User]) *UserService {
	if userCache == nil {
		userCache = cache.NewLRUCache[*User](1000, 10*time.Minute)
	}
	return &UserService{storage: store, operator: op, cache: userCache}
}

// EnsureUser returns the user for profile, creating it on first contact.
func (s *UserService) EnsureUser(ctx context.Context, profile UserProfile) (*User, error) {
	if profile.TelegramUserID <= 0 {
		return nil, invalid("telegram_user_id", "must be positive")
	}

	key := strconv.FormatInt(profile.TelegramUserID, 10)
	if cached, ok := s.cache.Get(key); ok && cached.matches(profile) {
		return cached, nil
	}

	action := &actions.EnsureUser{Profile: sqlconfig.UserProfile{
		TelegramUserID: profile.TelegramUserID,
		Username:       profile.Username,
		FirstName:      profile.FirstName,
		LastName:       profile.LastName,
	}}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	user := userFromRow(action.User)
	s.cache.Set(key, user)
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*User, error) {
	row, err := s.storage.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return userFromRow(row), nil
}
