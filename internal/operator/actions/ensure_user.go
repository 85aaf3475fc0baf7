package actions

import (
	"context"

	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

// EnsureUser returns the user for a Telegram id, creating it or refreshing a changed profile.
type EnsureUser struct {
	Profile sqlconfig.UserProfile

	User    *sqlconfig.User
	Created bool
}

func (e *EnsureUser) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Users.FindByTelegramID(ctx, e.Profile.TelegramUserID)
	if err != nil {
		return err
	}

	if existing == nil {
		user, err := writer.Users.Insert(ctx, &e.Profile)
		if err != nil {
			return err
		}
		e.User = user
		e.Created = true
		return nil
	}

	if profileChanged(existing, &e.Profile) {
		user, err := writer.Users.UpdateProfile(ctx, existing.ID, &e.Profile)
		if err != nil {
			return err
		}
		e.User = user
		return nil
	}

	e.User = existing
	return nil
}

// profileChanged ignores empty incoming fields so a sparse identity never wipes stored names.
func profileChanged(existing *sqlconfig.User, profile *sqlconfig.UserProfile) bool {
	if profile.Username == "" && profile.FirstName == "" && profile.LastName == "" {
		return false
	}
	return existing.Username != profile.Username ||
		existing.FirstName != profile.FirstName ||
		existing.LastName != profile.LastName
}
