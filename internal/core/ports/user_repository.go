package ports

import (
	"context"

	"github.com/relaycrm/crm-system/internal/core/domain"
)

// UserRepository defines persistence operations for users and their profiles.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns all users, most recently joined first.
	List(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)

	// GetOrCreateProfile returns the user's profile, creating an empty one
	// on first access.
	GetOrCreateProfile(ctx context.Context, userID uint) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, profile *domain.UserProfile) error
}
