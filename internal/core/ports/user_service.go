package ports

import (
	"context"
	"io"

	"github.com/relaycrm/crm-system/internal/core/domain"
)

// RegisterUserInput carries the account creation form.
type RegisterUserInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password1 string
	Password2 string
}

// UpdateUserInput carries the editable account fields.
type UpdateUserInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
}

// UpdateProfileInput edits the acting user's account and profile together.
type UpdateProfileInput struct {
	User    UpdateUserInput
	Phone   string
	Address string
}

// UserDetail pairs a user with its profile.
type UserDetail struct {
	User    *domain.User
	Profile *domain.UserProfile
}

// UserService defines use-case operations for staff accounts.
type UserService interface {
	Register(ctx context.Context, in RegisterUserInput) (*domain.User, error)
	Update(ctx context.Context, id uint, in UpdateUserInput) (*domain.User, error)
	Get(ctx context.Context, id uint) (*UserDetail, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*UserDetail, error)
	SetProfileImage(ctx context.Context, userID uint, image io.Reader) (*UserDetail, error)
}

// DashboardSummary is the landing page data.
type DashboardSummary struct {
	TotalCustomers  int64
	TotalUsers      int64
	RecentCustomers []*domain.Customer
}

type DashboardService interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
}
