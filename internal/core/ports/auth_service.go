package ports

import (
	"context"
	"time"

	"github.com/relaycrm/crm-system/internal/core/domain"
)

// TokenClaims identifies the token presented on an authenticated request.
type TokenClaims struct {
	UserID    uint
	Username  string
	TokenID   string
	ExpiresAt time.Time
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Logout(ctx context.Context, claims TokenClaims) error
}
