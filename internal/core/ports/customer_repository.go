package ports

import (
	"context"

	"github.com/relaycrm/crm-system/internal/core/domain"
)

// CustomerFilter carries the query parameters for a customer page.
type CustomerFilter struct {
	Search string // optional: case-insensitive match on name, email, phone or company
	Offset int
	Limit  int // 0 = no limit
}

// CustomerRepository defines persistence operations for customers.
// Results are ordered newest first.
type CustomerRepository interface {
	// Create validates and inserts c, filling ID and timestamps.
	// Fails with *domain.ValidationError or domain.ErrDuplicateEmail.
	Create(ctx context.Context, c *domain.Customer) error
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*domain.Customer, error)
	// List returns a window of customers matching filter and the total count.
	List(ctx context.Context, filter CustomerFilter) ([]*domain.Customer, int64, error)
	All(ctx context.Context) ([]*domain.Customer, error)
	Count(ctx context.Context) (int64, error)
}
