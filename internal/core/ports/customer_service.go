package ports

import (
	"context"
	"io"

	"github.com/relaycrm/crm-system/internal/core/domain"
)

// CustomerInput carries the editable customer fields.
type CustomerInput struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Address    string
	City       string
	State      string
	Country    string
	PostalCode string
	Company    string
	Notes      string
}

// ListCustomersInput carries the list endpoint parameters.
type ListCustomersInput struct {
	Search string
	Page   int // 1-based; out of range values are clamped
}

// CustomerPage is one page of customers plus pagination state.
type CustomerPage struct {
	Items       []*domain.Customer
	Total       int64
	Page        int
	PageSize    int
	NumPages    int
	HasNext     bool
	HasPrevious bool
}

// CustomerService defines use-case operations for customers.
type CustomerService interface {
	Create(ctx context.Context, actor domain.Actor, in CustomerInput) (*domain.Customer, error)
	Update(ctx context.Context, id uint, in CustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*domain.Customer, error)
	List(ctx context.Context, in ListCustomersInput) (*CustomerPage, error)
	SetImage(ctx context.Context, id uint, image io.Reader) (*domain.Customer, error)
}
