package service

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/relaycrm/crm-system/internal/core/domain"
	"github.com/relaycrm/crm-system/internal/core/ports"
)

// CustomerPageSize is the number of customers per list page.
const CustomerPageSize = 10

const customerImageFolder = "customers"

type CustomerService struct {
	repo   ports.CustomerRepository
	media  ports.MediaStore
	logger zerolog.Logger
}

func NewCustomerService(repo ports.CustomerRepository, media ports.MediaStore, logger zerolog.Logger) *CustomerService {
	return &CustomerService{repo: repo, media: media, logger: logger}
}

func (s *CustomerService) Create(ctx context.Context, actor domain.Actor, in ports.CustomerInput) (*domain.Customer, error) {
	c := &domain.Customer{}
	applyCustomerInput(c, in)
	if actor.ID != 0 {
		id := actor.ID
		c.CreatedByID = &id
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	s.logger.Info().Uint("customer_id", c.ID).Uint("created_by", actor.ID).Msg("customer created")
	return c, nil
}

// Update overwrites the editable fields. Owner, image and timestamps are kept.
func (s *CustomerService) Update(ctx context.Context, id uint, in ports.CustomerInput) (*domain.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyCustomerInput(c, in)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}

	s.logger.Info().Uint("customer_id", c.ID).Msg("customer updated")
	return c, nil
}

func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Uint("customer_id", id).Msg("customer deleted")
	return nil
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns one page of customers. Page numbers below 1 select the first
// page and numbers past the end select the last one.
func (s *CustomerService) List(ctx context.Context, in ports.ListCustomersInput) (*ports.CustomerPage, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}

	filter := ports.CustomerFilter{Search: in.Search, Offset: (page - 1) * CustomerPageSize, Limit: CustomerPageSize}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	numPages := int((total + CustomerPageSize - 1) / CustomerPageSize)
	if numPages < 1 {
		numPages = 1
	}
	if page > numPages {
		page = numPages
		filter.Offset = (page - 1) * CustomerPageSize
		items, total, err = s.repo.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("list customers: %w", err)
		}
	}

	return &ports.CustomerPage{
		Items:       items,
		Total:       total,
		Page:        page,
		PageSize:    CustomerPageSize,
		NumPages:    numPages,
		HasNext:     page < numPages,
		HasPrevious: page > 1,
	}, nil
}

// SetImage stores a new customer photo and drops the previous file.
func (s *CustomerService) SetImage(ctx context.Context, id uint, image io.Reader) (*domain.Customer, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	path, err := s.media.SaveImage(ctx, customerImageFolder, image)
	if err != nil {
		return nil, fmt.Errorf("customer image: %w", err)
	}

	previous := c.Image
	c.Image = path
	if err := s.repo.Update(ctx, c); err != nil {
		_ = s.media.Remove(ctx, path)
		return nil, fmt.Errorf("customer image: %w", err)
	}

	if previous != "" {
		if err := s.media.Remove(ctx, previous); err != nil {
			s.logger.Warn().Err(err).Str("path", previous).Msg("failed to remove old customer image")
		}
	}
	return c, nil
}

func applyCustomerInput(c *domain.Customer, in ports.CustomerInput) {
	c.FirstName = in.FirstName
	c.LastName = in.LastName
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = in.Address
	c.City = in.City
	c.State = in.State
	c.Country = in.Country
	c.PostalCode = in.PostalCode
	c.Company = in.Company
	c.Notes = in.Notes
}
