package relational

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/relaycrm/crm-system/internal/core/domain"
	"github.com/relaycrm/crm-system/internal/core/ports"
)

// customerOrder is the natural order of the customer store: newest first.
const customerOrder = "created_at DESC, id DESC"

// CustomerRepository implements ports.CustomerRepository with gorm.
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

var _ ports.CustomerRepository = (*CustomerRepository)(nil)

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	row := newCustomerRow(c)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return translateCustomerError(err)
	}

	*c = *row.toDomain()
	return nil
}

// Update writes every editable column. created_at and created_by are never touched.
func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&customerRow{ID: c.ID}).Updates(map[string]any{
		"first_name":  c.FirstName,
		"last_name":   c.LastName,
		"email":       c.Email,
		"phone":       c.Phone,
		"address":     c.Address,
		"city":        c.City,
		"state":       c.State,
		"country":     c.Country,
		"postal_code": c.PostalCode,
		"company":     c.Company,
		"image":       c.Image,
		"notes":       c.Notes,
		"updated_at":  now,
	})
	if res.Error != nil {
		return translateCustomerError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCustomerNotFound
	}

	c.UpdatedAt = now
	return nil
}

// Delete removes the row permanently.
func (r *CustomerRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&customerRow{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uint) (*domain.Customer, error) {
	var row customerRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translateCustomerError(err)
	}
	return row.toDomain(), nil
}

func (r *CustomerRepository) List(ctx context.Context, f ports.CustomerFilter) ([]*domain.Customer, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&customerRow{}).Scopes(search(f.Search)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = -1
	}

	var rows []customerRow
	err := r.db.WithContext(ctx).
		Scopes(search(f.Search)).
		Order(customerOrder).
		Offset(f.Offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return toCustomers(rows), total, nil
}

func (r *CustomerRepository) All(ctx context.Context) ([]*domain.Customer, error) {
	var rows []customerRow
	if err := r.db.WithContext(ctx).Order(customerOrder).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toCustomers(rows), nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&customerRow{}).Count(&n).Error
	return n, err
}

// search matches q case-insensitively anywhere in name, email, phone or company.
func search(q string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q == "" {
			return db
		}
		like := "%" + escapeLike(strings.ToLower(q)) + "%"
		return db.Where(
			`LOWER(first_name) LIKE ? ESCAPE '\' OR LOWER(last_name) LIKE ? ESCAPE '\' OR `+
				`LOWER(email) LIKE ? ESCAPE '\' OR LOWER(phone) LIKE ? ESCAPE '\' OR LOWER(company) LIKE ? ESCAPE '\'`,
			like, like, like, like, like,
		)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func toCustomers(rows []customerRow) []*domain.Customer {
	out := make([]*domain.Customer, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out
}

func translateCustomerError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrCustomerNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicateEmail
	}
	return err
}
