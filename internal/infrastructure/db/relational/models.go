package relational

import (
	"time"

	"github.com/relaycrm/crm-system/internal/core/domain"
)

type userRow struct {
	ID           uint      `gorm:"primaryKey"`
	Username     string    `gorm:"size:150;not null;uniqueIndex"`
	Email        string    `gorm:"size:254"`
	FirstName    string    `gorm:"size:150"`
	LastName     string    `gorm:"size:150"`
	PasswordHash string    `gorm:"size:255;not null"`
	IsActive     bool      `gorm:"not null"`
	DateJoined   time.Time `gorm:"not null;index"`
}

func (userRow) TableName() string { return "users" }

type profileRow struct {
	ID           uint     `gorm:"primaryKey"`
	UserID       uint     `gorm:"not null;uniqueIndex"`
	User         *userRow `gorm:"constraint:OnDelete:CASCADE"`
	Phone        string   `gorm:"size:20"`
	Address      string   `gorm:"type:text"`
	ProfileImage string   `gorm:"size:255"`
}

func (profileRow) TableName() string { return "user_profiles" }

type customerRow struct {
	ID          uint      `gorm:"primaryKey"`
	FirstName   string    `gorm:"size:100;not null"`
	LastName    string    `gorm:"size:100;not null"`
	Email       string    `gorm:"size:254;not null;uniqueIndex"`
	Phone       string    `gorm:"size:20"`
	Address     string    `gorm:"type:text"`
	City        string    `gorm:"size:100;index"`
	State       string    `gorm:"size:100;index"`
	Country     string    `gorm:"size:100;index"`
	PostalCode  string    `gorm:"size:20"`
	Company     string    `gorm:"size:200"`
	Image       string    `gorm:"size:255"`
	Notes       string    `gorm:"type:text"`
	CreatedByID *uint     `gorm:"index"`
	CreatedBy   *userRow  `gorm:"constraint:OnDelete:SET NULL"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

func (customerRow) TableName() string { return "customers" }

func newCustomerRow(c *domain.Customer) *customerRow {
	return &customerRow{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		City:        c.City,
		State:       c.State,
		Country:     c.Country,
		PostalCode:  c.PostalCode,
		Company:     c.Company,
		Image:       c.Image,
		Notes:       c.Notes,
		CreatedByID: c.CreatedByID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (r *customerRow) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:          r.ID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		City:        r.City,
		State:       r.State,
		Country:     r.Country,
		PostalCode:  r.PostalCode,
		Company:     r.Company,
		Image:       r.Image,
		Notes:       r.Notes,
		CreatedByID: r.CreatedByID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func newUserRow(u *domain.User) *userRow {
	return &userRow{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		DateJoined:   u.DateJoined,
	}
}

func (r *userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		PasswordHash: r.PasswordHash,
		IsActive:     r.IsActive,
		DateJoined:   r.DateJoined,
	}
}

func (r *profileRow) toDomain() *domain.UserProfile {
	return &domain.UserProfile{
		ID:           r.ID,
		UserID:       r.UserID,
		Phone:        r.Phone,
		Address:      r.Address,
		ProfileImage: r.ProfileImage,
	}
}
