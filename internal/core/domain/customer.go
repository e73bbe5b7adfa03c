package domain

import "time"

// Customer is a contact record managed by staff.
type Customer struct {
	ID          uint      `json:"id"`
	FirstName   string    `json:"first_name" validate:"required,max=100"`
	LastName    string    `json:"last_name" validate:"required,max=100"`
	Email       string    `json:"email" validate:"required,email,max=254"`
	Phone       string    `json:"phone" validate:"max=20"`
	Address     string    `json:"address"`
	City        string    `json:"city" validate:"max=100"`
	State       string    `json:"state" validate:"max=100"`
	Country     string    `json:"country" validate:"max=100"`
	PostalCode  string    `json:"postal_code" validate:"max=20"`
	Company     string    `json:"company" validate:"max=200"`
	Image       string    `json:"image" validate:"max=255"`
	Notes       string    `json:"notes"`
	CreatedByID *uint     `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FullName joins first and last name with a single space.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Validate checks the field constraints enforced on every write.
func (c *Customer) Validate() error {
	return ValidateStruct(c)
}
