package domain

import "time"

// User models an authenticated staff member.
type User struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username" validate:"required,max=150"`
	Email        string    `json:"email" validate:"omitempty,email,max=254"`
	FirstName    string    `json:"first_name" validate:"max=150"`
	LastName     string    `json:"last_name" validate:"max=150"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	DateJoined   time.Time `json:"date_joined"`
}

func (u *User) Validate() error {
	return ValidateStruct(u)
}

// UserProfile holds the contact details attached one-to-one to a User.
type UserProfile struct {
	ID           uint   `json:"id"`
	UserID       uint   `json:"user_id"`
	Phone        string `json:"phone" validate:"max=20"`
	Address      string `json:"address"`
	ProfileImage string `json:"profile_image" validate:"max=255"`
}

func (p *UserProfile) Validate() error {
	return ValidateStruct(p)
}

// Actor identifies the user on whose behalf an operation runs.
type Actor struct {
	ID       uint
	Username string
}
