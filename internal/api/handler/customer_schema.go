package handler

import "time"

// --- Request / Response types ---

type customerRequest struct {
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email,max=254"`
	Phone      string `json:"phone" validate:"max=20"`
	Address    string `json:"address"`
	City       string `json:"city" validate:"max=100"`
	State      string `json:"state" validate:"max=100"`
	Country    string `json:"country" validate:"max=100"`
	PostalCode string `json:"postal_code" validate:"max=20"`
	Company    string `json:"company" validate:"max=200"`
	Notes      string `json:"notes"`
}

type customerResponse struct {
	ID         uint      `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Country    string    `json:"country"`
	PostalCode string    `json:"postal_code"`
	Company    string    `json:"company"`
	Notes      string    `json:"notes"`
	Image      string    `json:"image,omitempty"`
	ImageURL   string    `json:"image_url,omitempty"`
	CreatedBy  *uint     `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type customerListResponse struct {
	Items       []customerResponse `json:"items"`
	Total       int64              `json:"total"`
	Page        int                `json:"page"`
	PageSize    int                `json:"page_size"`
	NumPages    int                `json:"num_pages"`
	HasNext     bool               `json:"has_next"`
	HasPrevious bool               `json:"has_previous"`
	Search      string             `json:"search,omitempty"`
}

type importResponse struct {
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	SkippedCount int      `json:"skipped_count"`
	Errors       []string `json:"errors"`
	Messages     []string `json:"messages"`
}

type dashboardResponse struct {
	TotalCustomers  int64              `json:"total_customers"`
	TotalUsers      int64              `json:"total_users"`
	RecentCustomers []customerResponse `json:"recent_customers"`
}
