package handler

import (
	"time"

	"github.com/relaycrm/crm-system/internal/core/domain"
	"github.com/relaycrm/crm-system/internal/core/ports"
)

type registerUserRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2" validate:"required"`
}

type userRequest struct {
	Username  string `json:"username" validate:"required,max=150"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Email     string `json:"email" validate:"omitempty,email,max=254"`
}

type profileRequest struct {
	userRequest
	Phone   string `json:"phone" validate:"max=20"`
	Address string `json:"address"`
}

type profileResponse struct {
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	ProfileImage    string `json:"profile_image,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

type userResponse struct {
	ID         uint             `json:"id"`
	Username   string           `json:"username"`
	Email      string           `json:"email"`
	FirstName  string           `json:"first_name"`
	LastName   string           `json:"last_name"`
	IsActive   bool             `json:"is_active"`
	DateJoined time.Time        `json:"date_joined"`
	Profile    *profileResponse `json:"profile,omitempty"`
}

func (r userRequest) toInput() ports.UpdateUserInput {
	return ports.UpdateUserInput{
		Username:  r.Username,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
	}
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		IsActive:   u.IsActive,
		DateJoined: u.DateJoined,
	}
}

func toUserDetailResponse(d *ports.UserDetail, mediaURL string) userResponse {
	resp := toUserResponse(d.User)
	if d.Profile != nil {
		resp.Profile = &profileResponse{
			Phone:           d.Profile.Phone,
			Address:         d.Profile.Address,
			ProfileImage:    d.Profile.ProfileImage,
			ProfileImageURL: mediaLink(mediaURL, d.Profile.ProfileImage),
		}
	}
	return resp
}
