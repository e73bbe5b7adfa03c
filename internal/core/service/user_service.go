package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/relaycrm/crm-system/internal/core/domain"
	"github.com/relaycrm/crm-system/internal/core/ports"
)

const profileImageFolder = "profiles"

// registration mirrors RegisterUserInput with the account creation rules.
type registration struct {
	Username  string `json:"username" validate:"required,max=150"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password1" validate:"required,min=8"`
}

type UserService struct {
	users  ports.UserRepository
	media  ports.MediaStore
	logger zerolog.Logger
	now    func() time.Time
}

func NewUserService(users ports.UserRepository, media ports.MediaStore, logger zerolog.Logger) *UserService {
	return &UserService{
		users:  users,
		media:  media,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Register creates an active account and its empty profile.
func (s *UserService) Register(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	if err := domain.ValidateStruct(registration{
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password1,
	}); err != nil {
		return nil, err
	}
	if in.Password1 != in.Password2 {
		return nil, domain.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password1), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
		IsActive:     true,
		DateJoined:   s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	if _, err := s.users.GetOrCreateProfile(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("register user: profile: %w", err)
	}

	s.logger.Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id uint, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Username = in.Username
	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.Email = in.Email
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Get returns the user with its profile, creating the profile if needed.
func (s *UserService) Get(ctx context.Context, id uint) (*ports.UserDetail, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile, err := s.users.GetOrCreateProfile(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("user profile: %w", err)
	}
	return &ports.UserDetail{User: user, Profile: profile}, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in ports.UpdateProfileInput) (*ports.UserDetail, error) {
	user, err := s.Update(ctx, userID, in.User)
	if err != nil {
		return nil, err
	}
	profile, err := s.users.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user profile: %w", err)
	}

	profile.Phone = in.Phone
	profile.Address = in.Address
	if err := s.users.UpdateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.logger.Info().Uint("user_id", userID).Msg("profile updated")
	return &ports.UserDetail{User: user, Profile: profile}, nil
}

func (s *UserService) SetProfileImage(ctx context.Context, userID uint, image io.Reader) (*ports.UserDetail, error) {
	detail, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	path, err := s.media.SaveImage(ctx, profileImageFolder, image)
	if err != nil {
		return nil, fmt.Errorf("profile image: %w", err)
	}

	previous := detail.Profile.ProfileImage
	detail.Profile.ProfileImage = path
	if err := s.users.UpdateProfile(ctx, detail.Profile); err != nil {
		_ = s.media.Remove(ctx, path)
		return nil, fmt.Errorf("profile image: %w", err)
	}

	if previous != "" {
		if err := s.media.Remove(ctx, previous); err != nil {
			s.logger.Warn().Err(err).Str("path", previous).Msg("failed to remove old profile image")
		}
	}
	return detail, nil
}
