package relational

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/relaycrm/crm-system/internal/core/domain"
	"github.com/relaycrm/crm-system/internal/core/ports"
)

// UserRepository implements ports.UserRepository with gorm.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ ports.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	row := newUserRow(user)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return translateUserError(err)
	}
	user.ID = row.ID
	return nil
}

// Update writes the account fields. The password hash and date_joined are kept.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&userRow{ID: user.ID}).Updates(map[string]any{
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"is_active":  user.IsActive,
	})
	if res.Error != nil {
		return translateUserError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translateUserError(err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&row).Error; err != nil {
		return nil, translateUserError(err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var rows []userRow
	if err := r.db.WithContext(ctx).Order("date_joined DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.User, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&userRow{}).Count(&n).Error
	return n, err
}

// GetOrCreateProfile returns the user's profile, inserting an empty one on
// first access. A concurrent insert that wins the unique index is re-read.
func (r *UserRepository) GetOrCreateProfile(ctx context.Context, userID uint) (*domain.UserProfile, error) {
	db := r.db.WithContext(ctx)

	var users int64
	if err := db.Model(&userRow{}).Where("id = ?", userID).Count(&users).Error; err != nil {
		return nil, err
	}
	if users == 0 {
		return nil, domain.ErrUserNotFound
	}

	var row profileRow
	err := db.Where(profileRow{UserID: userID}).FirstOrCreate(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		row = profileRow{}
		err = db.Where("user_id = ?", userID).First(&row).Error
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, profile *domain.UserProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&profileRow{}).Where("user_id = ?", profile.UserID).Updates(map[string]any{
		"phone":         profile.Phone,
		"address":       profile.Address,
		"profile_image": profile.ProfileImage,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func translateUserError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrUserNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrUserExists
	}
	return err
}
