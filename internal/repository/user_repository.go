package repository

import (
	"context"
	"errors"
	"time"

	"mayer-monitor/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	EnsureUser(ctx context.Context, user *model.User) error
	SetNotificationsEnabled(ctx context.Context, telegramID int64, enabled bool) error
	GetOptedInUsers(ctx context.Context) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &user, nil
}

// EnsureUser upserts the user on first contact and refreshes the profile
// fields on every subsequent one. Notification preference is never touched
// here, only by SetNotificationsEnabled.
func (r *userRepository) EnsureUser(ctx context.Context, user *model.User) error {
	user.LastActiveAt = time.Now().UTC()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "telegram_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "first_name", "last_name", "last_active_at", "updated_at"}),
	}).Create(user).Error
}

func (r *userRepository) SetNotificationsEnabled(ctx context.Context, telegramID int64, enabled bool) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("telegram_id = ?", telegramID).
		Update("notifications_enabled", enabled).Error
}

func (r *userRepository) GetOptedInUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("notifications_enabled = ?", true).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
