package model

import "time"

type User struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	TelegramID           int64     `gorm:"not null;uniqueIndex" json:"telegram_id"`
	Username             string    `json:"username"`
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name"`
	NotificationsEnabled bool      `gorm:"not null;default:false" json:"notifications_enabled"`
	LastActiveAt         time.Time `gorm:"not null" json:"last_active_at"`
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
