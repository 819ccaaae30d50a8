package models

import "time"

// Profile - публичный профиль. ID совпадает с sub из токена провайдера авторизации.
type Profile struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	DisplayName string    `gorm:"not null" json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Headline    string    `json:"headline,omitempty"`
	Country     string    `json:"country,omitempty"`
	City        string    `json:"city,omitempty"`
	Bio         string    `gorm:"type:text" json:"bio,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	CreatedAt   time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
