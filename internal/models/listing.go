package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Listing - объявление. Тип (PostType) задаётся при создании и больше не меняется.
type Listing struct {
	ID           string         `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	PostType     PostType       `gorm:"type:varchar(32);not null;index" json:"post_type"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Country      string         `gorm:"index" json:"country"`
	City         string         `gorm:"index" json:"city"`
	CategoryID   string         `gorm:"index" json:"category_id"`
	WorkType     WorkType       `gorm:"type:varchar(32);index" json:"work_type"`
	Skills       pq.StringArray `gorm:"type:text[]" json:"skills"`
	Salary       string         `json:"salary,omitempty"`
	ContactPhone string         `json:"contact_phone,omitempty"`
	ContactEmail string         `json:"contact_email,omitempty"`
	OwnerID      string         `gorm:"type:uuid;not null;index" json:"owner_id"`
	OwnerName    string         `json:"owner_name"`
	OwnerAvatar  string         `json:"owner_avatar,omitempty"`
	Views        int            `gorm:"not null;default:0" json:"views"`
	CreatedAt    time.Time      `gorm:"default:now();index" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// PagePath - относительный путь публичной страницы: /jobs/{id} или /workers/{id}
func (l *Listing) PagePath() string {
	return "/" + l.PostType.Section() + "/" + l.ID
}

func (l *Listing) IsOwner(userID string) bool {
	return userID != "" && l.OwnerID == userID
}

// ListingView фиксирует, что зритель уже засчитан.
// Составной первичный ключ не даёт посчитать одного зрителя дважды.
type ListingView struct {
	ListingID string    `gorm:"type:uuid;primaryKey"`
	ViewerID  string    `gorm:"type:varchar(64);primaryKey"`
	CreatedAt time.Time `gorm:"default:now()"`
}
