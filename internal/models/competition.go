package models

import "time"

// Competition - государственный конкурс на замещение должностей
type Competition struct {
	BaseModelWithDeleted
	Title              string            `gorm:"not null" json:"title"`
	Organizer          string            `json:"organizer"`
	Location           string            `gorm:"index" json:"location"`
	PositionsAvailable int               `gorm:"not null;default:0" json:"positions_available"`
	Deadline           *time.Time        `gorm:"index" json:"deadline,omitempty"`
	Description        string            `gorm:"type:text" json:"description"`
	SourceURL          string            `json:"source_url,omitempty"`
	Status             CompetitionStatus `gorm:"type:varchar(16);not null;default:'open';index" json:"status"`
}

func (c *Competition) IsExpired(now time.Time) bool {
	return c.Deadline != nil && c.Deadline.Before(now)
}
