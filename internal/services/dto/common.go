package dto

import "tawzif_backend/internal/models"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Actor - кто выполняет операцию (из токена)
type Actor struct {
	UserID string
	Role   models.UserRole
	Name   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.UserRoleAdmin
}

// Pagination - page/page_size с ограничением сверху
type Pagination struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

func (p *Pagination) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}
