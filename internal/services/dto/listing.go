package dto

import (
	"strings"

	"tawzif_backend/internal/models"

	"golang.org/x/text/cases"
)

// ListingFilter - параметры выборки объявлений. Все поля необязательны и объединяются через AND.
type ListingFilter struct {
	PostType    string `form:"post_type" validate:"omitempty,is-post-type"`
	SearchQuery string `form:"q" validate:"max=100"`
	Country     string `form:"country" validate:"max=80"`
	City        string `form:"city" validate:"max=80"`
	CategoryID  string `form:"category_id" validate:"max=64"`
	WorkType    string `form:"work_type" validate:"omitempty,is-work-type"`
	OwnerID     string `form:"owner_id" validate:"omitempty,uuid"`
	Pagination

	// FetchAll снимает ограничение страницы (для карты сайта)
	FetchAll bool `form:"-"`
}

// Matches - тот же предикат, что уходит в SQL, но на стороне Go.
// Поиск без учёта регистра с Unicode case folding.
func (f ListingFilter) Matches(l *models.Listing) bool {
	if f.PostType != "" && string(l.PostType) != f.PostType {
		return false
	}
	if f.Country != "" && l.Country != f.Country {
		return false
	}
	if f.City != "" && l.City != f.City {
		return false
	}
	if f.CategoryID != "" && l.CategoryID != f.CategoryID {
		return false
	}
	if f.WorkType != "" && string(l.WorkType) != f.WorkType {
		return false
	}
	if f.OwnerID != "" && l.OwnerID != f.OwnerID {
		return false
	}

	q := strings.TrimSpace(f.SearchQuery)
	if q == "" {
		return true
	}

	fold := cases.Fold()
	needle := fold.String(q)
	contains := func(s string) bool {
		return s != "" && strings.Contains(fold.String(s), needle)
	}

	if contains(l.Title) || contains(l.Description) {
		return true
	}
	if l.PostType == models.PostTypeSeekingJob {
		if contains(l.OwnerName) || contains(strings.Join(l.Skills, " ")) {
			return true
		}
	}
	return false
}

type CreateListingRequest struct {
	PostType     string   `json:"post_type" validate:"required,is-post-type"`
	Title        string   `json:"title" validate:"required,min=3,max=160"`
	Description  string   `json:"description" validate:"required,max=10000"`
	Country      string   `json:"country" validate:"required,max=80"`
	City         string   `json:"city" validate:"max=80"`
	CategoryID   string   `json:"category_id" validate:"max=64"`
	WorkType     string   `json:"work_type" validate:"required,is-work-type"`
	Skills       []string `json:"skills" validate:"omitempty,max=30,dive,max=60"`
	Salary       string   `json:"salary" validate:"max=80"`
	ContactPhone string   `json:"contact_phone" validate:"max=40"`
	ContactEmail string   `json:"contact_email" validate:"omitempty,email"`
}

// UpdateListingRequest - частичное обновление, nil = не менять.
// post_type принимается только для проверки неизменности.
type UpdateListingRequest struct {
	PostType     *string   `json:"post_type" validate:"omitempty,is-post-type"`
	Title        *string   `json:"title" validate:"omitempty,min=3,max=160"`
	Description  *string   `json:"description" validate:"omitempty,max=10000"`
	Country      *string   `json:"country" validate:"omitempty,max=80"`
	City         *string   `json:"city" validate:"omitempty,max=80"`
	CategoryID   *string   `json:"category_id" validate:"omitempty,max=64"`
	WorkType     *string   `json:"work_type" validate:"omitempty,is-work-type"`
	Skills       *[]string `json:"skills" validate:"omitempty,max=30"`
	Salary       *string   `json:"salary" validate:"omitempty,max=80"`
	ContactPhone *string   `json:"contact_phone" validate:"omitempty,max=40"`
	ContactEmail *string   `json:"contact_email" validate:"omitempty,email"`
}

type RecordViewRequest struct {
	PageInstanceID string `json:"page_instance_id" validate:"max=64"`
	VisitorID      string `json:"visitor_id" validate:"omitempty,uuid"`
	Prerender      bool   `json:"prerender"`
}

// ListingPage - результат выборки. HasMore считается по строкам из БД,
// до повторной фильтрации в Go.
type ListingPage struct {
	Listings []models.Listing
	HasMore  bool
}

// ListingsResponse - ответ страницы списка. Degraded = данные недоступны.
type ListingsResponse struct {
	Listings []models.Listing `json:"listings"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	HasMore  bool             `json:"has_more"`
	Message  string           `json:"message,omitempty"`
	Degraded bool             `json:"degraded,omitempty"`
}
