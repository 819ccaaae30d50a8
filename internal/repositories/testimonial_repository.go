package repositories

import (
	"tawzif_backend/internal/models"

	"gorm.io/gorm"
)

type TestimonialRepository interface {
	FindRecentTestimonials(db *gorm.DB, limit int) ([]models.Testimonial, error)
}

type TestimonialRepositoryImpl struct{}

func NewTestimonialRepository() TestimonialRepository {
	return &TestimonialRepositoryImpl{}
}

func (r *TestimonialRepositoryImpl) FindRecentTestimonials(db *gorm.DB, limit int) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	err := db.Order("created_at DESC").Order("id ASC").Limit(limit).Find(&testimonials).Error
	return testimonials, err
}
