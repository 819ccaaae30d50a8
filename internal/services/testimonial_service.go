package services

import (
	"tawzif_backend/internal/models"
	"tawzif_backend/internal/repositories"
	"tawzif_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const maxTestimonials = 12

type TestimonialService interface {
	GetTestimonials(db *gorm.DB, limit int) ([]models.Testimonial, error)
}

type testimonialService struct {
	testimonialRepo repositories.TestimonialRepository
}

func NewTestimonialService(testimonialRepo repositories.TestimonialRepository) TestimonialService {
	return &testimonialService{testimonialRepo: testimonialRepo}
}

func (s *testimonialService) GetTestimonials(db *gorm.DB, limit int) ([]models.Testimonial, error) {
	if limit <= 0 || limit > maxTestimonials {
		limit = maxTestimonials
	}

	testimonials, err := s.testimonialRepo.FindRecentTestimonials(db, limit)
	if err != nil {
		return nil, apperrors.ErrDataUnavailable(err)
	}
	for i := range testimonials {
		testimonials[i].ClampRating()
	}
	return testimonials, nil
}
