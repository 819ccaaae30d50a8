package services

import (
	"errors"
	"strings"

	"tawzif_backend/internal/models"
	"tawzif_backend/internal/repositories"
	"tawzif_backend/internal/services/dto"
	"tawzif_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ImmigrationService interface {
	GetPosts(db *gorm.DB, filter dto.ImmigrationFilter) ([]models.ImmigrationPost, error)
	GetPost(db *gorm.DB, id string) (*models.ImmigrationPost, error)
}

type immigrationService struct {
	immigrationRepo repositories.ImmigrationRepository
}

func NewImmigrationService(immigrationRepo repositories.ImmigrationRepository) ImmigrationService {
	return &immigrationService{immigrationRepo: immigrationRepo}
}

func (s *immigrationService) GetPosts(db *gorm.DB, filter dto.ImmigrationFilter) ([]models.ImmigrationPost, error) {
	criteria := repositories.ImmigrationCriteria{
		SearchQuery:        strings.TrimSpace(filter.SearchQuery),
		DestinationCountry: filter.DestinationCountry,
	}
	if !filter.FetchAll {
		filter.Normalize()
		criteria.Limit = filter.PageSize
		criteria.Offset = filter.Offset()
	}

	posts, err := s.immigrationRepo.FindPosts(db, criteria)
	if err != nil {
		return nil, apperrors.ErrDataUnavailable(err)
	}
	return posts, nil
}

func (s *immigrationService) GetPost(db *gorm.DB, id string) (*models.ImmigrationPost, error) {
	post, err := s.immigrationRepo.FindPostByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrImmigrationPostNotFound) || repositories.IsInvalidID(err) {
			return nil, apperrors.ErrImmigrationPostNotFound
		}
		return nil, apperrors.ErrDataUnavailable(err)
	}
	return post, nil
}
