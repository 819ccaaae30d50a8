package repositories

import (
	"errors"
	"strings"

	"tawzif_backend/internal/models"

	"gorm.io/gorm"
)

var ErrImmigrationPostNotFound = errors.New("immigration post not found")

type ImmigrationCriteria struct {
	SearchQuery        string
	DestinationCountry string
	Limit              int
	Offset             int
}

type ImmigrationRepository interface {
	FindPosts(db *gorm.DB, criteria ImmigrationCriteria) ([]models.ImmigrationPost, error)
	FindPostByID(db *gorm.DB, id string) (*models.ImmigrationPost, error)
}

type ImmigrationRepositoryImpl struct{}

func NewImmigrationRepository() ImmigrationRepository {
	return &ImmigrationRepositoryImpl{}
}

func (r *ImmigrationRepositoryImpl) FindPosts(db *gorm.DB, criteria ImmigrationCriteria) ([]models.ImmigrationPost, error) {
	var posts []models.ImmigrationPost

	query := db.Model(&models.ImmigrationPost{})
	if criteria.DestinationCountry != "" {
		query = query.Where("destination_country = ?", criteria.DestinationCountry)
	}
	if q := strings.TrimSpace(criteria.SearchQuery); q != "" {
		pattern := "%" + EscapeLike(q) + "%"
		query = query.Where("(title ILIKE ? OR description ILIKE ?)", pattern, pattern)
	}

	query = query.Order("created_at DESC").Order("id ASC")
	if criteria.Limit > 0 {
		query = query.Limit(criteria.Limit).Offset(criteria.Offset)
	}

	err := query.Find(&posts).Error
	return posts, err
}

func (r *ImmigrationRepositoryImpl) FindPostByID(db *gorm.DB, id string) (*models.ImmigrationPost, error) {
	var post models.ImmigrationPost
	if err := db.Where("id = ?", id).First(&post).Error; err != nil {
		if isMissing(err) {
			return nil, ErrImmigrationPostNotFound
		}
		return nil, err
	}
	return &post, nil
}
