package repositories

import (
	"errors"

	"tawzif_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepository interface {
	FindProfileByID(db *gorm.DB, id string) (*models.Profile, error)
	UpsertProfile(db *gorm.DB, profile *models.Profile) error
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

func (r *ProfileRepositoryImpl) FindProfileByID(db *gorm.DB, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := db.Where("id = ?", id).First(&profile).Error; err != nil {
		if isMissing(err) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpsertProfile создаёт профиль при первом сохранении, дальше обновляет поля
func (r *ProfileRepositoryImpl) UpsertProfile(db *gorm.DB, profile *models.Profile) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"display_name", "avatar_url", "headline", "country", "city", "bio", "phone", "updated_at",
		}),
	}).Create(profile).Error
}
