package repositories

import (
	"errors"
	"strings"
	"time"

	"tawzif_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCompetitionNotFound = errors.New("competition not found")

type CompetitionCriteria struct {
	SearchQuery string
	Location    string
	Status      models.CompetitionStatus
	// Now - момент, относительно которого open с прошедшим сроком считается closed
	Now    time.Time
	Limit  int
	Offset int
}

type CompetitionRepository interface {
	FindCompetitions(db *gorm.DB, criteria CompetitionCriteria) ([]models.Competition, error)
	FindCompetitionByID(db *gorm.DB, id string) (*models.Competition, error)
	CloseExpiredCompetitions(db *gorm.DB, now time.Time) (int64, error)
}

type CompetitionRepositoryImpl struct{}

func NewCompetitionRepository() CompetitionRepository {
	return &CompetitionRepositoryImpl{}
}

func (r *CompetitionRepositoryImpl) FindCompetitions(db *gorm.DB, criteria CompetitionCriteria) ([]models.Competition, error) {
	var competitions []models.Competition
	err := competitionsQuery(db, criteria).Find(&competitions).Error
	return competitions, err
}

// competitionsQuery - статус фильтруется по фактическому состоянию, а не по колонке:
// до прохода воркера просроченный open уже закрыт.
func competitionsQuery(db *gorm.DB, criteria CompetitionCriteria) *gorm.DB {
	now := criteria.Now
	if now.IsZero() {
		now = time.Now()
	}

	query := db.Model(&models.Competition{})
	switch criteria.Status {
	case "":
	case models.CompetitionStatusOpen:
		query = query.Where("status = ? AND (deadline IS NULL OR deadline >= ?)", models.CompetitionStatusOpen, now)
	case models.CompetitionStatusClosed:
		query = query.Where("(status = ? OR (status = ? AND deadline IS NOT NULL AND deadline < ?))",
			models.CompetitionStatusClosed, models.CompetitionStatusOpen, now)
	default:
		query = query.Where("status = ?", criteria.Status)
	}
	if criteria.Location != "" {
		query = query.Where("location ILIKE ?", "%"+EscapeLike(criteria.Location)+"%")
	}
	if q := strings.TrimSpace(criteria.SearchQuery); q != "" {
		pattern := "%" + EscapeLike(q) + "%"
		query = query.Where("(title ILIKE ? OR description ILIKE ? OR organizer ILIKE ?)", pattern, pattern, pattern)
	}

	query = query.Order("created_at DESC").Order("id ASC")
	if criteria.Limit > 0 {
		query = query.Limit(criteria.Limit).Offset(criteria.Offset)
	}
	return query
}

func (r *CompetitionRepositoryImpl) FindCompetitionByID(db *gorm.DB, id string) (*models.Competition, error) {
	var competition models.Competition
	if err := db.Where("id = ?", id).First(&competition).Error; err != nil {
		if isMissing(err) {
			return nil, ErrCompetitionNotFound
		}
		return nil, err
	}
	return &competition, nil
}

// CloseExpiredCompetitions закрывает открытые конкурсы с прошедшим сроком
func (r *CompetitionRepositoryImpl) CloseExpiredCompetitions(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.Competition{}).
		Where("status = ? AND deadline IS NOT NULL AND deadline < ?", models.CompetitionStatusOpen, now).
		Update("status", models.CompetitionStatusClosed)
	return result.RowsAffected, result.Error
}
