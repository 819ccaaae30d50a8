package services

import (
	"errors"
	"strings"
	"time"

	"tawzif_backend/internal/models"
	"tawzif_backend/internal/repositories"
	"tawzif_backend/internal/services/dto"
	"tawzif_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CompetitionService interface {
	GetCompetitions(db *gorm.DB, filter dto.CompetitionFilter) ([]models.Competition, error)
	GetCompetition(db *gorm.DB, id string) (*models.Competition, error)
}

type competitionService struct {
	competitionRepo repositories.CompetitionRepository
	now             func() time.Time
}

func NewCompetitionService(competitionRepo repositories.CompetitionRepository) CompetitionService {
	return &competitionService{competitionRepo: competitionRepo, now: time.Now}
}

func (s *competitionService) GetCompetitions(db *gorm.DB, filter dto.CompetitionFilter) ([]models.Competition, error) {
	criteria := repositories.CompetitionCriteria{
		SearchQuery: strings.TrimSpace(filter.SearchQuery),
		Location:    strings.TrimSpace(filter.Location),
		Status:      models.CompetitionStatus(filter.Status),
		Now:         s.now(),
	}
	if !filter.FetchAll {
		filter.Normalize()
		criteria.Limit = filter.PageSize
		criteria.Offset = filter.Offset()
	}

	competitions, err := s.competitionRepo.FindCompetitions(db, criteria)
	if err != nil {
		return nil, apperrors.ErrDataUnavailable(err)
	}

	now := criteria.Now
	result := make([]models.Competition, 0, len(competitions))
	for i := range competitions {
		s.closeIfExpired(&competitions[i], now)
		if criteria.Status != "" && competitions[i].Status != criteria.Status {
			continue
		}
		result = append(result, competitions[i])
	}
	return result, nil
}

// closeIfExpired - воркер закрывает конкурсы периодически, до его прохода статус правится при чтении
func (s *competitionService) closeIfExpired(c *models.Competition, now time.Time) {
	if c.Status == models.CompetitionStatusOpen && c.IsExpired(now) {
		c.Status = models.CompetitionStatusClosed
	}
}

func (s *competitionService) GetCompetition(db *gorm.DB, id string) (*models.Competition, error) {
	competition, err := s.competitionRepo.FindCompetitionByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) || repositories.IsInvalidID(err) {
			return nil, apperrors.ErrCompetitionNotFound
		}
		return nil, apperrors.ErrDataUnavailable(err)
	}
	s.closeIfExpired(competition, s.now())
	return competition, nil
}
