package services

import (
	"errors"
	"strings"

	"tawzif_backend/internal/models"
	"tawzif_backend/internal/realtime"
	"tawzif_backend/internal/repositories"
	"tawzif_backend/internal/services/dto"
	"tawzif_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProfileService interface {
	GetProfile(db *gorm.DB, id string) (*models.Profile, error)
	UpdateMyProfile(db *gorm.DB, actor dto.Actor, req *dto.UpdateProfileRequest) (*models.Profile, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
	listingRepo repositories.ListingRepository
	publisher   Publisher
}

func NewProfileService(
	profileRepo repositories.ProfileRepository,
	listingRepo repositories.ListingRepository,
	publisher Publisher,
) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		listingRepo: listingRepo,
		publisher:   publisher,
	}
}

func (s *profileService) GetProfile(db *gorm.DB, id string) (*models.Profile, error) {
	profile, err := s.profileRepo.FindProfileByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) || repositories.IsInvalidID(err) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.ErrDataUnavailable(err)
	}
	return profile, nil
}

// UpdateMyProfile сохраняет профиль и копию имени/аватара в объявлениях владельца
func (s *profileService) UpdateMyProfile(db *gorm.DB, actor dto.Actor, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	profile := &models.Profile{
		ID:          actor.UserID,
		DisplayName: strings.TrimSpace(req.DisplayName),
		AvatarURL:   req.AvatarURL,
		Headline:    req.Headline,
		Country:     req.Country,
		City:        req.City,
		Bio:         req.Bio,
		Phone:       req.Phone,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.profileRepo.UpsertProfile(tx, profile); err != nil {
			return err
		}
		return s.listingRepo.UpdateOwnerSnapshot(tx, actor.UserID, profile.DisplayName, profile.AvatarURL)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	publishSnapshot(dbContext(db), s.publisher, realtime.ProfileTopic(profile.ID), profile)
	return profile, nil
}
