package services

import (
	"errors"
	"slices"
	"strings"

	"tawzif_backend/internal/auth"
	"tawzif_backend/internal/models"
	"tawzif_backend/internal/realtime"
	"tawzif_backend/internal/repositories"
	"tawzif_backend/internal/services/dto"
	"tawzif_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ListingService interface {
	GetListings(db *gorm.DB, filter dto.ListingFilter) (*dto.ListingPage, error)
	GetListing(db *gorm.DB, id string) (*models.Listing, error)
	GetListingForEdit(db *gorm.DB, id string, actor dto.Actor) (*models.Listing, error)
	CreateListing(db *gorm.DB, actor dto.Actor, req *dto.CreateListingRequest) (*models.Listing, error)
	UpdateListing(db *gorm.DB, id string, actor dto.Actor, req *dto.UpdateListingRequest) (*models.Listing, error)
	DeleteListing(db *gorm.DB, id string, actor dto.Actor) error
}

type listingService struct {
	listingRepo repositories.ListingRepository
	profileRepo repositories.ProfileRepository
	publisher   Publisher
}

func NewListingService(
	listingRepo repositories.ListingRepository,
	profileRepo repositories.ProfileRepository,
	publisher Publisher,
) ListingService {
	return &listingService{
		listingRepo: listingRepo,
		profileRepo: profileRepo,
		publisher:   publisher,
	}
}

// GetListings - фильтры уходят в SQL, затем тот же предикат и порядок
// применяются ещё раз в Go. Ошибка хранилища -> DATA_UNAVAILABLE.
// Берём на одну строку больше страницы: по ней видно, есть ли продолжение.
func (s *listingService) GetListings(db *gorm.DB, filter dto.ListingFilter) (*dto.ListingPage, error) {
	criteria := repositories.ListingCriteria{
		PostType:    models.PostType(filter.PostType),
		SearchQuery: strings.TrimSpace(filter.SearchQuery),
		Country:     filter.Country,
		City:        filter.City,
		CategoryID:  filter.CategoryID,
		WorkType:    models.WorkType(filter.WorkType),
		OwnerID:     filter.OwnerID,
	}
	if !filter.FetchAll {
		filter.Normalize()
		criteria.Limit = filter.PageSize + 1
		criteria.Offset = filter.Offset()
	}

	listings, err := s.listingRepo.FindListings(db, criteria)
	if err != nil {
		return nil, apperrors.ErrDataUnavailable(err)
	}

	page := &dto.ListingPage{}
	if !filter.FetchAll && len(listings) > filter.PageSize {
		page.HasMore = true
		listings = listings[:filter.PageSize]
	}

	result := make([]models.Listing, 0, len(listings))
	for i := range listings {
		if filter.Matches(&listings[i]) {
			result = append(result, listings[i])
		}
	}
	SortListings(result)

	page.Listings = result
	return page, nil
}

// SortListings - новые сверху, при равной дате по id
func SortListings(listings []models.Listing) {
	slices.SortStableFunc(listings, func(a, b models.Listing) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func (s *listingService) GetListing(db *gorm.DB, id string) (*models.Listing, error) {
	listing, err := s.listingRepo.FindListingByID(db, id)
	if err != nil {
		return nil, mapListingError(err)
	}
	return listing, nil
}

// GetListingForEdit - только владельцу (или админу). Остальным ErrNotListingOwner,
// хендлер превращает это в редирект на публичную страницу.
func (s *listingService) GetListingForEdit(db *gorm.DB, id string, actor dto.Actor) (*models.Listing, error) {
	listing, err := s.GetListing(db, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(string(actor.Role), "listings:write", listing.IsOwner(actor.UserID)) {
		return listing, apperrors.ErrNotListingOwner
	}
	return listing, nil
}

func (s *listingService) CreateListing(db *gorm.DB, actor dto.Actor, req *dto.CreateListingRequest) (*models.Listing, error) {
	listing := &models.Listing{
		PostType:     models.PostType(req.PostType),
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Country:      req.Country,
		City:         req.City,
		CategoryID:   req.CategoryID,
		WorkType:     models.WorkType(req.WorkType),
		Skills:       cleanSkills(req.Skills),
		Salary:       req.Salary,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		OwnerID:      actor.UserID,
		OwnerName:    actor.Name,
	}

	// имя и аватар берём из профиля, если он уже заполнен
	profile, err := s.profileRepo.FindProfileByID(db, actor.UserID)
	switch {
	case err == nil:
		listing.OwnerName = profile.DisplayName
		listing.OwnerAvatar = profile.AvatarURL
	case !errors.Is(err, repositories.ErrProfileNotFound) && !repositories.IsInvalidID(err):
		return nil, apperrors.ErrDataUnavailable(err)
	}

	if err := s.listingRepo.CreateListing(db, listing); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return listing, nil
}

func (s *listingService) UpdateListing(db *gorm.DB, id string, actor dto.Actor, req *dto.UpdateListingRequest) (*models.Listing, error) {
	listing, err := s.GetListing(db, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(string(actor.Role), "listings:write", listing.IsOwner(actor.UserID)) {
		return nil, apperrors.ErrNotListingOwner
	}
	if req.PostType != nil && models.PostType(*req.PostType) != listing.PostType {
		return nil, apperrors.ErrPostTypeImmutable
	}

	applyListingUpdate(listing, req)

	if err := s.listingRepo.UpdateListing(db, listing); err != nil {
		return nil, mapListingError(err)
	}

	publishSnapshot(dbContext(db), s.publisher, realtime.ListingTopic(listing.ID), listing)
	return listing, nil
}

func (s *listingService) DeleteListing(db *gorm.DB, id string, actor dto.Actor) error {
	listing, err := s.GetListing(db, id)
	if err != nil {
		return err
	}
	if !auth.CanModify(string(actor.Role), "listings:delete", listing.IsOwner(actor.UserID)) {
		return apperrors.ErrNotListingOwner
	}
	if err := s.listingRepo.DeleteListing(db, id); err != nil {
		return mapListingError(err)
	}
	return nil
}

func applyListingUpdate(l *models.Listing, req *dto.UpdateListingRequest) {
	if req.Title != nil {
		l.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		l.Description = strings.TrimSpace(*req.Description)
	}
	if req.Country != nil {
		l.Country = *req.Country
	}
	if req.City != nil {
		l.City = *req.City
	}
	if req.CategoryID != nil {
		l.CategoryID = *req.CategoryID
	}
	if req.WorkType != nil {
		l.WorkType = models.WorkType(*req.WorkType)
	}
	if req.Skills != nil {
		l.Skills = cleanSkills(*req.Skills)
	}
	if req.Salary != nil {
		l.Salary = *req.Salary
	}
	if req.ContactPhone != nil {
		l.ContactPhone = *req.ContactPhone
	}
	if req.ContactEmail != nil {
		l.ContactEmail = *req.ContactEmail
	}
}

// cleanSkills убирает пустые значения и дубли, сохраняя порядок
func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func mapListingError(err error) error {
	if errors.Is(err, repositories.ErrListingNotFound) || repositories.IsInvalidID(err) {
		return apperrors.ErrListingNotFound
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return apperrors.ErrDataUnavailable(err)
}
