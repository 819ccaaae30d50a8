package repositories

import (
	"errors"
	"strings"

	"tawzif_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrListingNotFound = errors.New("listing not found")

// ListingCriteria - фильтры, которые уходят в SQL. Пустое поле = без фильтра.
type ListingCriteria struct {
	PostType    models.PostType
	SearchQuery string
	Country     string
	City        string
	CategoryID  string
	WorkType    models.WorkType
	OwnerID     string
	Limit       int // 0 - без ограничения
	Offset      int
}

type ListingRepository interface {
	FindListings(db *gorm.DB, criteria ListingCriteria) ([]models.Listing, error)
	FindListingByID(db *gorm.DB, id string) (*models.Listing, error)
	CreateListing(db *gorm.DB, listing *models.Listing) error
	UpdateListing(db *gorm.DB, listing *models.Listing) error
	DeleteListing(db *gorm.DB, id string) error
	UpdateOwnerSnapshot(db *gorm.DB, ownerID, name, avatar string) error

	// IncrementViewIfAbsent увеличивает счётчик, только если зритель ещё не засчитан
	IncrementViewIfAbsent(db *gorm.DB, listingID, viewerID string) (bool, error)
}

type ListingRepositoryImpl struct{}

func NewListingRepository() ListingRepository {
	return &ListingRepositoryImpl{}
}

func (r *ListingRepositoryImpl) FindListings(db *gorm.DB, criteria ListingCriteria) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.listingsQuery(db, criteria).Find(&listings).Error
	return listings, err
}

func (r *ListingRepositoryImpl) listingsQuery(db *gorm.DB, criteria ListingCriteria) *gorm.DB {
	query := r.applyCriteria(db.Model(&models.Listing{}), criteria).
		Order("created_at DESC").
		Order("id ASC")

	if criteria.Limit > 0 {
		query = query.Limit(criteria.Limit).Offset(criteria.Offset)
	}
	return query
}

func (r *ListingRepositoryImpl) applyCriteria(query *gorm.DB, criteria ListingCriteria) *gorm.DB {
	if criteria.PostType != "" {
		query = query.Where("post_type = ?", criteria.PostType)
	}
	if criteria.Country != "" {
		query = query.Where("country = ?", criteria.Country)
	}
	if criteria.City != "" {
		query = query.Where("city = ?", criteria.City)
	}
	if criteria.CategoryID != "" {
		query = query.Where("category_id = ?", criteria.CategoryID)
	}
	if criteria.WorkType != "" {
		query = query.Where("work_type = ?", criteria.WorkType)
	}
	if criteria.OwnerID != "" {
		query = query.Where("owner_id = ?", criteria.OwnerID)
	}

	if q := strings.TrimSpace(criteria.SearchQuery); q != "" {
		pattern := "%" + EscapeLike(q) + "%"
		// навыки и имя владельца ищем только у соискателей
		query = query.Where(
			"(title ILIKE ? OR description ILIKE ? OR (post_type = ? AND (array_to_string(skills, ' ') ILIKE ? OR owner_name ILIKE ?)))",
			pattern, pattern, models.PostTypeSeekingJob, pattern, pattern,
		)
	}
	return query
}

func (r *ListingRepositoryImpl) FindListingByID(db *gorm.DB, id string) (*models.Listing, error) {
	var listing models.Listing
	if err := db.Where("id = ?", id).First(&listing).Error; err != nil {
		if isMissing(err) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (r *ListingRepositoryImpl) CreateListing(db *gorm.DB, listing *models.Listing) error {
	return db.Create(listing).Error
}

// UpdateListing не трогает тип, владельца и счётчик просмотров
func (r *ListingRepositoryImpl) UpdateListing(db *gorm.DB, listing *models.Listing) error {
	result := db.Model(listing).
		Select("title", "description", "country", "city", "category_id", "work_type",
			"skills", "salary", "contact_phone", "contact_email").
		Updates(listing)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

func (r *ListingRepositoryImpl) DeleteListing(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Listing{})
	if result.Error != nil {
		if IsInvalidID(result.Error) {
			return ErrListingNotFound
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

// UpdateOwnerSnapshot обновляет копию имени и аватара владельца во всех его объявлениях
func (r *ListingRepositoryImpl) UpdateOwnerSnapshot(db *gorm.DB, ownerID, name, avatar string) error {
	return db.Model(&models.Listing{}).
		Where("owner_id = ?", ownerID).
		Updates(map[string]interface{}{"owner_name": name, "owner_avatar": avatar}).Error
}

// IncrementViewIfAbsent - одна транзакция: вставка пары (listing, viewer) c ON CONFLICT DO NOTHING,
// затем views + 1, если вставка прошла. При конкурентных дублях второй INSERT затронет 0 строк.
func (r *ListingRepositoryImpl) IncrementViewIfAbsent(db *gorm.DB, listingID, viewerID string) (bool, error) {
	counted := false

	err := db.Transaction(func(tx *gorm.DB) error {
		view := models.ListingView{ListingID: listingID, ViewerID: viewerID}
		inserted := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&view)
		if inserted.Error != nil {
			if IsInvalidID(inserted.Error) {
				return ErrListingNotFound
			}
			return inserted.Error
		}
		if inserted.RowsAffected == 0 {
			return nil
		}

		updated := tx.Model(&models.Listing{}).
			Where("id = ?", listingID).
			UpdateColumn("views", gorm.Expr("views + 1"))
		if updated.Error != nil {
			return updated.Error
		}
		if updated.RowsAffected == 0 {
			// объявления нет - откатываем вставку
			return ErrListingNotFound
		}

		counted = true
		return nil
	})

	return counted, err
}

// EscapeLike экранирует спецсимволы LIKE, чтобы поиск был буквальным
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
