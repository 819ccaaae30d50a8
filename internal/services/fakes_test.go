package services

import (
	"errors"
	"sync"
	"time"

	"tawzif_backend/internal/models"
	"tawzif_backend/internal/repositories"

	"gorm.io/gorm"
)

var errDBDown = errors.New("dial tcp: connection refused")

// fakeListingRepo намеренно игнорирует фильтры (кроме лимита):
// так проверяется, что сервис сам отсекает лишнее и сортирует
type fakeListingRepo struct {
	listings []models.Listing
	err      error
	lastCrit repositories.ListingCriteria
	updated  *models.Listing
	deleted  string
}

func (f *fakeListingRepo) FindListings(_ *gorm.DB, c repositories.ListingCriteria) ([]models.Listing, error) {
	f.lastCrit = c
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Listing, len(f.listings))
	copy(out, f.listings)
	return out, nil
}

func (f *fakeListingRepo) FindListingByID(_ *gorm.DB, id string) (*models.Listing, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.listings {
		if f.listings[i].ID == id {
			l := f.listings[i]
			return &l, nil
		}
	}
	return nil, repositories.ErrListingNotFound
}

func (f *fakeListingRepo) CreateListing(_ *gorm.DB, l *models.Listing) error {
	if f.err != nil {
		return f.err
	}
	l.ID = "new-id"
	f.listings = append(f.listings, *l)
	return nil
}

func (f *fakeListingRepo) UpdateListing(_ *gorm.DB, l *models.Listing) error {
	f.updated = l
	return f.err
}

func (f *fakeListingRepo) DeleteListing(_ *gorm.DB, id string) error {
	f.deleted = id
	return f.err
}

func (f *fakeListingRepo) UpdateOwnerSnapshot(_ *gorm.DB, _, _, _ string) error { return f.err }

func (f *fakeListingRepo) IncrementViewIfAbsent(_ *gorm.DB, _, _ string) (bool, error) {
	return true, f.err
}

type fakeProfileRepo struct {
	profiles map[string]*models.Profile
	err      error
}

func (f *fakeProfileRepo) FindProfileByID(_ *gorm.DB, id string) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrProfileNotFound
}

func (f *fakeProfileRepo) UpsertProfile(_ *gorm.DB, p *models.Profile) error {
	if f.profiles == nil {
		f.profiles = map[string]*models.Profile{}
	}
	f.profiles[p.ID] = p
	return f.err
}

type fakeCompetitionRepo struct {
	competitions []models.Competition
	err          error
	closed       int64
	lastCrit     repositories.CompetitionCriteria
}

func (f *fakeCompetitionRepo) FindCompetitions(_ *gorm.DB, c repositories.CompetitionCriteria) ([]models.Competition, error) {
	f.lastCrit = c
	return f.competitions, f.err
}

func (f *fakeCompetitionRepo) FindCompetitionByID(_ *gorm.DB, id string) (*models.Competition, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.competitions {
		if f.competitions[i].ID == id {
			return &f.competitions[i], nil
		}
	}
	return nil, repositories.ErrCompetitionNotFound
}

func (f *fakeCompetitionRepo) CloseExpiredCompetitions(_ *gorm.DB, _ time.Time) (int64, error) {
	return f.closed, f.err
}

type fakeImmigrationRepo struct {
	posts []models.ImmigrationPost
	err   error
}

func (f *fakeImmigrationRepo) FindPosts(_ *gorm.DB, _ repositories.ImmigrationCriteria) ([]models.ImmigrationPost, error) {
	return f.posts, f.err
}

func (f *fakeImmigrationRepo) FindPostByID(_ *gorm.DB, id string) (*models.ImmigrationPost, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.posts {
		if f.posts[i].ID == id {
			return &f.posts[i], nil
		}
	}
	return nil, repositories.ErrImmigrationPostNotFound
}

type fakePublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *fakePublisher) Publish(topic string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

func day(n int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func base(id string, created time.Time) models.BaseModelWithDeleted {
	return models.BaseModelWithDeleted{BaseModel: models.BaseModel{ID: id, CreatedAt: created}}
}
