package services

import (
	"testing"
	"time"

	"tawzif_backend/internal/models"
	"tawzif_backend/internal/services/dto"
	"tawzif_backend/pkg/apperrors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTestimonialRepo struct {
	testimonials []models.Testimonial
	lastLimit    int
	err          error
}

func (f *fakeTestimonialRepo) FindRecentTestimonials(_ *gorm.DB, limit int) ([]models.Testimonial, error) {
	f.lastLimit = limit
	return f.testimonials, f.err
}

func TestCompetitionService(t *testing.T) {
	repo := &fakeCompetitionRepo{competitions: []models.Competition{{BaseModelWithDeleted: base("c-1", day(1)), Title: "مباراة توظيف"}}}
	svc := NewCompetitionService(repo)

	list, err := svc.GetCompetitions(nil, dto.CompetitionFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	c, err := svc.GetCompetition(nil, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "مباراة توظيف", c.Title)

	_, err = svc.GetCompetition(nil, "missing")
	assert.ErrorIs(t, err, apperrors.ErrCompetitionNotFound)

	repo.err = errDBDown
	_, err = svc.GetCompetitions(nil, dto.CompetitionFilter{})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeDataUnavailable))
}

func TestCompetitionService_ClosesExpiredOnRead(t *testing.T) {
	yesterday := day(1)
	nextWeek := day(9)
	repo := &fakeCompetitionRepo{competitions: []models.Competition{
		{BaseModelWithDeleted: base("c-old", day(0)), Status: models.CompetitionStatusOpen, Deadline: &yesterday},
		{BaseModelWithDeleted: base("c-new", day(0)), Status: models.CompetitionStatusOpen, Deadline: &nextWeek},
	}}
	svc := &competitionService{competitionRepo: repo, now: func() time.Time { return day(2) }}

	all, err := svc.GetCompetitions(nil, dto.CompetitionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, models.CompetitionStatusClosed, all[0].Status)
	assert.Equal(t, models.CompetitionStatusOpen, all[1].Status)

	open, err := svc.GetCompetitions(nil, dto.CompetitionFilter{Status: "open"})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "c-new", open[0].ID)
	assert.Equal(t, models.CompetitionStatusOpen, repo.lastCrit.Status)
	assert.Equal(t, day(2), repo.lastCrit.Now)

	c, err := svc.GetCompetition(nil, "c-old")
	require.NoError(t, err)
	assert.Equal(t, models.CompetitionStatusClosed, c.Status)
}

func TestImmigrationService(t *testing.T) {
	svc := NewImmigrationService(&fakeImmigrationRepo{posts: []models.ImmigrationPost{{BaseModelWithDeleted: base("im-1", day(1))}}})

	_, err := svc.GetPost(nil, "missing")
	assert.ErrorIs(t, err, apperrors.ErrImmigrationPostNotFound)

	p, err := svc.GetPost(nil, "im-1")
	require.NoError(t, err)
	assert.Equal(t, "im-1", p.ID)
}

func TestTestimonialService_ClampsLimitAndRating(t *testing.T) {
	repo := &fakeTestimonialRepo{testimonials: []models.Testimonial{{Rating: 9}, {Rating: -2}, {Rating: 4}}}
	svc := NewTestimonialService(repo)

	got, err := svc.GetTestimonials(nil, 500)
	require.NoError(t, err)
	assert.Equal(t, maxTestimonials, repo.lastLimit)
	assert.Equal(t, 5, got[0].Rating)
	assert.Equal(t, 0, got[1].Rating)
	assert.Equal(t, 4, got[2].Rating)
}

func TestProfileService_GetProfile(t *testing.T) {
	svc := NewProfileService(&fakeProfileRepo{profiles: map[string]*models.Profile{"u1": {ID: "u1", DisplayName: "سارة"}}}, &fakeListingRepo{}, nil)

	p, err := svc.GetProfile(nil, "u1")
	require.NoError(t, err)
	assert.Equal(t, "سارة", p.DisplayName)

	_, err = svc.GetProfile(nil, "u2")
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}

// Postgres отвечает 22P02 на id, который не разбирается как uuid
func TestGetByMalformedID_IsNotFound(t *testing.T) {
	for name, dbErr := range map[string]error{
		"pq":  &pq.Error{Code: "22P02", Message: `invalid input syntax for type uuid: "job-1"`},
		"pgx": &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "job-1"`},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := NewListingService(&fakeListingRepo{err: dbErr}, &fakeProfileRepo{}, nil).GetListing(nil, "job-1")
			assert.ErrorIs(t, err, apperrors.ErrListingNotFound)
			assert.False(t, apperrors.HasCode(err, apperrors.CodeDataUnavailable))

			_, err = NewCompetitionService(&fakeCompetitionRepo{err: dbErr}).GetCompetition(nil, "c-404")
			assert.ErrorIs(t, err, apperrors.ErrCompetitionNotFound)

			_, err = NewImmigrationService(&fakeImmigrationRepo{err: dbErr}).GetPost(nil, "im-404")
			assert.ErrorIs(t, err, apperrors.ErrImmigrationPostNotFound)

			_, err = NewProfileService(&fakeProfileRepo{err: dbErr}, &fakeListingRepo{}, nil).GetProfile(nil, "owner")
			assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
		})
	}
}

func TestGetListing_OtherStoreErrorsStayUnavailable(t *testing.T) {
	svc := NewListingService(&fakeListingRepo{err: &pq.Error{Code: "57P01"}}, &fakeProfileRepo{}, nil)

	_, err := svc.GetListing(nil, "0b6f3c2e-1d4a-4e8b-9a51-7f2c3d4e5f60")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeDataUnavailable))
}
