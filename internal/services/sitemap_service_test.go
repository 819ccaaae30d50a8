package services

import (
	"context"
	"testing"

	"tawzif_backend/internal/content"
	"tawzif_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSitemapService(listings *fakeListingRepo, competitions *fakeCompetitionRepo) SitemapService {
	return NewSitemapService(
		"https://tawzif.example/",
		NewListingService(listings, &fakeProfileRepo{}, nil),
		NewCompetitionService(competitions),
		NewImmigrationService(&fakeImmigrationRepo{posts: []models.ImmigrationPost{{BaseModelWithDeleted: base("im-1", day(2))}}}),
		content.MustLoad(),
	)
}

func TestSitemapService_JobsOnlySeekingWorker(t *testing.T) {
	svc := newTestSitemapService(&fakeListingRepo{listings: moroccoFixture()}, &fakeCompetitionRepo{})

	doc, err := svc.Document(context.Background(), nil, "jobs")
	require.NoError(t, err)

	xml := string(doc)
	assert.Contains(t, xml, "<loc>https://tawzif.example/jobs/04</loc>")
	assert.Contains(t, xml, "<lastmod>2026-01-08</lastmod>")
	assert.NotContains(t, xml, "jobs/05", "seeking_job belongs to /workers")
	assert.Contains(t, xml, "<priority>0.9</priority>")
}

func TestSitemapService_Workers(t *testing.T) {
	svc := newTestSitemapService(&fakeListingRepo{listings: moroccoFixture()}, &fakeCompetitionRepo{})

	doc, err := svc.Document(context.Background(), nil, "workers")
	require.NoError(t, err)
	assert.Contains(t, string(doc), "<loc>https://tawzif.example/workers/05</loc>")
	assert.NotContains(t, string(doc), "workers/01")
}

func TestSitemapService_CompetitionsAndImmigration(t *testing.T) {
	svc := newTestSitemapService(&fakeListingRepo{}, &fakeCompetitionRepo{
		competitions: []models.Competition{{BaseModelWithDeleted: base("c-1", day(3))}},
	})

	doc, err := svc.Document(context.Background(), nil, "competitions")
	require.NoError(t, err)
	assert.Contains(t, string(doc), "https://tawzif.example/competitions/c-1")

	doc, err = svc.Document(context.Background(), nil, "immigration")
	require.NoError(t, err)
	assert.Contains(t, string(doc), "https://tawzif.example/immigration/im-1")
}

func TestSitemapService_StaticAndArticles(t *testing.T) {
	svc := newTestSitemapService(&fakeListingRepo{}, &fakeCompetitionRepo{})

	doc, err := svc.Document(context.Background(), nil, "static")
	require.NoError(t, err)
	assert.Contains(t, string(doc), "https://tawzif.example/about")

	doc, err = svc.Document(context.Background(), nil, "articles")
	require.NoError(t, err)
	for _, a := range content.MustLoad().Articles() {
		assert.Contains(t, string(doc), "https://tawzif.example/articles/"+a.Slug)
	}
}

func TestSitemapService_FetchFailureIsError(t *testing.T) {
	svc := newTestSitemapService(&fakeListingRepo{err: errDBDown}, &fakeCompetitionRepo{})

	doc, err := svc.Document(context.Background(), nil, "jobs")
	assert.Error(t, err)
	assert.Nil(t, doc)
}

func TestSitemapService_UnknownName(t *testing.T) {
	svc := newTestSitemapService(&fakeListingRepo{}, &fakeCompetitionRepo{})

	_, err := svc.Document(context.Background(), nil, "nope")
	assert.Error(t, err)
}

func TestSitemapService_IndexAndRobots(t *testing.T) {
	svc := newTestSitemapService(&fakeListingRepo{}, &fakeCompetitionRepo{})

	index, err := svc.Index()
	require.NoError(t, err)
	assert.Contains(t, string(index), "https://tawzif.example/sitemaps/jobs.xml")
	assert.Contains(t, svc.Robots(), "Sitemap: https://tawzif.example/sitemap.xml")
}
