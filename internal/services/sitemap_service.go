package services

import (
	"context"

	"tawzif_backend/internal/content"
	"tawzif_backend/internal/models"
	"tawzif_backend/internal/services/dto"
	"tawzif_backend/internal/sitemap"

	"gorm.io/gorm"
)

type SitemapService interface {
	Document(ctx context.Context, db *gorm.DB, name string) ([]byte, error)
	Index() ([]byte, error)
	Robots() string
}

type sitemapService struct {
	generator    *sitemap.Generator
	baseURL      string
	listings     ListingService
	competitions CompetitionService
	immigration  ImmigrationService
	library      *content.Library
}

func NewSitemapService(
	baseURL string,
	listings ListingService,
	competitions CompetitionService,
	immigration ImmigrationService,
	library *content.Library,
) SitemapService {
	return &sitemapService{
		generator:    sitemap.NewGenerator(baseURL),
		baseURL:      baseURL,
		listings:     listings,
		competitions: competitions,
		immigration:  immigration,
		library:      library,
	}
}

func (s *sitemapService) Document(ctx context.Context, db *gorm.DB, name string) ([]byte, error) {
	return s.generator.Generate(ctx, name, s.fetcher(db, name))
}

func (s *sitemapService) Index() ([]byte, error) {
	return s.generator.Index()
}

func (s *sitemapService) Robots() string {
	return sitemap.Robots(s.baseURL)
}

func (s *sitemapService) fetcher(db *gorm.DB, name string) sitemap.FetchFunc {
	switch name {
	case sitemap.Home:
		return func(context.Context) ([]sitemap.Entry, error) {
			return []sitemap.Entry{{Path: "/"}}, nil
		}
	case sitemap.Static:
		return func(context.Context) ([]sitemap.Entry, error) {
			entries := make([]sitemap.Entry, 0, len(sitemap.StaticPages))
			for _, page := range sitemap.StaticPages {
				entries = append(entries, sitemap.Entry{Path: page})
			}
			return entries, nil
		}
	case sitemap.Jobs:
		return s.listingEntries(db, models.PostTypeSeekingWorker)
	case sitemap.Workers:
		return s.listingEntries(db, models.PostTypeSeekingJob)
	case sitemap.Competitions:
		return func(context.Context) ([]sitemap.Entry, error) {
			competitions, err := s.competitions.GetCompetitions(db, dto.CompetitionFilter{FetchAll: true})
			if err != nil {
				return nil, err
			}
			entries := make([]sitemap.Entry, 0, len(competitions))
			for _, c := range competitions {
				entries = append(entries, sitemap.Entry{Path: sitemap.Competitions + "/" + c.ID, LastMod: c.CreatedAt})
			}
			return entries, nil
		}
	case sitemap.Immigration:
		return func(context.Context) ([]sitemap.Entry, error) {
			posts, err := s.immigration.GetPosts(db, dto.ImmigrationFilter{FetchAll: true})
			if err != nil {
				return nil, err
			}
			entries := make([]sitemap.Entry, 0, len(posts))
			for _, p := range posts {
				entries = append(entries, sitemap.Entry{Path: sitemap.Immigration + "/" + p.ID, LastMod: p.CreatedAt})
			}
			return entries, nil
		}
	case sitemap.Articles:
		return func(context.Context) ([]sitemap.Entry, error) {
			articles := s.library.Articles()
			entries := make([]sitemap.Entry, 0, len(articles))
			for _, a := range articles {
				entries = append(entries, sitemap.Entry{Path: sitemap.Articles + "/" + a.Slug, LastMod: a.PublishedAt()})
			}
			return entries, nil
		}
	}
	return func(context.Context) ([]sitemap.Entry, error) { return nil, nil }
}

func (s *sitemapService) listingEntries(db *gorm.DB, postType models.PostType) sitemap.FetchFunc {
	return func(context.Context) ([]sitemap.Entry, error) {
		page, err := s.listings.GetListings(db, dto.ListingFilter{PostType: string(postType), FetchAll: true})
		if err != nil {
			return nil, err
		}
		entries := make([]sitemap.Entry, 0, len(page.Listings))
		for _, l := range page.Listings {
			entries = append(entries, sitemap.Entry{Path: postType.Section() + "/" + l.ID, LastMod: l.CreatedAt})
		}
		return entries, nil
	}
}
