package services

import (
	"tawzif_backend/internal/content"
	"tawzif_backend/internal/repositories"
)

// ServiceContainer содержит все сервисы приложения
type ServiceContainer struct {
	ListingService     ListingService
	CompetitionService CompetitionService
	ImmigrationService ImmigrationService
	ProfileService     ProfileService
	TestimonialService TestimonialService
	SitemapService     SitemapService
}

// Repositories - набор репозиториев, из которых собираются сервисы
type Repositories struct {
	Listings     repositories.ListingRepository
	Competitions repositories.CompetitionRepository
	Immigration  repositories.ImmigrationRepository
	Profiles     repositories.ProfileRepository
	Testimonials repositories.TestimonialRepository
}

func NewRepositories() Repositories {
	return Repositories{
		Listings:     repositories.NewListingRepository(),
		Competitions: repositories.NewCompetitionRepository(),
		Immigration:  repositories.NewImmigrationRepository(),
		Profiles:     repositories.NewProfileRepository(),
		Testimonials: repositories.NewTestimonialRepository(),
	}
}

func NewServiceContainer(repos Repositories, publisher Publisher, library *content.Library, baseURL string) *ServiceContainer {
	listings := NewListingService(repos.Listings, repos.Profiles, publisher)
	competitions := NewCompetitionService(repos.Competitions)
	immigration := NewImmigrationService(repos.Immigration)

	return &ServiceContainer{
		ListingService:     listings,
		CompetitionService: competitions,
		ImmigrationService: immigration,
		ProfileService:     NewProfileService(repos.Profiles, repos.Listings, publisher),
		TestimonialService: NewTestimonialService(repos.Testimonials),
		SitemapService:     NewSitemapService(baseURL, listings, competitions, immigration, library),
	}
}
