package routes

import (
	"tawzif_backend/internal/handlers"
	"tawzif_backend/internal/logger"
	"tawzif_backend/internal/middleware"
	"tawzif_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Middlewares - проверка токена, собранная в app
type Middlewares struct {
	Auth         gin.HandlerFunc
	OptionalAuth gin.HandlerFunc
}

// редактировать объявления и профиль могут только известные роли
var editorRoles = []models.UserRole{models.UserRoleUser, models.UserRoleAdmin}

// RegisterRoutes регистрирует все HTTP и WebSocket маршруты
func RegisterRoutes(r *gin.Engine, h *handlers.AppHandlers, mw Middlewares) {
	SetupPublicRoutes(r, h)

	api := r.Group("/api/v1")
	api.Use(mw.OptionalAuth)
	{
		api.GET("/visitor", h.ViewHandler.GetVisitor)

		listings := api.Group("/listings")
		{
			listings.GET("", h.ListingHandler.GetListings)
			listings.GET("/:id", h.ListingHandler.GetListing)
			listings.POST("/:id/views", h.ViewHandler.RecordView)
		}

		profiles := api.Group("/profiles")
		{
			profiles.GET("/:id", h.ProfileHandler.GetProfile)
			profiles.GET("/:id/listings", h.ProfileHandler.GetProfileListings)
		}

		api.GET("/categories", h.ContentHandler.GetCategories)
		api.GET("/articles", h.ContentHandler.GetArticles)
		api.GET("/articles/:slug", h.ContentHandler.GetArticle)
		api.GET("/testimonials", h.ContentHandler.GetTestimonials)

		api.GET("/competitions", h.CompetitionHandler.GetCompetitions)
		api.GET("/competitions/:id", h.CompetitionHandler.GetCompetition)
		api.GET("/immigration", h.CompetitionHandler.GetImmigrationPosts)
		api.GET("/immigration/:id", h.CompetitionHandler.GetImmigrationPost)

		cv := api.Group("/cv")
		{
			cv.GET("/templates", h.CVHandler.GetTemplates)
			cv.POST("/render", h.CVHandler.RenderPreview)
			cv.POST("/pdf", h.CVHandler.GenerateCVPDF)
		}
	}

	private := r.Group("/api/v1")
	private.Use(mw.Auth, middleware.RequireRoles(editorRoles...))
	{
		private.POST("/listings", h.ListingHandler.CreateListing)
		private.GET("/listings/:id/edit", h.ListingHandler.GetListingForEdit)
		private.PUT("/listings/:id", h.ListingHandler.UpdateListing)
		private.DELETE("/listings/:id", h.ListingHandler.DeleteListing)
		private.PUT("/profiles/me", h.ProfileHandler.UpdateMyProfile)
	}

	SetupWebSocketRoutes(r, h)
	logger.Info("HTTP routes registered")
}
