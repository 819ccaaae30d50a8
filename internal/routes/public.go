package routes

import (
	"tawzif_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupPublicRoutes - маршруты вне /api/v1: карты сайта и прокси, которые дергает фронтенд
func SetupPublicRoutes(r *gin.Engine, h *handlers.AppHandlers) {
	r.GET("/sitemap.xml", h.SitemapHandler.GetIndex)
	r.GET("/sitemaps/:file", h.SitemapHandler.GetSitemap)
	r.GET("/robots.txt", h.SitemapHandler.GetRobots)

	r.POST("/api/generate-pdf", h.CVHandler.GeneratePDF)
	r.POST("/api/recaptcha", h.CaptchaHandler.Verify)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
