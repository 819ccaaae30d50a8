package handlers

import (
	"net/http"
	"strings"

	"tawzif_backend/internal/logger"
	"tawzif_backend/internal/services"
	"tawzif_backend/internal/sitemap"

	"github.com/gin-gonic/gin"
)

// SitemapHandler отдаёт XML как есть: краулерам не нужен JSON с ошибкой
type SitemapHandler struct {
	*BaseHandler
	sitemapService services.SitemapService
}

func NewSitemapHandler(base *BaseHandler, sitemapService services.SitemapService) *SitemapHandler {
	return &SitemapHandler{BaseHandler: base, sitemapService: sitemapService}
}

func (h *SitemapHandler) GetIndex(c *gin.Context) {
	doc, err := h.sitemapService.Index()
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "sitemap index failed", err)
		c.String(http.StatusInternalServerError, "Error generating sitemap index: %v", err)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", doc)
}

// GetSitemap - /sitemaps/:file, где file = "<name>.xml"
func (h *SitemapHandler) GetSitemap(c *gin.Context) {
	name := strings.TrimSuffix(c.Param("file"), ".xml")
	if !sitemap.IsKnown(name) {
		c.String(http.StatusNotFound, "Unknown sitemap: %s", name)
		return
	}

	doc, err := h.sitemapService.Document(c.Request.Context(), h.GetDB(c), name)
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "sitemap generation failed", err, "sitemap", name)
		c.String(http.StatusInternalServerError, "Error generating sitemap %s: %v", name, err)
		return
	}
	c.Data(http.StatusOK, "text/xml; charset=utf-8", doc)
}

func (h *SitemapHandler) GetRobots(c *gin.Context) {
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(h.sitemapService.Robots()))
}
