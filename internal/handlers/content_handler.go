package handlers

import (
	"net/http"

	"tawzif_backend/internal/content"
	"tawzif_backend/internal/models"
	"tawzif_backend/internal/services"
	"tawzif_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// ContentHandler - справочники и статьи (встроенные данные) плюс отзывы из БД
type ContentHandler struct {
	*BaseHandler
	library            *content.Library
	testimonialService services.TestimonialService
}

func NewContentHandler(base *BaseHandler, library *content.Library, testimonialService services.TestimonialService) *ContentHandler {
	return &ContentHandler{BaseHandler: base, library: library, testimonialService: testimonialService}
}

func (h *ContentHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.library.Categories()})
}

func (h *ContentHandler) GetArticles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"articles": h.library.Articles()})
}

func (h *ContentHandler) GetArticle(c *gin.Context) {
	article, ok := h.library.Article(c.Param("slug"))
	if !ok {
		h.HandleServiceError(c, apperrors.ErrArticleNotFound)
		return
	}
	c.JSON(http.StatusOK, article)
}

func (h *ContentHandler) GetTestimonials(c *gin.Context) {
	testimonials, err := h.testimonialService.GetTestimonials(h.GetDB(c), ParseQueryInt(c, "limit", 0))
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeDataUnavailable) {
			logDegraded(c, err)
			c.JSON(http.StatusOK, gin.H{"testimonials": []models.Testimonial{}, "degraded": true})
			return
		}
		h.HandleServiceError(c, err)
		return
	}
	if testimonials == nil {
		testimonials = []models.Testimonial{}
	}
	c.JSON(http.StatusOK, gin.H{"testimonials": testimonials})
}
