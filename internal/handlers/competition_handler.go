package handlers

import (
	"net/http"

	"tawzif_backend/internal/models"
	"tawzif_backend/internal/services"
	"tawzif_backend/internal/services/dto"
	"tawzif_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// CompetitionHandler - конкурсы и программы иммиграции, только чтение
type CompetitionHandler struct {
	*BaseHandler
	competitionService services.CompetitionService
	immigrationService services.ImmigrationService
}

func NewCompetitionHandler(base *BaseHandler, competitionService services.CompetitionService, immigrationService services.ImmigrationService) *CompetitionHandler {
	return &CompetitionHandler{
		BaseHandler:        base,
		competitionService: competitionService,
		immigrationService: immigrationService,
	}
}

func (h *CompetitionHandler) GetCompetitions(c *gin.Context) {
	var filter dto.CompetitionFilter
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}
	filter.Normalize()

	competitions, err := h.competitionService.GetCompetitions(h.GetDB(c), filter)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeDataUnavailable) {
			logDegraded(c, err)
			c.JSON(http.StatusOK, pagedResponse(c, []models.Competition{}, 0, filter.Pagination, true))
			return
		}
		h.HandleServiceError(c, err)
		return
	}
	if competitions == nil {
		competitions = []models.Competition{}
	}
	c.JSON(http.StatusOK, pagedResponse(c, competitions, len(competitions), filter.Pagination, false))
}

func (h *CompetitionHandler) GetCompetition(c *gin.Context) {
	id, ok := h.IDParam(c, "id", apperrors.ErrCompetitionNotFound)
	if !ok {
		return
	}
	competition, err := h.competitionService.GetCompetition(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, competition)
}

func (h *CompetitionHandler) GetImmigrationPosts(c *gin.Context) {
	var filter dto.ImmigrationFilter
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}
	filter.Normalize()

	posts, err := h.immigrationService.GetPosts(h.GetDB(c), filter)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeDataUnavailable) {
			logDegraded(c, err)
			c.JSON(http.StatusOK, pagedResponse(c, []models.ImmigrationPost{}, 0, filter.Pagination, true))
			return
		}
		h.HandleServiceError(c, err)
		return
	}
	if posts == nil {
		posts = []models.ImmigrationPost{}
	}
	c.JSON(http.StatusOK, pagedResponse(c, posts, len(posts), filter.Pagination, false))
}

func (h *CompetitionHandler) GetImmigrationPost(c *gin.Context) {
	id, ok := h.IDParam(c, "id", apperrors.ErrImmigrationPostNotFound)
	if !ok {
		return
	}
	post, err := h.immigrationService.GetPost(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func pagedResponse(c *gin.Context, data interface{}, n int, p dto.Pagination, degraded bool) gin.H {
	resp := gin.H{
		"data":      data,
		"page":      p.Page,
		"page_size": p.PageSize,
		"has_more":  hasMore(n, p),
	}
	if n == 0 {
		resp["message"] = noResultsMessage(c)
	}
	if degraded {
		resp["degraded"] = true
	}
	return resp
}
