package handlers

import (
	"errors"
	"net/http"
	"strings"

	"tawzif_backend/internal/logger"
	"tawzif_backend/internal/models"
	"tawzif_backend/internal/services"
	"tawzif_backend/internal/services/dto"
	"tawzif_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	noResultsAr = "لا توجد نتائج"
	noResultsEn = "No results found"
)

type ListingHandler struct {
	*BaseHandler
	listingService services.ListingService
}

func NewListingHandler(base *BaseHandler, listingService services.ListingService) *ListingHandler {
	return &ListingHandler{BaseHandler: base, listingService: listingService}
}

// GetListings - при недоступной БД отдаём пустой список с пометкой degraded, а не 503
func (h *ListingHandler) GetListings(c *gin.Context) {
	var filter dto.ListingFilter
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}
	filter.Normalize()

	page, err := h.listingService.GetListings(h.GetDB(c), filter)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeDataUnavailable) {
			logDegraded(c, err)
			resp := listingsResponse(c, &dto.ListingPage{}, filter.Pagination)
			resp.Degraded = true
			c.JSON(http.StatusOK, resp)
			return
		}
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, listingsResponse(c, page, filter.Pagination))
}

func logDegraded(c *gin.Context, err error) {
	logger.CtxWithError(c.Request.Context(), "data unavailable, serving empty state", err, "path", c.Request.URL.Path)
}

func listingsResponse(c *gin.Context, page *dto.ListingPage, p dto.Pagination) dto.ListingsResponse {
	listings := page.Listings
	if listings == nil {
		listings = []models.Listing{}
	}
	resp := dto.ListingsResponse{
		Listings: listings,
		Page:     p.Page,
		PageSize: p.PageSize,
		HasMore:  page.HasMore,
	}
	if len(listings) == 0 {
		resp.Message = noResultsMessage(c)
	}
	return resp
}

func noResultsMessage(c *gin.Context) string {
	if strings.HasPrefix(strings.ToLower(c.GetHeader("Accept-Language")), "en") {
		return noResultsEn
	}
	return noResultsAr
}

func (h *ListingHandler) GetListing(c *gin.Context) {
	id, ok := h.IDParam(c, "id", apperrors.ErrListingNotFound)
	if !ok {
		return
	}
	listing, err := h.listingService.GetListing(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// GetListingForEdit - чужое объявление не ошибка, а редирект на публичную страницу
func (h *ListingHandler) GetListingForEdit(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}
	id, ok := h.IDParam(c, "id", apperrors.ErrListingNotFound)
	if !ok {
		return
	}

	listing, err := h.listingService.GetListingForEdit(h.GetDB(c), id, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotListingOwner) && listing != nil {
			c.Redirect(http.StatusSeeOther, listing.PagePath())
			return
		}
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *ListingHandler) CreateListing(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.CreateListingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	listing, err := h.listingService.CreateListing(h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	logger.CtxInfo(c.Request.Context(), "listing created", "listing_id", listing.ID, "post_type", listing.PostType)
	c.JSON(http.StatusCreated, listing)
}

func (h *ListingHandler) UpdateListing(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	id, ok := h.IDParam(c, "id", apperrors.ErrListingNotFound)
	if !ok {
		return
	}

	var req dto.UpdateListingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	listing, err := h.listingService.UpdateListing(h.GetDB(c), id, actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *ListingHandler) DeleteListing(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	id, ok := h.IDParam(c, "id", apperrors.ErrListingNotFound)
	if !ok {
		return
	}

	if err := h.listingService.DeleteListing(h.GetDB(c), id, actor); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
