package handlers

import (
	"net/http"

	"tawzif_backend/internal/services"
	"tawzif_backend/internal/services/dto"
	"tawzif_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
	listingService services.ListingService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService, listingService services.ListingService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
		listingService: listingService,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := h.IDParam(c, "id", apperrors.ErrProfileNotFound)
	if !ok {
		return
	}
	profile, err := h.profileService.GetProfile(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateMyProfile(h.GetDB(c), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetProfileListings - объявления владельца для страницы профиля
func (h *ProfileHandler) GetProfileListings(c *gin.Context) {
	ownerID, ok := h.IDParam(c, "id", apperrors.ErrProfileNotFound)
	if !ok {
		return
	}

	var filter dto.ListingFilter
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}
	filter.OwnerID = ownerID
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
