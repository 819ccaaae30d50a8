package handlers

import (
	"tawzif_backend/internal/logger"
	"tawzif_backend/internal/realtime"
	"tawzif_backend/internal/services"
	"tawzif_backend/pkg/apperrors"
	"tawzif_backend/ws"

	"github.com/gin-gonic/gin"
)

// RealtimeHandler - websocket-подписки на снимки объявлений и профилей.
// Сущность проверяется до апгрейда, чтобы 404 ушёл обычным ответом.
type RealtimeHandler struct {
	*BaseHandler
	manager        *ws.Manager
	listingService services.ListingService
	profileService services.ProfileService
}

func NewRealtimeHandler(base *BaseHandler, manager *ws.Manager, listingService services.ListingService, profileService services.ProfileService) *RealtimeHandler {
	return &RealtimeHandler{
		BaseHandler:    base,
		manager:        manager,
		listingService: listingService,
		profileService: profileService,
	}
}

func (h *RealtimeHandler) SubscribeListing(c *gin.Context) {
	id, ok := h.IDParam(c, "id", apperrors.ErrListingNotFound)
	if !ok {
		return
	}
	listing, err := h.listingService.GetListing(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.serve(c, realtime.ListingTopic(id), listing)
}

func (h *RealtimeHandler) SubscribeProfile(c *gin.Context) {
	id, ok := h.IDParam(c, "id", apperrors.ErrProfileNotFound)
	if !ok {
		return
	}
	profile, err := h.profileService.GetProfile(h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.serve(c, realtime.ProfileTopic(id), profile)
}

func (h *RealtimeHandler) serve(c *gin.Context, topic string, current interface{}) {
	if err := h.manager.Serve(c, topic, current); err != nil {
		logger.CtxWarn(c.Request.Context(), "websocket subscription failed", "topic", topic, "error", err.Error())
	}
}
