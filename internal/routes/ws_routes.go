package routes

import (
	"tawzif_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupWebSocketRoutes - подписки публичные: снимки содержат только то, что и так видно на странице
func SetupWebSocketRoutes(r *gin.Engine, h *handlers.AppHandlers) {
	wsGroup := r.Group("/ws")
	{
		wsGroup.GET("/listings/:id", h.RealtimeHandler.SubscribeListing)
		wsGroup.GET("/profiles/:id", h.RealtimeHandler.SubscribeProfile)
	}
}
