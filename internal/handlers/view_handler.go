package handlers

import (
	"net/http"

	"tawzif_backend/internal/logger"
	"tawzif_backend/internal/services/dto"
	"tawzif_backend/internal/views"
	"tawzif_backend/internal/visitor"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const PrerenderHeader = "X-Prerender"

// CookieSettings - параметры cookie посетителя
type CookieSettings struct {
	Domain string
	Secure bool
}

type ViewHandler struct {
	*BaseHandler
	recorder *views.Recorder
	resolver *visitor.Resolver
	cookies  CookieSettings
}

func NewViewHandler(base *BaseHandler, recorder *views.Recorder, resolver *visitor.Resolver, cookies CookieSettings) *ViewHandler {
	return &ViewHandler{BaseHandler: base, recorder: recorder, resolver: resolver, cookies: cookies}
}

// RecordView всегда отвечает 202: ошибки хранилища посетителю не показываем
func (h *ViewHandler) RecordView(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		logger.CtxWarn(c.Request.Context(), "view not recorded: malformed listing id", "listing_id", c.Param("id"))
		c.JSON(http.StatusAccepted, gin.H{"recorded": false})
		return
	}

	var req dto.RecordViewRequest
	if c.Request.ContentLength != 0 {
		if !h.BindAndValidate_JSON(c, &req) {
			return
		}
	}

	prerender := req.Prerender || c.GetHeader(PrerenderHeader) != ""
	visitorID := req.VisitorID
	if visitorID == "" && !prerender {
		visitorID, _ = h.resolver.Resolve(h.cookieStore(c))
	}

	ctx := logger.WithVisitorID(c.Request.Context(), visitorID)
	outcome, err := h.recorder.Record(ctx, h.GetDB(c), views.Request{
		ListingID:      listingID.String(),
		PageInstanceID: req.PageInstanceID,
		UserID:         h.OptionalUserID(c),
		VisitorID:      visitorID,
		Prerender:      prerender,
	})
	if err != nil {
		logger.CtxWarn(ctx, "view not recorded", "listing_id", listingID.String(), "error", err.Error())
	}

	c.JSON(http.StatusAccepted, gin.H{"recorded": outcome == views.OutcomeRecorded})
}

// GetVisitor выдаёт (или подтверждает) идентификатор посетителя
func (h *ViewHandler) GetVisitor(c *gin.Context) {
	var store visitor.Store
	if c.GetHeader(PrerenderHeader) == "" {
		store = h.cookieStore(c)
	}

	id, ok := h.resolver.Resolve(store)
	c.JSON(http.StatusOK, gin.H{"visitor_id": id, "persisted": ok})
}

func (h *ViewHandler) cookieStore(c *gin.Context) *visitor.CookieStore {
	return visitor.NewCookieStore(c, h.cookies.Domain, h.cookies.Secure)
}
