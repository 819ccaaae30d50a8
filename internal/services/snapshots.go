package services

import (
	"context"

	"tawzif_backend/internal/logger"
	"tawzif_backend/internal/realtime"
	"tawzif_backend/internal/repositories"

	"gorm.io/gorm"
)

// Publisher - куда уходят снимки для websocket-подписчиков
type Publisher interface {
	Publish(topic string, v interface{}) error
}

func publishSnapshot(ctx context.Context, p Publisher, topic string, v interface{}) {
	if p == nil {
		return
	}
	if err := p.Publish(topic, v); err != nil {
		logger.CtxWarn(ctx, "failed to publish snapshot", "topic", topic, "error", err.Error())
	}
}

// dbContext - контекст запроса, привязанный к db (см. DBMiddleware)
func dbContext(db *gorm.DB) context.Context {
	if db != nil && db.Statement != nil && db.Statement.Context != nil {
		return db.Statement.Context
	}
	return context.Background()
}

// ListingViewNotifier публикует свежий снимок объявления после засчитанного просмотра
type ListingViewNotifier struct {
	listingRepo repositories.ListingRepository
	publisher   Publisher
}

func NewListingViewNotifier(listingRepo repositories.ListingRepository, publisher Publisher) *ListingViewNotifier {
	return &ListingViewNotifier{listingRepo: listingRepo, publisher: publisher}
}

func (n *ListingViewNotifier) ListingViewed(ctx context.Context, db *gorm.DB, listingID string) {
	listing, err := n.listingRepo.FindListingByID(db, listingID)
	if err != nil {
		logger.CtxWarn(ctx, "listing snapshot unavailable", "listing_id", listingID, "error", err.Error())
		return
	}
	publishSnapshot(ctx, n.publisher, realtime.ListingTopic(listingID), listing)
}
