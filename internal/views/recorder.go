package views

import (
	"context"

	"tawzif_backend/internal/logger"

	"gorm.io/gorm"
)

type Outcome string

const (
	// просмотр засчитан, счётчик увеличен
	OutcomeRecorded Outcome = "recorded"
	// зритель уже был засчитан раньше
	OutcomeDuplicate Outcome = "duplicate"
	// защёлка страницы уже сработала, хранилище не вызывалось
	OutcomeLatched Outcome = "latched"
	// не выполнены предусловия (пре-рендер, нет зрителя, нет объявления)
	OutcomeSkipped Outcome = "skipped"
)

// Counter - операция хранилища "увеличить, если зритель ещё не засчитан"
type Counter interface {
	IncrementViewIfAbsent(db *gorm.DB, listingID, viewerID string) (bool, error)
}

// Notifier получает уведомление о засчитанном просмотре
type Notifier interface {
	ListingViewed(ctx context.Context, db *gorm.DB, listingID string)
}

type Request struct {
	ListingID      string
	PageInstanceID string
	UserID         string
	VisitorID      string
	Prerender      bool
}

// ViewerID - пользователь, если вошёл, иначе анонимный посетитель
func (r Request) ViewerID() string {
	if r.UserID != "" {
		return r.UserID
	}
	return r.VisitorID
}

type Recorder struct {
	counter  Counter
	latches  LatchStore
	notifier Notifier
}

func NewRecorder(counter Counter, latches LatchStore, notifier Notifier) *Recorder {
	return &Recorder{counter: counter, latches: latches, notifier: notifier}
}

// Record засчитывает просмотр. Ошибка хранилища возвращается для логов,
// посетителю её не показывают.
func (r *Recorder) Record(ctx context.Context, db *gorm.DB, req Request) (Outcome, error) {
	viewer := req.ViewerID()
	if req.ListingID == "" || req.Prerender || viewer == "" {
		return OutcomeSkipped, nil
	}

	// без id страницы защёлкой служит сам зритель
	pageInstance := req.PageInstanceID
	if pageInstance == "" {
		pageInstance = "viewer:" + viewer
	}

	fired, err := r.latches.Acquire(ctx, pageInstance, req.ListingID)
	if err != nil {
		// хранилище защёлок недоступно: уникальность пары всё равно держит БД
		logger.CtxWarn(ctx, "view latch store unavailable", "error", err.Error())
		fired = true
	}
	if !fired {
		return OutcomeLatched, nil
	}

	counted, err := r.counter.IncrementViewIfAbsent(db, req.ListingID, viewer)
	if err != nil {
		return OutcomeSkipped, err
	}
	if !counted {
		return OutcomeDuplicate, nil
	}

	if r.notifier != nil {
		r.notifier.ListingViewed(ctx, db, req.ListingID)
	}
	return OutcomeRecorded, nil
}
