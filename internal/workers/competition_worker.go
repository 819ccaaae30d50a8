package workers

import (
	"context"
	"time"

	"tawzif_backend/internal/logger"
	"tawzif_backend/internal/repositories"

	"gorm.io/gorm"
)

type CompetitionWorker struct {
	db       *gorm.DB
	repo     repositories.CompetitionRepository
	interval time.Duration
	now      func() time.Time
}

func NewCompetitionWorker(db *gorm.DB, repo repositories.CompetitionRepository, interval time.Duration) *CompetitionWorker {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &CompetitionWorker{db: db, repo: repo, interval: interval, now: time.Now}
}

// Start запускает закрытие конкурсов с прошедшим сроком подачи
func (w *CompetitionWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *CompetitionWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Competition worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

func (w *CompetitionWorker) RunOnce(ctx context.Context) int64 {
	db := w.db
	if db != nil {
		db = db.WithContext(ctx)
	}
	closed, err := w.repo.CloseExpiredCompetitions(db, w.now())
	if err != nil {
		logger.WorkerLog("competition", "close_expired", err)
		return 0
	}
	if closed > 0 {
		logger.WorkerLog("competition", "close_expired", nil, "closed", closed)
	}
	return closed
}
