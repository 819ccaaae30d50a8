package workers

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"tawzif_backend/internal/logger"
	"tawzif_backend/internal/services"
	"tawzif_backend/internal/sitemap"
	"tawzif_backend/internal/storage"

	"gorm.io/gorm"
)

const sitemapPrefix = "sitemaps/"

// SitemapWorker выгружает карты сайта в хранилище для раздачи через CDN
type SitemapWorker struct {
	db       *gorm.DB
	sitemaps services.SitemapService
	store    storage.Storage
	interval time.Duration
}

func NewSitemapWorker(db *gorm.DB, sitemaps services.SitemapService, store storage.Storage, interval time.Duration) *SitemapWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SitemapWorker{db: db, sitemaps: sitemaps, store: store, interval: interval}
}

func (w *SitemapWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *SitemapWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Sitemap worker stopped")
			return
		case <-ticker.C:
			if err := w.Export(ctx); err != nil {
				logger.WorkerLog("sitemap", "export", err)
			}
		}
	}
}

// Export пишет все категории, индекс - последним и только если категории записались
func (w *SitemapWorker) Export(ctx context.Context) error {
	db := w.db
	if db != nil {
		db = db.WithContext(ctx)
	}

	for _, name := range sitemap.Names {
		doc, err := w.sitemaps.Document(ctx, db, name)
		if err != nil {
			return fmt.Errorf("generate %s: %w", name, err)
		}
		if err := w.put(ctx, name+".xml", doc); err != nil {
			return err
		}
	}

	index, err := w.sitemaps.Index()
	if err != nil {
		return fmt.Errorf("generate index: %w", err)
	}
	if err := w.put(ctx, "index.xml", index); err != nil {
		return err
	}

	logger.WorkerLog("sitemap", "export", nil, "documents", len(sitemap.Names)+1)
	return nil
}

func (w *SitemapWorker) put(ctx context.Context, file string, body []byte) error {
	if err := w.store.Put(ctx, sitemapPrefix+file, bytes.NewReader(body), "application/xml"); err != nil {
		return fmt.Errorf("save %s: %w", file, err)
	}
	return nil
}
