package repositories

import (
	"os"
	"testing"

	"tawzif_backend/database"
	"tawzif_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// dryRunDB - gorm без соединения: запросы только собираются, SQL лежит в Statement
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=tawzif dbname=tawzif sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               gormlogger.Discard,
	})
	require.NoError(t, err)
	return db
}

// openTestDB подключается к DATABASE_URL и мигрирует схему.
// Без переменной тест пропускается: в CI без Postgres гоняются только unit-тесты.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL не задан, пропускаем тест с Postgres")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err, "не удалось подключиться к тестовой БД")
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// createListing создаёт объявление и удаляет его вместе с просмотрами после теста
func createListing(t *testing.T, db *gorm.DB) *models.Listing {
	t.Helper()
	listing := &models.Listing{
		PostType: models.PostTypeSeekingWorker,
		Title:    "Go developer",
		Country:  "Morocco",
		OwnerID:  uuid.NewString(),
	}
	require.NoError(t, db.Create(listing).Error)

	t.Cleanup(func() {
		db.Where("listing_id = ?", listing.ID).Delete(&models.ListingView{})
		db.Unscoped().Where("id = ?", listing.ID).Delete(&models.Listing{})
	})
	return listing
}
