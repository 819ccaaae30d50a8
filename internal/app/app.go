package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tawzif_backend/database"
	"tawzif_backend/internal/auth"
	"tawzif_backend/internal/clients/captcha"
	"tawzif_backend/internal/clients/pdf"
	"tawzif_backend/internal/config"
	"tawzif_backend/internal/content"
	"tawzif_backend/internal/cv"
	"tawzif_backend/internal/handlers"
	"tawzif_backend/internal/logger"
	"tawzif_backend/internal/middleware"
	"tawzif_backend/internal/realtime"
	"tawzif_backend/internal/routes"
	"tawzif_backend/internal/services"
	"tawzif_backend/internal/storage"
	"tawzif_backend/internal/validator"
	"tawzif_backend/internal/views"
	"tawzif_backend/internal/visitor"
	"tawzif_backend/internal/workers"
	"tawzif_backend/pkg/apperrors"
	"tawzif_backend/ws"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	apperrors.SetDebug(!cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	defer sqlDB.Close()

	// без БД сервер всё равно поднимается: списки отдают пустой результат
	if err = sqlDB.Ping(); err != nil {
		logger.Warn("Database unavailable at startup", "error", err)
	} else {
		logger.Info("Database connected")
		if cfg.Database.AutoMigrate {
			if err := database.AutoMigrate(gormDB); err != nil {
				logger.Fatal("Failed to migrate database", "error", err)
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := realtime.NewHub(16)
	if cfg.Messaging.NATSURL != "" {
		bridge, err := realtime.ConnectNATS(cfg.Messaging.NATSURL, hub)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", "error", err)
		}
		defer bridge.Close()
		logger.Info("NATS bridge connected", "url", cfg.Messaging.NATSURL)
	}

	store, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		AccountID:  cfg.Storage.AccountID,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	library := content.MustLoad()
	repos := services.NewRepositories()
	serviceContainer := services.NewServiceContainer(repos, hub, library, cfg.Site.BaseURL)

	latches, closeLatches := newLatchStore(cfg)
	defer closeLatches()
	recorder := views.NewRecorder(repos.Listings, latches, services.NewListingViewNotifier(repos.Listings, hub))

	wsManager := ws.NewManager(hub, cfg.Server.AllowedOrigins)
	go wsManager.Run(ctx)

	appHandlers := initializeHandlers(cfg, serviceContainer, library, recorder, wsManager, store)

	router := initializeGinRouter(cfg, gormDB, store)
	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	routes.RegisterRoutes(router, appHandlers, routes.Middlewares{
		Auth:         middleware.AuthMiddleware(verifier),
		OptionalAuth: middleware.OptionalAuthMiddleware(verifier),
	})

	startWorkers(ctx, cfg, gormDB, repos, serviceContainer, store)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(fmt.Sprintf("Server starting on %s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("Server stopped")
}

// newLatchStore - Redis, если задан URL, иначе память процесса
func newLatchStore(cfg *config.Config) (views.LatchStore, func()) {
	ttl := time.Duration(cfg.Views.LatchTTLMinutes) * time.Minute

	if cfg.Redis.URL == "" {
		return views.NewMemoryLatchStore(ttl, cfg.Views.MaxLatches), func() {}
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Fatal("Invalid redis url", "error", err)
	}
	client := redis.NewClient(opts)
	logger.Info("View latches stored in redis", "addr", opts.Addr)
	return views.NewRedisLatchStore(client, ttl), func() { _ = client.Close() }
}

func initializeHandlers(
	cfg *config.Config,
	svc *services.ServiceContainer,
	library *content.Library,
	recorder *views.Recorder,
	wsManager *ws.Manager,
	store storage.Storage,
) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	pdfClient := pdf.NewClient(pdf.Config{
		APIURL:  cfg.PDF.APIURL,
		APIKey:  cfg.PDF.APIKey,
		Timeout: time.Duration(cfg.PDF.TimeoutSeconds) * time.Second,
	})
	if !pdfClient.Configured() {
		logger.Warn("PDF render service is not configured", "key", "pdf.api_key")
	}

	captchaClient := captcha.NewClient(captcha.Config{
		SecretKey: cfg.Recaptcha.SecretKey,
		VerifyURL: cfg.Recaptcha.VerifyURL,
		MinScore:  cfg.Recaptcha.MinScore,
		Timeout:   time.Duration(cfg.Recaptcha.TimeoutSeconds) * time.Second,
	})

	var archive storage.Storage
	if cfg.CV.Archive {
		archive = store
	}

	return &handlers.AppHandlers{
		ListingHandler: handlers.NewListingHandler(baseHandler, svc.ListingService),
		ViewHandler: handlers.NewViewHandler(baseHandler, recorder, visitor.NewResolver(), handlers.CookieSettings{
			Domain: cfg.Site.CookieDomain,
			Secure: cfg.IsProduction(),
		}),
		ProfileHandler:     handlers.NewProfileHandler(baseHandler, svc.ProfileService, svc.ListingService),
		ContentHandler:     handlers.NewContentHandler(baseHandler, library, svc.TestimonialService),
		CompetitionHandler: handlers.NewCompetitionHandler(baseHandler, svc.CompetitionService, svc.ImmigrationService),
		SitemapHandler:     handlers.NewSitemapHandler(baseHandler, svc.SitemapService),
		CVHandler:          handlers.NewCVHandler(baseHandler, cv.MustAssembler(), pdfClient, archive),
		CaptchaHandler:     handlers.NewCaptchaHandler(captchaClient),
		RealtimeHandler:    handlers.NewRealtimeHandler(baseHandler, wsManager, svc.ListingService, svc.ProfileService),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB, store storage.Storage) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))

	// файлы локального хранилища (архив CV, выгрузка sitemap)
	if local, ok := store.(*storage.LocalStorage); ok {
		router.Static(cfg.Storage.BaseURL, local.Root())
	}
	return router
}

func startWorkers(ctx context.Context, cfg *config.Config, db *gorm.DB, repos services.Repositories, svc *services.ServiceContainer, store storage.Storage) {
	workers.NewCompetitionWorker(db, repos.Competitions,
		time.Duration(cfg.Workers.CompetitionIntervalMinutes)*time.Minute).Start(ctx)

	if cfg.Sitemap.ExportEnabled {
		workers.NewSitemapWorker(db, svc.SitemapService, store,
			time.Duration(cfg.Sitemap.IntervalMinutes)*time.Minute).Start(ctx)
	}
}
