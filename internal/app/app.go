package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"collab_backend/internal/auth"
	"collab_backend/internal/config"
	"collab_backend/internal/email"
	"collab_backend/internal/handlers"
	"collab_backend/internal/instagram"
	"collab_backend/internal/logger"
	"collab_backend/internal/middleware"
	"collab_backend/internal/models"
	"collab_backend/internal/routes"
	"collab_backend/internal/services"
	"collab_backend/internal/storage"
	"collab_backend/internal/validator"
	"collab_backend/internal/workers"
	"collab_backend/pkg/apperrors"
	"collab_backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 15 * time.Second

// Components - внешние зависимости роутера. Тесты подставляют свои.
type Components struct {
	Email     email.Provider
	Storage   storage.Storage
	Instagram services.InstagramAuthenticator
	Hub       *ws.Hub
}

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	apperrors.Debug = !cfg.IsProduction()
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Connecting to database...")
	gormDB, err := openDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := gormDB.AutoMigrate(models.AllModels()...); err != nil {
			logger.Fatal("AutoMigrate failed", "error", err)
		}
		logger.Info("Schema migrated")
	}

	comps, err := buildComponents(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize components", "error", err)
	}
	defer comps.Email.Close()

	go comps.Hub.Run()
	defer comps.Hub.Stop()

	ginRouter, container := SetupRouter(cfg, gormDB, comps)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := container.AuthService.SeedFirstAdmin(ctx, gormDB, cfg.Admin.FirstEmail, cfg.Admin.FirstPassword); err != nil {
		// без админа сервер не запускаем
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	if minutes := cfg.Workers.DeadlineCheckMinutes; minutes > 0 {
		workers.NewDraftDeadlineWorker(gormDB, container.Notifier, time.Duration(minutes)*time.Minute).Start(ctx)
		logger.Info("Draft deadline worker started", "interval_minutes", minutes)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("Server stopped")
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.IsProduction() {
		logLevel = gormlogger.Error
	}
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get *sql.DB from GORM: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("database unavailable: %w", err)
	}
	return gormDB, nil
}

func buildComponents(cfg *config.Config) (Components, error) {
	storageInstance, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		return Components{}, fmt.Errorf("storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	emailProvider, err := email.NewProvider(cfg.Email)
	if err != nil {
		return Components{}, fmt.Errorf("email: %w", err)
	}
	if err := emailProvider.Validate(); err != nil {
		return Components{}, fmt.Errorf("email: %w", err)
	}
	logger.Info("Email provider initialized", "provider", cfg.Email.Provider)

	return Components{
		Email:     emailProvider,
		Storage:   storageInstance,
		Instagram: instagram.NewClient(cfg.Instagram),
		Hub:       ws.NewHub(),
	}, nil
}

// SetupRouter собирает сервисы, хэндлеры и маршруты.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, comps Components) (*gin.Engine, *services.ServiceContainer) {
	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)

	// 1. Сервисы
	container := services.NewServiceContainer(services.Dependencies{
		Config:    cfg,
		Tokens:    tokens,
		Email:     comps.Email,
		Storage:   comps.Storage,
		Instagram: comps.Instagram,
		Events:    comps.Hub,
	})

	// 2. Хэндлеры
	appHandlers := initializeHandlers(cfg, container, tokens)

	// 3. WebSocket
	wsHandler := ws.NewWebSocketHandler(comps.Hub, cfg.Server.CORSOrigins)

	// 4. Gin
	ginRouter := initializeGinRouter(cfg, gormDB)

	// 5. Маршруты
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler, tokens, cfg.JWT.CookieName, !cfg.IsProduction())

	return ginRouter, container
}

func initializeHandlers(cfg *config.Config, container *services.ServiceContainer, tokens *auth.TokenManager) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	cookie := handlers.SessionCookie{
		Name:   cfg.JWT.CookieName,
		Domain: cfg.JWT.CookieDomain,
		Secure: cfg.IsProduction(),
		TTL:    tokens.TTL(),
	}

	return &handlers.AppHandlers{
		AuthHandler:       handlers.NewAuthHandler(baseHandler, container.AuthService, cookie),
		InfluencerHandler: handlers.NewInfluencerHandler(baseHandler, container.ProfileService),
		CampaignHandler:   handlers.NewCampaignHandler(baseHandler, container.CampaignService),
		DiscoveryHandler:  handlers.NewDiscoveryHandler(baseHandler, container.DiscoveryService),
		DraftHandler:      handlers.NewDraftHandler(baseHandler, container.DraftService),
		AdminHandler:      handlers.NewAdminHandler(baseHandler, container.AdminService),
		UploadHandler:     handlers.NewUploadHandler(baseHandler, container.UploadService, cfg.Upload.MaxSize),
		HealthHandler:     handlers.NewHealthHandler(baseHandler),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.DBMiddleware(db))

	// локальное хранилище раздаем сами; S3/R2 отдают файлы по своим URL
	if cfg.Storage.Type == "local" && strings.HasPrefix(cfg.Storage.BaseURL, "/") {
		router.Static(cfg.Storage.BaseURL, cfg.Storage.BasePath)
	}
	return router
}
