package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/print-shop/internal/api/http"
	"github.com/spec-kit/print-shop/internal/api/http/handlers"
	"github.com/spec-kit/print-shop/internal/auth"
	"github.com/spec-kit/print-shop/internal/config"
	"github.com/spec-kit/print-shop/internal/events"
	"github.com/spec-kit/print-shop/internal/observability"
	"github.com/spec-kit/print-shop/internal/persistence"
	"github.com/spec-kit/print-shop/internal/service"
	"github.com/spec-kit/print-shop/internal/store"
	"github.com/spec-kit/print-shop/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.App.Env != "development" && cfg.UsesDevSecrets() {
		logger.Warn("running with development fallback secrets; set AUTH_SESSION_SECRET and ADMIN_SETUP_SECRET")
	}

	dataDir := store.EnsureDataDir(cfg.Storage.DataDir, logger)
	logger.Info("using data directory", zap.String("path", dataDir))

	userStore := store.NewUserStore(dataDir, logger)
	orderStore := store.NewOrderStore(dataDir, logger)
	productStore := store.NewProductStore(dataDir, logger)
	categoryStore := store.NewCategoryStore(dataDir, logger)
	settingsStore := store.NewSettingsStore(dataDir, logger)

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserStore:  userStore,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	orderService := service.NewOrderService(orderStore, dispatcher, logger)
	catalogService := service.NewCatalogService(productStore, categoryStore, redis, logger)

	authMiddleware := auth.NewMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, handlers.HealthDependencies{
		Users:      userStore,
		Orders:     orderStore,
		Products:   productStore,
		Categories: categoryStore,
		Settings:   settingsStore,
		Redis:      redis,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Auth:           handlers.NewAuthHandler(authService),
		Orders:         handlers.NewOrdersHandler(orderService),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		Settings:       handlers.NewSettingsHandler(settingsStore),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
