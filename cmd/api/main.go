package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/sales-tracker/internal/api/http"
	"github.com/spec-kit/sales-tracker/internal/api/http/handlers"
	"github.com/spec-kit/sales-tracker/internal/auth"
	"github.com/spec-kit/sales-tracker/internal/cache"
	"github.com/spec-kit/sales-tracker/internal/config"
	"github.com/spec-kit/sales-tracker/internal/events"
	"github.com/spec-kit/sales-tracker/internal/observability"
	"github.com/spec-kit/sales-tracker/internal/persistence"
	"github.com/spec-kit/sales-tracker/internal/repository"
	"github.com/spec-kit/sales-tracker/internal/service"
	"github.com/spec-kit/sales-tracker/internal/worker"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var appCache cache.Cache
	var memCache *cache.MemoryCache
	if cfg.Cache.Backend == "redis" {
		appCache = cache.NewRedisCache(redis.Client, logger)
	} else {
		memCache = cache.NewMemoryCache(cfg.Cache.SweepInterval())
		appCache = memCache
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	interactionRepo := repository.NewInteractionRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Session, userRepo)
	userService := service.NewUserService(userRepo, dispatcher, cfg.Session.BcryptCost)
	customerService := service.NewCustomerService(service.CustomerDependencies{
		CustomerRepo: customerRepo,
		UserRepo:     userRepo,
		Cache:        appCache,
		Dispatcher:   dispatcher,
	})
	interactionService := service.NewInteractionService(service.InteractionDependencies{
		InteractionRepo: interactionRepo,
		Cache:           appCache,
		Dispatcher:      dispatcher,
	})
	statsService := service.NewStatsService(statsRepo)
	seedService := service.NewSeedService(service.SeedDependencies{
		UserRepo:        userRepo,
		CustomerRepo:    customerRepo,
		InteractionRepo: interactionRepo,
		Logger:          logger,
		BcryptCost:      cfg.Session.BcryptCost,
	})

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	cookies := auth.SessionCookies{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.SecureCookies,
	}
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), cookies, userRepo)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, cookies),
		Users:          handlers.NewUsersHandler(userService),
		Customers:      handlers.NewCustomersHandler(customerService),
		Interactions:   handlers.NewInteractionsHandler(interactionService, customerService),
		Stats:          handlers.NewStatsHandler(statsService),
		Seed:           handlers.NewSeedHandler(seedService),
		AuthMiddleware: authMiddleware,
		RouteGate:      auth.RouteGate(authService.TokenManager(), cookies),
		Metrics:        metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	if memCache != nil {
		memCache.Stop()
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
