package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/creapolis/helpdesk-service/internal/api/http"
	"github.com/creapolis/helpdesk-service/internal/api/http/handlers"
	"github.com/creapolis/helpdesk-service/internal/auth"
	"github.com/creapolis/helpdesk-service/internal/config"
	"github.com/creapolis/helpdesk-service/internal/events"
	"github.com/creapolis/helpdesk-service/internal/observability"
	"github.com/creapolis/helpdesk-service/internal/persistence"
	"github.com/creapolis/helpdesk-service/internal/realtime"
	"github.com/creapolis/helpdesk-service/internal/repository"
	"github.com/creapolis/helpdesk-service/internal/service"
	"github.com/creapolis/helpdesk-service/internal/worker"
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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	historyRepo := repository.NewHistoryRepository(pool)
	assetRepo := repository.NewAssetRepository(pool)
	articleRepo := repository.NewArticleRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	feed := realtime.NewRedisFeed(redis, logger)
	publisher := realtime.NewPublisher(feed, logger)
	publisher.Register(dispatcher)

	authService := service.NewAuthService(cfg.Auth, userRepo)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  ticketRepo,
		CommentRepo: commentRepo,
		HistoryRepo: historyRepo,
		UserRepo:    userRepo,
		AssetRepo:   assetRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	knowledgeService := service.NewKnowledgeService(articleRepo)
	dashboardService := service.NewDashboardService(ticketRepo, assetRepo, userRepo)
	settingsService := service.NewSettingsService(settingsRepo)

	worker.StartNotificationWorker(dispatcher, logger, cfg.Notification)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Users:          handlers.NewUsersHandler(userService),
		Knowledge:      handlers.NewKnowledgeHandler(knowledgeService),
		Settings:       handlers.NewSettingsHandler(settingsService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		Assets:         handlers.NewAssetsHandler(assetRepo),
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
