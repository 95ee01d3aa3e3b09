package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sokohub/rfq-backend/internal/config"
	"github.com/sokohub/rfq-backend/internal/db"
	httpHandlers "github.com/sokohub/rfq-backend/internal/http/handlers"
	httpRouter "github.com/sokohub/rfq-backend/internal/http/router"
	"github.com/sokohub/rfq-backend/internal/infrastructure/persistence"
	v2handler "github.com/sokohub/rfq-backend/internal/interface/http/handler"
	"github.com/sokohub/rfq-backend/internal/logger"
	"github.com/sokohub/rfq-backend/internal/repository"
	"github.com/sokohub/rfq-backend/internal/service"
	"github.com/sokohub/rfq-backend/internal/storage"
	quoteUsecase "github.com/sokohub/rfq-backend/internal/usecase/quote"
	"github.com/sokohub/rfq-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	mediaStorage, err := storage.NewMediaStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	vendorRepo := repository.NewVendorRepository(dbConn)
	rfqRepo := repository.NewRFQRepository(dbConn)
	quoteRepo := repository.NewQuoteRepository(dbConn)
	projectRepo := repository.NewProjectRepository(dbConn)
	mediaRepo := repository.NewMediaRepository(dbConn)
	notificationRepo := repository.NewNotificationRepository(dbConn)

	// Сервисы.
	authService := service.NewAuthService(userRepo, vendorRepo, tokenManager)
	notificationService := service.NewNotificationService(notificationRepo)
	rfqService := service.NewRFQService(rfqRepo)
	quoteService := service.NewQuoteService(rfqRepo, quoteRepo, notificationService)
	assignmentService := service.NewAssignmentService(rfqRepo, quoteRepo, projectRepo, notificationService)
	vendorService := service.NewVendorService(vendorRepo)
	seedService := service.NewSeedService(userRepo, vendorRepo, rfqRepo, quoteRepo)

	// Вебсокеты.
	hub := ws.NewHub(ctx)
	hub.SetNotificationSaver(ws.NewNotificationServiceAdapter(notificationService))
	go hub.Run()

	quoteService.SetHub(hub)
	assignmentService.SetHub(hub)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	rfqHandler := httpHandlers.NewRFQHandler(rfqService)
	quoteHandler := httpHandlers.NewQuoteHandler(quoteService)
	comparisonHandler := httpHandlers.NewComparisonHandler(quoteService, assignmentService)
	vendorHandler := httpHandlers.NewVendorHandler(vendorService)
	notificationHandler := httpHandlers.NewNotificationHandler(notificationService)
	mediaHandler := httpHandlers.NewMediaHandler(mediaRepo, mediaStorage)
	statsHandler := httpHandlers.NewStatsHandler(rfqRepo, quoteRepo)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)
	seedHandler := httpHandlers.NewSeedHandler(seedService)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)

	// Clean Architecture слой.
	rfqAdapter := persistence.NewRFQRepositoryAdapter(dbConn)
	quoteAdapter := persistence.NewQuoteRepositoryAdapter(dbConn)
	vendorAdapter := persistence.NewVendorRepositoryAdapter(dbConn)
	projectAdapter := persistence.NewProjectRepositoryAdapter(dbConn)

	v2QuoteHandler := v2handler.NewQuoteHandler(
		quoteUsecase.NewGetComparisonUseCase(rfqAdapter, quoteAdapter, vendorAdapter),
		quoteUsecase.NewUpdateQuoteStatusUseCase(quoteAdapter, rfqAdapter),
		quoteUsecase.NewAssignJobUseCase(quoteAdapter, rfqAdapter, projectAdapter),
	)

	// Роутер.
	engine := httpRouter.SetupRouter(
		cfg,
		authHandler,
		rfqHandler,
		quoteHandler,
		comparisonHandler,
		vendorHandler,
		notificationHandler,
		mediaHandler,
		statsHandler,
		healthHandler,
		seedHandler,
		wsHandler,
		tokenManager,
		v2QuoteHandler,
	)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
