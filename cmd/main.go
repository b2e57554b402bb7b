package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/icedout/league-system/config"
	"github.com/icedout/league-system/db"
	"github.com/icedout/league-system/handlers"
	"github.com/icedout/league-system/league"
	"github.com/icedout/league-system/models"
	"github.com/icedout/league-system/repositories"
	api "github.com/icedout/league-system/routes"
	"github.com/icedout/league-system/services"
	"github.com/icedout/league-system/storage"
)

const poolCheckInterval = 5 * time.Minute // Как часто проверяем пул текущей недели

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Публикация снапшотов пулов в Cloudflare R2 (опционально)
	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("Cloudflare R2 is not configured, pool snapshots disabled")
	}

	// Инициализация WebSocket Hub
	wsHub := league.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	pickRepo := repositories.NewPostgresPickRepository(dbConn)
	poolRepo := repositories.NewPostgresPoolRepository(dbConn)
	settingsRepo := repositories.NewPostgresSettingsRepository(dbConn)
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	logger.Info("Repositories initialized")

	// Инициализация сервисов. Генераторы случайности не потокобезопасны,
	// поэтому у каждого сервиса свой экземпляр: пул гоняется из планировщика,
	// анонсы — из HTTP-горутин.
	poolRng := rand.New(rand.NewSource(time.Now().UnixNano()))
	announceRng := rand.New(rand.NewSource(time.Now().UnixNano() + 1))
	hubNotifier := league.NewHubNotifier(wsHub)

	authService := services.NewAuthService(userRepo)
	poolService := services.NewPoolService(
		poolRepo,
		uploader,
		models.WorldMapList,
		models.CountryMapList,
		models.DefaultTierCounts,
		poolRng,
		logger,
	)
	settingsService := services.NewSettingsService(settingsRepo, poolService, logger)
	negotiationService := services.NewNegotiationService(
		matchRepo,
		pickRepo,
		hubNotifier,
		hubNotifier,
		models.WorldMapList,
		announceRng,
		logger,
	)
	logger.Info("Services initialized")

	// Восстановление состояния переговоров из базы
	if err := negotiationService.Load(context.Background()); err != nil {
		logger.Error("failed to load negotiation state", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Negotiation state loaded")

	// Пул текущей недели должен существовать до первой подачи пиков.
	// Проверка идемпотентна, поэтому гоняем её и на старте, и по таймеру.
	go func() {
		ticker := time.NewTicker(poolCheckInterval)
		defer ticker.Stop()
		logger.Info("Weekly pool scheduler started", slog.Duration("interval", poolCheckInterval))

		ensure := func() {
			week, err := settingsService.CurrentWeek(context.Background())
			if err != nil {
				logger.Error("Scheduler: failed to read current week", slog.Any("error", err))
				return
			}
			if _, err := poolService.EnsureWeekPool(context.Background(), week); err != nil {
				logger.Error("Scheduler: failed to ensure week pool",
					slog.Int("week", week),
					slog.Any("error", err))
			}
		}

		ensure()
		for range ticker.C {
			ensure()
		}
	}()

	// Инициализация обработчиков HTTP
	h := api.Handlers{
		Auth:      handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Pick:      handlers.NewPickHandler(negotiationService, settingsService),
		Schedule:  handlers.NewScheduleHandler(negotiationService, poolService, settingsService),
		WebSocket: handlers.NewWebSocketHandler(wsHub, logger),
	}
	logger.Info("HTTP handlers initialized")

	router := api.SetupRoutes(h, cfg.JWTSecretKey)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		}
		logger.Info("server stopped")
	}
}
