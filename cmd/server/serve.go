package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/PawsProtect/service-welfare/internal/application"
	"github.com/PawsProtect/service-welfare/internal/config"
	"github.com/PawsProtect/service-welfare/internal/docstore"
	"github.com/PawsProtect/service-welfare/internal/events"
	"github.com/PawsProtect/service-welfare/internal/handler"
	"github.com/PawsProtect/service-welfare/internal/metrics"
	"github.com/PawsProtect/service-welfare/internal/platform/auth"
	"github.com/PawsProtect/service-welfare/internal/platform/database"
	"github.com/PawsProtect/service-welfare/internal/platform/health"
	"github.com/PawsProtect/service-welfare/internal/platform/kafka"
	"github.com/PawsProtect/service-welfare/internal/platform/logger"
	"github.com/PawsProtect/service-welfare/internal/platform/middleware"
	"github.com/PawsProtect/service-welfare/internal/repository"
	"github.com/PawsProtect/service-welfare/internal/seed"
	"github.com/PawsProtect/service-welfare/internal/storage"
)

func runServe(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("store", cfg.StoreDriver),
	)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, store, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	data, err := seed.Load(cfg.CatalogConfig.SeedFile)
	if err != nil {
		return fmt.Errorf("failed to load seed data: %w", err)
	}
	availability, err := repository.NewCachedAvailabilityProvider(data.Templates, cfg.CacheSize, log)
	if err != nil {
		return fmt.Errorf("failed to create availability cache: %w", err)
	}

	uploader, err := storage.NewOSUploader(cfg.UploadConfig.Dir, cfg.UploadConfig.BaseURL, cfg.UploadConfig.MaxBytes, log)
	if err != nil {
		return fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	collector := metrics.NewCollector(serviceName)
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, cfg.JWTConfig.Issuer, cfg.JWTConfig.AccessTTL)

	deps := application.Deps{
		Topic:   cfg.KafkaConfig.EventsTopic,
		Metrics: collector,
		Logger:  log,
	}
	if cfg.KafkaConfig.Enabled {
		producer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = producer.Close() }()
		deps.Publisher = producer
	}

	// Repositories
	users := repository.NewUserRepository(store)

	// Application services
	adoptionService := application.NewAdoptionService(data.Animals, repository.NewAdoptionRequestRepository(store), cfg.CatalogConfig.MaxAge, deps)
	vetService := application.NewVeterinaryService(data.Clinics, availability, repository.NewAppointmentRepository(store), deps)
	reportService := application.NewReportService(repository.NewReportRepository(store), users, uploader, deps)
	communityService := application.NewCommunityService(repository.NewCommunityRepository(store), deps)
	cartService := application.NewCartService(data.Products, repository.NewCartRepository(store), deps)
	userService := application.NewUserService(users, repository.NewStatsRepository(store), deps)

	// Setup Gin router
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.MaxMultipartMemory = cfg.UploadConfig.MaxBytes

	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(collector.Middleware())

	health.NewHandler(db, serviceName).RegisterRoutes(router)
	collector.RegisterRoutes(router)
	router.Static("/uploads", cfg.UploadConfig.Dir)

	api := &router.RouterGroup
	handler.NewAnimalHandler(adoptionService).RegisterRoutes(api)
	handler.NewClinicHandler(vetService).RegisterRoutes(api, jwtManager)
	handler.NewReportHandler(reportService).RegisterRoutes(api, jwtManager)
	handler.NewCommunityHandler(communityService).RegisterRoutes(api, jwtManager)
	handler.NewShopHandler(cartService).RegisterRoutes(api, jwtManager)
	handler.NewUserHandler(userService).RegisterRoutes(api, jwtManager)
	handler.NewAdminHandler(userService, adoptionService).RegisterRoutes(api, jwtManager)

	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down " + serviceName + "...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server forced shutdown", zap.Error(err))
		}
		return nil
	})

	if cfg.KafkaConfig.Enabled {
		consumer := events.NewUserEventConsumer(
			cfg.KafkaConfig.Brokers,
			cfg.KafkaConfig.GroupPrefix+"welfare-users",
			cfg.KafkaConfig.UserTopic,
			userService,
			collector,
			log,
		)
		defer func() { _ = consumer.Close() }()

		g.Go(func() error {
			log.Info("starting user event consumer", zap.String("topic", cfg.KafkaConfig.UserTopic))
			if err := consumer.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("user event consumer error: %w", err)
			}
			return nil
		})
	}

	err = g.Wait()
	log.Info(serviceName + " stopped")
	return err
}

// openStore returns the document store selected by config. The *gorm.DB is
// nil for the memory driver.
func openStore(ctx context.Context, cfg *config.ServiceConfig, log *zap.Logger) (*gorm.DB, docstore.Store, error) {
	if cfg.StoreDriver == config.StoreMemory {
		log.Warn("using in-memory document store; data is lost on restart")
		return nil, docstore.NewMemoryStore(), nil
	}

	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	store := docstore.NewGormStore(db)
	if cfg.AppEnv == "development" {
		if err := store.Migrate(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to run auto-migration: %w", err)
		}
		log.Info("database migration completed (dev auto-migrate)")
	}
	return db, store, nil
}

func runMigrate(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := docstore.NewGormStore(db).Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	log.Info("database migration completed")
	return nil
}
