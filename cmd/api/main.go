package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hibiken/asynq"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/vocabstudent/backend/docs"
	"github.com/vocabstudent/backend/internal/auth"
	"github.com/vocabstudent/backend/internal/config"
	"github.com/vocabstudent/backend/internal/enrichment"
	"github.com/vocabstudent/backend/internal/handlers"
	"github.com/vocabstudent/backend/internal/logger"
	"github.com/vocabstudent/backend/internal/middlewares"
	"github.com/vocabstudent/backend/internal/repositories"
	"github.com/vocabstudent/backend/internal/services"
	"github.com/vocabstudent/backend/internal/session"
	"github.com/vocabstudent/backend/internal/storage"
	"github.com/vocabstudent/backend/internal/tasks"
	"github.com/vocabstudent/backend/internal/tts"
	"go.uber.org/zap"
)

const (
	upstreamTimeout = 30 * time.Second
	sweepInterval   = time.Minute
)

// @title VocabStudent API
// @version 1.0
// @description API for building a vocabulary and studying it with spaced repetition
// @termsOfService http://swagger.io/terms/

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key for admin endpoints
// @securityDefinitions.apikey SessionAuth
// @in header
// @name X-Session-Token
// @description Study session token returned by POST /study/sessions
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting VocabStudent API")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to Redis, the API keeps working without cache and queue
	var (
		cache enrichment.Cache
		queue *tasks.Queue
	)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Logger.Warn("Redis is unavailable, enrichment cache and background jobs are disabled", zap.Error(err))
	} else {
		cache = rdb

		asynqClient := asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer asynqClient.Close()
		queue = tasks.NewQueue(asynqClient)
	}

	// Initialize enrichment
	var generator services.Generator = enrichment.NewClaudeGenerator(enrichment.ClaudeConfig{
		APIKey:   cfg.Enrichment.APIKey,
		Model:    cfg.Enrichment.Model,
		BaseURL:  cfg.Enrichment.BaseURL,
		Language: cfg.Enrichment.Language,
		Timeout:  upstreamTimeout,
	})
	if cache != nil {
		generator = enrichment.NewCachedGenerator(generator, cache, cfg.Enrichment.CacheTTL, logger.Logger)
	}
	if cfg.Enrichment.APIKey == "" {
		logger.Logger.Warn("ANTHROPIC_API_KEY is not set, adding words will fail")
	}

	// Initialize speech synthesis
	speaker, err := tts.NewSpeaker(ctx, tts.Config{
		APIKey:   cfg.TTS.APIKey,
		BaseURL:  cfg.TTS.BaseURL,
		Language: cfg.TTS.Language,
		Timeout:  upstreamTimeout,
	})
	if err != nil {
		logger.Logger.Fatal("Failed to initialize speech synthesis", zap.Error(err))
	}
	defer speaker.Close()
	audioStorage := storage.NewLocalStorage(cfg.Media.BasePath)

	// Initialize study sessions
	tokenGenerator := auth.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.SessionTTL)
	registry := session.NewRegistry(cfg.JWT.SessionTTL, logger.Logger)
	go registry.Run(ctx, sweepInterval)

	// Initialize repositories
	wordRepo := repositories.NewWordRepository(db)

	// Initialize services
	var taskQueue services.TaskQueue
	if queue != nil {
		taskQueue = queue
	}
	wordService := services.NewWordService(wordRepo, generator, taskQueue, logger.Logger)
	speechService := services.NewSpeechService(speaker, audioStorage, cfg.Media.BaseURL, logger.Logger)
	studyService := services.NewStudyService(wordRepo, registry, tokenGenerator, speechService, cfg.Study.SessionSize, logger.Logger)
	importService := services.NewImportService(wordRepo, taskQueue, wordService, logger.Logger)

	// Initialize handlers
	wordHandler := handlers.NewWordHandler(wordService, logger.Logger)
	studyHandler := handlers.NewStudyHandler(studyService, logger.Logger)
	speechHandler := handlers.NewSpeechHandler(speechService, logger.Logger)
	adminHandler := handlers.NewAdminHandler(importService, wordService, logger.Logger)

	// Initialize auth middleware
	sessionMiddleware := auth.SessionMiddleware(tokenGenerator)
	apiKeyMiddleware := auth.APIKeyMiddleware(cfg.APIKey)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(logger.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(10 * 1024 * 1024)) // 10MB

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints
		r.Group(func(r chi.Router) {
			wordHandler.RegisterRoutes(r)
			speechHandler.RegisterRoutes(r)
			studyHandler.RegisterRoutes(r, sessionMiddleware)
		})

		// Admin endpoints (API key protected)
		r.Group(func(r chi.Router) {
			r.Use(apiKeyMiddleware)
			adminHandler.RegisterRoutes(r)
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")
	cancel()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "vocab_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Try parent directories if running from cmd
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		if _, err := os.Stat("../../migrations"); err == nil {
			migrationPath = "file://../../migrations"
		} else if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
