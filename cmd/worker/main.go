package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/hibiken/asynq"
	"github.com/vocabstudent/backend/internal/config"
	"github.com/vocabstudent/backend/internal/enrichment"
	"github.com/vocabstudent/backend/internal/logger"
	"github.com/vocabstudent/backend/internal/repositories"
	"github.com/vocabstudent/backend/internal/services"
	"github.com/vocabstudent/backend/internal/tasks"
	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

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

	logger.Logger.Info("Starting VocabStudent Worker")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	// Test Redis connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Initialize services, the worker enriches inline so no queue is passed
	generator := enrichment.NewCachedGenerator(
		enrichment.NewClaudeGenerator(enrichment.ClaudeConfig{
			APIKey:   cfg.Enrichment.APIKey,
			Model:    cfg.Enrichment.Model,
			BaseURL:  cfg.Enrichment.BaseURL,
			Language: cfg.Enrichment.Language,
			Timeout:  30 * time.Second,
		}),
		rdb,
		cfg.Enrichment.CacheTTL,
		logger.Logger,
	)
	wordRepo := repositories.NewWordRepository(db)
	wordService := services.NewWordService(wordRepo, generator, nil, logger.Logger)

	// Create Asynq server
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				tasks.QueueDefault: 1,
			},
		},
	)

	// Create worker instance
	worker := NewWorker(
		logger.Logger,
		wordService,
		wordService,
		mail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password),
		cfg.SMTP.From,
		cfg.Reminder.Email,
	)

	// Register task handlers
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeCategoryEnrichment, worker.HandleCategoryEnrichment)
	mux.HandleFunc(tasks.TypeDueDigest, worker.HandleDueDigest)

	// Start worker
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Logger.Fatal("Failed to start worker", zap.Error(err))
		}
	}()

	logger.Logger.Info("Worker started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down worker...")
	srv.Shutdown()
	logger.Logger.Info("Worker exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
