package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/hibiken/asynq"
	"github.com/spf13/pflag"
	"github.com/vocabstudent/backend/internal/config"
	"github.com/vocabstudent/backend/internal/enrichment"
	"github.com/vocabstudent/backend/internal/logger"
	"github.com/vocabstudent/backend/internal/models"
	"github.com/vocabstudent/backend/internal/repositories"
	"github.com/vocabstudent/backend/internal/services"
	"github.com/vocabstudent/backend/internal/tasks"
	"go.uber.org/zap"
)

func main() {
	file := pflag.StringP("file", "f", "-", "CSV file to import (term,translation,definition,example), \"-\" reads stdin")
	enrich := pflag.Bool("enrich", false, "generate categories of imported words without one")
	useQueue := pflag.Bool("queue", false, "enrich in the background worker instead of inline")
	dryRun := pflag.Bool("dry-run", false, "only parse the file and report invalid rows")
	pflag.Parse()

	input, closeInput, err := openInput(*file)
	if err != nil {
		log.Fatalf("Failed to open input: %v\n", err)
	}
	defer closeInput()

	if *dryRun {
		if err := parseOnly(input, os.Stdout); err != nil {
			log.Fatalf("Failed to parse input: %v\n", err)
		}
		return
	}

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

	// Connect to database
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Logger.Fatal("Failed to ping database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wordRepo := repositories.NewWordRepository(db)

	var generator services.Generator = enrichment.NewClaudeGenerator(enrichment.ClaudeConfig{
		APIKey:   cfg.Enrichment.APIKey,
		Model:    cfg.Enrichment.Model,
		BaseURL:  cfg.Enrichment.BaseURL,
		Language: cfg.Enrichment.Language,
		Timeout:  30 * time.Second,
	})

	var queue services.TaskQueue
	if *enrich {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			if *useQueue {
				logger.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
			}
			logger.Logger.Warn("Redis is unavailable, enrichment cache is disabled", zap.Error(err))
		} else {
			generator = enrichment.NewCachedGenerator(generator, rdb, cfg.Enrichment.CacheTTL, logger.Logger)
			if *useQueue {
				asynqClient := asynq.NewClient(asynq.RedisClientOpt{
					Addr:     cfg.Redis.Addr(),
					Password: cfg.Redis.Password,
					DB:       cfg.Redis.DB,
				})
				defer asynqClient.Close()
				queue = tasks.NewQueue(asynqClient)
			}
		}
	}

	wordService := services.NewWordService(wordRepo, generator, nil, logger.Logger)
	importService := services.NewImportService(wordRepo, queue, wordService, logger.Logger)

	result, err := importService.Import(ctx, input, services.ImportOptions{
		Enrich: *enrich,
		Progress: func(done, total int) {
			fmt.Fprintf(os.Stderr, "\rimported %d/%d rows", done, total)
		},
	}, time.Now())
	fmt.Fprintln(os.Stderr)
	if err != nil {
		logger.Logger.Fatal("Import failed", zap.Error(err))
	}

	printResult(os.Stdout, result)
}

// openInput opens the CSV input, "-" selects stdin
func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// parseOnly reports the rows of a CSV file without storing them
func parseOnly(r io.Reader, w io.Writer) error {
	rows, invalid, err := services.ParseCSV(r)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "valid rows: %d\n", len(rows))
	fmt.Fprintf(w, "invalid rows: %d\n", len(invalid))
	for _, msg := range invalid {
		fmt.Fprintf(w, "  %s\n", msg)
	}
	return nil
}

// printResult writes an import summary
func printResult(w io.Writer, result models.ImportResult) {
	fmt.Fprintf(w, "total: %d\nimported: %d\nskipped: %d\nerrors: %d\n",
		result.Total, result.Imported, result.Skipped, result.Errors)
	if result.Enriched > 0 {
		fmt.Fprintf(w, "enriched: %d\n", result.Enriched)
	}
	for _, msg := range result.Messages {
		fmt.Fprintf(w, "  %s\n", msg)
	}
}
