package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vocabstudent/backend/internal/models"
	"go.uber.org/zap"
)

// ImportBatchSize is the number of words inserted per statement
const ImportBatchSize = 50

// ImportRepository is the interface that wraps word inserts of the CSV import
type ImportRepository interface {
	// Method Create inserts a new word and sets its ID.
	//
	// If the term already exists, models.ErrDuplicateWord is returned.
	Create(ctx context.Context, word *models.Word) error
	// Method CreateBatch inserts several words at once and sets their IDs.
	//
	// If any term already exists, nothing is inserted and models.ErrDuplicateWord is returned.
	CreateBatch(ctx context.Context, words []models.Word) error
}

// CategoryEnricher is the interface that wraps inline category generation
type CategoryEnricher interface {
	// Method EnrichCategory generates and stores the category of the word with the given ID.
	EnrichCategory(ctx context.Context, id int) error
}

// ImportOptions configures a CSV import
type ImportOptions struct {
	// Enrich requests a category for every imported word
	Enrich bool
	// Progress is called after every batch with the number of processed and total rows
	Progress func(done, total int)
}

type importService struct {
	repo     ImportRepository
	queue    TaskQueue
	enricher CategoryEnricher
	logger   *zap.Logger
}

// NewImportService creates a new CSV import service
//
// With a non-nil "queue" categories are enriched in the background, otherwise through "enricher".
func NewImportService(repo ImportRepository, queue TaskQueue, enricher CategoryEnricher, logger *zap.Logger) *importService {
	return &importService{
		repo:     repo,
		queue:    queue,
		enricher: enricher,
		logger:   logger,
	}
}

// ParseCSV reads "term,translation,definition,example" rows
//
// A first row starting with "term" is treated as a header. Invalid rows are reported as messages
// and left out of the returned rows.
func ParseCSV(r io.Reader) ([]models.ImportRow, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	rows := []models.ImportRow{}
	invalid := []string{}
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				invalid = append(invalid, fmt.Sprintf("line %d: %v", parseErr.Line, parseErr.Err))
				continue
			}
			return nil, nil, fmt.Errorf("failed to read csv: %w", err)
		}

		if line == 1 && len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "term") {
			continue
		}
		if isBlankRecord(record) {
			continue
		}

		row := models.ImportRow{Line: line}
		fields := []*string{&row.Term, &row.Translation, &row.Definition, &row.Example}
		for i, field := range fields {
			if i < len(record) {
				*field = strings.TrimSpace(record[i])
			}
		}
		row.Term = NormalizeTerm(row.Term)

		if row.Term == "" || row.Translation == "" {
			invalid = append(invalid, fmt.Sprintf("line %d: term and translation are required", line))
			continue
		}
		if len(row.Term) > maxTermLength {
			invalid = append(invalid, fmt.Sprintf("line %d: term is too long", line))
			continue
		}
		rows = append(rows, row)
	}

	return rows, invalid, nil
}

func isBlankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// Import parses a CSV word list and stores its words in batches
//
// A batch containing an existing term is retried word by word so that only duplicates are skipped.
func (s *importService) Import(ctx context.Context, r io.Reader, opts ImportOptions, now time.Time) (models.ImportResult, error) {
	rows, invalid, err := ParseCSV(r)
	if err != nil {
		return models.ImportResult{}, fmt.Errorf("%w: %w", models.ErrInvalidInput, err)
	}

	result := models.ImportResult{
		Total:    len(rows) + len(invalid),
		Errors:   len(invalid),
		Messages: invalid,
	}

	words := make([]models.Word, len(rows))
	for i, row := range rows {
		words[i] = NewWord(row.Term, row.Translation, row.Definition, row.Example, now)
	}

	imported := []models.Word{}
	for start := 0; start < len(words); start += ImportBatchSize {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		end := min(start+ImportBatchSize, len(words))
		batch := words[start:end]

		stored, err := s.insertBatch(ctx, batch, &result)
		if err != nil {
			s.logger.Error("failed to import batch", zap.Int("from", start), zap.Error(err))
			return result, fmt.Errorf("failed to import words: %w", err)
		}
		imported = append(imported, stored...)

		if opts.Progress != nil {
			opts.Progress(end, len(words))
		}
	}

	if opts.Enrich {
		s.enrich(ctx, imported, &result)
	}

	s.logger.Info("csv import finished",
		zap.Int("total", result.Total),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", result.Errors),
		zap.Int("enriched", result.Enriched),
	)
	return result, nil
}

// insertBatch stores one batch and returns the stored words with their IDs
func (s *importService) insertBatch(ctx context.Context, batch []models.Word, result *models.ImportResult) ([]models.Word, error) {
	err := s.repo.CreateBatch(ctx, batch)
	if err == nil {
		result.Imported += len(batch)
		return batch, nil
	}
	if !errors.Is(err, models.ErrDuplicateWord) {
		return nil, err
	}

	stored := []models.Word{}
	for i := range batch {
		word := batch[i]
		if err := s.repo.Create(ctx, &word); err != nil {
			if errors.Is(err, models.ErrDuplicateWord) {
				result.Skipped++
				continue
			}
			result.Errors++
			result.Messages = append(result.Messages, fmt.Sprintf("%s: %v", word.Term, err))
			continue
		}
		result.Imported++
		stored = append(stored, word)
	}
	return stored, nil
}

func (s *importService) enrich(ctx context.Context, words []models.Word, result *models.ImportResult) {
	for _, word := range words {
		var err error
		switch {
		case s.queue != nil:
			err = s.queue.EnqueueCategoryEnrichment(ctx, word.ID)
		case s.enricher != nil:
			err = s.enricher.EnrichCategory(ctx, word.ID)
		default:
			return
		}
		if err != nil {
			s.logger.Warn("failed to enrich imported word", zap.String("term", word.Term), zap.Error(err))
			continue
		}
		result.Enriched++
	}
}
