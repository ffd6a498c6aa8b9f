package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vocabstudent/backend/internal/models"
	"github.com/vocabstudent/backend/internal/scheduler"
	"go.uber.org/zap"
)

// WordRepository is the interface that wraps methods for Words table data access
type WordRepository interface {
	// Method GetAll retrieve all words, newest first.
	//
	// If some error will occur during data retrieve, the error will be returned together with "nil" value.
	GetAll(ctx context.Context) ([]models.Word, error)
	// Method GetByID retrieve a word by its ID.
	//
	// If the word does not exist, models.ErrWordNotFound is returned.
	GetByID(ctx context.Context, id int) (*models.Word, error)
	// Method ExistsByTerm checks if a word with the lowercased "term" is stored.
	ExistsByTerm(ctx context.Context, term string) (bool, error)
	// Method Create inserts a new word and sets its ID.
	//
	// If the term already exists, models.ErrDuplicateWord is returned.
	Create(ctx context.Context, word *models.Word) error
	// Method CreateBatch inserts several words at once and sets their IDs.
	//
	// If any term already exists, nothing is inserted and models.ErrDuplicateWord is returned.
	CreateBatch(ctx context.Context, words []models.Word) error
	// Method Update applies the non-nil fields of "fields" to the word with the given ID.
	//
	// Please reference GetByID and Create methods for error values.
	Update(ctx context.Context, id int, fields *models.UpdateWordRequest) error
	// Method UpdateProgress stores the learning state of a word.
	UpdateProgress(ctx context.Context, word models.Word) error
	// Method UpdateCategory sets the category of a word.
	UpdateCategory(ctx context.Context, id int, category string) error
	// Method Delete removes a word by its ID.
	//
	// If the word does not exist, models.ErrWordNotFound is returned.
	Delete(ctx context.Context, id int) error
	// Method Search retrieve words whose term or translation contains "query".
	Search(ctx context.Context, query string) ([]models.Word, error)
	// Method GetByCategory retrieve words of one grammatical category.
	GetByCategory(ctx context.Context, category string) ([]models.Word, error)
	// Method GetByLevel retrieve words of one mastery level.
	GetByLevel(ctx context.Context, level int) ([]models.Word, error)
	// Method GetWithoutCategory retrieve up to "limit" words that have no category.
	GetWithoutCategory(ctx context.Context, limit int) ([]models.Word, error)
}

// Generator is the interface that wraps AI enrichment of terms
type Generator interface {
	// Method Generate returns translation, definition, example and category of a term.
	//
	// Failures are returned as *models.GenerationError.
	Generate(ctx context.Context, term string) (models.Enrichment, error)
	// Method GenerateCategory returns the grammatical category of a term.
	GenerateCategory(ctx context.Context, term string) (string, error)
}

// TaskQueue is the interface that wraps enqueueing of background jobs
type TaskQueue interface {
	// Method EnqueueCategoryEnrichment schedules a category lookup for the word with the given ID.
	EnqueueCategoryEnrichment(ctx context.Context, wordID int) error
}

const maxTermLength = 255

type wordService struct {
	repo      WordRepository
	generator Generator
	queue     TaskQueue
	logger    *zap.Logger
}

// NewWordService creates a new word service
//
// "queue" may be nil, category backfills then run inline.
func NewWordService(repo WordRepository, generator Generator, queue TaskQueue, logger *zap.Logger) *wordService {
	return &wordService{
		repo:      repo,
		generator: generator,
		queue:     queue,
		logger:    logger,
	}
}

// NormalizeTerm trims and lowercases a term
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// CreateWord enriches a new term and stores it as a word due immediately
//
// If the term is already stored, models.ErrDuplicateWord is returned.
// If enrichment fails, the *models.GenerationError is returned and nothing is stored.
func (s *wordService) CreateWord(ctx context.Context, term string, now time.Time) (*models.Word, error) {
	term = NormalizeTerm(term)
	if term == "" {
		return nil, fmt.Errorf("%w: term is required", models.ErrInvalidInput)
	}
	if len(term) > maxTermLength {
		return nil, fmt.Errorf("%w: term is too long", models.ErrInvalidInput)
	}

	exists, err := s.repo.ExistsByTerm(ctx, term)
	if err != nil {
		s.logger.Error("failed to check word existence", zap.String("term", term), zap.Error(err))
		return nil, fmt.Errorf("failed to check word existence: %w", err)
	}
	if exists {
		return nil, models.ErrDuplicateWord
	}

	enrichment, err := s.generator.Generate(ctx, term)
	if err != nil {
		s.logger.Warn("failed to enrich word", zap.String("term", term), zap.Error(err))
		var genErr *models.GenerationError
		if errors.As(err, &genErr) {
			return nil, err
		}
		return nil, &models.GenerationError{Term: term, Reason: "enrichment failed", Err: err}
	}

	word := NewWord(term, enrichment.Translation, enrichment.Definition, enrichment.Example, now)
	if enrichment.Category != "" {
		category := enrichment.Category
		word.Category = &category
	}

	if err := s.repo.Create(ctx, &word); err != nil {
		if errors.Is(err, models.ErrDuplicateWord) {
			return nil, err
		}
		s.logger.Error("failed to create word", zap.String("term", term), zap.Error(err))
		return nil, fmt.Errorf("failed to create word: %w", err)
	}

	return &word, nil
}

// NewWord builds a level 0 word that is due at "now"
func NewWord(term, translation, definition, example string, now time.Time) models.Word {
	next := now
	return models.Word{
		Term:         term,
		Translation:  translation,
		Definition:   definition,
		Example:      example,
		Level:        0,
		NextReviewAt: &next,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// GetAll retrieves all words
func (s *wordService) GetAll(ctx context.Context) ([]models.Word, error) {
	words, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get all words", zap.Error(err))
		return nil, fmt.Errorf("failed to get words: %w", err)
	}
	return words, nil
}

// GetByID retrieves a word by its ID
func (s *wordService) GetByID(ctx context.Context, id int) (*models.Word, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid word id", models.ErrInvalidInput)
	}

	word, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrWordNotFound) {
			return nil, err
		}
		s.logger.Error("failed to get word by id", zap.Int("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get word: %w", err)
	}
	return word, nil
}

// Update applies a partial update and returns the stored word
func (s *wordService) Update(ctx context.Context, id int, req *models.UpdateWordRequest) (*models.Word, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid word id", models.ErrInvalidInput)
	}
	if req == nil || req.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", models.ErrInvalidInput)
	}

	if req.Term != nil {
		term := NormalizeTerm(*req.Term)
		if term == "" {
			return nil, fmt.Errorf("%w: term cannot be empty", models.ErrInvalidInput)
		}
		req.Term = &term
	}
	if req.Category != nil {
		category := strings.ToLower(strings.TrimSpace(*req.Category))
		req.Category = &category
	}

	if err := s.repo.Update(ctx, id, req); err != nil {
		if errors.Is(err, models.ErrWordNotFound) || errors.Is(err, models.ErrDuplicateWord) {
			return nil, err
		}
		s.logger.Error("failed to update word", zap.Int("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update word: %w", err)
	}

	return s.GetByID(ctx, id)
}

// Delete removes a word
func (s *wordService) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid word id", models.ErrInvalidInput)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrWordNotFound) {
			return err
		}
		s.logger.Error("failed to delete word", zap.Int("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete word: %w", err)
	}
	return nil
}

// Search retrieves words whose term or translation contains "query"
//
// An empty query returns all words.
func (s *wordService) Search(ctx context.Context, query string) ([]models.Word, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.GetAll(ctx)
	}

	words, err := s.repo.Search(ctx, query)
	if err != nil {
		s.logger.Error("failed to search words", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("failed to search words: %w", err)
	}
	return words, nil
}

// GetByCategory retrieves words of one grammatical category
func (s *wordService) GetByCategory(ctx context.Context, category string) ([]models.Word, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", models.ErrInvalidInput)
	}

	words, err := s.repo.GetByCategory(ctx, category)
	if err != nil {
		s.logger.Error("failed to get words by category", zap.String("category", category), zap.Error(err))
		return nil, fmt.Errorf("failed to get words: %w", err)
	}
	return words, nil
}

// GetByLevel retrieves words of one mastery level
func (s *wordService) GetByLevel(ctx context.Context, level int) ([]models.Word, error) {
	if level < 0 || level > models.MaxLevel {
		return nil, fmt.Errorf("%w: level must be between 0 and %d", models.ErrInvalidInput, models.MaxLevel)
	}

	words, err := s.repo.GetByLevel(ctx, level)
	if err != nil {
		s.logger.Error("failed to get words by level", zap.Int("level", level), zap.Error(err))
		return nil, fmt.Errorf("failed to get words: %w", err)
	}
	return words, nil
}

// GetProgress computes the learning statistics of the whole collection at "now"
func (s *wordService) GetProgress(ctx context.Context, now time.Time) (models.ProgressStats, error) {
	words, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get words for progress", zap.Error(err))
		return models.ProgressStats{}, fmt.Errorf("failed to get words: %w", err)
	}
	return scheduler.ProgressStats(words, now), nil
}

// BackfillCategories fills in missing categories of up to "limit" words
//
// With a task queue every word gets a background job, otherwise categories are generated inline.
func (s *wordService) BackfillCategories(ctx context.Context, limit int) (models.BackfillResult, error) {
	if limit <= 0 {
		return models.BackfillResult{}, fmt.Errorf("%w: limit must be positive", models.ErrInvalidInput)
	}

	words, err := s.repo.GetWithoutCategory(ctx, limit)
	if err != nil {
		s.logger.Error("failed to get words without category", zap.Error(err))
		return models.BackfillResult{}, fmt.Errorf("failed to get words: %w", err)
	}

	result := models.BackfillResult{Processed: len(words)}
	for _, word := range words {
		if s.queue != nil {
			if err := s.queue.EnqueueCategoryEnrichment(ctx, word.ID); err != nil {
				s.logger.Error("failed to enqueue category enrichment", zap.Int("word_id", word.ID), zap.Error(err))
				result.Failed++
				continue
			}
			result.Enqueued++
			continue
		}

		if err := s.enrichCategory(ctx, word); err != nil {
			result.Failed++
			continue
		}
		result.Updated++
	}

	s.logger.Info("category backfill finished",
		zap.Int("processed", result.Processed),
		zap.Int("enqueued", result.Enqueued),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// EnrichCategory generates and stores the category of one word
//
// Words that already have a category are left untouched.
func (s *wordService) EnrichCategory(ctx context.Context, id int) error {
	word, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if word.Category != nil && *word.Category != "" {
		return nil
	}
	return s.enrichCategory(ctx, *word)
}

func (s *wordService) enrichCategory(ctx context.Context, word models.Word) error {
	category, err := s.generator.GenerateCategory(ctx, word.Term)
	if err != nil {
		s.logger.Warn("failed to generate category", zap.Int("word_id", word.ID), zap.Error(err))
		return err
	}

	if err := s.repo.UpdateCategory(ctx, word.ID, category); err != nil {
		s.logger.Error("failed to update word category", zap.Int("word_id", word.ID), zap.Error(err))
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}
