package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabstudent/backend/internal/models"
	"go.uber.org/zap"
)

var appleEnrichment = models.Enrichment{
	Translation: "manzana",
	Definition:  "A round fruit",
	Example:     "I ate an apple.",
	Category:    "noun",
}

func TestNewWordService(t *testing.T) {
	logger := zap.NewNop()
	repo := &mockWordRepository{}
	generator := &mockGenerator{}

	svc := NewWordService(repo, generator, nil, logger)

	assert.NotNil(t, svc)
	assert.Equal(t, repo, svc.repo)
	assert.Equal(t, generator, svc.generator)
	assert.Nil(t, svc.queue)
	assert.Equal(t, logger, svc.logger)
}

func TestWordService_CreateWord(t *testing.T) {
	tests := []struct {
		name            string
		term            string
		repo            *mockWordRepository
		generator       *mockGenerator
		expectedErr     error
		expectGenErr    bool
		expectError     bool
		expectGenerated bool
	}{
		{
			name:            "success",
			term:            "  Apple ",
			repo:            &mockWordRepository{},
			generator:       &mockGenerator{enrichment: appleEnrichment},
			expectGenerated: true,
		},
		{
			name:        "empty term",
			term:        "   ",
			repo:        &mockWordRepository{},
			generator:   &mockGenerator{},
			expectedErr: models.ErrInvalidInput,
			expectError: true,
		},
		{
			name:        "duplicate term",
			term:        "apple",
			repo:        &mockWordRepository{exists: true},
			generator:   &mockGenerator{enrichment: appleEnrichment},
			expectedErr: models.ErrDuplicateWord,
			expectError: true,
		},
		{
			name:        "existence check error",
			term:        "apple",
			repo:        &mockWordRepository{existsErr: errors.New("database error")},
			generator:   &mockGenerator{},
			expectError: true,
		},
		{
			name:            "generation error",
			term:            "apple",
			repo:            &mockWordRepository{},
			generator:       &mockGenerator{err: &models.GenerationError{Term: "apple", Reason: "request failed"}},
			expectGenErr:    true,
			expectError:     true,
			expectGenerated: true,
		},
		{
			name:            "plain generator error is wrapped",
			term:            "apple",
			repo:            &mockWordRepository{},
			generator:       &mockGenerator{err: errors.New("boom")},
			expectGenErr:    true,
			expectError:     true,
			expectGenerated: true,
		},
		{
			name:            "duplicate on insert race",
			term:            "apple",
			repo:            &mockWordRepository{createErr: models.ErrDuplicateWord},
			generator:       &mockGenerator{enrichment: appleEnrichment},
			expectedErr:     models.ErrDuplicateWord,
			expectError:     true,
			expectGenerated: true,
		},
		{
			name:            "insert error",
			term:            "apple",
			repo:            &mockWordRepository{createErr: errors.New("database error")},
			generator:       &mockGenerator{enrichment: appleEnrichment},
			expectError:     true,
			expectGenerated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewWordService(tt.repo, tt.generator, nil, zap.NewNop())

			word, err := svc.CreateWord(context.Background(), tt.term, testNow)

			if tt.expectGenerated {
				assert.Equal(t, 1, tt.generator.generateCalls)
			} else {
				assert.Zero(t, tt.generator.generateCalls)
			}

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, word)
				assert.Empty(t, tt.repo.created)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
				if tt.expectGenErr {
					var genErr *models.GenerationError
					assert.True(t, errors.As(err, &genErr))
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, word)
			assert.Equal(t, 1, word.ID)
			assert.Equal(t, "apple", word.Term)
			assert.Equal(t, "manzana", word.Translation)
			assert.Equal(t, "A round fruit", word.Definition)
			assert.Equal(t, "I ate an apple.", word.Example)
			require.NotNil(t, word.Category)
			assert.Equal(t, "noun", *word.Category)
			assert.Equal(t, 0, word.Level)
			assert.Equal(t, 0, word.TimesStudied)
			assert.Nil(t, word.LastStudiedAt)
			require.NotNil(t, word.NextReviewAt)
			assert.Equal(t, testNow, *word.NextReviewAt)
			assert.Len(t, tt.repo.created, 1)
		})
	}
}

func TestWordService_GetByID(t *testing.T) {
	tests := []struct {
		name        string
		id          int
		repo        *mockWordRepository
		expectedErr error
		expectError bool
	}{
		{name: "success", id: 1, repo: &mockWordRepository{word: &models.Word{ID: 1, Term: "apple"}}},
		{name: "invalid id", id: 0, repo: &mockWordRepository{}, expectedErr: models.ErrInvalidInput, expectError: true},
		{name: "not found", id: 5, repo: &mockWordRepository{}, expectedErr: models.ErrWordNotFound, expectError: true},
		{name: "repository error", id: 5, repo: &mockWordRepository{err: errors.New("database error")}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewWordService(tt.repo, &mockGenerator{}, nil, zap.NewNop())

			word, err := svc.GetByID(context.Background(), tt.id)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, word)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "apple", word.Term)
			}
		})
	}
}

func TestWordService_Update(t *testing.T) {
	tests := []struct {
		name        string
		id          int
		req         *models.UpdateWordRequest
		repo        *mockWordRepository
		expectedErr error
		expectError bool
		check       func(*testing.T, *mockWordRepository)
	}{
		{
			name: "success normalizes term and category",
			id:   1,
			req:  &models.UpdateWordRequest{Term: strPtr(" Apples "), Category: strPtr(" Noun ")},
			repo: &mockWordRepository{word: &models.Word{ID: 1, Term: "apples"}},
			check: func(t *testing.T, repo *mockWordRepository) {
				assert.Equal(t, 1, repo.updatedID)
				assert.Equal(t, "apples", *repo.updated.Term)
				assert.Equal(t, "noun", *repo.updated.Category)
			},
		},
		{name: "invalid id", id: -1, req: &models.UpdateWordRequest{Term: strPtr("x")}, repo: &mockWordRepository{}, expectedErr: models.ErrInvalidInput, expectError: true},
		{name: "nothing to update", id: 1, req: &models.UpdateWordRequest{}, repo: &mockWordRepository{}, expectedErr: models.ErrInvalidInput, expectError: true},
		{name: "blank term", id: 1, req: &models.UpdateWordRequest{Term: strPtr("  ")}, repo: &mockWordRepository{}, expectedErr: models.ErrInvalidInput, expectError: true},
		{
			name:        "duplicate term",
			id:          1,
			req:         &models.UpdateWordRequest{Term: strPtr("pear")},
			repo:        &mockWordRepository{updateErr: models.ErrDuplicateWord},
			expectedErr: models.ErrDuplicateWord,
			expectError: true,
		},
		{
			name:        "not found",
			id:          1,
			req:         &models.UpdateWordRequest{Translation: strPtr("pera")},
			repo:        &mockWordRepository{updateErr: models.ErrWordNotFound},
			expectedErr: models.ErrWordNotFound,
			expectError: true,
		},
		{
			name:        "repository error",
			id:          1,
			req:         &models.UpdateWordRequest{Translation: strPtr("pera")},
			repo:        &mockWordRepository{updateErr: errors.New("database error")},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewWordService(tt.repo, &mockGenerator{}, nil, zap.NewNop())

			word, err := svc.Update(context.Background(), tt.id, tt.req)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, word)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, word)
			if tt.check != nil {
				tt.check(t, tt.repo)
			}
		})
	}
}

func TestWordService_Delete(t *testing.T) {
	svc := NewWordService(&mockWordRepository{}, &mockGenerator{}, nil, zap.NewNop())
	assert.NoError(t, svc.Delete(context.Background(), 1))
	assert.ErrorIs(t, svc.Delete(context.Background(), 0), models.ErrInvalidInput)

	svc = NewWordService(&mockWordRepository{err: models.ErrWordNotFound}, &mockGenerator{}, nil, zap.NewNop())
	assert.ErrorIs(t, svc.Delete(context.Background(), 1), models.ErrWordNotFound)

	svc = NewWordService(&mockWordRepository{err: errors.New("database error")}, &mockGenerator{}, nil, zap.NewNop())
	assert.Error(t, svc.Delete(context.Background(), 1))
}

func TestWordService_Filters(t *testing.T) {
	words := []models.Word{{ID: 1, Term: "apple"}, {ID: 2, Term: "pear"}}

	t.Run("search trims query", func(t *testing.T) {
		repo := &mockWordRepository{words: words}
		svc := NewWordService(repo, &mockGenerator{}, nil, zap.NewNop())

		result, err := svc.Search(context.Background(), "  app ")

		require.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Equal(t, "app", repo.searchQuery)
	})

	t.Run("empty search returns all", func(t *testing.T) {
		repo := &mockWordRepository{words: words}
		svc := NewWordService(repo, &mockGenerator{}, nil, zap.NewNop())

		result, err := svc.Search(context.Background(), " ")

		require.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Empty(t, repo.searchQuery)
	})

	t.Run("category is lowercased", func(t *testing.T) {
		repo := &mockWordRepository{words: words}
		svc := NewWordService(repo, &mockGenerator{}, nil, zap.NewNop())

		_, err := svc.GetByCategory(context.Background(), "Verb")

		require.NoError(t, err)
		assert.Equal(t, "verb", repo.categoryQuery)
	})

	t.Run("empty category", func(t *testing.T) {
		svc := NewWordService(&mockWordRepository{}, &mockGenerator{}, nil, zap.NewNop())

		_, err := svc.GetByCategory(context.Background(), "")

		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("level bounds", func(t *testing.T) {
		repo := &mockWordRepository{words: words}
		svc := NewWordService(repo, &mockGenerator{}, nil, zap.NewNop())

		_, err := svc.GetByLevel(context.Background(), models.MaxLevel)
		require.NoError(t, err)
		assert.Equal(t, models.MaxLevel, repo.levelQuery)

		_, err = svc.GetByLevel(context.Background(), -1)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
		_, err = svc.GetByLevel(context.Background(), models.MaxLevel+1)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("repository error", func(t *testing.T) {
		svc := NewWordService(&mockWordRepository{err: errors.New("database error")}, &mockGenerator{}, nil, zap.NewNop())

		_, err := svc.GetAll(context.Background())
		assert.Error(t, err)
		_, err = svc.Search(context.Background(), "a")
		assert.Error(t, err)
		_, err = svc.GetByLevel(context.Background(), 1)
		assert.Error(t, err)
	})
}

func TestWordService_GetProgress(t *testing.T) {
	words := []models.Word{
		{ID: 1, Level: 0, NextReviewAt: timePtr(testNow.Add(-1))},
		{ID: 2, Level: 2, TimesStudied: 4, TimesCorrect: 3, NextReviewAt: timePtr(testNow.AddDate(0, 0, 7))},
		{ID: 3, Level: 5, TimesStudied: 4, TimesCorrect: 4},
	}
	svc := NewWordService(&mockWordRepository{words: words}, &mockGenerator{}, nil, zap.NewNop())

	stats, err := svc.GetProgress(context.Background(), testNow)

	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Due)
	assert.Equal(t, 1, stats.ByLevel[0])
	assert.Equal(t, 1, stats.ByLevel[2])
	assert.Equal(t, 1, stats.ByLevel[5])
	assert.Equal(t, 2, stats.Studied)
	assert.Equal(t, 88, stats.Accuracy)

	svc = NewWordService(&mockWordRepository{err: errors.New("database error")}, &mockGenerator{}, nil, zap.NewNop())
	_, err = svc.GetProgress(context.Background(), testNow)
	assert.Error(t, err)
}

func TestWordService_BackfillCategories(t *testing.T) {
	pending := []models.Word{{ID: 1, Term: "run"}, {ID: 2, Term: "quickly"}}

	t.Run("enqueues with task queue", func(t *testing.T) {
		repo := &mockWordRepository{withoutCategory: pending}
		queue := &mockTaskQueue{}
		generator := &mockGenerator{category: "verb"}
		svc := NewWordService(repo, generator, queue, zap.NewNop())

		result, err := svc.BackfillCategories(context.Background(), 20)

		require.NoError(t, err)
		assert.Equal(t, models.BackfillResult{Processed: 2, Enqueued: 2}, result)
		assert.Equal(t, []int{1, 2}, queue.enqueued)
		assert.Equal(t, 20, repo.withoutCategoryMax)
		assert.Zero(t, generator.categoryCalls)
	})

	t.Run("enqueue failure", func(t *testing.T) {
		repo := &mockWordRepository{withoutCategory: pending}
		svc := NewWordService(repo, &mockGenerator{}, &mockTaskQueue{err: errors.New("redis down")}, zap.NewNop())

		result, err := svc.BackfillCategories(context.Background(), 20)

		require.NoError(t, err)
		assert.Equal(t, models.BackfillResult{Processed: 2, Failed: 2}, result)
	})

	t.Run("inline without task queue", func(t *testing.T) {
		repo := &mockWordRepository{withoutCategory: pending}
		svc := NewWordService(repo, &mockGenerator{category: "verb"}, nil, zap.NewNop())

		result, err := svc.BackfillCategories(context.Background(), 20)

		require.NoError(t, err)
		assert.Equal(t, models.BackfillResult{Processed: 2, Updated: 2}, result)
		assert.Equal(t, map[int]string{1: "verb", 2: "verb"}, repo.categories)
	})

	t.Run("inline generation failure", func(t *testing.T) {
		repo := &mockWordRepository{withoutCategory: pending}
		generator := &mockGenerator{categoryErr: &models.GenerationError{Term: "run", Reason: "unknown category"}}
		svc := NewWordService(repo, generator, nil, zap.NewNop())

		result, err := svc.BackfillCategories(context.Background(), 20)

		require.NoError(t, err)
		assert.Equal(t, models.BackfillResult{Processed: 2, Failed: 2}, result)
		assert.Empty(t, repo.categories)
	})

	t.Run("invalid limit", func(t *testing.T) {
		svc := NewWordService(&mockWordRepository{}, &mockGenerator{}, nil, zap.NewNop())

		_, err := svc.BackfillCategories(context.Background(), 0)

		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("repository error", func(t *testing.T) {
		svc := NewWordService(&mockWordRepository{err: errors.New("database error")}, &mockGenerator{}, nil, zap.NewNop())

		_, err := svc.BackfillCategories(context.Background(), 10)

		assert.Error(t, err)
	})
}

func TestWordService_EnrichCategory(t *testing.T) {
	t.Run("stores generated category", func(t *testing.T) {
		repo := &mockWordRepository{word: &models.Word{ID: 3, Term: "run"}}
		svc := NewWordService(repo, &mockGenerator{category: "verb"}, nil, zap.NewNop())

		err := svc.EnrichCategory(context.Background(), 3)

		require.NoError(t, err)
		assert.Equal(t, "verb", repo.categories[3])
	})

	t.Run("keeps existing category", func(t *testing.T) {
		repo := &mockWordRepository{word: &models.Word{ID: 3, Term: "run", Category: strPtr("noun")}}
		generator := &mockGenerator{category: "verb"}
		svc := NewWordService(repo, generator, nil, zap.NewNop())

		err := svc.EnrichCategory(context.Background(), 3)

		require.NoError(t, err)
		assert.Zero(t, generator.categoryCalls)
		assert.Empty(t, repo.categories)
	})

	t.Run("missing word", func(t *testing.T) {
		svc := NewWordService(&mockWordRepository{}, &mockGenerator{category: "verb"}, nil, zap.NewNop())

		err := svc.EnrichCategory(context.Background(), 3)

		assert.ErrorIs(t, err, models.ErrWordNotFound)
	})

	t.Run("update failure", func(t *testing.T) {
		repo := &mockWordRepository{word: &models.Word{ID: 3, Term: "run"}, categoryErr: errors.New("database error")}
		svc := NewWordService(repo, &mockGenerator{category: "verb"}, nil, zap.NewNop())

		assert.Error(t, svc.EnrichCategory(context.Background(), 3))
	})
}
