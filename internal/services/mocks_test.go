package services

import (
	"context"
	"time"

	"github.com/vocabstudent/backend/internal/models"
)

var testNow = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

// mockWordRepository is a mock implementation of WordRepository
type mockWordRepository struct {
	words              []models.Word
	word               *models.Word
	exists             bool
	withoutCategory    []models.Word
	err                error
	existsErr          error
	createErr          error
	createErrs         map[string]error
	batchErr           error
	updateErr          error
	progressErr        error
	categoryErr        error
	nextID             int
	created            []models.Word
	batches            [][]models.Word
	updatedID          int
	updated            *models.UpdateWordRequest
	progress           []models.Word
	categories         map[int]string
	searchQuery        string
	categoryQuery      string
	levelQuery         int
	withoutCategoryMax int
}

func (m *mockWordRepository) GetAll(ctx context.Context) ([]models.Word, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.words, nil
}

func (m *mockWordRepository) GetByID(ctx context.Context, id int) (*models.Word, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.word == nil {
		return nil, models.ErrWordNotFound
	}
	return m.word, nil
}

func (m *mockWordRepository) ExistsByTerm(ctx context.Context, term string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.exists, nil
}

func (m *mockWordRepository) Create(ctx context.Context, word *models.Word) error {
	if m.createErr != nil {
		return m.createErr
	}
	if err, ok := m.createErrs[word.Term]; ok {
		return err
	}
	m.nextID++
	word.ID = m.nextID
	m.created = append(m.created, *word)
	return nil
}

func (m *mockWordRepository) CreateBatch(ctx context.Context, words []models.Word) error {
	batch := make([]models.Word, len(words))
	copy(batch, words)
	m.batches = append(m.batches, batch)
	if m.batchErr != nil {
		return m.batchErr
	}
	for i := range words {
		m.nextID++
		words[i].ID = m.nextID
	}
	return nil
}

func (m *mockWordRepository) Update(ctx context.Context, id int, fields *models.UpdateWordRequest) error {
	m.updatedID = id
	m.updated = fields
	return m.updateErr
}

func (m *mockWordRepository) UpdateProgress(ctx context.Context, word models.Word) error {
	m.progress = append(m.progress, word)
	return m.progressErr
}

func (m *mockWordRepository) UpdateCategory(ctx context.Context, id int, category string) error {
	if m.categoryErr != nil {
		return m.categoryErr
	}
	if m.categories == nil {
		m.categories = map[int]string{}
	}
	m.categories[id] = category
	return nil
}

func (m *mockWordRepository) Delete(ctx context.Context, id int) error {
	return m.err
}

func (m *mockWordRepository) Search(ctx context.Context, query string) ([]models.Word, error) {
	m.searchQuery = query
	if m.err != nil {
		return nil, m.err
	}
	return m.words, nil
}

func (m *mockWordRepository) GetByCategory(ctx context.Context, category string) ([]models.Word, error) {
	m.categoryQuery = category
	if m.err != nil {
		return nil, m.err
	}
	return m.words, nil
}

func (m *mockWordRepository) GetByLevel(ctx context.Context, level int) ([]models.Word, error) {
	m.levelQuery = level
	if m.err != nil {
		return nil, m.err
	}
	return m.words, nil
}

func (m *mockWordRepository) GetWithoutCategory(ctx context.Context, limit int) ([]models.Word, error) {
	m.withoutCategoryMax = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.withoutCategory, nil
}

// mockGenerator is a mock implementation of Generator
type mockGenerator struct {
	enrichment    models.Enrichment
	category      string
	err           error
	categoryErr   error
	generateCalls int
	categoryCalls int
}

func (m *mockGenerator) Generate(ctx context.Context, term string) (models.Enrichment, error) {
	m.generateCalls++
	if m.err != nil {
		return models.Enrichment{}, m.err
	}
	return m.enrichment, nil
}

func (m *mockGenerator) GenerateCategory(ctx context.Context, term string) (string, error) {
	m.categoryCalls++
	if m.categoryErr != nil {
		return "", m.categoryErr
	}
	return m.category, nil
}

// mockTaskQueue is a mock implementation of TaskQueue
type mockTaskQueue struct {
	enqueued []int
	err      error
}

func (m *mockTaskQueue) EnqueueCategoryEnrichment(ctx context.Context, wordID int) error {
	if m.err != nil {
		return m.err
	}
	m.enqueued = append(m.enqueued, wordID)
	return nil
}
