package handlers

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/vocabstudent/backend/internal/models"
	"github.com/vocabstudent/backend/internal/services"
)

// mockWordService is a mock implementation of WordService
type mockWordService struct {
	words     []models.Word
	word      *models.Word
	stats     models.ProgressStats
	err       error
	lastTerm  string
	lastQuery string
	lastLevel int
	called    string
	updateReq *models.UpdateWordRequest
}

func (m *mockWordService) CreateWord(ctx context.Context, term string, now time.Time) (*models.Word, error) {
	m.called = "CreateWord"
	m.lastTerm = term
	return m.word, m.err
}

func (m *mockWordService) GetAll(ctx context.Context) ([]models.Word, error) {
	m.called = "GetAll"
	return m.words, m.err
}

func (m *mockWordService) GetByID(ctx context.Context, id int) (*models.Word, error) {
	m.called = "GetByID"
	return m.word, m.err
}

func (m *mockWordService) Update(ctx context.Context, id int, req *models.UpdateWordRequest) (*models.Word, error) {
	m.called = "Update"
	m.updateReq = req
	return m.word, m.err
}

func (m *mockWordService) Delete(ctx context.Context, id int) error {
	m.called = "Delete"
	return m.err
}

func (m *mockWordService) Search(ctx context.Context, query string) ([]models.Word, error) {
	m.called = "Search"
	m.lastQuery = query
	return m.words, m.err
}

func (m *mockWordService) GetByCategory(ctx context.Context, category string) ([]models.Word, error) {
	m.called = "GetByCategory"
	m.lastQuery = category
	return m.words, m.err
}

func (m *mockWordService) GetByLevel(ctx context.Context, level int) ([]models.Word, error) {
	m.called = "GetByLevel"
	m.lastLevel = level
	return m.words, m.err
}

func (m *mockWordService) GetProgress(ctx context.Context, now time.Time) (models.ProgressStats, error) {
	m.called = "GetProgress"
	return m.stats, m.err
}

// mockStudyService is a mock implementation of StudyService
type mockStudyService struct {
	state     *models.SessionState
	result    *models.AnswerResult
	summary   models.SessionSummary
	progress  models.SessionProgress
	err       error
	lastID    string
	startReq  models.StartSessionRequest
	answerReq models.SubmitAnswerRequest
}

func (m *mockStudyService) StartSession(ctx context.Context, req models.StartSessionRequest, now time.Time) (*models.SessionState, error) {
	m.startReq = req
	return m.state, m.err
}

func (m *mockStudyService) Current(ctx context.Context, id string, now time.Time) (*models.SessionState, error) {
	m.lastID = id
	return m.state, m.err
}

func (m *mockStudyService) Answer(ctx context.Context, id string, req models.SubmitAnswerRequest, now time.Time) (*models.AnswerResult, error) {
	m.lastID = id
	m.answerReq = req
	return m.result, m.err
}

func (m *mockStudyService) Next(ctx context.Context, id string, now time.Time) (*models.SessionState, error) {
	m.lastID = id
	return m.state, m.err
}

func (m *mockStudyService) Skip(ctx context.Context, id string, now time.Time) (*models.SessionState, error) {
	m.lastID = id
	return m.state, m.err
}

func (m *mockStudyService) Progress(ctx context.Context, id string, now time.Time) (models.SessionProgress, error) {
	m.lastID = id
	return m.progress, m.err
}

func (m *mockStudyService) EndSession(ctx context.Context, id string, now time.Time) (models.SessionSummary, error) {
	m.lastID = id
	return m.summary, m.err
}

// mockSpeechService is a mock implementation of SpeechService
type mockSpeechService struct {
	url      string
	err      error
	file     string
	openErr  error
	lastText string
}

func (m *mockSpeechService) AudioURL(ctx context.Context, text string) (string, error) {
	m.lastText = text
	return m.url, m.err
}

func (m *mockSpeechService) OpenAudio(filename string) (*os.File, error) {
	if m.openErr != nil {
		return nil, m.openErr
	}
	return os.Open(m.file)
}

// mockImportService is a mock implementation of ImportService
type mockImportService struct {
	result models.ImportResult
	err    error
	body   string
	opts   services.ImportOptions
}

func (m *mockImportService) Import(ctx context.Context, r io.Reader, opts services.ImportOptions, now time.Time) (models.ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.ImportResult{}, err
	}
	m.body = string(data)
	m.opts = opts
	return m.result, m.err
}

// mockBackfiller is a mock implementation of CategoryBackfiller
type mockBackfiller struct {
	result models.BackfillResult
	err    error
	limit  int
}

func (m *mockBackfiller) BackfillCategories(ctx context.Context, limit int) (models.BackfillResult, error) {
	m.limit = limit
	return m.result, m.err
}
