package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabstudent/backend/internal/models"
	"github.com/vocabstudent/backend/internal/session"
	"go.uber.org/zap"
)

func setupWordRouter(svc *mockWordService) chi.Router {
	r := chi.NewRouter()
	NewWordHandler(svc, zap.NewNop()).RegisterRoutes(r)
	return r
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestWordHandler_GetAll(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		svc            *mockWordService
		expectedStatus int
		expectedCall   string
	}{
		{name: "all words", url: "/words", svc: &mockWordService{words: []models.Word{{ID: 1}}}, expectedStatus: http.StatusOK, expectedCall: "GetAll"},
		{name: "search", url: "/words?search=app", svc: &mockWordService{}, expectedStatus: http.StatusOK, expectedCall: "Search"},
		{name: "category", url: "/words?category=verb", svc: &mockWordService{}, expectedStatus: http.StatusOK, expectedCall: "GetByCategory"},
		{name: "level", url: "/words?level=2", svc: &mockWordService{}, expectedStatus: http.StatusOK, expectedCall: "GetByLevel"},
		{name: "invalid level", url: "/words?level=high", svc: &mockWordService{}, expectedStatus: http.StatusBadRequest},
		{
			name:           "level out of range",
			url:            "/words?level=9",
			svc:            &mockWordService{err: fmt.Errorf("%w: level must be between 0 and 5", models.ErrInvalidInput)},
			expectedStatus: http.StatusBadRequest,
			expectedCall:   "GetByLevel",
		},
		{name: "service error", url: "/words", svc: &mockWordService{err: errors.New("database error")}, expectedStatus: http.StatusInternalServerError, expectedCall: "GetAll"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()
			setupWordRouter(tt.svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCall, tt.svc.called)
			if tt.expectedStatus == http.StatusOK {
				var words []models.Word
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &words))
				assert.NotNil(t, words)
			}
		})
	}
}

func TestWordHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		svc            *mockWordService
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "created",
			body:           `{"term":"Apple"}`,
			svc:            &mockWordService{word: &models.Word{ID: 1, Term: "apple", Translation: "manzana"}},
			expectedStatus: http.StatusCreated,
		},
		{name: "missing term", body: `{}`, svc: &mockWordService{}, expectedStatus: http.StatusBadRequest, expectedError: "term is a required field"},
		{name: "malformed json", body: `{"term":`, svc: &mockWordService{}, expectedStatus: http.StatusBadRequest},
		{name: "unknown field", body: `{"term":"a","level":3}`, svc: &mockWordService{}, expectedStatus: http.StatusBadRequest},
		{name: "empty body", body: ``, svc: &mockWordService{}, expectedStatus: http.StatusBadRequest, expectedError: "request body is required"},
		{
			name:           "duplicate",
			body:           `{"term":"apple"}`,
			svc:            &mockWordService{err: models.ErrDuplicateWord},
			expectedStatus: http.StatusConflict,
			expectedError:  "word already exists",
		},
		{
			name:           "generation failure",
			body:           `{"term":"apple"}`,
			svc:            &mockWordService{err: &models.GenerationError{Term: "apple", Reason: "invalid JSON in response"}},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:           "internal error",
			body:           `{"term":"apple"}`,
			svc:            &mockWordService{err: errors.New("database error")},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "failed to create word",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/words", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			setupWordRouter(tt.svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, errorMessage(t, w))
			}
			if tt.expectedStatus == http.StatusCreated {
				assert.Equal(t, "Apple", tt.svc.lastTerm)
				var word models.Word
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &word))
				assert.Equal(t, "manzana", word.Translation)
			}
		})
	}
}

func TestWordHandler_GetByID(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		svc            *mockWordService
		expectedStatus int
	}{
		{name: "found", url: "/words/1", svc: &mockWordService{word: &models.Word{ID: 1}}, expectedStatus: http.StatusOK},
		{name: "invalid id", url: "/words/abc", svc: &mockWordService{}, expectedStatus: http.StatusBadRequest},
		{name: "zero id", url: "/words/0", svc: &mockWordService{}, expectedStatus: http.StatusBadRequest},
		{name: "not found", url: "/words/2", svc: &mockWordService{err: models.ErrWordNotFound}, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()
			setupWordRouter(tt.svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestWordHandler_Update(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		svc := &mockWordService{word: &models.Word{ID: 1, Term: "apple", Translation: "poma"}}
		req := httptest.NewRequest(http.MethodPut, "/words/1", strings.NewReader(`{"translation":"poma"}`))
		w := httptest.NewRecorder()
		setupWordRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, svc.updateReq)
		assert.Nil(t, svc.updateReq.Term)
		assert.Equal(t, "poma", *svc.updateReq.Translation)
	})

	t.Run("too long category", func(t *testing.T) {
		svc := &mockWordService{}
		body := fmt.Sprintf(`{"category":"%s"}`, strings.Repeat("x", 51))
		req := httptest.NewRequest(http.MethodPut, "/words/1", strings.NewReader(body))
		w := httptest.NewRecorder()
		setupWordRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, errorMessage(t, w), "category")
		assert.Empty(t, svc.called)
	})

	t.Run("duplicate term", func(t *testing.T) {
		svc := &mockWordService{err: models.ErrDuplicateWord}
		req := httptest.NewRequest(http.MethodPut, "/words/1", strings.NewReader(`{"term":"pear"}`))
		w := httptest.NewRecorder()
		setupWordRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestWordHandler_Delete(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "deleted", expectedStatus: http.StatusNoContent},
		{name: "not found", err: models.ErrWordNotFound, expectedStatus: http.StatusNotFound},
		{name: "internal error", err: errors.New("database error"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/words/3", nil)
			w := httptest.NewRecorder()
			setupWordRouter(&mockWordService{err: tt.err}).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestWordHandler_GetStats(t *testing.T) {
	svc := &mockWordService{stats: models.ProgressStats{Total: 3, Due: 1, Studied: 2, Accuracy: 75}}
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	w := httptest.NewRecorder()
	setupWordRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var stats models.ProgressStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, svc.stats, stats)
}

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "invalid input", err: fmt.Errorf("%w: bad", models.ErrInvalidInput), expectedStatus: http.StatusBadRequest},
		{name: "no words due", err: models.ErrNoWordsDue, expectedStatus: http.StatusNotFound},
		{name: "word not found", err: fmt.Errorf("wrapped: %w", models.ErrWordNotFound), expectedStatus: http.StatusNotFound},
		{name: "session not found", err: models.ErrSessionNotFound, expectedStatus: http.StatusNotFound},
		{name: "duplicate", err: models.ErrDuplicateWord, expectedStatus: http.StatusConflict},
		{name: "no current card", err: session.ErrNoCurrentCard, expectedStatus: http.StatusConflict},
		{name: "session not active", err: session.ErrSessionNotActive, expectedStatus: http.StatusConflict},
		{name: "tts unsupported", err: models.ErrTTSUnsupported, expectedStatus: http.StatusNotImplemented},
		{name: "generation", err: &models.GenerationError{Term: "x", Reason: "request failed"}, expectedStatus: http.StatusBadGateway},
		{name: "unexpected", err: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{logger: zap.NewNop()}
			w := httptest.NewRecorder()

			h.respondServiceError(w, tt.err, "failed")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.NotEmpty(t, errorMessage(t, w))
		})
	}
}
