package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vocabstudent/backend/internal/models"
	"go.uber.org/zap"
)

// WordService is the interface that wraps methods for word collection business logic.
type WordService interface {
	// Method CreateWord enriches a new term with AI-generated content and stores it.
	//
	// "term" is trimmed and lowercased; the new word is due for review at "now".
	// If the term already exists, models.ErrDuplicateWord is returned.
	// If enrichment fails, a *models.GenerationError is returned and nothing is stored.
	CreateWord(ctx context.Context, term string, now time.Time) (*models.Word, error)
	// Method GetAll retrieve all words, newest first.
	GetAll(ctx context.Context) ([]models.Word, error)
	// Method GetByID retrieve a word by its ID.
	//
	// If the word does not exist, models.ErrWordNotFound is returned.
	GetByID(ctx context.Context, id int) (*models.Word, error)
	// Method Update applies a partial update and returns the stored word.
	//
	// Please reference CreateWord and GetByID methods for error values.
	Update(ctx context.Context, id int, req *models.UpdateWordRequest) (*models.Word, error)
	// Method Delete removes a word by its ID.
	Delete(ctx context.Context, id int) error
	// Method Search retrieve words whose term or translation contains "query".
	Search(ctx context.Context, query string) ([]models.Word, error)
	// Method GetByCategory retrieve words of one grammatical category.
	GetByCategory(ctx context.Context, category string) ([]models.Word, error)
	// Method GetByLevel retrieve words of one mastery level.
	GetByLevel(ctx context.Context, level int) ([]models.Word, error)
	// Method GetProgress computes learning statistics of the whole collection at "now".
	GetProgress(ctx context.Context, now time.Time) (models.ProgressStats, error)
}

// WordHandler handles HTTP requests for the word collection
type WordHandler struct {
	BaseHandler
	service WordService
}

// NewWordHandler creates a new word handler
func NewWordHandler(svc WordService, logger *zap.Logger) *WordHandler {
	return &WordHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all word handler routes
// Note: This assumes the router is already scoped to /api/v1
func (h *WordHandler) RegisterRoutes(r chi.Router) {
	r.Route("/words", func(r chi.Router) {
		r.Get("/", h.GetAll)
		r.Post("/", h.Create)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	r.Get("/stats", h.GetStats)
}

// GetAll handles GET /words
// @Summary List words
// @Description List all words, or filter them by search text, category or level. Only one filter is applied, in that order.
// @Tags words
// @Produce json
// @Param search query string false "Substring of term or translation"
// @Param category query string false "Grammatical category"
// @Param level query int false "Mastery level (0-5)"
// @Success 200 {array} models.Word
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /words [get]
func (h *WordHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		words []models.Word
		err   error
	)
	switch {
	case query.Has("search"):
		words, err = h.service.Search(r.Context(), query.Get("search"))
	case query.Get("category") != "":
		words, err = h.service.GetByCategory(r.Context(), query.Get("category"))
	case query.Get("level") != "":
		level, convErr := strconv.Atoi(query.Get("level"))
		if convErr != nil {
			h.respondError(w, http.StatusBadRequest, "invalid level")
			return
		}
		words, err = h.service.GetByLevel(r.Context(), level)
	default:
		words, err = h.service.GetAll(r.Context())
	}
	if err != nil {
		h.respondServiceError(w, err, "failed to get words")
		return
	}

	if words == nil {
		words = []models.Word{}
	}
	h.respondJSON(w, http.StatusOK, words)
}

// Create handles POST /words
// @Summary Add a word
// @Description Enrich a new term with translation, definition, example and category, then store it as due for review
// @Tags words
// @Accept json
// @Produce json
// @Param request body models.CreateWordRequest true "Term to add"
// @Success 201 {object} models.Word
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 409 {object} map[string]string "Word already exists"
// @Failure 502 {object} map[string]string "Enrichment failed"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /words [post]
func (h *WordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWordRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	word, err := h.service.CreateWord(r.Context(), req.Term, time.Now())
	if err != nil {
		h.respondServiceError(w, err, "failed to create word")
		return
	}

	h.respondJSON(w, http.StatusCreated, word)
}

// GetByID handles GET /words/{id}
// @Summary Get word by ID
// @Tags words
// @Produce json
// @Param id path int true "Word ID"
// @Success 200 {object} models.Word
// @Failure 400 {object} map[string]string "Invalid word ID"
// @Failure 404 {object} map[string]string "Word not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /words/{id} [get]
func (h *WordHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	word, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "failed to get word")
		return
	}

	h.respondJSON(w, http.StatusOK, word)
}

// Update handles PUT /words/{id}
// @Summary Update a word
// @Description Update the content of a word. Only provided fields are changed; learning progress is never touched.
// @Tags words
// @Accept json
// @Produce json
// @Param id path int true "Word ID"
// @Param request body models.UpdateWordRequest true "Fields to update"
// @Success 200 {object} models.Word
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Word not found"
// @Failure 409 {object} map[string]string "Term already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /words/{id} [put]
func (h *WordHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req models.UpdateWordRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	word, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondServiceError(w, err, "failed to update word")
		return
	}

	h.respondJSON(w, http.StatusOK, word)
}

// Delete handles DELETE /words/{id}
// @Summary Delete a word
// @Tags words
// @Param id path int true "Word ID"
// @Success 204 "Word deleted"
// @Failure 400 {object} map[string]string "Invalid word ID"
// @Failure 404 {object} map[string]string "Word not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /words/{id} [delete]
func (h *WordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, err, "failed to delete word")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetStats handles GET /stats
// @Summary Learning statistics
// @Description Word count, due count, words per level, studied words and overall accuracy
// @Tags words
// @Produce json
// @Success 200 {object} models.ProgressStats
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /stats [get]
func (h *WordHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetProgress(r.Context(), time.Now())
	if err != nil {
		h.respondServiceError(w, err, "failed to get statistics")
		return
	}

	h.respondJSON(w, http.StatusOK, stats)
}

// parseID reads the {id} path parameter and answers 400 when it is not a positive number
func (h *WordHandler) parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid word ID")
		return 0, false
	}
	return id, true
}
