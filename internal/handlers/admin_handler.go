package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vocabstudent/backend/internal/models"
	"github.com/vocabstudent/backend/internal/services"
	"go.uber.org/zap"
)

const (
	defaultBackfillLimit = 50
	maxBackfillLimit     = 500
	maxImportMemory      = 10 << 20 // 10MB
)

// ImportService is the interface that wraps the CSV word import
type ImportService interface {
	// Method Import parses a "term,translation,definition,example" CSV list and stores its words.
	//
	// Existing terms are skipped; invalid rows are counted as errors and reported in the result.
	Import(ctx context.Context, r io.Reader, opts services.ImportOptions, now time.Time) (models.ImportResult, error)
}

// CategoryBackfiller is the interface that wraps filling in missing word categories
type CategoryBackfiller interface {
	// Method BackfillCategories requests a category for up to "limit" words without one.
	BackfillCategories(ctx context.Context, limit int) (models.BackfillResult, error)
}

// AdminHandler handles maintenance HTTP requests
type AdminHandler struct {
	BaseHandler
	importService ImportService
	backfiller    CategoryBackfiller
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(importService ImportService, backfiller CategoryBackfiller, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		importService: importService,
		backfiller:    backfiller,
		BaseHandler:   BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all admin handler routes
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Post("/import", h.Import)
		r.Post("/categories/backfill", h.BackfillCategories)
	})
}

// Import handles POST /admin/import
// @Summary Import words from CSV
// @Description Import a "term,translation,definition,example" CSV list, sent as the "file" field of a multipart form or as a text/csv body. Existing terms are skipped.
// @Tags admin
// @Accept multipart/form-data
// @Accept text/csv
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file false "CSV file"
// @Param enrich query bool false "Request a category for every imported word"
// @Success 200 {object} models.ImportResult
// @Failure 400 {object} map[string]string "Invalid CSV"
// @Failure 401 {object} map[string]string "Invalid or missing API key"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/import [post]
func (h *AdminHandler) Import(w http.ResponseWriter, r *http.Request) {
	enrich, err := parseBoolQuery(r, "enrich")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid enrich flag")
		return
	}

	var body io.Reader = r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImportMemory); err != nil {
			h.logger.Error("failed to parse multipart form", zap.Error(err))
			h.respondError(w, http.StatusBadRequest, "failed to parse multipart form")
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "file is required")
			return
		}
		defer file.Close()
		body = file
	}

	result, err := h.importService.Import(r.Context(), body, services.ImportOptions{Enrich: enrich}, time.Now())
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		h.respondServiceError(w, err, "failed to import words")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// BackfillCategories handles POST /admin/categories/backfill
// @Summary Backfill word categories
// @Description Request a grammatical category for words without one. Jobs are queued when a task queue is configured, otherwise categories are generated right away.
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Maximum number of words (default 50, max 500)"
// @Success 200 {object} models.BackfillResult
// @Failure 400 {object} map[string]string "Invalid limit"
// @Failure 401 {object} map[string]string "Invalid or missing API key"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/categories/backfill [post]
func (h *AdminHandler) BackfillCategories(w http.ResponseWriter, r *http.Request) {
	limit := defaultBackfillLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l <= 0 || l > maxBackfillLimit {
			h.respondError(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = l
	}

	result, err := h.backfiller.BackfillCategories(r.Context(), limit)
	if err != nil {
		h.respondServiceError(w, err, "failed to backfill categories")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

func parseBoolQuery(r *http.Request, key string) (bool, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return false, nil
	}
	return strconv.ParseBool(value)
}
