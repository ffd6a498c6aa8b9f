package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/vocabstudent/backend/internal/models"
	"github.com/vocabstudent/backend/internal/session"
	"go.uber.org/zap"
)

// errEmptyBody is returned by decodeJSON for a request without body
var errEmptyBody = errors.New("request body is required")

type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// decodeJSON reads a JSON body into "dst" and validates it
//
// The returned error is ready to be sent to the client.
func (h *BaseHandler) decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return errors.New("request body too large")
		}
		return fmt.Errorf("invalid request body: %v", err)
	}

	if err := Validator.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return errors.New(validationMessage(validationErrors))
		}
		return err
	}
	return nil
}

// respondServiceError maps a service error to its HTTP status
//
// Unexpected errors are logged and answered with 500 and "fallback" as message.
func (h *BaseHandler) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	var genErr *models.GenerationError

	switch {
	case errors.Is(err, models.ErrInvalidInput):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNoWordsDue):
		h.respondError(w, http.StatusNotFound, models.ErrNoWordsDue.Error())
	case errors.Is(err, models.ErrWordNotFound):
		h.respondError(w, http.StatusNotFound, models.ErrWordNotFound.Error())
	case errors.Is(err, models.ErrSessionNotFound):
		h.respondError(w, http.StatusNotFound, models.ErrSessionNotFound.Error())
	case errors.Is(err, models.ErrDuplicateWord):
		h.respondError(w, http.StatusConflict, models.ErrDuplicateWord.Error())
	case errors.Is(err, session.ErrNoCurrentCard), errors.Is(err, session.ErrSessionNotActive):
		h.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrTTSUnsupported):
		h.respondError(w, http.StatusNotImplemented, models.ErrTTSUnsupported.Error())
	case errors.As(err, &genErr):
		h.logger.Warn("word enrichment failed", zap.String("term", genErr.Term), zap.String("reason", genErr.Reason))
		h.respondError(w, http.StatusBadGateway, genErr.Error())
	default:
		h.logger.Error(fallback, zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, fallback)
	}
}
