package handlers

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/vocabstudent/backend/internal/models"
	"go.uber.org/zap"
)

// SpeechService is the interface that wraps methods for pronunciation audio
type SpeechService interface {
	// Method AudioURL returns the URL of MP3 audio speaking "text", synthesizing it on first use.
	//
	// If speech synthesis is not configured, models.ErrTTSUnsupported is returned.
	AudioURL(ctx context.Context, text string) (string, error)
	// Method OpenAudio opens a stored audio file.
	//
	// If the file does not exist, os.ErrNotExist is returned.
	OpenAudio(filename string) (*os.File, error)
}

// SpeechHandler handles HTTP requests for pronunciation audio
type SpeechHandler struct {
	BaseHandler
	service SpeechService
}

// NewSpeechHandler creates a new speech handler
func NewSpeechHandler(svc SpeechService, logger *zap.Logger) *SpeechHandler {
	return &SpeechHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all speech handler routes
func (h *SpeechHandler) RegisterRoutes(r chi.Router) {
	r.Post("/speech", h.Speak)
	r.Get("/audio/{filename}", h.Download)
}

// Speak handles POST /speech
// @Summary Synthesize speech
// @Description Return the URL of MP3 audio speaking the text. Audio is cached, so repeated texts are not synthesized again.
// @Tags speech
// @Accept json
// @Produce json
// @Param request body models.SpeechRequest true "Text to speak"
// @Success 200 {object} models.SpeechResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 501 {object} map[string]string "Speech synthesis is not configured"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /speech [post]
func (h *SpeechHandler) Speak(w http.ResponseWriter, r *http.Request) {
	var req models.SpeechRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	url, err := h.service.AudioURL(r.Context(), req.Text)
	if err != nil {
		h.respondServiceError(w, err, "failed to synthesize speech")
		return
	}

	h.respondJSON(w, http.StatusOK, models.SpeechResponse{AudioURL: url})
}

// Download handles GET /audio/{filename}
// @Summary Download audio
// @Tags speech
// @Produce audio/mpeg
// @Param filename path string true "Audio file name"
// @Success 200 "MP3 audio"
// @Success 206 "Partial audio (for range requests)"
// @Failure 404 {object} map[string]string "File not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /audio/{filename} [get]
func (h *SpeechHandler) Download(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	file, err := h.service.OpenAudio(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			h.respondError(w, http.StatusNotFound, "file not found")
			return
		}
		h.logger.Error("failed to open audio file", zap.String("filename", filename), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to open file")
		return
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		h.logger.Error("failed to get file info", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get file info")
		return
	}

	// Audio file names are content hashes, so a file never changes
	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeContent(w, r, filename, fileInfo.ModTime(), file)
}
