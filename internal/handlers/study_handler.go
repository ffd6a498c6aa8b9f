package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vocabstudent/backend/internal/auth"
	"github.com/vocabstudent/backend/internal/models"
	"go.uber.org/zap"
)

// StudyService is the interface that wraps methods for study session business logic.
type StudyService interface {
	// Method StartSession selects the due words and starts a new session.
	//
	// The returned state carries the session token and the first question.
	// If nothing is due, models.ErrNoWordsDue is returned.
	StartSession(ctx context.Context, req models.StartSessionRequest, now time.Time) (*models.SessionState, error)
	// Method Current returns the question and progress of a session.
	//
	// If the session does not exist, models.ErrSessionNotFound is returned.
	Current(ctx context.Context, id string, now time.Time) (*models.SessionState, error)
	// Method Answer evaluates the answer to the current question and records the outcome.
	//
	// A failed write of learning progress is reported in the Warning field, not as an error.
	Answer(ctx context.Context, id string, req models.SubmitAnswerRequest, now time.Time) (*models.AnswerResult, error)
	// Method Next moves to the next card.
	Next(ctx context.Context, id string, now time.Time) (*models.SessionState, error)
	// Method Skip moves to the next card without recording a result.
	Skip(ctx context.Context, id string, now time.Time) (*models.SessionState, error)
	// Method Progress returns the position inside a session.
	Progress(ctx context.Context, id string, now time.Time) (models.SessionProgress, error)
	// Method EndSession finishes a session and returns its summary.
	EndSession(ctx context.Context, id string, now time.Time) (models.SessionSummary, error)
}

// StudyHandler handles HTTP requests for study sessions
type StudyHandler struct {
	BaseHandler
	service StudyService
}

// NewStudyHandler creates a new study handler
func NewStudyHandler(svc StudyService, logger *zap.Logger) *StudyHandler {
	return &StudyHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all study handler routes
//
// "sessionMw" guards the routes of a running session and puts its ID into the request context.
func (h *StudyHandler) RegisterRoutes(r chi.Router, sessionMw func(http.Handler) http.Handler) {
	r.Route("/study/sessions", func(r chi.Router) {
		r.Post("/", h.Start)
		r.Route("/current", func(r chi.Router) {
			r.Use(sessionMw)
			r.Get("/", h.Current)
			r.Post("/answer", h.Answer)
			r.Post("/next", h.Next)
			r.Post("/skip", h.Skip)
			r.Get("/progress", h.Progress)
			r.Post("/end", h.End)
		})
	})
}

// Start handles POST /study/sessions
// @Summary Start a study session
// @Description Select due words (hardest first) and start a session. The returned token must be sent with every later request of the session.
// @Tags study
// @Accept json
// @Produce json
// @Param request body models.StartSessionRequest false "Session size and mode"
// @Success 201 {object} models.SessionState
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "No words due for review"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /study/sessions [post]
func (h *StudyHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req models.StartSessionRequest
	if err := h.decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := h.service.StartSession(r.Context(), req, time.Now())
	if err != nil {
		h.respondServiceError(w, err, "failed to start study session")
		return
	}

	h.respondJSON(w, http.StatusCreated, state)
}

// Current handles GET /study/sessions/current
// @Summary Current question
// @Tags study
// @Produce json
// @Security SessionAuth
// @Success 200 {object} models.SessionState
// @Failure 401 {object} map[string]string "Missing or invalid session token"
// @Failure 404 {object} map[string]string "Session expired"
// @Router /study/sessions/current [get]
func (h *StudyHandler) Current(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Current(r.Context(), sessionID(r), time.Now())
	if err != nil {
		h.respondServiceError(w, err, "failed to get study session")
		return
	}

	h.respondJSON(w, http.StatusOK, state)
}

// Answer handles POST /study/sessions/current/answer
// @Summary Answer the current question
// @Description Check the answer, update the learning progress of the word and return the result. Self-graded modes send "correct" instead of "answer".
// @Tags study
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param request body models.SubmitAnswerRequest true "Answer"
// @Success 200 {object} models.AnswerResult
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Missing or invalid session token"
// @Failure 404 {object} map[string]string "Session expired"
// @Failure 409 {object} map[string]string "Question already answered or session finished"
// @Router /study/sessions/current/answer [post]
func (h *StudyHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitAnswerRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Answer(r.Context(), sessionID(r), req, time.Now())
	if err != nil {
		h.respondServiceError(w, err, "failed to submit answer")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// Next handles POST /study/sessions/current/next
// @Summary Next question
// @Description Move to the next card. When the last card is passed the question is null and the session can only be ended.
// @Tags study
// @Produce json
// @Security SessionAuth
// @Success 200 {object} models.SessionState
// @Failure 401 {object} map[string]string "Missing or invalid session token"
// @Failure 404 {object} map[string]string "Session expired"
// @Failure 409 {object} map[string]string "Session finished"
// @Router /study/sessions/current/next [post]
func (h *StudyHandler) Next(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Next(r.Context(), sessionID(r), time.Now())
	if err != nil {
		h.respondServiceError(w, err, "failed to move to next card")
		return
	}

	h.respondJSON(w, http.StatusOK, state)
}

// Skip handles POST /study/sessions/current/skip
// @Summary Skip question
// @Description Move to the next card without recording a result
// @Tags study
// @Produce json
// @Security SessionAuth
// @Success 200 {object} models.SessionState
// @Failure 401 {object} map[string]string "Missing or invalid session token"
// @Failure 404 {object} map[string]string "Session expired"
// @Failure 409 {object} map[string]string "Session finished"
// @Router /study/sessions/current/skip [post]
func (h *StudyHandler) Skip(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Skip(r.Context(), sessionID(r), time.Now())
	if err != nil {
		h.respondServiceError(w, err, "failed to skip card")
		return
	}

	h.respondJSON(w, http.StatusOK, state)
}

// Progress handles GET /study/sessions/current/progress
// @Summary Session progress
// @Tags study
// @Produce json
// @Security SessionAuth
// @Success 200 {object} models.SessionProgress
// @Failure 401 {object} map[string]string "Missing or invalid session token"
// @Failure 404 {object} map[string]string "Session expired"
// @Router /study/sessions/current/progress [get]
func (h *StudyHandler) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.service.Progress(r.Context(), sessionID(r), time.Now())
	if err != nil {
		h.respondServiceError(w, err, "failed to get session progress")
		return
	}

	h.respondJSON(w, http.StatusOK, progress)
}

// End handles POST /study/sessions/current/end
// @Summary End the session
// @Tags study
// @Produce json
// @Security SessionAuth
// @Success 200 {object} models.SessionSummary
// @Failure 401 {object} map[string]string "Missing or invalid session token"
// @Failure 404 {object} map[string]string "Session expired"
// @Router /study/sessions/current/end [post]
func (h *StudyHandler) End(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.EndSession(r.Context(), sessionID(r), time.Now())
	if err != nil {
		h.respondServiceError(w, err, "failed to end study session")
		return
	}

	h.respondJSON(w, http.StatusOK, summary)
}

func sessionID(r *http.Request) string {
	id, _ := auth.GetSessionID(r.Context())
	return id
}
