package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/vocabstudent/backend/internal/models"
	"github.com/vocabstudent/backend/internal/quiz"
	"github.com/vocabstudent/backend/internal/session"
	"go.uber.org/zap"
)

// StudyRepository is the interface that wraps word access of study sessions
type StudyRepository interface {
	// Method GetAll retrieve the whole word collection.
	GetAll(ctx context.Context) ([]models.Word, error)
	// Method UpdateProgress stores the learning state of a word.
	UpdateProgress(ctx context.Context, word models.Word) error
}

// SessionTokenGenerator is the interface that wraps signing of study session handles
type SessionTokenGenerator interface {
	// Method GenerateSessionToken returns a signed token carrying "sessionID".
	GenerateSessionToken(sessionID string) (string, error)
}

// AudioProvider is the interface that wraps lookup of pronunciation audio
type AudioProvider interface {
	// Method AudioURL returns the URL of MP3 audio speaking "text".
	AudioURL(ctx context.Context, text string) (string, error)
}

type studyService struct {
	repo        StudyRepository
	registry    *session.Registry
	tokens      SessionTokenGenerator
	audio       AudioProvider
	sessionSize int
	logger      *zap.Logger
}

// NewStudyService creates a new study service
//
// "audio" may be nil, listen and write questions then carry no audio URL.
func NewStudyService(repo StudyRepository, registry *session.Registry, tokens SessionTokenGenerator, audio AudioProvider, sessionSize int, logger *zap.Logger) *studyService {
	return &studyService{
		repo:        repo,
		registry:    registry,
		tokens:      tokens,
		audio:       audio,
		sessionSize: sessionSize,
		logger:      logger,
	}
}

// StartSession selects the due words and starts a new study session
//
// If nothing is due, models.ErrNoWordsDue is returned.
func (s *studyService) StartSession(ctx context.Context, req models.StartSessionRequest, now time.Time) (*models.SessionState, error) {
	mode := req.Mode
	if mode == "" {
		mode = models.StudyModeFlashcards
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown study mode %q", models.ErrInvalidInput, mode)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.sessionSize
	}

	words, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get words for study session", zap.Error(err))
		return nil, fmt.Errorf("failed to get words: %w", err)
	}

	manager := session.NewManager(s.repo, s.logger)
	if err := manager.Start(words, limit, mode, now); err != nil {
		return nil, err
	}

	quizMode, err := quiz.NewMode(mode, words, rand.New(rand.NewSource(now.UnixNano())))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	entry := session.NewEntry(manager, quizMode, now)
	s.present(ctx, entry)

	id := s.registry.Add(entry)
	token, err := s.tokens.GenerateSessionToken(id)
	if err != nil {
		s.registry.Remove(id)
		s.logger.Error("failed to generate session token", zap.Error(err))
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	s.logger.Info("study session started", zap.String("session_id", id), zap.String("mode", string(mode)))

	state := s.state(entry)
	state.Token = token
	return &state, nil
}

// Current returns the question and progress of a running session
func (s *studyService) Current(ctx context.Context, id string, now time.Time) (*models.SessionState, error) {
	entry, err := s.entry(id, now)
	if err != nil {
		return nil, err
	}
	entry.Lock()
	defer entry.Unlock()

	state := s.state(entry)
	return &state, nil
}

// Answer evaluates the answer to the current question and records the outcome
//
// A failed write of the learning state is reported in the Warning field; the session goes on.
func (s *studyService) Answer(ctx context.Context, id string, req models.SubmitAnswerRequest, now time.Time) (*models.AnswerResult, error) {
	entry, err := s.entry(id, now)
	if err != nil {
		return nil, err
	}
	entry.Lock()
	defer entry.Unlock()

	if entry.Question == nil {
		return nil, session.ErrNoCurrentCard
	}
	question := *entry.Question

	var correct bool
	if question.Kind == models.QuestionKindSelfGrade && req.Correct != nil {
		correct = *req.Correct
	} else {
		correct = entry.Mode.Check(question, req.Answer)
	}

	card, _ := entry.Manager.CurrentCard()
	isLast := entry.Manager.IsLastCard()

	updated, err := entry.Manager.SubmitAnswer(ctx, correct, req.Answer, now)
	result := &models.AnswerResult{
		Correct:  correct,
		Expected: question.Expected,
		Word:     updated,
		Result: models.SessionResult{
			WordID:     card.ID,
			Term:       card.Term,
			Correct:    correct,
			UserAnswer: req.Answer,
			Timestamp:  now,
		},
		IsLast: isLast,
	}
	if err != nil {
		var persistErr *models.PersistenceError
		if !errors.As(err, &persistErr) {
			return nil, err
		}
		result.Warning = "answer recorded but progress could not be saved"
	}

	entry.Question = nil
	return result, nil
}

// Next moves to the next card of a session
func (s *studyService) Next(ctx context.Context, id string, now time.Time) (*models.SessionState, error) {
	return s.move(ctx, id, now, (*session.Manager).Advance)
}

// Skip moves to the next card without recording a result
func (s *studyService) Skip(ctx context.Context, id string, now time.Time) (*models.SessionState, error) {
	return s.move(ctx, id, now, (*session.Manager).Skip)
}

// Progress returns the position inside a session
func (s *studyService) Progress(ctx context.Context, id string, now time.Time) (models.SessionProgress, error) {
	entry, err := s.entry(id, now)
	if err != nil {
		return models.SessionProgress{}, err
	}
	entry.Lock()
	defer entry.Unlock()

	progress, _ := entry.Manager.Progress()
	return progress, nil
}

// EndSession finishes a session and returns its summary
func (s *studyService) EndSession(ctx context.Context, id string, now time.Time) (models.SessionSummary, error) {
	entry, err := s.entry(id, now)
	if err != nil {
		return models.SessionSummary{}, err
	}
	entry.Lock()
	defer entry.Unlock()

	summary, err := entry.Manager.End(now)
	if err != nil {
		return models.SessionSummary{}, err
	}
	s.registry.Remove(id)

	s.logger.Info("study session ended",
		zap.String("session_id", id),
		zap.Int("answered", summary.Answered),
		zap.Int("accuracy", summary.Accuracy),
	)
	return summary, nil
}

func (s *studyService) move(ctx context.Context, id string, now time.Time, step func(*session.Manager) bool) (*models.SessionState, error) {
	entry, err := s.entry(id, now)
	if err != nil {
		return nil, err
	}
	entry.Lock()
	defer entry.Unlock()

	if entry.Manager.State() != session.StateActive {
		return nil, session.ErrSessionNotActive
	}

	entry.Question = nil
	if step(entry.Manager) {
		s.present(ctx, entry)
	}

	state := s.state(entry)
	return &state, nil
}

func (s *studyService) entry(id string, now time.Time) (*session.Entry, error) {
	if id == "" {
		return nil, models.ErrSessionNotFound
	}
	entry, ok := s.registry.Get(id, now)
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	return entry, nil
}

// present builds the question of the current card; the caller holds the entry lock
func (s *studyService) present(ctx context.Context, entry *session.Entry) {
	card, ok := entry.Manager.CurrentCard()
	if !ok {
		entry.Question = nil
		return
	}

	question := entry.Mode.Present(card)
	if question.Kind == models.QuestionKindDictation && s.audio != nil {
		url, err := s.audio.AudioURL(ctx, card.Term)
		if err != nil {
			s.logger.Warn("failed to get audio for question", zap.Int("word_id", card.ID), zap.Error(err))
		} else {
			question.AudioURL = url
		}
	}
	entry.Question = &question
}

// state builds the client view of a session; the caller holds the entry lock
func (s *studyService) state(entry *session.Entry) models.SessionState {
	progress, _ := entry.Manager.Progress()
	return models.SessionState{
		Question: entry.Question,
		Progress: progress,
		IsLast:   entry.Manager.IsLastCard(),
	}
}
