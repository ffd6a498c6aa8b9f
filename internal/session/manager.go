// Package session drives study runs over a snapshot of due words.
package session

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/vocabstudent/backend/internal/models"
	"github.com/vocabstudent/backend/internal/scheduler"
	"go.uber.org/zap"
)

var (
	// ErrSessionNotActive is returned when an operation needs a running session
	ErrSessionNotActive = errors.New("study session is not active")
	// ErrNoCurrentCard is returned when every card of the session was already presented
	ErrNoCurrentCard = errors.New("no current card in study session")
)

// State represents the lifecycle state of a Manager
type State string

const (
	StateIdle     State = "idle"
	StateActive   State = "active"
	StateComplete State = "complete"
)

// WordUpdater is the interface that wraps the persistence of a word's learning state
type WordUpdater interface {
	// UpdateProgress stores level, counters and review dates of the word
	//
	// "word" parameter is the record returned by scheduler.ApplyOutcome.
	// If some error occurs during data update, the error will be returned.
	UpdateProgress(ctx context.Context, word models.Word) error
}

// Manager runs one study session at a time
//
// A Manager is not safe for concurrent use; callers serialize access.
type Manager struct {
	store  WordUpdater
	logger *zap.Logger

	state     State
	cards     []models.Word
	position  int
	results   []models.SessionResult
	startedAt time.Time
	mode      models.StudyMode
}

// NewManager creates a new idle session manager
func NewManager(store WordUpdater, logger *zap.Logger) *Manager {
	return &Manager{
		store:  store,
		logger: logger,
		state:  StateIdle,
	}
}

// State returns the current lifecycle state
func (m *Manager) State() State {
	return m.state
}

// Mode returns the mode tag of the running session
func (m *Manager) Mode() models.StudyMode {
	return m.mode
}

// Start selects the due words and begins a new session
//
// "words" is the whole collection, "limit" the session size (non-positive means the default size).
// If no word is due, models.ErrNoWordsDue is returned and the manager stays idle.
// Starting while a session is running replaces it.
func (m *Manager) Start(words []models.Word, limit int, mode models.StudyMode, now time.Time) error {
	due := scheduler.SelectDueCards(words, now, limit)
	if len(due) == 0 {
		return models.ErrNoWordsDue
	}

	m.cards = due
	m.position = 0
	m.results = []models.SessionResult{}
	m.startedAt = now
	m.mode = mode
	m.state = StateActive

	m.logger.Debug("study session started",
		zap.Int("words", len(due)),
		zap.String("mode", string(mode)),
	)
	return nil
}

// CurrentCard returns the card at the current position
func (m *Manager) CurrentCard() (models.Word, bool) {
	if m.state != StateActive || m.position >= len(m.cards) {
		return models.Word{}, false
	}
	return m.cards[m.position], true
}

// SubmitAnswer records the outcome of the current card and persists its new learning state
//
// The result is appended to the session log even when persistence fails; in that case the
// updated word is returned together with a *models.PersistenceError.
func (m *Manager) SubmitAnswer(ctx context.Context, correct bool, userAnswer string, now time.Time) (models.Word, error) {
	if m.state != StateActive {
		return models.Word{}, ErrSessionNotActive
	}
	card, ok := m.CurrentCard()
	if !ok {
		return models.Word{}, ErrNoCurrentCard
	}

	updated := scheduler.ApplyOutcome(card, correct, now)
	m.cards[m.position] = updated

	var persistErr error
	if err := m.store.UpdateProgress(ctx, updated); err != nil {
		m.logger.Error("failed to persist study result",
			zap.Int("word_id", updated.ID),
			zap.Error(err),
		)
		persistErr = &models.PersistenceError{WordID: updated.ID, Err: err}
	}

	m.results = append(m.results, models.SessionResult{
		WordID:     card.ID,
		Term:       card.Term,
		Correct:    correct,
		UserAnswer: userAnswer,
		Timestamp:  now,
	})

	return updated, persistErr
}

// Advance moves to the next card and reports whether one is left to present
//
// Moving past the last card completes the session, but End must still be called to get the summary.
func (m *Manager) Advance() bool {
	if m.state != StateActive {
		return false
	}
	m.position++
	if m.position >= len(m.cards) {
		m.state = StateComplete
		return false
	}
	return true
}

// Skip moves to the next card without recording a result
func (m *Manager) Skip() bool {
	return m.Advance()
}

// IsLastCard reports whether the current card is the final one
func (m *Manager) IsLastCard() bool {
	return m.state == StateActive && m.position == len(m.cards)-1
}

// Progress returns the position inside the running session
func (m *Manager) Progress() (models.SessionProgress, bool) {
	if m.state == StateIdle {
		return models.SessionProgress{}, false
	}

	total := len(m.cards)
	current := min(m.position+1, total)
	correct := m.countCorrect()

	return models.SessionProgress{
		Current:    current,
		Total:      total,
		Percentage: percent(current, total),
		Answered:   len(m.results),
		Correct:    correct,
	}, true
}

// End finishes the session and returns its summary
//
// The manager goes back to idle and forgets the session.
func (m *Manager) End(now time.Time) (models.SessionSummary, error) {
	if m.state == StateIdle {
		return models.SessionSummary{}, ErrSessionNotActive
	}

	correct := m.countCorrect()
	answered := len(m.results)

	summary := models.SessionSummary{
		TotalWords: len(m.cards),
		Answered:   answered,
		Correct:    correct,
		Incorrect:  answered - correct,
		Accuracy:   percent(correct, answered),
		Duration:   int(math.Round(now.Sub(m.startedAt).Seconds())),
		Mode:       m.mode,
		Results:    m.results,
	}

	m.logger.Debug("study session ended",
		zap.Int("answered", summary.Answered),
		zap.Int("accuracy", summary.Accuracy),
	)

	m.reset()
	return summary, nil
}

func (m *Manager) reset() {
	m.state = StateIdle
	m.cards = nil
	m.position = 0
	m.results = nil
	m.startedAt = time.Time{}
	m.mode = ""
}

func (m *Manager) countCorrect() int {
	correct := 0
	for _, result := range m.results {
		if result.Correct {
			correct++
		}
	}
	return correct
}

// percent returns part/total as a rounded percentage, 0 when total is 0
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
