package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vocabstudent/backend/internal/models"
	"github.com/vocabstudent/backend/internal/quiz"
	"go.uber.org/zap"
)

// Entry holds one running study session of the HTTP API
//
// Callers must hold the entry lock while using Manager, Mode or Question.
type Entry struct {
	sync.Mutex
	Manager  *Manager
	Mode     quiz.Mode
	Question *models.Question

	lastUsed time.Time
}

// NewEntry creates a registry entry for a started manager
func NewEntry(manager *Manager, mode quiz.Mode, now time.Time) *Entry {
	return &Entry{
		Manager:  manager,
		Mode:     mode,
		lastUsed: now,
	}
}

// Registry keeps running study sessions by ID and drops abandoned ones
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	ttl     time.Duration
	logger  *zap.Logger
}

// NewRegistry creates a registry expiring sessions idle for longer than "ttl"
func NewRegistry(ttl time.Duration, logger *zap.Logger) *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
		ttl:     ttl,
		logger:  logger,
	}
}

// Add stores the entry and returns its new session ID
func (r *Registry) Add(entry *Entry) string {
	id := uuid.New().String()

	r.mu.Lock()
	r.entries[id] = entry
	r.mu.Unlock()

	return id
}

// Get returns the entry of a session and marks it as used at "now"
func (r *Registry) Get(id string, now time.Time) (*Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	entry.lastUsed = now
	return entry, true
}

// Remove forgets a session
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
}

// Len returns the number of stored sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Sweep removes sessions not used since now-ttl and returns how many were removed
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, entry := range r.entries {
		if now.Sub(entry.lastUsed) > r.ttl {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every "interval" until ctx is done
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := r.Sweep(time.Now()); removed > 0 {
				r.logger.Info("expired study sessions removed", zap.Int("count", removed), zap.Int("active", r.Len()))
			}
		case <-ctx.Done():
			return
		}
	}
}
