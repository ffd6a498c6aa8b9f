package scheduler

import (
	"math"
	"sort"
	"time"

	"github.com/vocabstudent/backend/internal/models"
)

// DefaultSessionSize is the number of words selected when no limit is given
const DefaultSessionSize = 10

// SelectDueCards returns the words due at "now", hardest first
//
// Words are ordered by level ascending and, within a level, by last study time ascending,
// with never studied words first. The result holds at most "limit" words; a non-positive
// limit means DefaultSessionSize. The input slice is left untouched.
func SelectDueCards(words []models.Word, now time.Time, limit int) []models.Word {
	if limit <= 0 {
		limit = DefaultSessionSize
	}

	due := make([]models.Word, 0, len(words))
	for _, word := range words {
		if IsDue(word, now) {
			due = append(due, word)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].Level != due[j].Level {
			return due[i].Level < due[j].Level
		}
		return studiedBefore(due[i].LastStudiedAt, due[j].LastStudiedAt)
	})

	if len(due) > limit {
		due = due[:limit]
	}
	return due
}

// studiedBefore orders study times with nil as the earliest possible time
func studiedBefore(a, b *time.Time) bool {
	switch {
	case a == nil && b == nil:
		return false
	case a == nil:
		return true
	case b == nil:
		return false
	default:
		return a.Before(*b)
	}
}

// ProgressStats aggregates learning statistics over a word collection
func ProgressStats(words []models.Word, now time.Time) models.ProgressStats {
	stats := models.ProgressStats{Total: len(words)}

	var studied, correct int
	for _, word := range words {
		if IsDue(word, now) {
			stats.Due++
		}
		if word.Level >= 0 && word.Level <= models.MaxLevel {
			stats.ByLevel[word.Level]++
		}
		if word.TimesStudied > 0 {
			stats.Studied++
		}
		studied += word.TimesStudied
		correct += word.TimesCorrect
	}

	if studied > 0 {
		stats.Accuracy = int(math.Round(float64(correct) / float64(studied) * 100))
	}
	return stats
}
