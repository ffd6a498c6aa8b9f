// Package scheduler implements the spaced-repetition rules for vocabulary words.
//
// All functions are pure: they never perform I/O, never read the wall clock and never
// mutate their inputs. The current time is always passed in explicitly.
package scheduler

import (
	"time"

	"github.com/vocabstudent/backend/internal/models"
)

// reviewIntervals maps a mastery level to the number of days until the next review
var reviewIntervals = map[int]int{
	0: 1,
	1: 3,
	2: 7,
	3: 14,
	4: 30,
	5: 90,
}

// ReviewInterval returns the number of days until the next review for the given level
//
// Levels outside of the known table fall back to one day.
func ReviewInterval(level int) int {
	if days, ok := reviewIntervals[level]; ok {
		return days
	}
	return 1
}

// NextReviewDate returns the date of the next review for the given level
//
// Calendar days are added, so the time of day of "now" is kept.
func NextReviewDate(level int, now time.Time) time.Time {
	return now.AddDate(0, 0, ReviewInterval(level))
}

// IsDue reports whether the word should be reviewed at "now"
//
// A word without a review date is always due.
func IsDue(word models.Word, now time.Time) bool {
	if word.NextReviewAt == nil {
		return true
	}
	return !word.NextReviewAt.After(now)
}

// ApplyOutcome returns a copy of the word updated after one presentation
//
// A correct answer raises the level by one (up to models.MaxLevel), an incorrect one lowers it
// by one (down to 0). A stored level outside of that range is clamped back into it.
// The next review date is computed from the new level.
func ApplyOutcome(word models.Word, correct bool, now time.Time) models.Word {
	updated := word

	step := -1
	if correct {
		step = 1
		updated.TimesCorrect = word.TimesCorrect + 1
	}
	updated.Level = clampLevel(word.Level + step)
	updated.TimesStudied = word.TimesStudied + 1

	studiedAt := now
	nextReview := NextReviewDate(updated.Level, now)
	updated.LastStudiedAt = &studiedAt
	updated.NextReviewAt = &nextReview
	updated.UpdatedAt = now

	return updated
}

func clampLevel(level int) int {
	return min(max(level, 0), models.MaxLevel)
}
