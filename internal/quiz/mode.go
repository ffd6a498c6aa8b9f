// Package quiz implements the presentation modes of a study session.
//
// Every mode turns a word into a Question and decides whether an answer to that
// question is correct. Modes never touch the learning state of a word.
package quiz

import (
	"errors"
	"math/rand"

	"github.com/vocabstudent/backend/internal/models"
)

// ErrUnknownMode is returned for a study mode without an implementation
var ErrUnknownMode = errors.New("unknown study mode")

// Mode is the interface that wraps the presentation of words in a study session
type Mode interface {
	// Name returns the study mode tag
	Name() models.StudyMode
	// Present turns a word into a question
	Present(word models.Word) models.Question
	// Check reports whether "answer" is a correct answer to the question
	Check(question models.Question, answer string) bool
}

// NewMode creates the mode implementation for the given tag
//
// "pool" is the word collection distractors are drawn from, "rnd" the source of randomness.
func NewMode(mode models.StudyMode, pool []models.Word, rnd *rand.Rand) (Mode, error) {
	switch mode {
	case models.StudyModeFlashcards, "":
		return &flashcards{}, nil
	case models.StudyModeMultipleChoice:
		return NewMultipleChoice(pool, rnd), nil
	case models.StudyModeWriteTranslation:
		return &writeTranslation{}, nil
	case models.StudyModeListenWrite:
		return &listenWrite{}, nil
	default:
		return nil, ErrUnknownMode
	}
}
