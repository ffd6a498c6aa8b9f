package quiz

import (
	"strings"

	"github.com/vocabstudent/backend/internal/models"
)

// flashcards shows the term and lets the learner grade themselves
type flashcards struct{}

func (f *flashcards) Name() models.StudyMode {
	return models.StudyModeFlashcards
}

func (f *flashcards) Present(word models.Word) models.Question {
	return models.Question{
		WordID:   word.ID,
		Mode:     models.StudyModeFlashcards,
		Kind:     models.QuestionKindSelfGrade,
		Prompt:   word.Term,
		Hint:     word.Translation,
		Expected: word.Translation,
	}
}

// Check accepts the learner's self-assessment
func (f *flashcards) Check(question models.Question, answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "true", "know", "yes", "correct":
		return true
	default:
		return false
	}
}
