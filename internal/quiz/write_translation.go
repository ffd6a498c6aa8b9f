package quiz

import (
	"slices"

	"github.com/vocabstudent/backend/internal/models"
)

// writeTranslation asks the learner to type the translation of a term
type writeTranslation struct{}

func (w *writeTranslation) Name() models.StudyMode {
	return models.StudyModeWriteTranslation
}

func (w *writeTranslation) Present(word models.Word) models.Question {
	return models.Question{
		WordID:   word.ID,
		Mode:     models.StudyModeWriteTranslation,
		Kind:     models.QuestionKindTranslation,
		Prompt:   word.Term,
		Hint:     word.Definition,
		Expected: word.Translation,
	}
}

// Check compares normalized text with the whole translation or one of its listed alternatives
//
// Partial matches are rejected: "cas" is not accepted for "casa".
func (w *writeTranslation) Check(question models.Question, answer string) bool {
	normalized := Normalize(answer)
	if normalized == "" {
		return false
	}
	return slices.Contains(alternatives(question.Expected), normalized)
}
