package quiz

import (
	"github.com/vocabstudent/backend/internal/models"
)

// listenWrite plays the term and asks the learner to spell it
type listenWrite struct{}

func (l *listenWrite) Name() models.StudyMode {
	return models.StudyModeListenWrite
}

// Present hides the term; the audio URL is attached by the caller
func (l *listenWrite) Present(word models.Word) models.Question {
	return models.Question{
		WordID:   word.ID,
		Mode:     models.StudyModeListenWrite,
		Kind:     models.QuestionKindDictation,
		Hint:     word.Translation,
		Expected: word.Term,
	}
}

func (l *listenWrite) Check(question models.Question, answer string) bool {
	normalized := normalizeDictation(answer)
	return normalized != "" && normalized == normalizeDictation(question.Expected)
}
