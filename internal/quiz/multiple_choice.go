package quiz

import (
	"math/rand"
	"strings"

	"github.com/vocabstudent/backend/internal/models"
)

// OptionCount is the number of options of a multiple choice question
const OptionCount = 4

// multipleChoice asks for the translation or the definition of a term among four options
type multipleChoice struct {
	pool []models.Word
	rnd  *rand.Rand
}

// NewMultipleChoice creates a multiple choice mode drawing distractors from "pool"
func NewMultipleChoice(pool []models.Word, rnd *rand.Rand) *multipleChoice {
	return &multipleChoice{
		pool: pool,
		rnd:  rnd,
	}
}

func (m *multipleChoice) Name() models.StudyMode {
	return models.StudyModeMultipleChoice
}

func (m *multipleChoice) Present(word models.Word) models.Question {
	kind := models.QuestionKindTranslation
	if m.rnd.Intn(2) == 1 && word.Definition != "" {
		kind = models.QuestionKindDefinition
	}

	correct := answerField(word, kind)
	options := append([]string{correct}, m.distractors(word, kind, correct)...)
	m.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return models.Question{
		WordID:   word.ID,
		Mode:     models.StudyModeMultipleChoice,
		Kind:     kind,
		Prompt:   word.Term,
		Options:  options,
		Expected: correct,
	}
}

func (m *multipleChoice) Check(question models.Question, answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(question.Expected))
}

// distractors picks up to OptionCount-1 distinct wrong options from other words
func (m *multipleChoice) distractors(word models.Word, kind models.QuestionKind, correct string) []string {
	candidates := make([]string, 0, len(m.pool))
	seen := map[string]bool{strings.ToLower(correct): true}
	for _, other := range m.pool {
		if other.ID == word.ID {
			continue
		}
		value := answerField(other, kind)
		key := strings.ToLower(value)
		if value == "" || seen[key] {
			continue
		}
		seen[key] = true
		candidates = append(candidates, value)
	}

	m.rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > OptionCount-1 {
		candidates = candidates[:OptionCount-1]
	}
	return candidates
}

func answerField(word models.Word, kind models.QuestionKind) string {
	if kind == models.QuestionKindDefinition {
		return word.Definition
	}
	return word.Translation
}
