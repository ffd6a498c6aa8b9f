package models

import "time"

// StudyMode represents a quiz presentation mode
type StudyMode string

const (
	StudyModeFlashcards       StudyMode = "flashcards"
	StudyModeMultipleChoice   StudyMode = "multiple_choice"
	StudyModeWriteTranslation StudyMode = "write_translation"
	StudyModeListenWrite      StudyMode = "listen_write"
)

// IsValid checks if the study mode is known
func (m StudyMode) IsValid() bool {
	switch m {
	case StudyModeFlashcards, StudyModeMultipleChoice, StudyModeWriteTranslation, StudyModeListenWrite:
		return true
	}
	return false
}

// SessionResult represents the outcome of one presentation in a study session
type SessionResult struct {
	WordID     int       `json:"wordId"`
	Term       string    `json:"term"`
	Correct    bool      `json:"correct"`
	UserAnswer string    `json:"userAnswer,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// SessionSummary represents the final report of a study session
type SessionSummary struct {
	TotalWords int             `json:"totalWords"`
	Answered   int             `json:"answered"`
	Correct    int             `json:"correct"`
	Incorrect  int             `json:"incorrect"`
	Accuracy   int             `json:"accuracy"` // Percent
	Duration   int             `json:"duration"` // Seconds
	Mode       StudyMode       `json:"mode"`
	Results    []SessionResult `json:"results"`
}

// SessionProgress represents the position inside a running study session
type SessionProgress struct {
	Current    int `json:"current"` // 1-based
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
	Answered   int `json:"answered"`
	Correct    int `json:"correct"`
}

// QuestionKind represents what a question asks for
type QuestionKind string

const (
	QuestionKindSelfGrade   QuestionKind = "self_grade"
	QuestionKindTranslation QuestionKind = "translation"
	QuestionKindDefinition  QuestionKind = "definition"
	QuestionKindDictation   QuestionKind = "dictation"
)

// Question represents a card as presented by a study mode
type Question struct {
	WordID   int          `json:"wordId"`
	Mode     StudyMode    `json:"mode"`
	Kind     QuestionKind `json:"kind"`
	Prompt   string       `json:"prompt"`
	Hint     string       `json:"hint,omitempty"`
	Options  []string     `json:"options,omitempty"`
	AudioURL string       `json:"audioUrl,omitempty"`
	// Expected is never sent to the client
	Expected string `json:"-"`
}

// StartSessionRequest represents a request to start a study session
type StartSessionRequest struct {
	Limit int       `json:"limit" validate:"omitempty,min=1,max=100"`
	Mode  StudyMode `json:"mode" validate:"omitempty,oneof=flashcards multiple_choice write_translation listen_write"`
}

// SubmitAnswerRequest represents a learner's answer
//
// Correct is used by self-graded modes, Answer by all others.
type SubmitAnswerRequest struct {
	Answer  string `json:"answer" validate:"max=500"`
	Correct *bool  `json:"correct,omitempty"`
}

// AnswerResult represents the evaluated answer of the current card
type AnswerResult struct {
	Correct  bool          `json:"correct"`
	Expected string        `json:"expected"`
	Word     Word          `json:"word"`
	Result   SessionResult `json:"result"`
	IsLast   bool          `json:"isLast"`
	Warning  string        `json:"warning,omitempty"`
}

// SessionState represents the client view of a running study session
type SessionState struct {
	Token    string          `json:"token,omitempty"`
	Question *Question       `json:"question"`
	Progress SessionProgress `json:"progress"`
	IsLast   bool            `json:"isLast"`
}
