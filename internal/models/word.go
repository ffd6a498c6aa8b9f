package models

import "time"

// MaxLevel is the highest mastery level a word can reach
const MaxLevel = 5

// Word represents a vocabulary word together with its learning state
type Word struct {
	ID            int        `json:"id"`
	Term          string     `json:"term"` // Always lowercase
	Translation   string     `json:"translation"`
	Definition    string     `json:"definition"`
	Example       string     `json:"example"`
	Category      *string    `json:"category"` // Part of speech, may be unset
	Level         int        `json:"level"`    // 0..MaxLevel
	TimesStudied  int        `json:"timesStudied"`
	TimesCorrect  int        `json:"timesCorrect"`
	LastStudiedAt *time.Time `json:"lastStudiedAt"`
	NextReviewAt  *time.Time `json:"nextReviewAt"` // nil means due immediately
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// CreateWordRequest represents a request to add a new word
type CreateWordRequest struct {
	Term string `json:"term" validate:"required,max=255"`
}

// UpdateWordRequest represents a partial update of word content
//
// Only non-nil fields are updated.
type UpdateWordRequest struct {
	Term        *string `json:"term,omitempty" validate:"omitempty,min=1,max=255"`
	Translation *string `json:"translation,omitempty" validate:"omitempty,max=255"`
	Definition  *string `json:"definition,omitempty"`
	Example     *string `json:"example,omitempty"`
	Category    *string `json:"category,omitempty" validate:"omitempty,max=50"`
}

// IsEmpty reports whether the request changes nothing
func (r UpdateWordRequest) IsEmpty() bool {
	return r.Term == nil && r.Translation == nil && r.Definition == nil && r.Example == nil && r.Category == nil
}

// Enrichment represents AI-generated content for a word
type Enrichment struct {
	Translation string `json:"translation"`
	Definition  string `json:"definition"`
	Example     string `json:"example"`
	Category    string `json:"category"`
}

// ProgressStats represents aggregate learning statistics over a word collection
type ProgressStats struct {
	Total    int               `json:"total"`
	Due      int               `json:"due"`
	ByLevel  [MaxLevel + 1]int `json:"byLevel"`
	Studied  int               `json:"studied"`
	Accuracy int               `json:"accuracy"` // Percent
}
