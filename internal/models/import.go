package models

// ImportRow represents one parsed line of a CSV word list
type ImportRow struct {
	Line        int
	Term        string
	Translation string
	Definition  string
	Example     string
}

// ImportResult represents the outcome of a CSV import
type ImportResult struct {
	Total    int      `json:"total"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   int      `json:"errors"`
	Enriched int      `json:"enriched"`
	Messages []string `json:"messages,omitempty"`
}

// BackfillResult represents the outcome of a category backfill run
type BackfillResult struct {
	Processed int `json:"processed"`
	Enqueued  int `json:"enqueued"`
	Updated   int `json:"updated"`
	Failed    int `json:"failed"`
}

// SpeechRequest represents a request to synthesize speech
type SpeechRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

// SpeechResponse represents the location of synthesized audio
type SpeechResponse struct {
	AudioURL string `json:"audioUrl"`
}
