// Package enrichment generates translations, definitions, examples and
// grammatical categories for vocabulary terms with a large language model.
package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/vocabstudent/backend/internal/models"
)

const (
	// DefaultBaseURL is the Anthropic API endpoint
	DefaultBaseURL = "https://api.anthropic.com/"
	// DefaultModel is used when no model is configured
	DefaultModel = "claude-sonnet-4-20250514"
	// DefaultLanguage is the translation target language
	DefaultLanguage = "Spanish"
	// DefaultMaxRetries is the number of retries on rate limits and server errors
	DefaultMaxRetries = 2

	generateMaxTokens = 1000
	categoryMaxTokens = 100
)

// Categories lists the grammatical categories a word may be assigned
var Categories = []string{"noun", "verb", "adjective", "adverb", "preposition", "conjunction", "pronoun", "interjection"}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// Generator produces enrichment data for a term
type Generator interface {
	// Method Generate returns translation, definition, example and category for a term.
	//
	// "term" is the English word to enrich.
	//
	// Any failure is returned as *models.GenerationError and no partial data is returned.
	Generate(ctx context.Context, term string) (models.Enrichment, error)

	// Method GenerateCategory returns the grammatical category of a term.
	//
	// The result is one of Categories.
	GenerateCategory(ctx context.Context, term string) (string, error)
}

// ClaudeConfig configures the Claude generator
type ClaudeConfig struct {
	APIKey   string
	Model    string
	BaseURL  string
	Language string
	Timeout  time.Duration
}

// claudeGenerator implements Generator over the Anthropic Messages API
type claudeGenerator struct {
	client   anthropic.Client
	model    string
	language string
}

// NewClaudeGenerator creates a new Claude generator
//
// Empty Model, BaseURL and Language fall back to the package defaults.
// A zero Timeout means 30 seconds per attempt. Extra options are applied last.
func NewClaudeGenerator(cfg ClaudeConfig, opts ...option.RequestOption) *claudeGenerator {
	g := &claudeGenerator{
		model:    cfg.Model,
		language: cfg.Language,
	}
	if g.model == "" {
		g.model = DefaultModel
	}
	if g.language == "" {
		g.language = DefaultLanguage
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/") + "/"
	if baseURL == "/" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(DefaultMaxRetries),
	}
	g.client = anthropic.NewClient(append(clientOpts, opts...)...)
	return g
}

// Generate asks the model for the full enrichment of a term
func (g *claudeGenerator) Generate(ctx context.Context, term string) (models.Enrichment, error) {
	term = strings.TrimSpace(term)
	text, err := g.complete(ctx, g.generatePrompt(term), generateMaxTokens)
	if err != nil {
		return models.Enrichment{}, &models.GenerationError{Term: term, Reason: "request failed", Err: err}
	}

	enrichment, reason, err := parseEnrichment(text)
	if err != nil || reason != "" {
		return models.Enrichment{}, &models.GenerationError{Term: term, Reason: reason, Err: err}
	}
	return enrichment, nil
}

// GenerateCategory asks the model for the grammatical category of a term
func (g *claudeGenerator) GenerateCategory(ctx context.Context, term string) (string, error) {
	term = strings.TrimSpace(term)
	text, err := g.complete(ctx, categoryPrompt(term), categoryMaxTokens)
	if err != nil {
		return "", &models.GenerationError{Term: term, Reason: "request failed", Err: err}
	}

	category := NormalizeCategory(text)
	if !IsCategory(category) {
		return "", &models.GenerationError{Term: term, Reason: fmt.Sprintf("unknown category %q", category)}
	}
	return category, nil
}

func (g *claudeGenerator) generatePrompt(term string) string {
	return fmt.Sprintf(`I need information about the English word: "%s"

Please provide:
1. Translation into %s (one word or short phrase, the most common one)
2. Definition in English (clear and concise, at most 2 lines)
3. An example of use in English in a natural, contextual sentence
4. Grammatical category (%s)

IMPORTANT: Reply ONLY with this exact JSON, no extra text, no markdown, no backticks:
{
  "translation": "...",
  "definition": "...",
  "example": "...",
  "category": "..."
}`, term, g.language, strings.Join(Categories, ", "))
}

func categoryPrompt(term string) string {
	return fmt.Sprintf(`What is the grammatical category of the English word "%s"?

Reply ONLY with one word: %s`, term, strings.Join(Categories, ", "))
}

// complete sends a single user message and returns the text of the reply
func (g *claudeGenerator) complete(ctx context.Context, prompt string, maxTokens int64) (string, error) {
	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("messages api returned status %d: %w", apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("failed to call messages api: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("response has no text content")
	}
	return sb.String(), nil
}

// parseEnrichment extracts the JSON object from a model reply and validates it
//
// A non-empty reason reports why the reply was rejected.
func parseEnrichment(text string) (models.Enrichment, string, error) {
	raw := jsonObjectPattern.FindString(text)
	if raw == "" {
		return models.Enrichment{}, "no JSON object in response", nil
	}

	var enrichment models.Enrichment
	if err := json.Unmarshal([]byte(raw), &enrichment); err != nil {
		return models.Enrichment{}, "invalid JSON in response", err
	}

	enrichment.Translation = strings.TrimSpace(enrichment.Translation)
	enrichment.Definition = strings.TrimSpace(enrichment.Definition)
	enrichment.Example = strings.TrimSpace(enrichment.Example)
	enrichment.Category = NormalizeCategory(enrichment.Category)

	missing := []string{}
	if enrichment.Translation == "" {
		missing = append(missing, "translation")
	}
	if enrichment.Definition == "" {
		missing = append(missing, "definition")
	}
	if enrichment.Example == "" {
		missing = append(missing, "example")
	}
	if enrichment.Category == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return models.Enrichment{}, "incomplete response, missing " + strings.Join(missing, ", "), nil
	}

	return enrichment, "", nil
}

// NormalizeCategory lowercases a category and strips surrounding punctuation
func NormalizeCategory(s string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(s)), ".\"'`")
}

// IsCategory reports whether s is one of Categories
func IsCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}
