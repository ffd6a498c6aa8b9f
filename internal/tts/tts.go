// Package tts synthesizes English speech for words and sentences.
package tts

import (
	"context"
	"fmt"
	"strings"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/vocabstudent/backend/internal/models"
	"google.golang.org/api/option"
)

const (
	// DefaultBaseURL is the Google Cloud Text-to-Speech endpoint
	DefaultBaseURL = "https://texttospeech.googleapis.com"
	// DefaultLanguage is the voice language code
	DefaultLanguage = "en-US"

	// WordRate is the speaking rate for single words
	WordRate = 0.85
	// SentenceRate is the speaking rate for phrases and sentences
	SentenceRate = 0.9
)

// Speaker turns text into MP3 audio
type Speaker interface {
	// Method Synthesize returns MP3 audio for the text.
	//
	// If speech synthesis is not configured, models.ErrTTSUnsupported is returned.
	Synthesize(ctx context.Context, text string) ([]byte, error)

	// Method Close releases the underlying client.
	Close() error
}

// Config configures the speech client
type Config struct {
	APIKey   string
	BaseURL  string
	Language string
	Timeout  time.Duration
}

// NewSpeaker creates a Speaker
//
// Without an API key the returned Speaker always fails with models.ErrTTSUnsupported.
func NewSpeaker(ctx context.Context, cfg Config) (Speaker, error) {
	if cfg.APIKey == "" {
		return unsupportedSpeaker{}, nil
	}
	return NewGoogleSpeaker(ctx, cfg)
}

// unsupportedSpeaker is used when no speech backend is configured
type unsupportedSpeaker struct{}

func (unsupportedSpeaker) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return nil, models.ErrTTSUnsupported
}

func (unsupportedSpeaker) Close() error {
	return nil
}

// googleSpeaker implements Speaker over the Google Cloud Text-to-Speech REST API
type googleSpeaker struct {
	client   *texttospeech.Client
	language string
	timeout  time.Duration
}

// NewGoogleSpeaker creates a new Google Text-to-Speech client authenticated with an API key
func NewGoogleSpeaker(ctx context.Context, cfg Config) (*googleSpeaker, error) {
	endpoint := strings.TrimRight(cfg.BaseURL, "/")
	if endpoint == "" {
		endpoint = DefaultBaseURL
	}

	client, err := texttospeech.NewRESTClient(ctx,
		option.WithAPIKey(cfg.APIKey),
		option.WithEndpoint(endpoint),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create text-to-speech client: %w", err)
	}

	s := &googleSpeaker{
		client:   client,
		language: cfg.Language,
		timeout:  cfg.Timeout,
	}
	if s.language == "" {
		s.language = DefaultLanguage
	}
	if s.timeout <= 0 {
		s.timeout = 15 * time.Second
	}
	return s, nil
}

// Synthesize requests MP3 audio for the text
func (s *googleSpeaker) Synthesize(ctx context.Context, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("text is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: s.language,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  SpeakingRate(text),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call text-to-speech api: %w", err)
	}

	audio := resp.GetAudioContent()
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty audio content")
	}
	return audio, nil
}

// Close closes the text-to-speech client
func (s *googleSpeaker) Close() error {
	return s.client.Close()
}

// SpeakingRate returns the rate for a text: slower for single words
func SpeakingRate(text string) float64 {
	if len(strings.Fields(text)) <= 1 {
		return WordRate
	}
	return SentenceRate
}
