package tts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabstudent/backend/internal/models"
)

func TestNewSpeaker(t *testing.T) {
	t.Run("without api key", func(t *testing.T) {
		speaker, err := NewSpeaker(context.Background(), Config{})
		require.NoError(t, err)

		_, err = speaker.Synthesize(context.Background(), "hello")

		assert.ErrorIs(t, err, models.ErrTTSUnsupported)
		assert.NoError(t, speaker.Close())
	})

	t.Run("with api key", func(t *testing.T) {
		speaker, err := NewSpeaker(context.Background(), Config{APIKey: "key"})
		require.NoError(t, err)
		defer speaker.Close()

		google, ok := speaker.(*googleSpeaker)
		require.True(t, ok)
		assert.Equal(t, DefaultLanguage, google.language)
		assert.NotZero(t, google.timeout)
	})
}

func TestSpeakingRate(t *testing.T) {
	assert.Equal(t, WordRate, SpeakingRate("apple"))
	assert.Equal(t, WordRate, SpeakingRate("  apple "))
	assert.Equal(t, SentenceRate, SpeakingRate("I ate an apple."))
}

// synthesizeRequest mirrors the JSON body of text:synthesize
type synthesizeRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
	} `json:"voice"`
	AudioConfig struct {
		SpeakingRate float64 `json:"speakingRate"`
	} `json:"audioConfig"`
}

func TestGoogleSpeaker_Synthesize(t *testing.T) {
	audio := []byte("ID3-fake-mp3")

	tests := []struct {
		name         string
		text         string
		status       int
		body         string
		expectedRate float64
		expectError  bool
	}{
		{
			name:         "single word",
			text:         "apple",
			status:       http.StatusOK,
			body:         `{"audioContent":"` + base64.StdEncoding.EncodeToString(audio) + `"}`,
			expectedRate: WordRate,
		},
		{
			name:         "sentence",
			text:         "I ate an apple.",
			status:       http.StatusOK,
			body:         `{"audioContent":"` + base64.StdEncoding.EncodeToString(audio) + `"}`,
			expectedRate: SentenceRate,
		},
		{
			name:        "api error",
			text:        "apple",
			status:      http.StatusForbidden,
			body:        `{"error":{"code":403,"message":"API key not valid"}}`,
			expectError: true,
		},
		{
			name:        "invalid audio content",
			text:        "apple",
			status:      http.StatusOK,
			body:        `{"audioContent":"%%%"}`,
			expectError: true,
		},
		{
			name:        "empty audio content",
			text:        "apple",
			status:      http.StatusOK,
			body:        `{"audioContent":""}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				gotReq  synthesizeRequest
				gotKey  string
				gotPath string
			)
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotKey = r.Header.Get("X-Goog-Api-Key")
				if gotKey == "" {
					gotKey = r.URL.Query().Get("key")
				}
				_ = json.NewDecoder(r.Body).Decode(&gotReq)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			speaker, err := NewGoogleSpeaker(context.Background(), Config{APIKey: "secret", BaseURL: server.URL})
			require.NoError(t, err)
			defer speaker.Close()

			result, err := speaker.Synthesize(context.Background(), tt.text)

			assert.Equal(t, "/v1/text:synthesize", gotPath)
			assert.Equal(t, "secret", gotKey)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, audio, result)
			assert.Equal(t, tt.text, gotReq.Input.Text)
			assert.Equal(t, DefaultLanguage, gotReq.Voice.LanguageCode)
			assert.Equal(t, tt.expectedRate, gotReq.AudioConfig.SpeakingRate)
		})
	}
}

func TestGoogleSpeaker_Synthesize_EmptyText(t *testing.T) {
	speaker, err := NewGoogleSpeaker(context.Background(), Config{APIKey: "secret", BaseURL: "http://127.0.0.1:0"})
	require.NoError(t, err)
	defer speaker.Close()

	_, err = speaker.Synthesize(context.Background(), "   ")

	assert.Error(t, err)
}
