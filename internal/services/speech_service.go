package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vocabstudent/backend/internal/models"
	"github.com/vocabstudent/backend/internal/storage"
	"go.uber.org/zap"
)

// AudioMediaType is the storage media type of synthesized speech
const AudioMediaType = "audio"

const maxSpeechLength = 500

// Speaker is the interface that wraps speech synthesis
type Speaker interface {
	// Method Synthesize returns MP3 audio for "text".
	//
	// If synthesis is not configured, models.ErrTTSUnsupported is returned.
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// AudioStorage is the interface that wraps audio file storage
type AudioStorage interface {
	// Method Create creates a new file and returns a writer for it.
	Create(id, mediaType string) (io.WriteCloser, error)
	// Method OpenFile opens a stored file.
	OpenFile(id, mediaType string) (*os.File, error)
	// Method Exists reports whether a file is stored.
	Exists(id, mediaType string) (bool, error)
	// Method Delete removes a stored file.
	Delete(id, mediaType string) error
}

type speechService struct {
	speaker Speaker
	storage AudioStorage
	baseURL string
	logger  *zap.Logger
}

// NewSpeechService creates a new speech service
//
// "baseURL" is the public URL audio files are served under.
func NewSpeechService(speaker Speaker, storage AudioStorage, baseURL string, logger *zap.Logger) *speechService {
	return &speechService{
		speaker: speaker,
		storage: storage,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// normalizeSpeechText collapses whitespace and lowercases single words
func normalizeSpeechText(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 1 {
		return strings.ToLower(fields[0])
	}
	return strings.Join(fields, " ")
}

// Speak returns the file name of MP3 audio speaking "text"
//
// Audio is stored under a hash of the text and reused by later calls.
func (s *speechService) Speak(ctx context.Context, text string) (string, error) {
	text = normalizeSpeechText(text)
	if text == "" {
		return "", fmt.Errorf("%w: text is required", models.ErrInvalidInput)
	}
	if len(text) > maxSpeechLength {
		return "", fmt.Errorf("%w: text is too long", models.ErrInvalidInput)
	}

	filename := storage.HashFileName(text, "mp3")
	exists, err := s.storage.Exists(filename, AudioMediaType)
	if err != nil {
		s.logger.Warn("failed to check cached audio", zap.String("filename", filename), zap.Error(err))
	}
	if exists {
		return filename, nil
	}

	audio, err := s.speaker.Synthesize(ctx, text)
	if err != nil {
		if errors.Is(err, models.ErrTTSUnsupported) {
			return "", err
		}
		s.logger.Error("failed to synthesize speech", zap.Error(err))
		return "", fmt.Errorf("failed to synthesize speech: %w", err)
	}

	if err := s.save(filename, audio); err != nil {
		s.logger.Error("failed to store audio", zap.String("filename", filename), zap.Error(err))
		return "", fmt.Errorf("failed to store audio: %w", err)
	}

	return filename, nil
}

// AudioURL returns the public URL of audio speaking "text"
func (s *speechService) AudioURL(ctx context.Context, text string) (string, error) {
	filename, err := s.Speak(ctx, text)
	if err != nil {
		return "", err
	}
	return s.baseURL + "/" + filename, nil
}

// OpenAudio opens a stored audio file for serving
//
// If the file does not exist, os.ErrNotExist is returned.
func (s *speechService) OpenAudio(filename string) (*os.File, error) {
	file, err := s.storage.OpenFile(filename, AudioMediaType)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidName) {
			return nil, os.ErrNotExist
		}
		return nil, err
	}
	return file, nil
}

func (s *speechService) save(filename string, audio []byte) error {
	w, err := s.storage.Create(filename, AudioMediaType)
	if err != nil {
		return err
	}

	size := storage.NewSizeWriter()
	if _, err := io.MultiWriter(w, size).Write(audio); err != nil {
		w.Close()
		s.storage.Delete(filename, AudioMediaType)
		return err
	}
	if err := w.Close(); err != nil {
		s.storage.Delete(filename, AudioMediaType)
		return err
	}

	s.logger.Debug("audio stored", zap.String("filename", filename), zap.Int64("size", size.Size()))
	return nil
}
