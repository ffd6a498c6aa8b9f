package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/vocabstudent/backend/internal/models"
	"github.com/vocabstudent/backend/internal/tasks"
	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// CategoryEnricher defines the interface for inline category enrichment
type CategoryEnricher interface {
	// EnrichCategory generates and stores the category of a word
	//
	// "id" parameter is the ID of the word to enrich.
	//
	// If the word does not exist, models.ErrWordNotFound is returned.
	EnrichCategory(ctx context.Context, id int) error
}

// ProgressReader defines the interface for reading collection statistics
type ProgressReader interface {
	// GetProgress returns word counts by level and the number of words due at "now"
	GetProgress(ctx context.Context, now time.Time) (models.ProgressStats, error)
}

// Mailer defines the interface for sending e-mails
//
// *mail.Dialer implements it.
type Mailer interface {
	DialAndSend(m ...*mail.Message) error
}

// Worker handles task processing
type Worker struct {
	logger    *zap.Logger
	enricher  CategoryEnricher
	progress  ProgressReader
	mailer    Mailer
	smtpFrom  string
	recipient string
	now       func() time.Time
}

// NewWorker creates a new worker instance
//
// Digests are skipped when "recipient" is empty.
func NewWorker(
	logger *zap.Logger,
	enricher CategoryEnricher,
	progress ProgressReader,
	mailer Mailer,
	smtpFrom, recipient string,
) *Worker {
	return &Worker{
		logger:    logger,
		enricher:  enricher,
		progress:  progress,
		mailer:    mailer,
		smtpFrom:  smtpFrom,
		recipient: recipient,
		now:       time.Now,
	}
}

// HandleCategoryEnrichment handles category enrichment of one word
func (w *Worker) HandleCategoryEnrichment(ctx context.Context, t *asynq.Task) error {
	wordID, err := tasks.ParseWordID(t)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	if err := w.enricher.EnrichCategory(ctx, wordID); err != nil {
		// Word was deleted before processing
		if errors.Is(err, models.ErrWordNotFound) {
			w.logger.Info("Word not found, skipping category enrichment", zap.Int("word_id", wordID))
			return nil
		}
		w.logger.Error("Category enrichment failed", zap.Int("word_id", wordID), zap.Error(err))
		return err
	}

	w.logger.Info("Category enrichment completed", zap.Int("word_id", wordID))
	return nil
}

// HandleDueDigest e-mails how many words are due for review
func (w *Worker) HandleDueDigest(ctx context.Context, t *asynq.Task) error {
	if w.recipient == "" {
		w.logger.Debug("No reminder recipient configured, skipping digest")
		return nil
	}

	stats, err := w.progress.GetProgress(ctx, w.now())
	if err != nil {
		return fmt.Errorf("failed to get progress: %w", err)
	}
	if stats.Due == 0 {
		w.logger.Info("No words due, skipping digest", zap.String("day", string(t.Payload())))
		return nil
	}

	subject := fmt.Sprintf("%d words are waiting for review", stats.Due)
	if stats.Due == 1 {
		subject = "1 word is waiting for review"
	}
	if err := w.sendEmail(w.recipient, subject, digestBody(stats)); err != nil {
		return err
	}

	w.logger.Info("Due digest sent", zap.Int("due", stats.Due), zap.String("day", string(t.Payload())))
	return nil
}

// digestBody renders the plain text body of a due digest
func digestBody(stats models.ProgressStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Due for review: %d of %d words\n\n", stats.Due, stats.Total)
	b.WriteString("Words by level:\n")
	for level, count := range stats.ByLevel {
		fmt.Fprintf(&b, "  level %d: %d\n", level, count)
	}
	if stats.Studied > 0 {
		fmt.Fprintf(&b, "\nAccuracy so far: %d%%\n", stats.Accuracy)
	}
	return b.String()
}

// sendEmail sends an email
func (w *Worker) sendEmail(to, subject, body string) error {
	m := mail.NewMessage()
	m.SetHeader("From", w.smtpFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := w.mailer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
