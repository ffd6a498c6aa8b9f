// Package tasks defines the background jobs processed by the worker.
package tasks

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TypeCategoryEnrichment fills in the category of one word
	TypeCategoryEnrichment = "enrichment:category"
	// TypeDueDigest e-mails the number of words due for review
	TypeDueDigest = "reminder:digest"

	// QueueDefault is the queue all tasks are enqueued on
	QueueDefault = "default"

	categoryMaxRetry = 3
	digestMaxRetry   = 1
)

// Enqueuer is implemented by *asynq.Client
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Queue enqueues background jobs
type Queue struct {
	client Enqueuer
}

// NewQueue creates a new task queue
func NewQueue(client Enqueuer) *Queue {
	return &Queue{client: client}
}

// NewCategoryEnrichmentTask creates a task that enriches the category of a word
func NewCategoryEnrichmentTask(wordID int) *asynq.Task {
	return asynq.NewTask(TypeCategoryEnrichment, []byte(strconv.Itoa(wordID)))
}

// NewDueDigestTask creates a digest task for the day of "now"
func NewDueDigestTask(now time.Time) *asynq.Task {
	return asynq.NewTask(TypeDueDigest, []byte(now.Format(time.DateOnly)))
}

// ParseWordID reads the word ID from a category enrichment task
func ParseWordID(t *asynq.Task) (int, error) {
	id, err := strconv.Atoi(string(t.Payload()))
	if err != nil {
		return 0, fmt.Errorf("failed to parse word ID: %w", err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid word ID %d", id)
	}
	return id, nil
}

// EnqueueCategoryEnrichment schedules a category lookup for a word
func (q *Queue) EnqueueCategoryEnrichment(ctx context.Context, wordID int) error {
	task := NewCategoryEnrichmentTask(wordID)
	if _, err := q.client.Enqueue(task, asynq.Queue(QueueDefault), asynq.MaxRetry(categoryMaxRetry)); err != nil {
		return fmt.Errorf("failed to enqueue category enrichment for word %d: %w", wordID, err)
	}
	return nil
}

// EnqueueDueDigest schedules the due-reminder digest
func (q *Queue) EnqueueDueDigest(ctx context.Context, now time.Time) error {
	task := NewDueDigestTask(now)
	if _, err := q.client.Enqueue(task, asynq.Queue(QueueDefault), asynq.MaxRetry(digestMaxRetry)); err != nil {
		return fmt.Errorf("failed to enqueue due digest: %w", err)
	}
	return nil
}
