package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNoWordsDue is returned when a study session has nothing to review
	ErrNoWordsDue = errors.New("no words due for review")
	// ErrDuplicateWord is returned when a word with the same term already exists
	ErrDuplicateWord = errors.New("word already exists")
	// ErrWordNotFound is returned when a word does not exist
	ErrWordNotFound = errors.New("word not found")
	// ErrTTSUnsupported is returned when speech synthesis is not available
	ErrTTSUnsupported = errors.New("text-to-speech is not supported")
	// ErrSessionNotFound is returned for an unknown or expired study session
	ErrSessionNotFound = errors.New("study session not found")
	// ErrInvalidInput is wrapped by validation failures of service arguments
	ErrInvalidInput = errors.New("invalid input")
)

// GenerationError describes a failed enrichment of a term
type GenerationError struct {
	Term   string
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to generate data for %q: %s: %v", e.Term, e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to generate data for %q: %s", e.Term, e.Reason)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// PersistenceError describes a failed write of a word's learning state
//
// The in-memory state that produced the write stays valid.
type PersistenceError struct {
	WordID int
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist word %d: %v", e.WordID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
