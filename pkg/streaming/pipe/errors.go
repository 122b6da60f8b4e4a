package pipe

import (
	"errors"
	"fmt"
)

// ErrCancelled is the terminal error of a run stopped by Cancel.
var ErrCancelled = errors.New("pipeline: cancelled")

// ErrAlreadyStarted is returned by Run when the pipeline has been run before.
// A pipeline drives a single source lifetime and is not reusable.
var ErrAlreadyStarted = errors.New("pipeline: already started")

// SourceError wraps an error raised by the Source.
type SourceError struct {
	Cause error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("pipeline: source failed: %v", e.Cause)
}

// Unwrap returns the underlying cause.
func (e *SourceError) Unwrap() error {
	return e.Cause
}

// StageError wraps an error raised by a Stage, identifying it by name.
type StageError struct {
	Stage string
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline: stage %q failed: %v", e.Stage, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *StageError) Unwrap() error {
	return e.Cause
}

// SinkError wraps an error raised by the Sink.
type SinkError struct {
	Cause error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("pipeline: sink failed: %v", e.Cause)
}

// Unwrap returns the underlying cause.
func (e *SinkError) Unwrap() error {
	return e.Cause
}
