// Package resultlog publishes the outcome of each stage invocation so an
// orchestrator can observe runs without parsing processor output.
package resultlog

import (
	"context"
	"errors"
	"time"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Record describes one finished stage invocation.
type Record struct {
	RunID        string    `json:"run_id"`
	TaskType     string    `json:"task_type"`
	InputDir     string    `json:"input_dir"`
	OutputDir    string    `json:"output_dir"`
	InputType    string    `json:"input_type,omitempty"`
	OutputType   string    `json:"output_type,omitempty"`
	InputDigest  string    `json:"input_digest,omitempty"`
	OutputDigest string    `json:"output_digest,omitempty"`
	Status       string    `json:"status"`
	ErrorCode    string    `json:"error_code,omitempty"`
	Error        string    `json:"error,omitempty"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	DurationMs   int64     `json:"duration_ms"`
}

// Recorder persists run records.
type Recorder interface {
	Record(ctx context.Context, record Record) error
}

// Multi fans a record out to every recorder and joins their failures.
type Multi []Recorder

func (m Multi) Record(ctx context.Context, record Record) error {
	var errs []error
	for _, r := range m {
		if err := r.Record(ctx, record); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
