// internal/common/errors/handler.go
package errors

import (
	stderrors "errors"
	"time"
)

// ErrorHandler turns a failed invocation into a diagnostic and an exit status.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs err and returns the exit status the process should terminate with.
func (h *ErrorHandler) Handle(taskType string, err error) int {
	if err == nil {
		return 0
	}

	stdErr := h.normalizeError(err)
	h.logError(taskType, stdErr)
	return ExitCode(stdErr)
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     err,
	}
}

func (h *ErrorHandler) logError(taskType string, stdErr *StandardError) {
	if h.logger == nil {
		return
	}
	fields := map[string]interface{}{
		"taskType":     taskType,
		"errorCode":    stdErr.Code,
		"errorMessage": stdErr.Message,
		"errorDetails": stdErr.Details,
		"exitCode":     ExitCode(stdErr),
	}
	for k, v := range stdErr.Metadata {
		fields[k] = v
	}
	h.logger.Error("processor failed", fields)
}
