// Package errors provides the standardized error taxonomy shared by every processor.
package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// ErrCodeInput means the pairing convention of the input directory was violated.
	ErrCodeInput ErrorCode = "INPUT_ERROR"
	// ErrCodeFormat means a properties file or a stage-required key could not be parsed.
	ErrCodeFormat ErrorCode = "FORMAT_ERROR"
	// ErrCodeIO means a filesystem read or write failed.
	ErrCodeIO ErrorCode = "IO_ERROR"

	ErrCodeInterrupted ErrorCode = "INTERRUPTED"
	ErrCodeConfig      ErrorCode = "CONFIG_ERROR"
	ErrCodeInternal    ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured processor error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.Cause
}

func newError(code ErrorCode, message, details string, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Cause:     cause,
	}
}

// ==========================
// 2. Input Errors
// ==========================

// NewNoMetadataFileError reports an input directory without any properties file.
func NewNoMetadataFileError(dir string) *StandardError {
	err := newError(ErrCodeInput, "no metadata file found", dir, nil)
	err.Metadata = map[string]interface{}{"dir": dir}
	return err
}

// NewAmbiguousInputError reports an input directory with more than one properties file.
func NewAmbiguousInputError(dir string, matches []string) *StandardError {
	sorted := append([]string(nil), matches...)
	sort.Strings(sorted)
	err := newError(ErrCodeInput, "ambiguous input: multiple metadata files found",
		fmt.Sprintf("%s: %s", dir, strings.Join(sorted, ", ")), nil)
	err.Metadata = map[string]interface{}{"dir": dir, "matches": sorted}
	return err
}

// NewMissingDataFileError reports a properties file whose derived data file is absent.
func NewMissingDataFileError(propertiesPath, dataPath string) *StandardError {
	err := newError(ErrCodeInput, "data file not found for metadata file",
		fmt.Sprintf("%s (expected %s)", propertiesPath, dataPath), nil)
	err.Metadata = map[string]interface{}{"propertiesPath": propertiesPath, "dataPath": dataPath}
	return err
}

// NewInputDirError reports an input directory that is missing or is not a directory.
func NewInputDirError(dir string, cause error) *StandardError {
	details := dir
	if cause != nil {
		details = fmt.Sprintf("%s: %v", dir, cause)
	}
	return newError(ErrCodeInput, "input directory is not readable", details, cause)
}

// ==========================
// 3. Format Errors
// ==========================

// NewInvalidPropertiesError reports one or more properties lines that are not `key = value`.
func NewInvalidPropertiesError(lines []string) *StandardError {
	err := newError(ErrCodeFormat, "invalid properties", strings.Join(lines, "; "), nil)
	err.Metadata = map[string]interface{}{"lines": lines}
	return err
}

// NewMissingPropertyError reports a stage-required key absent from the input properties.
func NewMissingPropertyError(key string) *StandardError {
	return newError(ErrCodeFormat, "missing required property", key, nil)
}

// NewInvalidPropertyValueError reports a property value that cannot be coerced.
func NewInvalidPropertyValueError(key, value string, cause error) *StandardError {
	return newError(ErrCodeFormat, "invalid property value",
		fmt.Sprintf("%s = %q", key, value), cause)
}

// NewSchemaViolationError reports properties rejected by a stage input schema.
func NewSchemaViolationError(messages []string) *StandardError {
	return newError(ErrCodeFormat, "properties do not satisfy stage schema", strings.Join(messages, "; "), nil)
}

// NewInvalidPayloadError reports a data payload the stage cannot interpret.
func NewInvalidPayloadError(path string, cause error) *StandardError {
	return newError(ErrCodeFormat, "invalid data payload", fmt.Sprintf("%s: %v", path, cause), cause)
}

// ==========================
// 4. IO / Generic Errors
// ==========================

// NewIOError wraps a filesystem failure; the cause is kept unmodified.
func NewIOError(op, path string, cause error) *StandardError {
	err := newError(ErrCodeIO, op+" failed", fmt.Sprintf("%s: %v", path, cause), cause)
	err.Metadata = map[string]interface{}{"op": op, "path": path}
	return err
}

func NewInterruptedError(cause error) *StandardError {
	return newError(ErrCodeInterrupted, "processing interrupted", fmt.Sprint(cause), cause)
}

func NewConfigError(details string, cause error) *StandardError {
	return newError(ErrCodeConfig, "invalid configuration", details, cause)
}

func NewInternalError(details string) *StandardError {
	return newError(ErrCodeInternal, "internal error", details, nil)
}

// ==========================
// 5. Classification
// ==========================

// CodeOf returns the ErrorCode carried by err, or ErrCodeInternal for foreign errors.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ErrCodeInternal
}

func IsInputError(err error) bool {
	return err != nil && CodeOf(err) == ErrCodeInput
}

func IsFormatError(err error) bool {
	return err != nil && CodeOf(err) == ErrCodeFormat
}

func IsIOError(err error) bool {
	return err != nil && CodeOf(err) == ErrCodeIO
}

// ExitCodeMapping maps error codes to process exit statuses.
var ExitCodeMapping = map[ErrorCode]int{
	ErrCodeInput:       2,
	ErrCodeFormat:      3,
	ErrCodeIO:          4,
	ErrCodeInterrupted: 5,
	ErrCodeConfig:      1,
	ErrCodeInternal:    1,
}

// ExitCode returns the process exit status for err; zero only for a nil error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := ExitCodeMapping[CodeOf(err)]; ok {
		return code
	}
	return 1
}
