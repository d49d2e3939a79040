// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ErrorCode classifies worker-layer failures so callers can distinguish
// "didn't run" (queue full, cancelled, timed out) from "ran and failed".
type ErrorCode string

const (
	CodeProcessing      ErrorCode = "PROCESSING_ERROR"
	CodeInitialization  ErrorCode = "INITIALIZATION_ERROR"
	CodeUnknownMessage  ErrorCode = "UNKNOWN_MESSAGE_TYPE"
	CodeMessageHandling ErrorCode = "MESSAGE_HANDLING_ERROR"
	CodeUserCancelled   ErrorCode = "USER_CANCELLED"
	CodeTimeout         ErrorCode = "TIMEOUT"
	CodeQueueFull       ErrorCode = "QUEUE_FULL"
)

// TaskError is a typed worker-layer failure.
type TaskError struct {
	// Code classifies the failure.
	Code ErrorCode `json:"code" yaml:"code"`

	// Message is the human-readable description.
	Message string `json:"message" yaml:"message"`

	// Context carries optional key/value detail (task id, worker id, attempt).
	Context map[string]string `json:"context,omitempty" yaml:"context,omitempty"`
}

// Error implements the error interface.
func (e *TaskError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewTaskError builds a TaskError with formatted message.
func NewTaskError(code ErrorCode, format string, args ...any) *TaskError {
	return &TaskError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithContext returns e with the key/value pair added to its context.
func (e *TaskError) WithContext(key, value string) *TaskError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// Transient reports whether the failure is worth retrying. Cancellation,
// timeout, and queue rejection are terminal from the retry layer's view.
func (e *TaskError) Transient() bool {
	switch e.Code {
	case CodeUserCancelled, CodeTimeout, CodeQueueFull:
		return false
	}
	return true
}
