package errors

import "fmt"

// ErrorCode represents a tenderscan error code.
type ErrorCode string

const (
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"    // 400
	ErrEmptyDocument     ErrorCode = "EMPTY_DOCUMENT"     // 422
	ErrNotFound          ErrorCode = "NOT_FOUND"          // 404
	ErrConflict          ErrorCode = "CONFLICT"           // 409
	ErrSourceUnavailable ErrorCode = "SOURCE_UNAVAILABLE" // 502
	ErrLLMUnavailable    ErrorCode = "LLM_UNAVAILABLE"    // 503
	ErrInternal          ErrorCode = "INTERNAL"           // 500
)

// ScanError represents a structured error with code, status, and details.
type ScanError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *ScanError {
	return &ScanError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewEmptyDocument creates a 422 error for documents that yield no text at all.
// Empty sections and missing fields are ordinary results, not errors; this code
// is reserved for callers that require a non-empty document up front.
func NewEmptyDocument(name string) *ScanError {
	return &ScanError{
		Code:    ErrEmptyDocument,
		Status:  422,
		Message: fmt.Sprintf("document yielded no text: %s", name),
		Details: map[string]any{"document": name},
	}
}

// NewNotFound creates a 404 error for when a tender record cannot be found.
func NewNotFound(identifier string) *ScanError {
	return &ScanError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("tender not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewConflict creates a 409 error for general conflicts.
func NewConflict(msg string) *ScanError {
	return &ScanError{
		Code:    ErrConflict,
		Status:  409,
		Message: msg,
	}
}

// NewSourceUnavailable creates a 502 error for a failing text source.
// Distinguishes "source broke" from "source had nothing" for observability.
func NewSourceUnavailable(source string, err error) *ScanError {
	msg := fmt.Sprintf("source unavailable: %s", source)
	if err != nil {
		msg = fmt.Sprintf("source unavailable: %s: %v", source, err)
	}
	return &ScanError{
		Code:    ErrSourceUnavailable,
		Status:  502,
		Message: msg,
		Details: map[string]any{"source": source},
	}
}

// NewLLMUnavailable creates a 503 error for LLM calls attempted without a key
// or against an unreachable endpoint.
func NewLLMUnavailable(reason string) *ScanError {
	return &ScanError{
		Code:    ErrLLMUnavailable,
		Status:  503,
		Message: fmt.Sprintf("llm unavailable: %s", reason),
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *ScanError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ScanError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a ScanError with the given code.
func Is(err error, code ErrorCode) bool {
	if sErr, ok := err.(*ScanError); ok {
		return sErr.Code == code
	}
	return false
}
