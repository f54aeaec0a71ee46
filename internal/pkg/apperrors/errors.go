package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrBadRequest       = errors.New("bad request")

	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")

	ErrPermissionDenied = errors.New("permission denied")

	ErrValidationFailed = errors.New("validation failed")
	ErrImportFailed     = errors.New("import failed")
)

// CustomError carries a user facing message on top of a sentinel error.
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewResourceNotFoundError creates a not found error with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a business-rule conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewBadRequestError creates a bad request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// ValidationError collects field level validation messages.
type ValidationError struct {
	Message string
	Fields  map[string][]string
}

// NewValidationError creates a ValidationError holding one field message.
func NewValidationError(field, message string) *ValidationError {
	return (&ValidationError{}).Add(field, message)
}

// Add appends a message for a field.
func (e *ValidationError) Add(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

// HasErrors reports whether any field message was recorded.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// ErrOrNil returns e when it holds messages, nil otherwise.
func (e *ValidationError) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed on %s", strings.Join(fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// ImportFailure describes one rejected spreadsheet row.
type ImportFailure struct {
	Row       int               `json:"row"`
	Attribute string            `json:"attribute"`
	Errors    []string          `json:"errors"`
	Values    map[string]string `json:"values"`
}

// ImportError aborts an import, either with a single message or with per-row failures.
type ImportError struct {
	Message  string
	Failures []ImportFailure

	// Row and Attribute locate a single-row error.
	Row       int
	Attribute string
}

// NewImportError creates an ImportError with a formatted message.
func NewImportError(format string, args ...interface{}) *ImportError {
	return &ImportError{Message: fmt.Sprintf(format, args...)}
}

func (e *ImportError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("import failed with %d invalid rows", len(e.Failures))
}

func (e *ImportError) Unwrap() error {
	return ErrImportFailed
}
