package models

import "fmt"

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrMalformedVersion ErrorType = iota
	ErrMissingField
	ErrMalformedDocument
	ErrArchiveFormat
	ErrBackend
	ErrExternalTool
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrMalformedVersion:
		return "MalformedVersion"
	case ErrMissingField:
		return "MissingField"
	case ErrMalformedDocument:
		return "MalformedDocument"
	case ErrArchiveFormat:
		return "ArchiveFormat"
	case ErrBackend:
		return "Backend"
	case ErrExternalTool:
		return "ExternalTool"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// SyncError represents an error during repository synchronization. Path
// names the document or archive the error belongs to, when there is one.
type SyncError struct {
	Type ErrorType
	Path string
	Err  error
}

// Error implements the error interface
func (e *SyncError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *SyncError) Unwrap() error {
	return e.Err
}
