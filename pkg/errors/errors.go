// Package errors provides standardized error handling for comfygen.
// It defines sentinel errors for common failure conditions and typed
// wrappers that carry context while supporting errors.Is/As unwrapping.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	ErrUnknownConfigType = errors.New("unknown config type")
	ErrUnknownFormat     = errors.New("unknown artifact format")
	ErrInvalidWorkflow   = errors.New("invalid workflow graph")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// ProbeError represents a failure while querying the GPU
type ProbeError struct {
	Command string
	Err     error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("gpu probe %s: %v", e.Command, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// PersistError represents a failure while writing an artifact to disk
type PersistError struct {
	Path      string
	Operation string
	Err       error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: operation %s: %v", e.Path, e.Operation, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// NewPersistError creates a persist error with operation context
func NewPersistError(path, operation string, err error) *PersistError {
	return &PersistError{Path: path, Operation: operation, Err: err}
}

// IsPersistError checks if an error is a persist failure
func IsPersistError(err error) bool {
	var pe *PersistError
	return errors.As(err, &pe)
}
