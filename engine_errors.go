// engine_errors.go - Error types and sentinel kinds shared across the engine

package main

import (
	"errors"
	"fmt"
)

// Sentinel kinds for the user-facing error taxonomy. ErrNoSource and
// ErrProcessing surface as status messages; ErrCollaborator is logged and
// discarded inside the collaborator component and never reaches the user.
var (
	ErrNoSource     = errors.New("no source selected")
	ErrProcessing   = errors.New("processing failed")
	ErrCollaborator = errors.New("caption service unavailable")
)

// EngineError provides detailed error context for engine operations
type EngineError struct {
	Operation string // What operation was being attempted
	Details   string // Additional error context
	Err       error  // Underlying error if any
}

func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("engine %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("engine %s failed: %s", e.Operation, e.Details)
}

func (e *EngineError) Unwrap() error { return e.Err }
