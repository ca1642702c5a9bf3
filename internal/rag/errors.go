package rag

import (
	"errors"
	"fmt"
)

// ErrEmptyHistory is returned when a turn is requested with no messages.
// Reported to callers as a client error; no external calls are made.
var ErrEmptyHistory = errors.New("history cannot be empty")

// ProviderError marks a failed embedding/generation call. Terminal for the
// turn; the transport reports it opaquely and keeps the detail in logs.
type ProviderError struct {
	Op  string // "intent", "embed", "synthesize", "summarize"
	Err error
}

func (e *ProviderError) Error() string { return fmt.Sprintf("provider %s: %v", e.Op, e.Err) }
func (e *ProviderError) Unwrap() error { return e.Err }

// SchemaViolationError marks generative output that does not match the
// requested schema. Terminal for the turn, never silently coerced.
type SchemaViolationError struct {
	Op  string
	Err error
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("schema violation in %s: %v", e.Op, e.Err)
}
func (e *SchemaViolationError) Unwrap() error { return e.Err }
