package engine

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNilContext indicates Evaluate was called without a context snapshot.
	ErrNilContext = errors.New("evaluation context cannot be nil")
)

// RegistrationError indicates a constraint definition was rejected by the
// registry.
type RegistrationError struct {
	ConstraintID string
	Message      string
}

// Error returns the error message.
func (e *RegistrationError) Error() string {
	if e.ConstraintID != "" {
		return fmt.Sprintf("constraint %s: %s", e.ConstraintID, e.Message)
	}
	return e.Message
}
