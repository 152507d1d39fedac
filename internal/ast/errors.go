package ast

import (
	"errors"
	"fmt"

	"sculpt/internal/compiler"
)

// Sentinel errors returned (wrapped) by node handles and manipulation
// operations. Callers branch with errors.Is.
var (
	// ErrInvalidOperation marks a request the current construct cannot
	// honor: a disposed handle, an unsupported capability, or malformed
	// input such as a blank name.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrNotFound marks a failed expectation lookup (the OrThrow forms).
	ErrNotFound = errors.New("not found")

	// ErrConsistency marks a manipulation whose re-parse did not produce
	// the construct the edit was built to create. The file text has been
	// updated; the returned handle has not.
	ErrConsistency = errors.New("manipulation produced an inconsistent tree")
)

func errDisposed(kind compiler.Kind) error {
	return fmt.Errorf("%w: node (%s) was removed or forgotten", ErrInvalidOperation, kind)
}

func errUnsupported(kind compiler.Kind, op string) error {
	return fmt.Errorf("%w: %s does not support %s", ErrInvalidOperation, kind, op)
}

func errBlank(what string) error {
	return fmt.Errorf("%w: %s must not be empty or whitespace", ErrInvalidOperation, what)
}
