package payment

import (
	"errors"
	"fmt"
)

var (
	// ErrCustomerNotFound means the customer ID is unknown to the processor.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrSessionNotFound means the checkout session ID is unknown to the processor.
	ErrSessionNotFound = errors.New("checkout session not found")
)

// ProcessorError wraps an opaque failure surfaced by the payment
// processor. It is reported as-is with no automatic retry; the
// processor's own idempotency guarantees are relied on instead.
type ProcessorError struct {
	Op      string
	Message string
	Err     error
}

func (e *ProcessorError) Error() string {
	return fmt.Sprintf("payment processor error during %s: %s", e.Op, e.Message)
}

func (e *ProcessorError) Unwrap() error {
	return e.Err
}
