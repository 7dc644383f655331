package booking

import "fmt"

// MissingFieldError reports a required booking field that was absent or
// blank after trimming.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// UnknownOfferingError reports a method/plan combination with no catalog
// entry.
type UnknownOfferingError struct {
	Method string
	Plan   string
}

func (e *UnknownOfferingError) Error() string {
	return fmt.Sprintf("no priced offering for %s/%s", e.Method, e.Plan)
}
