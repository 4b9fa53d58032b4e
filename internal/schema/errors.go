package schema

import "fmt"

// DeclarationError reports a malformed trait declaration. It is raised at
// class-definition time and is never recoverable.
type DeclarationError struct {
	Trait  string
	Reason string
}

// Error implements the error interface.
func (e *DeclarationError) Error() string {
	return fmt.Sprintf("trait %q: invalid declaration: %s", e.Trait, e.Reason)
}

// TypeCoercionError reports a raw value that could not be converted to the
// trait's kind before validation even started.
type TypeCoercionError struct {
	Trait string
	Kind  Kind
	Raw   any
	Err   error
}

// Error implements the error interface.
func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("trait %q: cannot coerce %v to %s: %v", e.Trait, e.Raw, e.Kind, e.Err)
}

// Unwrap exposes the underlying conversion failure.
func (e *TypeCoercionError) Unwrap() error { return e.Err }

// ValidationError reports a coerced value rejected by one of the trait's
// validators. Validator and Reason together read as the user-facing message,
// e.g. "isPositive: received -1".
type ValidationError struct {
	Trait     string
	Validator string
	Reason    string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("trait %q: %s: %s", e.Trait, e.Validator, e.Reason)
}
