// Package schema defines the declaration model for configurable component
// attributes. A Trait declares one typed, documented, default-valued slot on
// a component class; a Validator is a pure check-or-normalize step run on
// every assignment to that slot.
//
// Traits are declared once, at class-definition time, and are immutable
// afterwards. They carry declaration, not storage: the resolved value for a
// trait lives on the bound instance, never on the trait itself.
//
// Values flow through go-cty. Raw source values (strings from text sources,
// typed values from structured sources) are first coerced to the trait's
// cty type, then pushed through the validator pipeline in declaration order.
package schema
