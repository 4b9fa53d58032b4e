package source

import (
	"context"
	"fmt"
	"strings"
)

// Priority ranks a source in the merge order; a higher priority outranks a
// lower one regardless of read order.
type Priority int

const (
	// PriorityDefaults is the rank of class-declared default values. It is
	// never carried by a real assignment; the engine falls back to defaults
	// only when no source assigns a key at all.
	PriorityDefaults Priority = iota
	// PriorityDiscoveredFile ranks a configuration file found by its
	// instance-derived default name.
	PriorityDiscoveredFile
	// PriorityExplicitFile ranks a file named explicitly on the command
	// line (--config=PATH).
	PriorityExplicitFile
	// PriorityCommandLine ranks direct --key=value arguments, the highest
	// layer.
	PriorityCommandLine
)

// String returns the priority's name as used in diagnostics.
func (p Priority) String() string {
	switch p {
	case PriorityDefaults:
		return "defaults"
	case PriorityDiscoveredFile:
		return "discovered file"
	case PriorityExplicitFile:
		return "explicit file"
	case PriorityCommandLine:
		return "command line"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// Assignment is one namespaced key/value pair produced by a source adapter.
type Assignment struct {
	// Path is the ordered namespace segments, e.g. ["hello", "times"].
	Path []string
	// Value is the raw source value: a string for flat text sources, an
	// already typed value (native Go or cty.Value) for structured ones.
	Value any
	// Priority is the rank of the producing source.
	Priority Priority
	// Origin is an opaque provenance tag for diagnostics, e.g.
	// "hello.pfg:12" or "cmdline".
	Origin string
}

// Key returns the path flattened to its dotted form.
func (a Assignment) Key() string { return strings.Join(a.Path, ".") }

// ParseError reports one malformed entry in a source. Parse errors are
// collected on the Result, never thrown, so resolution can proceed with the
// remaining valid assignments and report all problems at once.
type ParseError struct {
	Origin string
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Origin, e.Reason)
}

// Result is everything one adapter read: the assignments in source order
// plus any malformed entries encountered along the way.
type Result struct {
	Assignments []Assignment
	Errors      []*ParseError
}

// Adapter normalizes one configuration source into flat assignments.
// Read must not mutate shared state and returns a non-nil error only for a
// total failure to access the source; per-entry problems belong on
// Result.Errors.
type Adapter interface {
	Read(ctx context.Context) (Result, error)
}
