package bind

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vk/pyrite/internal/ctxlog"
	"github.com/vk/pyrite/internal/registry"
	"github.com/vk/pyrite/internal/resolve"
	"github.com/vk/pyrite/internal/schema"
	"github.com/vk/pyrite/internal/source"
)

// Failure is one violated trait in a failed bind.
type Failure struct {
	Trait  string
	Origin string
	Reason string
}

// BindError is the aggregate failure of one bind attempt. It carries every
// violation, not just the first, so a user sees all configuration mistakes
// in one run.
type BindError struct {
	Instance string
	Family   string
	Failures []Failure
}

// Error renders the structured report: instance, trait, offending origin
// and reason per failure.
func (e *BindError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cannot bind instance %q (%s): %d invalid or missing settings",
		e.Instance, e.Family, len(e.Failures))
	for _, f := range e.Failures {
		fmt.Fprintf(&b, "\n  - %s (%s): %s", f.Trait, f.Origin, f.Reason)
	}
	return b.String()
}

// Binder constructs instances from classes and configuration sources.
type Binder struct {
	reg    *registry.Registry
	engine *resolve.Engine
}

// New creates a binder over the given registry.
func New(reg *registry.Registry) *Binder {
	return &Binder{reg: reg, engine: resolve.NewEngine(reg)}
}

// Bind resolves the named instance of the given family against the sources
// and constructs the instance graph. Source parse errors, coercion and
// validation failures, unknown families and unresolved required traits all
// aggregate into a single BindError.
func (b *Binder) Bind(ctx context.Context, instance, family string, adapters []source.Adapter) (*Instance, error) {
	logger := ctxlog.FromContext(ctx)

	class, err := b.reg.Lookup(family)
	if err != nil {
		return nil, err
	}

	set, resErr := b.engine.Resolve(ctx, instance, class, adapters)
	if set == nil {
		return nil, resErr
	}

	failures := collectFailures(set, resErr)
	if len(failures) > 0 {
		return nil, &BindError{Instance: instance, Family: family, Failures: failures}
	}

	inst := newInstance(set, b.reg)
	logger.Debug("Instance bound.", "instance", instance, "family", family)
	return inst, nil
}

// collectFailures flattens everything that went wrong during resolution
// into the bind report: parse errors first, then per-trait failures, then
// required-and-missing traits.
func collectFailures(set *resolve.Set, resErr error) []Failure {
	var out []Failure
	for _, pe := range set.ParseErrors {
		out = append(out, Failure{Trait: "(source)", Origin: pe.Origin, Reason: pe.Reason})
	}
	for _, f := range set.AllFailures() {
		out = append(out, Failure{Trait: f.Trait, Origin: f.Origin, Reason: reasonOf(f.Err)})
	}

	var missing *resolve.ResolutionError
	if errors.As(resErr, &missing) {
		for _, name := range missing.Missing {
			out = append(out, Failure{Trait: name, Origin: "(no source)", Reason: "required and no value assigned"})
		}
	}
	return out
}

// reasonOf strips the trait prefix from the pipeline errors; the report
// already names the trait.
func reasonOf(err error) string {
	var valErr *schema.ValidationError
	if errors.As(err, &valErr) {
		return fmt.Sprintf("%s: %s", valErr.Validator, valErr.Reason)
	}
	var coErr *schema.TypeCoercionError
	if errors.As(err, &coErr) {
		return fmt.Sprintf("cannot coerce %v to %s: %v", coErr.Raw, coErr.Kind, coErr.Err)
	}
	return err.Error()
}
