package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/pyrite/internal/ctxlog"
	"github.com/vk/pyrite/internal/registry"
	"github.com/vk/pyrite/internal/schema"
	"github.com/vk/pyrite/internal/source"
)

// originDefault tags values that came from a trait's declared default
// rather than from any source.
const originDefault = "default"

// Failure records one assignment that could not satisfy its trait.
type Failure struct {
	Trait  string
	Origin string
	Err    error
}

// Warning records a key that matched the instance's namespace but no
// declared trait. Unknown keys are deliberately non-fatal: a configuration
// file may carry settings for optional sub-components not instantiated in
// this run.
type Warning struct {
	Key    string
	Origin string
}

// ResolutionError reports required traits left without a value after the
// merge.
type ResolutionError struct {
	Instance string
	Missing  []string
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("instance %q: required settings unresolved: %s",
		e.Instance, strings.Join(e.Missing, ", "))
}

// Set is the outcome of resolving one instance: the winning, validated
// value per trait, plus everything that went wrong along the way.
type Set struct {
	Instance string
	Family   string

	Values  map[string]cty.Value
	Origins map[string]string

	// Unresolved lists required traits with no satisfying assignment.
	Unresolved []string
	// Components holds the recursively resolved set per
	// component-reference trait.
	Components map[string]*Set

	Failures    []Failure
	Warnings    []Warning
	ParseErrors []*source.ParseError
}

// MissingRequired returns the unresolved required trait names of this set
// and every nested component set, qualified by their path.
func (s *Set) MissingRequired() []string {
	var out []string
	out = append(out, s.Unresolved...)
	for name, child := range s.Components {
		for _, m := range child.MissingRequired() {
			out = append(out, name+"."+m)
		}
	}
	return out
}

// AllFailures returns the failures of this set and every nested component
// set, with trait names qualified by their path.
func (s *Set) AllFailures() []Failure {
	out := append([]Failure{}, s.Failures...)
	for name, child := range s.Components {
		for _, f := range child.AllFailures() {
			out = append(out, Failure{Trait: name + "." + f.Trait, Origin: f.Origin, Err: f.Err})
		}
	}
	return out
}

// AllWarnings returns the warnings of this set and every nested component
// set.
func (s *Set) AllWarnings() []Warning {
	out := append([]Warning{}, s.Warnings...)
	for _, child := range s.Components {
		out = append(out, child.AllWarnings()...)
	}
	return out
}

// candidate is an assignment stamped with its read order, the tie-break for
// equal priorities.
type candidate struct {
	source.Assignment
	seq int
}

// Engine merges source assignments onto component classes.
type Engine struct {
	reg *registry.Registry
}

// NewEngine creates an engine resolving component references against the
// given registry.
func NewEngine(reg *registry.Registry) *Engine {
	return &Engine{reg: reg}
}

// Resolve reads every adapter in order and merges the collected assignments
// onto the class's traits for the named instance. The returned Set is
// always populated; the error is a ResolutionError when required traits
// remain without a value, so callers keep access to the full picture either
// way. Adapter-level read failures abort immediately.
func (e *Engine) Resolve(ctx context.Context, instance string, class *registry.Class, adapters []source.Adapter) (*Set, error) {
	pool, parseErrs, err := e.collect(ctx, adapters)
	if err != nil {
		return nil, err
	}

	set := e.resolveScoped(ctx, instance, class, pool, pool)
	set.ParseErrors = append(parseErrs, set.ParseErrors...)

	if missing := set.MissingRequired(); len(missing) > 0 {
		return set, &ResolutionError{Instance: instance, Missing: missing}
	}
	return set, nil
}

// collect drains every adapter, preserving global read order via sequence
// numbers and accumulating parse errors.
func (e *Engine) collect(ctx context.Context, adapters []source.Adapter) ([]candidate, []*source.ParseError, error) {
	logger := ctxlog.FromContext(ctx)

	var pool []candidate
	var errs []*source.ParseError
	seq := 0
	for _, a := range adapters {
		res, err := a.Read(ctx)
		if err != nil {
			return nil, nil, err
		}
		errs = append(errs, res.Errors...)
		for _, asg := range res.Assignments {
			pool = append(pool, candidate{Assignment: asg, seq: seq})
			seq++
		}
	}
	logger.Debug("Collected source assignments.", "count", len(pool), "parse_errors", len(errs))
	return pool, errs, nil
}

// resolveScoped resolves one instance. The scoped pool is matched against
// the instance name; the global pool is matched against the class family,
// so family-addressed sections apply at any nesting depth.
func (e *Engine) resolveScoped(ctx context.Context, instance string, class *registry.Class, scoped, global []candidate) *Set {
	logger := ctxlog.FromContext(ctx)

	set := &Set{
		Instance:   instance,
		Family:     class.Family(),
		Values:     make(map[string]cty.Value),
		Origins:    make(map[string]string),
		Components: make(map[string]*Set),
	}

	// Both binding styles feed one candidate list, re-rooted below the
	// stripped prefix.
	var rested []candidate
	for _, c := range scoped {
		if rest, ok := matchPrefix(c.Path, []string{instance}); ok {
			rested = append(rested, rebase(c, rest))
		}
	}
	famSegs := class.Segments()
	for _, c := range global {
		if rest, ok := matchPrefix(c.Path, famSegs); ok {
			rested = append(rested, rebase(c, rest))
		}
	}

	// Group by flattened key; highest priority wins, last-read breaks ties.
	winners := make(map[string]candidate)
	var order []string
	for _, c := range rested {
		if len(c.Path) == 0 {
			set.Warnings = append(set.Warnings, Warning{Key: instance, Origin: c.Origin})
			continue
		}
		key := c.Key()
		prev, seen := winners[key]
		if !seen {
			order = append(order, key)
		}
		if !seen || c.Priority > prev.Priority || (c.Priority == prev.Priority && c.seq >= prev.seq) {
			winners[key] = c
		}
	}

	for _, t := range class.Traits() {
		if t.Kind() == schema.Component {
			e.resolveComponent(ctx, set, t, winners, rested, global)
			continue
		}

		if win, ok := winners[t.Name()]; ok {
			val, err := t.Apply(win.Value)
			if err != nil {
				set.Failures = append(set.Failures, Failure{Trait: t.Name(), Origin: win.Origin, Err: err})
				continue
			}
			set.Values[t.Name()] = val
			set.Origins[t.Name()] = win.Origin
			continue
		}

		if def, ok := t.Default(); ok {
			set.Values[t.Name()] = def
			set.Origins[t.Name()] = originDefault
			continue
		}
		set.Unresolved = append(set.Unresolved, t.Name())
	}

	// Anything left over is unknown to this class. Keys scoped under a
	// component trait were consumed by the recursion above.
	for _, key := range order {
		head, _, _ := strings.Cut(key, ".")
		if t, ok := class.Trait(head); ok {
			if t.Kind() == schema.Component || key == t.Name() {
				continue
			}
		}
		w := Warning{Key: instance + "." + key, Origin: winners[key].Origin}
		set.Warnings = append(set.Warnings, w)
		logger.Warn("Ignoring configuration key that matches no declared trait.",
			"key", w.Key, "origin", w.Origin)
	}

	return set
}

// resolveComponent picks the implementation family for a component trait
// and recursively resolves the referenced class, scoped to the trait's
// namespace.
func (e *Engine) resolveComponent(ctx context.Context, set *Set, t *schema.Trait, winners map[string]candidate, rested, global []candidate) {
	family := ""
	origin := originDefault
	if def, ok := t.Default(); ok {
		family = def.AsString()
	}
	if win, ok := winners[t.Name()]; ok {
		val, err := t.Apply(win.Value)
		if err != nil {
			set.Failures = append(set.Failures, Failure{Trait: t.Name(), Origin: win.Origin, Err: err})
			return
		}
		family = val.AsString()
		origin = win.Origin
	}
	if family == "" {
		set.Unresolved = append(set.Unresolved, t.Name())
		return
	}

	child, err := e.reg.Lookup(family)
	if err != nil {
		set.Failures = append(set.Failures, Failure{Trait: t.Name(), Origin: origin, Err: err})
		return
	}

	// The rested pool already has this instance's prefix stripped, so the
	// trait name is exactly the child's leading segment. The bare selector
	// assignment itself stays at this level.
	var childScoped []candidate
	for _, c := range rested {
		if len(c.Path) > 1 && c.Path[0] == t.Name() {
			childScoped = append(childScoped, c)
		}
	}
	childSet := e.resolveScoped(ctx, t.Name(), child, childScoped, global)
	set.Values[t.Name()] = cty.StringVal(family)
	set.Origins[t.Name()] = origin
	set.Components[t.Name()] = childSet
}

// matchPrefix strips prefix from path when path starts with it.
func matchPrefix(path, prefix []string) ([]string, bool) {
	if len(path) < len(prefix) {
		return nil, false
	}
	for i, seg := range prefix {
		if path[i] != seg {
			return nil, false
		}
	}
	return path[len(prefix):], true
}

// rebase returns the candidate with its path replaced by the stripped rest.
func rebase(c candidate, rest []string) candidate {
	c.Path = rest
	return c
}
