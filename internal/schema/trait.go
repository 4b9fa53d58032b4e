package schema

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Trait declares one configurable attribute on a component class: its name,
// kind, documentation, optional default and validator pipeline. Traits are
// immutable once declared and shared by every instance of the class.
type Trait struct {
	name       string
	kind       Kind
	doc        string
	validators []Validator
	def        cty.Value
	hasDefault bool
}

// Option customizes a trait declaration.
type Option func(*declaration)

type declaration struct {
	doc        string
	rawDefault any
	hasDefault bool
	validators []Validator
}

// WithDoc attaches a human-readable description. It never affects behavior.
func WithDoc(doc string) Option {
	return func(d *declaration) { d.doc = doc }
}

// WithDefault declares a default value. The raw value is coerced and
// validated at declaration time; a trait without a default is required.
func WithDefault(raw any) Option {
	return func(d *declaration) {
		d.rawDefault = raw
		d.hasDefault = true
	}
}

// WithValidators appends validators, applied in the given order on every
// assignment.
func WithValidators(vs ...Validator) Option {
	return func(d *declaration) { d.validators = append(d.validators, vs...) }
}

// New declares a trait. It fails with a DeclarationError if the name is
// empty, the kind is unknown, or the declared default does not survive its
// own coercion and validator pipeline.
func New(name string, kind Kind, opts ...Option) (*Trait, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &DeclarationError{Trait: name, Reason: "name must not be empty"}
	}
	if strings.Contains(name, ".") {
		return nil, &DeclarationError{Trait: name, Reason: "name must not contain '.'"}
	}
	if kind.ctyType() == cty.NilType {
		return nil, &DeclarationError{Trait: name, Reason: "unknown kind"}
	}

	var d declaration
	for _, opt := range opts {
		opt(&d)
	}

	t := &Trait{
		name:       name,
		kind:       kind,
		doc:        d.doc,
		validators: d.validators,
	}

	if d.hasDefault {
		def, err := t.Apply(d.rawDefault)
		if err != nil {
			return nil, &DeclarationError{Trait: name, Reason: fmt.Sprintf("default rejected: %v", err)}
		}
		t.def = def
		t.hasDefault = true
	}
	return t, nil
}

// MustNew is New, panicking on declaration errors. Intended for trait
// declarations in package init paths, where a bad declaration is a
// programmer error.
func MustNew(name string, kind Kind, opts ...Option) *Trait {
	t, err := New(name, kind, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the trait's identifier, unique within its owning class.
func (t *Trait) Name() string { return t.name }

// Kind returns the trait's declared value shape.
func (t *Trait) Kind() Kind { return t.kind }

// Doc returns the trait's description.
func (t *Trait) Doc() string { return t.doc }

// Default returns the pre-validated default value, if one was declared.
func (t *Trait) Default() (cty.Value, bool) { return t.def, t.hasDefault }

// Required reports whether a configuration assignment must supply a value.
func (t *Trait) Required() bool { return !t.hasDefault }

// Apply coerces a raw source value to the trait's kind and runs the
// validator pipeline in declaration order, short-circuiting on the first
// failure. The returned value is the fully normalized form.
func (t *Trait) Apply(raw any) (cty.Value, error) {
	val, err := t.Coerce(raw)
	if err != nil {
		return cty.NilVal, err
	}
	for _, v := range t.validators {
		val, err = v.Check(val)
		if err != nil {
			return cty.NilVal, &ValidationError{
				Trait:     t.name,
				Validator: v.Name,
				Reason:    err.Error(),
			}
		}
	}
	return val, nil
}

// Coerce converts a raw source value to the trait's cty type without
// running validators. String sources are converted via cty's conversion
// rules, so "3" satisfies an int trait and "true" a bool trait.
func (t *Trait) Coerce(raw any) (cty.Value, error) {
	val, err := toCty(raw)
	if err != nil {
		return cty.NilVal, &TypeCoercionError{Trait: t.name, Kind: t.kind, Raw: raw, Err: err}
	}

	// A bare string assigned to a list trait is read as a comma-separated
	// sequence, matching how flat text sources spell lists.
	if t.kind == List && val.Type() == cty.String {
		parts := strings.Split(val.AsString(), ",")
		elems := make([]cty.Value, 0, len(parts))
		for _, p := range parts {
			elems = append(elems, cty.StringVal(strings.TrimSpace(p)))
		}
		val = cty.ListVal(elems)
	}

	out, err := convert.Convert(val, t.kind.ctyType())
	if err != nil {
		return cty.NilVal, &TypeCoercionError{Trait: t.name, Kind: t.kind, Raw: raw, Err: err}
	}
	if out.IsNull() {
		return cty.NilVal, &TypeCoercionError{
			Trait: t.name, Kind: t.kind, Raw: raw,
			Err: fmt.Errorf("null value"),
		}
	}
	if t.kind == Int {
		if bf := out.AsBigFloat(); !bf.IsInt() {
			return cty.NilVal, &TypeCoercionError{
				Trait: t.name, Kind: t.kind, Raw: raw,
				Err: fmt.Errorf("%s is not a whole number", bf.Text('f', -1)),
			}
		}
	}
	return out, nil
}

// toCty lifts a native Go value into the cty type system. Values arriving
// from structured sources may already be cty.Values and pass through
// unchanged; loosely typed containers from YAML-style decoders are converted
// element by element.
func toCty(raw any) (cty.Value, error) {
	switch v := raw.(type) {
	case cty.Value:
		return v, nil
	case nil:
		return cty.NilVal, fmt.Errorf("no value")
	case []any:
		if len(v) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(v))
		for i, e := range v {
			ev, err := toCty(e)
			if err != nil {
				return cty.NilVal, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = ev
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(v) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(v))
		for k, e := range v {
			ev, err := toCty(e)
			if err != nil {
				return cty.NilVal, fmt.Errorf("key %q: %w", k, err)
			}
			attrs[k] = ev
		}
		return cty.ObjectVal(attrs), nil
	}
	ty, err := gocty.ImpliedType(raw)
	if err != nil {
		return cty.NilVal, err
	}
	return gocty.ToCtyValue(raw, ty)
}

// DisplayValue renders a cty value for diagnostics, without cty's type
// annotations.
func DisplayValue(v cty.Value) string {
	if v.IsNull() || !v.IsKnown() {
		return "(none)"
	}
	switch v.Type() {
	case cty.String:
		return v.AsString()
	case cty.Number:
		return v.AsBigFloat().Text('f', -1)
	case cty.Bool:
		if v.True() {
			return "true"
		}
		return "false"
	}
	return v.GoString()
}
