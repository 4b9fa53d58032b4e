package registry

import (
	"context"
	"io"
	"strings"

	"github.com/vk/pyrite/internal/schema"
)

// Values is the read surface a bound instance exposes to component code.
// Accessors panic on a trait name the class never declared; by construction
// a bound instance holds a valid value for every declared trait.
type Values interface {
	Name() string
	Int(trait string) int64
	Float(trait string) float64
	String(trait string) string
	Bool(trait string) bool
	Strings(trait string) []string
	Map(trait string) map[string]string
	Component(trait string) Values
}

// EntryFunc is the optional behavior hook a family attaches to its class,
// invoked by the application after a successful bind.
type EntryFunc func(ctx context.Context, out io.Writer, vals Values) error

// Class is the immutable declaration of a component family: its identifying
// family string, optional base class, and trait declarations.
type Class struct {
	family string
	base   *Class
	entry  EntryFunc

	// flattened trait list, base-first, most-derived replacing in place
	traits []*schema.Trait
	byName map[string]*schema.Trait
}

// NewClass declares a component class. The family string may be dot- or
// slash-delimited; slashes are normalized to dots. Declaring two traits with
// the same name at the same level fails with a DeclarationError; shadowing a
// base-class trait is the supported override mechanism and replaces the base
// declaration entirely.
func NewClass(family string, base *Class, traits ...*schema.Trait) (*Class, error) {
	family = strings.ReplaceAll(family, "/", ".")
	if family == "" {
		return nil, &schema.DeclarationError{Trait: family, Reason: "family must not be empty"}
	}
	for _, seg := range strings.Split(family, ".") {
		if seg == "" {
			return nil, &schema.DeclarationError{Trait: family, Reason: "family has an empty segment"}
		}
	}

	seen := make(map[string]struct{}, len(traits))
	for _, t := range traits {
		if _, dup := seen[t.Name()]; dup {
			return nil, &schema.DeclarationError{
				Trait:  t.Name(),
				Reason: "declared twice on family " + family,
			}
		}
		seen[t.Name()] = struct{}{}
	}

	c := &Class{family: family, base: base}
	c.flatten(traits)
	return c, nil
}

// MustNewClass is NewClass, panicking on declaration errors.
func MustNewClass(family string, base *Class, traits ...*schema.Trait) *Class {
	c, err := NewClass(family, base, traits...)
	if err != nil {
		panic(err)
	}
	return c
}

// flatten overlays own declarations onto the base class's trait list. Base
// order is preserved; an overriding trait keeps the base trait's position,
// new traits append in declaration order.
func (c *Class) flatten(own []*schema.Trait) {
	var flat []*schema.Trait
	if c.base != nil {
		flat = append(flat, c.base.traits...)
	}
	index := make(map[string]int, len(flat))
	for i, t := range flat {
		index[t.Name()] = i
	}
	for _, t := range own {
		if i, ok := index[t.Name()]; ok {
			flat[i] = t
			continue
		}
		index[t.Name()] = len(flat)
		flat = append(flat, t)
	}

	c.traits = flat
	c.byName = make(map[string]*schema.Trait, len(flat))
	for _, t := range flat {
		c.byName[t.Name()] = t
	}
}

// WithEntry attaches the family's behavior hook and returns the class for
// declaration chaining.
func (c *Class) WithEntry(fn EntryFunc) *Class {
	c.entry = fn
	return c
}

// Family returns the canonical dotted family string.
func (c *Class) Family() string { return c.family }

// Segments returns the family string split into namespace segments.
func (c *Class) Segments() []string { return strings.Split(c.family, ".") }

// Base returns the base class, or nil.
func (c *Class) Base() *Class { return c.base }

// Entry returns the attached behavior hook, or nil.
func (c *Class) Entry() EntryFunc { return c.entry }

// Traits returns the flattened trait declarations, inherited ones included.
// Callers must not mutate the returned slice.
func (c *Class) Traits() []*schema.Trait { return c.traits }

// Trait looks a declaration up by name.
func (c *Class) Trait(name string) (*schema.Trait, bool) {
	t, ok := c.byName[name]
	return t, ok
}
