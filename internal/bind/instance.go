package bind

import (
	"context"
	"fmt"
	"io"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/pyrite/internal/registry"
	"github.com/vk/pyrite/internal/resolve"
	"github.com/vk/pyrite/internal/schema"
)

// Instance is a bound, live component: one validated value per declared
// trait, plus exclusively owned instances for every component-reference
// trait. Instances are not safe for concurrent mutation.
type Instance struct {
	name     string
	class    *registry.Class
	values   map[string]cty.Value
	origins  map[string]string
	children map[string]*Instance
}

// newInstance builds the instance graph from an error-free resolved set.
func newInstance(set *resolve.Set, reg *registry.Registry) *Instance {
	inst := &Instance{
		name:     set.Instance,
		class:    mustLookup(reg, set.Family),
		values:   make(map[string]cty.Value, len(set.Values)),
		origins:  make(map[string]string, len(set.Origins)),
		children: make(map[string]*Instance, len(set.Components)),
	}
	for k, v := range set.Values {
		inst.values[k] = v
	}
	for k, v := range set.Origins {
		inst.origins[k] = v
	}
	for name, child := range set.Components {
		inst.children[name] = newInstance(child, reg)
	}
	return inst
}

// mustLookup resolves a family already validated by the engine.
func mustLookup(reg *registry.Registry, family string) *registry.Class {
	class, err := reg.Lookup(family)
	if err != nil {
		panic(err)
	}
	return class
}

// Name returns the runtime instance identifier.
func (i *Instance) Name() string { return i.name }

// Class returns the component class this instance was bound against.
func (i *Instance) Class() *registry.Class { return i.class }

// Origin returns the provenance of a trait's current value: a source
// origin tag, "default", or "set" after a programmatic write.
func (i *Instance) Origin(trait string) string { return i.origins[trait] }

// Get returns the current value of a trait, when one is held.
func (i *Instance) Get(trait string) (cty.Value, bool) {
	v, ok := i.values[trait]
	return v, ok
}

// Set assigns a trait programmatically. The raw value runs through the
// trait's full coercion and validation pipeline; the instance keeps its
// previous value on failure.
func (i *Instance) Set(trait string, raw any) error {
	t, ok := i.class.Trait(trait)
	if !ok {
		return fmt.Errorf("instance %q: no trait named %q on family %s", i.name, trait, i.class.Family())
	}
	if t.Kind() == schema.Component {
		return fmt.Errorf("instance %q: trait %q is a component reference and cannot be reassigned after binding", i.name, trait)
	}
	val, err := t.Apply(raw)
	if err != nil {
		return err
	}
	i.values[trait] = val
	i.origins[trait] = "set"
	return nil
}

// Run invokes the class's behavior hook, if it declares one.
func (i *Instance) Run(ctx context.Context, out io.Writer) error {
	entry := i.class.Entry()
	if entry == nil {
		return fmt.Errorf("family %s declares no behavior", i.class.Family())
	}
	return entry(ctx, out, i)
}

// The accessors below implement registry.Values. They panic on undeclared
// trait names: accessing a trait the class never declared is a programmer
// error, while a declared trait always holds a valid value on a bound
// instance.

// Int returns an int trait's value.
func (i *Instance) Int(trait string) int64 {
	var out int64
	i.decode(trait, &out)
	return out
}

// Float returns a float trait's value.
func (i *Instance) Float(trait string) float64 {
	var out float64
	i.decode(trait, &out)
	return out
}

// String returns a string trait's value.
func (i *Instance) String(trait string) string {
	var out string
	i.decode(trait, &out)
	return out
}

// Bool returns a bool trait's value.
func (i *Instance) Bool(trait string) bool {
	var out bool
	i.decode(trait, &out)
	return out
}

// Strings returns a list trait's value.
func (i *Instance) Strings(trait string) []string {
	var out []string
	i.decode(trait, &out)
	return out
}

// Map returns a mapping trait's value.
func (i *Instance) Map(trait string) map[string]string {
	var out map[string]string
	i.decode(trait, &out)
	return out
}

// Component returns the bound sub-instance of a component-reference trait.
func (i *Instance) Component(trait string) registry.Values {
	child, ok := i.children[trait]
	if !ok {
		panic(fmt.Sprintf("instance %q: no component trait named %q on family %s", i.name, trait, i.class.Family()))
	}
	return child
}

func (i *Instance) decode(trait string, out any) {
	v, ok := i.values[trait]
	if !ok {
		panic(fmt.Sprintf("instance %q: no trait named %q on family %s", i.name, trait, i.class.Family()))
	}
	if err := gocty.FromCtyValue(v, out); err != nil {
		panic(fmt.Sprintf("instance %q: trait %q: %v", i.name, trait, err))
	}
}
