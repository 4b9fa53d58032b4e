// Package greeters defines the greeting style component families. The
// family an application binds is picked by configuration, which makes this
// the canonical example of swapping an implementation without touching
// code: greeters.plain and greeters.shout share the base class's traits
// and differ only in the defaults they override.
package greeters

import (
	"github.com/vk/pyrite/internal/registry"
	"github.com/vk/pyrite/internal/schema"
)

var base = registry.MustNewClass("greeters.base", nil,
	schema.MustNew("decoration", schema.String,
		schema.WithDefault("!"),
		schema.WithDoc("trailing decoration appended to the greeting"),
	),
	schema.MustNew("uppercase", schema.Bool,
		schema.WithDefault(false),
		schema.WithDoc("shout the greeting in capitals"),
	),
)

var plain = registry.MustNewClass("greeters.plain", base)

var shout = registry.MustNewClass("greeters.shout", base,
	schema.MustNew("uppercase", schema.Bool, schema.WithDefault(true)),
	schema.MustNew("decoration", schema.String, schema.WithDefault("!!!")),
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register contributes the greeter families to the registry.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(plain)
	r.MustRegister(shout)
}
