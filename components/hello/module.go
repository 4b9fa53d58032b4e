// Package hello defines the applications.hello component family: the
// minimal configurable application, with a swappable greeter component.
package hello

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vk/pyrite/internal/ctxlog"
	"github.com/vk/pyrite/internal/registry"
	"github.com/vk/pyrite/internal/schema"
)

var class = registry.MustNewClass("applications.hello", nil,
	schema.MustNew("who", schema.String,
		schema.WithDefault("world"),
		schema.WithDoc("the name to greet"),
	),
	schema.MustNew("times", schema.Int,
		schema.WithDefault(1),
		schema.WithDoc("how many times to greet"),
		schema.WithValidators(schema.Positive()),
	),
	schema.MustNew("greeter", schema.Component,
		schema.WithDefault("greeters.plain"),
		schema.WithDoc("the greeting style component"),
	),
).WithEntry(run)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register contributes the hello application family to the registry.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(class)
}

func run(ctx context.Context, out io.Writer, vals registry.Values) error {
	logger := ctxlog.FromContext(ctx)

	greeter := vals.Component("greeter")
	line := fmt.Sprintf("Hello %s%s", vals.String("who"), greeter.String("decoration"))
	if greeter.Bool("uppercase") {
		line = strings.ToUpper(line)
	}

	times := vals.Int("times")
	logger.Debug("Running hello application.", "instance", vals.Name(), "times", times)
	for n := int64(0); n < times; n++ {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
