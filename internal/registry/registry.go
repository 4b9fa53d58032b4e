package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Module is the interface a component package implements to contribute its
// families to an application's registry during startup.
type Module interface {
	Register(r *Registry)
}

// DuplicateFamilyError reports two distinct classes claiming one family.
type DuplicateFamilyError struct {
	Family string
}

// Error implements the error interface.
func (e *DuplicateFamilyError) Error() string {
	return fmt.Sprintf("family %q is already registered by a different class", e.Family)
}

// NotFoundError reports a family lookup miss.
type NotFoundError struct {
	Family string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("family %q is not registered", e.Family)
}

// Registry maps family strings to component classes for a single
// application instance.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*Class
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{classes: make(map[string]*Class)}
}

// Register adds a class under its family string. Re-registering the same
// class is a no-op; a different class under an already claimed family fails
// with a DuplicateFamilyError.
func (r *Registry) Register(c *Class) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.classes[c.Family()]; ok {
		if existing == c {
			return nil
		}
		return &DuplicateFamilyError{Family: c.Family()}
	}
	r.classes[c.Family()] = c
	return nil
}

// MustRegister is Register, panicking on collision. Intended for startup
// registration paths, where a collision is a programmer error.
func (r *Registry) MustRegister(c *Class) {
	if err := r.Register(c); err != nil {
		panic(err)
	}
}

// Lookup resolves a family string to its class.
func (r *Registry) Lookup(family string) (*Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.classes[family]
	if !ok {
		return nil, &NotFoundError{Family: family}
	}
	return c, nil
}

// Families returns the registered family strings in sorted order.
func (r *Registry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.classes))
	for f := range r.classes {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
