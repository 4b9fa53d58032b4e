// Package registry provides the central glue for the component system.
//
// A Class bundles the traits a component family exposes, including traits
// inherited from a base class, with the most-derived declaration winning on
// a name collision. The Registry maps family strings (e.g.
// "applications.hello") to classes, enabling late binding: a
// component-reference trait can be satisfied, per configuration, by any
// registered family, without the binder knowing the concrete class ahead of
// time.
//
// Registration happens during single-threaded startup and classes are never
// mutated afterwards. The registry serializes writes behind a mutex so that
// concurrent binds can look classes up safely.
package registry
