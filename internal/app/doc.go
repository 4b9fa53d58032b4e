// Package app wires the application together: it builds the logger and the
// component registry, assembles the configuration source layers for an
// instance, binds it, and runs its behavior. The cli package produces the
// Config this package consumes.
package app
