// Package resolve merges the assignments of every configuration source into
// one consistent value per declared trait.
//
// An assignment participates in an instance's resolution when its leading
// path segments name either the instance or the component's family, so a
// section written for "applications.hello" configures every instance of
// that family while a section written for "hello" configures that one
// instance. After the prefix is stripped, the remaining path flattens to a
// dotted key; the highest-priority assignment per key wins, and equal
// priorities resolve to the last one read.
//
// Component-reference traits recurse: the winning scalar for the trait
// selects the registered family to bind, and the trait's name becomes the
// nested namespace prefix for the referenced component's own settings.
//
// Resolution is a bounded, in-memory computation; the context carries only
// the logger. Problems are accumulated, not thrown: coercion and validation
// failures, parse errors and unknown-key warnings all ride on the returned
// Set so a caller sees every mistake in one run.
package resolve
