// Package bind turns a resolved value set into a live component instance.
//
// Bind is atomic: either every trait of the class (and of every nested
// component) holds a valid value and a fully constructed Instance is
// returned, or a BindError lists every violated trait with its origin and
// reason; partial instances are never exposed.
//
// Instances stay mutable after construction, but a write goes through the
// owning trait's coercion and validation pipeline exactly like a
// resolution-time assignment, so an instance can never hold a value that
// would have failed at bind time.
package bind
