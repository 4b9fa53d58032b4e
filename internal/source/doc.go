// Package source defines the boundary contract between configuration
// sources and the resolution engine: the flat, namespaced Assignment every
// adapter normalizes its surface syntax into, the priority ladder that
// decides which source wins a key, and the Adapter interface itself.
//
// Adapters never abort on a malformed entry. A bad line becomes a
// ParseError on the returned Result, so the engine can surface every
// configuration mistake in a single run. Adapters must preserve source
// order, which the engine uses as the tie-break for equal-priority
// duplicates (last one read wins).
package source
