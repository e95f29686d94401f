// Package store holds the latest fetched snapshot of AC Infinity controller
// state and exposes it through existence-checked accessors with default
// fallback.
//
// # Cache shape
//
// Four independent mappings, each with its own key shape:
//   - controller properties, keyed by controller id (read-only telemetry)
//   - port properties, keyed by (controller id, port index)
//   - controller settings, keyed by controller id (read/write config)
//   - port settings, keyed by (controller id, port index)
//
// Controller identifiers are normalized to string form before keying, since
// the API returns them as either strings or numbers.
//
// # Accessor semantics
//
// An unknown controller, unknown port, unknown key, and a key holding null
// all resolve to the caller-supplied default through the same code path;
// accessors never fail. The Exists predicates are the one place null and
// absent differ: a key holding null exists, an absent key does not.
// Consumers use the predicates to decide whether the current hardware or
// firmware reports a field at all.
//
// # Concurrency
//
// The store takes no locks. It is written only by the refresh service, which
// the caller must keep single-flight; reads from the same goroutine context
// are always safe.
package store
