// Package registry provides a generic thread-safe registry of ordered value
// lists indexed by key.
//
// Each key maps to a list that keeps values in the order they were appended.
// An equality function supplied at construction decides whether a value is
// already present under a key; duplicates are skipped rather than appended
// again. Keys are remembered in the order they first received a value.
//
// # Basic Usage
//
//	r := registry.New[string, string](func(a, b string) bool { return a == b })
//	r.Append("created", "audit")
//	r.Append("created", "mailer")
//	r.Append("created", "audit") // skipped, already present
//
//	r.Get("created") // [audit mailer]
//
// # Thread Safety
//
// All Registry methods are safe for concurrent use. Get returns a copy of
// the list and Range iterates over a snapshot, so callers may append while
// iterating without affecting the iteration itself.
package registry
