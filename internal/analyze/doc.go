// Package analyze discovers resource identifiers in parsed module
// documentation and resolves the primary output container.
//
// The classifier walks two distinct sources inside one schema tree with
// different rules: declared nested structure ("contains" blocks and
// dict-typed entries) and embedded example payloads ("sample" blocks).
// Sample payloads mix real field names with instance keys that name a
// specific example resource (hostnames, numbered entries, UUID-like
// strings), so a pluggable heuristic profile suppresses those before the
// identifier rules apply.
//
// All rule lists are ordered, data-driven tables rather than inline
// conditionals, so they can be tested and extended independently of the
// tree-walking logic. Every walk is a pure function returning a fresh
// slice per call; per-module analysis shares no mutable state.
package analyze
