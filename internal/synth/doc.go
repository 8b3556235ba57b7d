// Package synth turns a module analysis into one canonical query: it
// reduces discovered identifiers to available fields, picks the single
// canonical identifier under a fixed priority policy, and constructs the
// accessor expression that navigates the module's output container.
package synth
