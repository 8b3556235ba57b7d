// Package report renders generation results.
//
// The query-file writer produces the event_query.yml artifact consumed by
// the indirect-inventory pipeline; its grammar is fixed and rendered
// byte-for-byte. The simple and markdown writers render human-readable
// run summaries for terminals and documentation.
package report
