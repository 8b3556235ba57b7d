// Package docs isolates and parses the RETURN documentation block of a
// module source file.
//
// Extraction tries several quoting conventions in fixed priority order and
// reports absence as a signal, not a failure: a module without a RETURN
// block routes to the degraded analysis path. Parsing deserializes the
// extracted fragment into the generic ordered node tree defined in the
// model package, preserving document order so downstream heuristics are
// deterministic.
package docs
