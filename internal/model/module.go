package model

// ModuleDocument is one module's source text as produced by a fetcher.
// It is read-only after creation; every downstream component consumes it
// without modification.
type ModuleDocument struct {
	// Name is the module name derived from the source file name
	// (e.g. "cluster_info" for plugins/modules/cluster_info.py).
	Name string

	// SourceText is the full UTF-8 source of the module file.
	// The fetcher contract guarantees decodable text; no further
	// provenance validation happens here.
	SourceText string
}
