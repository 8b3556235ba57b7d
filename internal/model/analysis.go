package model

// Cardinality describes whether a container holds one resource or many.
type Cardinality string

// Container cardinalities. These are the only two values; resolution
// defaults to CardinalityDict when nothing better is known.
const (
	// CardinalityList marks a container holding a collection of resources.
	CardinalityList Cardinality = "list"
	// CardinalityDict marks a container holding a single resource.
	CardinalityDict Cardinality = "dict"
)

// IsValid returns true if this is a known cardinality.
func (c Cardinality) IsValid() bool {
	return c == CardinalityList || c == CardinalityDict
}

// Identifier is one discovered identifier field.
//
// Name is the leaf field name. Path may equal Name or be a dotted
// qualifier built only from true field ancestors; sample-instance keys
// never appear in a path.
type Identifier struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// ContainerDescriptor names the primary output container of a module and
// its cardinality. Name is empty when resolution fell through to the root.
type ContainerDescriptor struct {
	Name        string      `json:"name,omitempty"`
	Cardinality Cardinality `json:"cardinality"`
}

// Resolved reports whether a concrete container name was found.
func (c ContainerDescriptor) Resolved() bool {
	return c.Name != ""
}

// ModuleAnalysis is the per-module analysis result. It is immutable once
// built: every analysis carries at least one identifier (the fallback
// identifier "id" when nothing better was found) and identifiers are
// already deduplicated by name in first-seen order.
type ModuleAnalysis struct {
	// ModuleName is the analyzed module's name.
	ModuleName string `json:"module_name"`

	// Identifiers holds the discovered identifiers in first-encounter
	// order, deduplicated by name.
	Identifiers []Identifier `json:"identifiers"`

	// Container describes the primary output container.
	Container ContainerDescriptor `json:"container"`

	// Fallback is true when no identifier was found through the
	// allow/deny rules and the analysis degraded to the generic "id"
	// identifier. Fallback analyses still yield a query block; they
	// simply carry weaker identifiers.
	Fallback bool `json:"fallback"`
}
