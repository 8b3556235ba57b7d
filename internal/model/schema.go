package model

// Node is one entry in the parsed documentation tree. Each node corresponds
// to a key in the RETURN mapping and optionally carries a declared type,
// declared child structure, remaining non-metadata properties, and an
// embedded sample payload.
//
// The tree is owned exclusively by the schema parser's output; downstream
// components read it and never modify it.
type Node struct {
	// Key is the field name as written in the documentation.
	Key string

	// DeclaredType is the value of the "type" metadata key, or empty
	// when the documentation does not declare one.
	DeclaredType string

	// Returned reports whether the entry carries a truthy "returned"
	// marker. A returned marker distinguishes real output containers
	// from auxiliary documentation entries.
	Returned bool

	// Mapping reports whether the raw value for this key was
	// mapping-shaped. Scalar-valued entries have Mapping == false and
	// no children.
	Mapping bool

	// Contains holds the declared child structure from the "contains"
	// metadata key, in document order. Nil when absent.
	Contains []*Node

	// Extra holds the entry's remaining mapping properties after the
	// metadata keys (type, description, returned, sample, elements,
	// contains) are removed, in document order. These are treated as
	// fields when the entry declares type "dict".
	Extra []*Node

	// Sample is the embedded example payload from the "sample" metadata
	// key. Nil when absent or empty.
	Sample *Value
}

// ValueKind discriminates the shapes a sample payload node can take.
type ValueKind int

// Sample payload shapes.
const (
	// ValueScalar is a leaf value (string, number, bool, null).
	ValueScalar ValueKind = iota
	// ValueMapping is an ordered key/value mapping.
	ValueMapping
	// ValueSequence is an ordered list.
	ValueSequence
)

// Value is a generic tree node for sample payloads. Unlike Node, a Value
// carries no schema metadata; it is raw example data whose keys may be
// either real field names or instance keys naming a specific example
// resource.
type Value struct {
	// Kind selects which of the remaining fields is meaningful.
	Kind ValueKind

	// Scalar is the textual form of a leaf value (Kind == ValueScalar).
	Scalar string

	// Entries holds mapping entries in document order (Kind == ValueMapping).
	Entries []MapEntry

	// Items holds sequence elements in document order (Kind == ValueSequence).
	Items []*Value
}

// MapEntry is one ordered key/value pair inside a mapping Value.
type MapEntry struct {
	Key   string
	Value *Value
}

// IsMapping reports whether the value is mapping-shaped.
func (v *Value) IsMapping() bool {
	return v != nil && v.Kind == ValueMapping
}

// IsEmpty reports whether the value carries no data at all. Empty samples
// are treated the same as absent samples by the classifier.
func (v *Value) IsEmpty() bool {
	if v == nil {
		return true
	}
	switch v.Kind {
	case ValueMapping:
		return len(v.Entries) == 0
	case ValueSequence:
		return len(v.Items) == 0
	default:
		return v.Scalar == "" || v.Scalar == "null" || v.Scalar == "~"
	}
}
