package model

import "strings"

// InfraTypePrivateCloud is the fixed infra_type fact stamped into every
// synthesized query. The indirect-inventory pipeline downstream keys on it.
const InfraTypePrivateCloud = "PrivateCloud"

// Query is the synthesized filter/transform expression for one module.
// It maps one raw module output record to a canonical event record with a
// name, exactly one canonical identifying fact, and classification facts.
//
// canonical_facts deliberately carries a single entry: downstream
// deduplication keys strictly on (name, job), and mixing identifier kinds
// across modules of the same resource type would break that dedup.
type Query struct {
	// Accessor selects the record(s) to transform: an iterating
	// expression for list containers, a null-guarded selection for
	// dict containers.
	Accessor string `json:"accessor"`

	// NameExpr is the expression producing the event name. It always
	// equals the canonical identifier expression.
	NameExpr string `json:"name_expr"`

	// CanonicalName is the canonical fact key chosen by the priority
	// table (e.g. "moid", "bios_uuid").
	CanonicalName string `json:"canonical_name"`

	// CanonicalExpr is the expression producing the canonical fact value.
	CanonicalExpr string `json:"canonical_expr"`

	// Facts holds the fixed classification facts.
	Facts QueryFacts `json:"facts"`
}

// QueryFacts is the facts block of a synthesized query.
type QueryFacts struct {
	InfraType   string      `json:"infra_type"`
	InfraBucket InfraBucket `json:"infra_bucket"`
	DeviceType  DeviceType  `json:"device_type"`
}

// CanonicalFacts returns the single-entry canonical facts mapping.
func (q *Query) CanonicalFacts() map[string]string {
	return map[string]string{q.CanonicalName: q.CanonicalExpr}
}

// Render returns the multi-line query body text. The shape is fixed; only
// the accessor, identifier expressions, and classification facts vary.
func (q *Query) Render() string {
	var b strings.Builder
	b.WriteString(q.Accessor + " | {\n")
	b.WriteString("  name: " + q.NameExpr + ",\n")
	b.WriteString("  canonical_facts: {\n")
	b.WriteString("    " + q.CanonicalName + ": " + q.CanonicalExpr + "\n")
	b.WriteString("  },\n")
	b.WriteString("  facts: {\n")
	b.WriteString("    infra_type: \"" + q.Facts.InfraType + "\",\n")
	b.WriteString("    infra_bucket: \"" + string(q.Facts.InfraBucket) + "\",\n")
	b.WriteString("    device_type: \"" + string(q.Facts.DeviceType) + "\"\n")
	b.WriteString("  }\n")
	b.WriteString("}")
	return b.String()
}
