package synth

import (
	"strings"
	"unicode"

	"github.com/queryscan/queryscan/internal/model"
)

// priorityRow maps an available field name to its canonical fact name.
type priorityRow struct {
	field     string
	canonical string
}

// priorityTable is the fixed primary-identifier policy, tried top to
// bottom; the first available field wins and becomes the only entry in
// canonical_facts. One identifier per module is deliberate: downstream
// deduplication keys strictly on (name, job), and mixing identifier kinds
// across modules of the same resource type would break that dedup.
var priorityTable = []priorityRow{
	{"moid", "moid"},
	{"instance_uuid", "instance_uuid"},
	{"hw_product_uuid", "bios_uuid"},
	{"uuid", "uuid"},
	{"arn", "arn"},
	{"resource_id", "resource_id"},
	{"id", "id"},
	{"serial", "serial"},
	{"name", "name"},
}

// Build synthesizes the query for one module analysis and device
// classification. It always succeeds: with no usable fields the query
// degrades to the literal field "id".
func Build(analysis *model.ModuleAnalysis, device model.DeviceClassification) *model.Query {
	fields := availableFields(analysis.Identifiers)
	expr, canonical := primaryIdentifier(fields)

	return &model.Query{
		Accessor:      accessor(analysis.Container),
		NameExpr:      expr,
		CanonicalName: canonical,
		CanonicalExpr: expr,
		Facts: model.QueryFacts{
			InfraType:   model.InfraTypePrivateCloud,
			InfraBucket: device.InfraBucket,
			DeviceType:  device.DeviceType,
		},
	}
}

// availableFields reduces identifiers to the field names the accessor can
// address directly: the final dotted segment of each path, with anything
// that still looks like a sample-instance key discarded, deduplicated by
// name in first-seen order.
func availableFields(identifiers []model.Identifier) []string {
	fields := make([]string, 0, len(identifiers))
	seen := make(map[string]bool, len(identifiers))

	for _, id := range identifiers {
		parts := strings.Split(id.Path, ".")
		field := parts[len(parts)-1]
		if field == "" || looksLikeInstanceField(field) {
			continue
		}
		if seen[field] {
			continue
		}
		seen[field] = true
		fields = append(fields, field)
	}

	return fields
}

// looksLikeInstanceField flags leaf segments that name an example resource
// rather than a schema field: capitalized, leading digit, or containing a
// dash or dot.
func looksLikeInstanceField(field string) bool {
	first := rune(field[0])
	return unicode.IsUpper(first) ||
		unicode.IsDigit(first) ||
		strings.Contains(field, "-") ||
		strings.Contains(field, ".")
}

// primaryIdentifier selects the canonical identifier expression and fact
// name. The priority table is tried top to bottom against the available
// fields; failing that, the first available field is used verbatim under
// the canonical name "id"; failing that, the literal field "id".
func primaryIdentifier(fields []string) (expr, canonical string) {
	for _, row := range priorityTable {
		for _, f := range fields {
			if strings.ToLower(f) == row.field {
				return "." + f, row.canonical
			}
		}
	}

	if len(fields) > 0 {
		return "." + fields[0], "id"
	}
	return ".id", "id"
}

// accessor builds the expression that navigates to the resource record(s).
// List containers iterate every element; dict containers select the
// container only when non-null. An unresolved container addresses the
// root the same two ways.
func accessor(container model.ContainerDescriptor) string {
	if container.Cardinality == model.CardinalityList {
		if container.Resolved() {
			return "." + container.Name + "[]"
		}
		return ".[]"
	}

	if container.Resolved() {
		return "." + container.Name + " | select(. != null)"
	}
	return ". | select(. != null)"
}
