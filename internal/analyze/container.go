package analyze

import (
	"strings"

	"github.com/queryscan/queryscan/internal/model"
)

// ResolveContainer determines which top-level schema entry is the primary
// output container and whether it holds one resource or many.
//
// Resolution order:
//  1. The first mapping-shaped top-level entry, in document order, that
//     carries a returned marker and declares type list or dict. An entry
//     with a returned marker but no declared type counts as dict.
//  2. The leading dotted segment of the first identifier's path.
//  3. Unresolved: the query addresses the root, with dict cardinality.
func ResolveContainer(nodes []*model.Node, identifiers []model.Identifier) model.ContainerDescriptor {
	for _, n := range nodes {
		if !n.Mapping || !n.Returned {
			continue
		}
		typ := n.DeclaredType
		if typ == "" {
			typ = string(model.CardinalityDict)
		}
		if c := model.Cardinality(typ); c.IsValid() {
			return model.ContainerDescriptor{Name: n.Key, Cardinality: c}
		}
	}

	if len(identifiers) > 0 {
		if head, _, found := strings.Cut(identifiers[0].Path, "."); found && head != "" {
			return model.ContainerDescriptor{Name: head, Cardinality: model.CardinalityDict}
		}
	}

	return model.ContainerDescriptor{Cardinality: model.CardinalityDict}
}
