package analyze

import (
	"testing"

	"github.com/queryscan/queryscan/internal/model"
)

// TestResolveContainer tests output container resolution.
func TestResolveContainer(t *testing.T) {
	t.Parallel()

	t.Run("first returned list entry wins", func(t *testing.T) {
		t.Parallel()

		nodes := parseFragment(t, `
changed:
  type: bool
clusters:
  type: list
  returned: always
hosts:
  type: list
  returned: always
`)
		c := ResolveContainer(nodes, nil)

		if c.Name != "clusters" || c.Cardinality != model.CardinalityList {
			t.Errorf("got %+v, expected clusters/list", c)
		}
	})

	t.Run("missing type with returned marker counts as dict", func(t *testing.T) {
		t.Parallel()

		nodes := parseFragment(t, "instance:\n  returned: always\n  description: The instance.\n")
		c := ResolveContainer(nodes, nil)

		if c.Name != "instance" || c.Cardinality != model.CardinalityDict {
			t.Errorf("got %+v, expected instance/dict", c)
		}
	})

	t.Run("non container types are skipped", func(t *testing.T) {
		t.Parallel()

		nodes := parseFragment(t, `
changed:
  type: bool
  returned: always
hosts:
  type: dict
  returned: always
`)
		c := ResolveContainer(nodes, nil)

		if c.Name != "hosts" || c.Cardinality != model.CardinalityDict {
			t.Errorf("got %+v, expected hosts/dict", c)
		}
	})

	t.Run("entries without returned marker are skipped", func(t *testing.T) {
		t.Parallel()

		nodes := parseFragment(t, `
aux:
  type: list
clusters:
  type: list
  returned: always
`)
		c := ResolveContainer(nodes, nil)

		if c.Name != "clusters" {
			t.Errorf("got %+v, expected clusters", c)
		}
	})

	t.Run("falls back to first identifier path head", func(t *testing.T) {
		t.Parallel()

		nodes := parseFragment(t, "clusters:\n  type: list\n")
		ids := []model.Identifier{{Path: "clusters.moid", Name: "moid"}}

		c := ResolveContainer(nodes, ids)

		if c.Name != "clusters" || c.Cardinality != model.CardinalityDict {
			t.Errorf("got %+v, expected clusters/dict from identifier path", c)
		}
	})

	t.Run("bare identifier path leaves container unresolved", func(t *testing.T) {
		t.Parallel()

		nodes := parseFragment(t, "moid:\n  type: str\n")
		ids := []model.Identifier{{Path: "moid", Name: "moid"}}

		c := ResolveContainer(nodes, ids)

		if c.Resolved() {
			t.Errorf("got %+v, expected unresolved container", c)
		}
		if c.Cardinality != model.CardinalityDict {
			t.Errorf("got cardinality %q, expected dict", c.Cardinality)
		}
	})

	t.Run("no nodes and no identifiers", func(t *testing.T) {
		t.Parallel()

		c := ResolveContainer(nil, nil)

		if c.Resolved() || c.Cardinality != model.CardinalityDict {
			t.Errorf("got %+v, expected unresolved dict", c)
		}
	})
}
