package analyze

import (
	"testing"

	"github.com/queryscan/queryscan/internal/docs"
	"github.com/queryscan/queryscan/internal/model"
)

// parseFragment is a test helper that parses a documentation fragment.
func parseFragment(t *testing.T, fragment string) []*model.Node {
	t.Helper()
	nodes, err := docs.Parse(fragment)
	if err != nil {
		t.Fatalf("failed to parse fragment: %v", err)
	}
	return nodes
}

// identifierNames extracts the Name column for compact assertions.
func identifierNames(ids []model.Identifier) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.Name
	}
	return names
}

// TestClassifierCollectDeclared tests identifier discovery in declared
// structure.
func TestClassifierCollectDeclared(t *testing.T) {
	t.Parallel()

	t.Run("collects from contains with dotted paths", func(t *testing.T) {
		t.Parallel()

		nodes := parseFragment(t, `
clusters:
  type: list
  returned: always
  contains:
    moid:
      type: str
    name:
      type: str
    datastores:
      type: list
`)
		ids := NewClassifier().Collect(nodes)

		if len(ids) != 1 {
			t.Fatalf("got %d identifiers, expected 1: %+v", len(ids), ids)
		}
		if ids[0].Name != "moid" || ids[0].Path != "clusters.moid" {
			t.Errorf("got %+v, expected clusters.moid", ids[0])
		}
	})

	t.Run("collects dict extra properties", func(t *testing.T) {
		t.Parallel()

		nodes := parseFragment(t, `
instance:
  type: dict
  returned: always
  moid:
    type: str
  instance_uuid:
    type: str
  power_state:
    type: str
`)
		ids := NewClassifier().Collect(nodes)

		got := identifierNames(ids)
		want := []string{"moid", "instance_uuid"}
		if len(got) != len(want) {
			t.Fatalf("got %v, expected %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("identifier %d: got %q, expected %q", i, got[i], want[i])
			}
		}
	})

	t.Run("top-level identifier key", func(t *testing.T) {
		t.Parallel()

		nodes := parseFragment(t, "resource_id:\n  type: str\n  returned: always\n")
		ids := NewClassifier().Collect(nodes)

		if len(ids) != 1 || ids[0].Path != "resource_id" {
			t.Fatalf("got %+v, expected top-level resource_id", ids)
		}
	})
}

// TestClassifierCollectSample tests identifier discovery in sample payloads.
func TestClassifierCollectSample(t *testing.T) {
	t.Parallel()

	t.Run("instance keys recurse without contributing to path", func(t *testing.T) {
		t.Parallel()

		nodes := parseFragment(t, `
clusters:
  type: dict
  returned: always
  sample:
    DC0_C0:
      moid: domain-c9
      datastore: LocalDS_0
`)
		ids := NewClassifier().Collect(nodes)

		if len(ids) != 1 {
			t.Fatalf("got %d identifiers, expected 1: %+v", len(ids), ids)
		}
		// The instance key DC0_C0 must not appear anywhere in the path.
		if ids[0].Name != "moid" || ids[0].Path != "moid" {
			t.Errorf("got %+v, expected bare moid", ids[0])
		}
	})

	t.Run("field mapping recursion is depth bounded", func(t *testing.T) {
		t.Parallel()

		nodes := parseFragment(t, `
result:
  type: dict
  returned: always
  sample:
    outer:
      middle:
        deep:
          buried_id: x
`)
		ids := NewClassifier().Collect(nodes)

		if len(ids) != 0 {
			t.Errorf("expected no identifiers beyond the depth bound, got %+v", ids)
		}
	})

	t.Run("stacked instance keys still expose leaf fields", func(t *testing.T) {
		t.Parallel()

		nodes := parseFragment(t, `
hosts:
  type: dict
  returned: always
  sample:
    esxi01.example.com:
      DC0_H0:
        uuid: host-uuid
`)
		ids := NewClassifier().Collect(nodes)

		if len(ids) != 1 || ids[0].Name != "uuid" {
			t.Fatalf("got %+v, expected uuid through stacked instance keys", ids)
		}
	})

	t.Run("instance key recursion counts toward the depth bound", func(t *testing.T) {
		t.Parallel()

		nodes := parseFragment(t, `
clusters:
  type: dict
  returned: always
  sample:
    DC0_C0:
      summary:
        config:
          uuid: abc
`)
		ids := NewClassifier().Collect(nodes)

		// DC0_C0 consumes one level, summary the second; config's fields
		// are past the bound and must not surface.
		if len(ids) != 0 {
			t.Errorf("expected no identifiers past the depth bound, got %+v", ids)
		}
	})

	t.Run("sequences use the first element only", func(t *testing.T) {
		t.Parallel()

		nodes := parseFragment(t, `
clusters:
  type: list
  returned: always
  sample:
    - moid: domain-c9
    - other_id: ignored
`)
		ids := NewClassifier().Collect(nodes)

		got := identifierNames(ids)
		if len(got) != 1 || got[0] != "moid" {
			t.Errorf("got %v, expected only moid from the first element", got)
		}
	})
}

// TestClassifierCollectOrder tests first-encounter ordering across declared
// and sample sources.
func TestClassifierCollectOrder(t *testing.T) {
	t.Parallel()

	nodes := parseFragment(t, `
clusters:
  type: list
  returned: always
  contains:
    cluster_id:
      type: str
  sample:
    - moid: domain-c9
`)
	ids := dedupeByName(NewClassifier().Collect(nodes))

	got := identifierNames(ids)
	want := []string{"cluster_id", "moid"}
	if len(got) != len(want) {
		t.Fatalf("got %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("identifier %d: got %q, expected %q", i, got[i], want[i])
		}
	}
}

// TestDedupeByName tests identifier deduplication.
func TestDedupeByName(t *testing.T) {
	t.Parallel()

	ids := []model.Identifier{
		{Path: "clusters.moid", Name: "moid"},
		{Path: "moid", Name: "moid"},
		{Path: "uuid", Name: "uuid"},
	}

	got := dedupeByName(ids)
	if len(got) != 2 {
		t.Fatalf("got %d identifiers, expected 2", len(got))
	}
	// First occurrence wins, including its path.
	if got[0].Path != "clusters.moid" {
		t.Errorf("got %q, expected the first-seen path to win", got[0].Path)
	}
}
