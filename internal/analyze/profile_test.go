package analyze

import "testing"

// TestSampleKeyProfileLooksLikeInstanceKey tests the instance-key heuristic.
func TestSampleKeyProfileLooksLikeInstanceKey(t *testing.T) {
	t.Parallel()

	profile := DefaultSampleKeyProfile()

	testCases := []struct {
		key  string
		want bool
	}{
		// Hostname-like keys.
		{"esxi01.example.com", true},

		// Instance prefixes.
		{"DC0_C0", true},
		{"Sample_Cluster", true},
		{"My-Datastore", true},

		// Array-like numbered keys.
		{"0", true},
		{"12", true},

		// UUID-like keys.
		{"1e7f64e9-5a28-4e33-9da9-aaaaaaaaaaaa", true},

		// Marker substrings.
		{"X_C9", true},
		{"X_H1", true},

		// Capitalized with dash or underscore.
		{"Prod-Cluster", true},
		{"Prod_Cluster", true},

		// Schema field names.
		{"moid", false},
		{"name", false},
		{"instance_uuid", false},
		{"datastore", false},
		{"Cluster", false},
		{"", false},
	}

	for _, tc := range testCases {
		name := tc.key
		if name == "" {
			name = "empty"
		}
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := profile.LooksLikeInstanceKey(tc.key); got != tc.want {
				t.Errorf("LooksLikeInstanceKey(%q) = %v, expected %v", tc.key, got, tc.want)
			}
		})
	}
}

// TestSampleKeyProfileCustom tests a replaced heuristic profile.
func TestSampleKeyProfileCustom(t *testing.T) {
	t.Parallel()

	profile := SampleKeyProfile{
		InstancePrefixes: []string{"node-"},
		LongKeyLength:    10,
		MarkerSubstrings: nil,
	}

	if !profile.LooksLikeInstanceKey("node-1") {
		t.Error("expected custom prefix to match")
	}
	if profile.LooksLikeInstanceKey("DC0_C0") {
		t.Error("expected default prefixes to be gone")
	}
	if !profile.LooksLikeInstanceKey("abcdefgh-ijk") {
		t.Error("expected shorter LongKeyLength to flag dashed key")
	}

	// The shape-based clauses are off unless the profile enables them.
	for _, key := range []string{"esxi01.example.com", "0", "Prod_Cluster"} {
		if profile.LooksLikeInstanceKey(key) {
			t.Errorf("expected %q to be a field with shape clauses disabled", key)
		}
	}

	profile.TitleCasedKeys = true
	if !profile.LooksLikeInstanceKey("Prod_Cluster") {
		t.Error("expected enabled TitleCasedKeys clause to match")
	}
}
