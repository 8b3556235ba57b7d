package docs

import (
	"errors"
	"testing"
)

// TestExtract tests locating the RETURN documentation block.
func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("triple double quotes", func(t *testing.T) {
		t.Parallel()

		source := "RETURN = \"\"\"\nclusters:\n  type: list\n\"\"\"\n"

		got, err := Extract(source)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "clusters:\n  type: list" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("triple single quotes", func(t *testing.T) {
		t.Parallel()

		source := "RETURN = '''\ninstance:\n  type: dict\n'''\n"

		got, err := Extract(source)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "instance:\n  type: dict" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("raw string prefix", func(t *testing.T) {
		t.Parallel()

		source := "RETURN = r\"\"\"\nhosts: {}\n\"\"\"\n"

		got, err := Extract(source)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "hosts: {}" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("single quote conventions", func(t *testing.T) {
		t.Parallel()

		testCases := []struct {
			name   string
			source string
			want   string
		}{
			{"double quote", `RETURN = "id: {}"`, "id: {}"},
			{"single quote", `RETURN = 'id: {}'`, "id: {}"},
			{"raw single quote", `RETURN = r'id: {}'`, "id: {}"},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				got, err := Extract(tc.source)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tc.want {
					t.Errorf("got %q, expected %q", got, tc.want)
				}
			})
		}
	})

	t.Run("triple quotes win over single quotes", func(t *testing.T) {
		t.Parallel()

		// A triple-quoted block also matches the single-quote pattern with
		// an empty body; the convention order must pick the full block.
		source := "RETURN = \"\"\"\nclusters:\n  type: list\n\"\"\"\n"

		got, err := Extract(source)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == "" {
			t.Error("expected non-empty fragment, single-quote pattern matched first")
		}
	})

	t.Run("ignores assignment spacing", func(t *testing.T) {
		t.Parallel()

		source := "RETURN=r'''\nname: {}\n'''"

		got, err := Extract(source)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "name: {}" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("returns ErrFragmentNotFound when absent", func(t *testing.T) {
		t.Parallel()

		_, err := Extract("DOCUMENTATION = '''\nmodule: cluster_info\n'''\n")
		if !errors.Is(err, ErrFragmentNotFound) {
			t.Errorf("expected ErrFragmentNotFound, got %v", err)
		}
	})

	t.Run("empty source", func(t *testing.T) {
		t.Parallel()

		_, err := Extract("")
		if !errors.Is(err, ErrFragmentNotFound) {
			t.Errorf("expected ErrFragmentNotFound, got %v", err)
		}
	})

	t.Run("stops at first closing delimiter", func(t *testing.T) {
		t.Parallel()

		source := "RETURN = \"\"\"\nfirst: {}\n\"\"\"\n\nEXAMPLES = \"\"\"\nsecond\n\"\"\"\n"

		got, err := Extract(source)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "first: {}" {
			t.Errorf("got %q, block should end at the first closing delimiter", got)
		}
	})
}
