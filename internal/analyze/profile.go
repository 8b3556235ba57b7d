package analyze

import (
	"strings"
	"unicode"
)

// SampleKeyProfile decides whether a mapping key inside sample data looks
// like an instance/example key (naming one example resource) rather than a
// schema field name. When a key matches and its value is itself a mapping,
// the classifier recurses into the value without adding the key to any
// path, so "DC0_C0.moid" is never emitted instead of plain "moid".
//
// The default profile encodes the sample-formatting conventions of one
// particular documentation ecosystem: hostnames, numbered array keys,
// UUID-like dashed strings, and title-cased example names. Other
// documentation styles will need a different profile; the classifier takes
// the profile as data for exactly that reason. This is a documented
// fragility of the heuristic, not a defect.
type SampleKeyProfile struct {
	// InstancePrefixes are literal prefixes that mark an example key
	// (e.g. "DC" for DC0_C0-style cluster names).
	InstancePrefixes []string

	// LongKeyLength is the length above which a dashed key is treated
	// as UUID-like.
	LongKeyLength int

	// MarkerSubstrings are substrings that mark generated example names
	// (e.g. "_C" and "_H" in DC0_C0_H0 patterns).
	MarkerSubstrings []string

	// DottedKeys treats keys containing a dot (hostnames such as
	// esxi01.example.com) as instances.
	DottedKeys bool

	// LeadingDigitKeys treats keys starting with a digit (array-like
	// numbered keys) as instances.
	LeadingDigitKeys bool

	// TitleCasedKeys treats capitalized keys containing a dash or
	// underscore (Prod-Cluster, Prod_Cluster) as instances.
	TitleCasedKeys bool
}

// DefaultSampleKeyProfile returns the built-in heuristic profile.
func DefaultSampleKeyProfile() SampleKeyProfile {
	return SampleKeyProfile{
		InstancePrefixes: []string{"DC", "Sample_", "My-"},
		LongKeyLength:    20,
		MarkerSubstrings: []string{"_C", "_H"},
		DottedKeys:       true,
		LeadingDigitKeys: true,
		TitleCasedKeys:   true,
	}
}

// LooksLikeInstanceKey reports whether a sample mapping key names an
// example resource instance rather than a schema field.
func (p SampleKeyProfile) LooksLikeInstanceKey(key string) bool {
	if key == "" {
		return false
	}

	if p.DottedKeys && strings.Contains(key, ".") {
		return true
	}

	for _, prefix := range p.InstancePrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}

	first := rune(key[0])

	if p.LeadingDigitKeys && unicode.IsDigit(first) {
		return true
	}

	// UUID-like keys.
	if len(key) > p.LongKeyLength && strings.Contains(key, "-") {
		return true
	}

	for _, marker := range p.MarkerSubstrings {
		if strings.Contains(key, marker) {
			return true
		}
	}

	if p.TitleCasedKeys && unicode.IsUpper(first) &&
		(strings.Contains(key, "-") || strings.Contains(key, "_")) {
		return true
	}

	return false
}
