package analyze

import "strings"

// matchKind selects how an allow rule compares against a field name.
type matchKind int

const (
	// matchExact requires the whole lowercased name to equal the term.
	matchExact matchKind = iota
	// matchSuffix requires the lowercased name to end with the term.
	matchSuffix
)

// allowRule is one row of the identifier allow table.
type allowRule struct {
	kind matchKind
	term string
}

// defaultAllowRules is the ordered allow table for identifier field names.
// A name passes if any row matches its lowercased form.
var defaultAllowRules = []allowRule{
	// Core identifier names.
	{matchExact, "moid"},
	{matchExact, "uuid"},
	{matchExact, "id"},
	{matchExact, "arn"},
	{matchExact, "serial"},
	{matchExact, "guid"},

	// Identifier suffixes.
	{matchSuffix, "_uuid"},
	{matchSuffix, "_id"},
	{matchSuffix, "_moid"},

	// Well-known compound identifier names.
	{matchExact, "instance_uuid"},
	{matchExact, "hw_product_uuid"},
	{matchExact, "product_uuid"},
	{matchExact, "resource_id"},
}

// defaultDenyTerms lists substrings that disqualify a field name even when
// an allow rule matches. Deny always wins over allow. The terms catch
// boolean flags and configuration knobs whose names happen to end in "_id"
// or contain identifier-like words (e.g. "vlan_id", "consolidate_needed").
var defaultDenyTerms = []string{
	"enabled",
	"needed",
	"valid",
	"available",
	"behavior",
	"override",
	"consolidat",
	"vlan_id",
}

// ruleSet evaluates field names against an allow table and deny terms.
// Both checks are case-insensitive.
type ruleSet struct {
	allow []allowRule
	deny  []string
}

// defaultRuleSet returns the built-in identifier rules.
func defaultRuleSet() ruleSet {
	return ruleSet{allow: defaultAllowRules, deny: defaultDenyTerms}
}

// isIdentifier reports whether a field name denotes a resource identifier.
func (r ruleSet) isIdentifier(name string) bool {
	lower := strings.ToLower(name)

	// Deny wins over allow, for all key spellings.
	for _, term := range r.deny {
		if strings.Contains(lower, term) {
			return false
		}
	}

	for _, rule := range r.allow {
		switch rule.kind {
		case matchExact:
			if lower == rule.term {
				return true
			}
		case matchSuffix:
			if strings.HasSuffix(lower, rule.term) {
				return true
			}
		}
	}
	return false
}
