package analyze

import (
	"github.com/queryscan/queryscan/internal/model"
)

// maxSampleDepth bounds recursion into nested mappings on the sample side.
// Deep sample payloads accumulate heuristic noise; two levels cover the
// representative container-then-fields shape without chasing it.
const maxSampleDepth = 2

// Classifier enumerates identifier candidates from a schema tree.
//
// Declared structure and sample payloads get different treatment: declared
// keys are schema fields by definition, while sample keys must first pass
// the instance-key heuristic before the identifier rules apply.
type Classifier struct {
	rules   ruleSet
	profile SampleKeyProfile
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithSampleKeyProfile replaces the default instance-key heuristic profile.
func WithSampleKeyProfile(profile SampleKeyProfile) ClassifierOption {
	return func(c *Classifier) {
		c.profile = profile
	}
}

// WithExtraDenyTerms appends additional deny substrings to the built-in
// deny table. Extra terms participate exactly like the defaults: deny wins
// over allow, case-insensitively.
func WithExtraDenyTerms(terms ...string) ClassifierOption {
	return func(c *Classifier) {
		deny := make([]string, 0, len(c.rules.deny)+len(terms))
		deny = append(deny, c.rules.deny...)
		deny = append(deny, terms...)
		c.rules.deny = deny
	}
}

// NewClassifier creates a Classifier with the built-in rule tables.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		rules:   defaultRuleSet(),
		profile: DefaultSampleKeyProfile(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect walks the whole schema tree and returns identifier candidates in
// first-encounter order. The result is a fresh slice on every call; the
// walk reads the tree and nothing else.
func (c *Classifier) Collect(nodes []*model.Node) []model.Identifier {
	return c.collectDeclared(nodes, "")
}

// collectDeclared walks declared structure. The path accumulates true field
// ancestors only; sample walks never contribute to it.
func (c *Classifier) collectDeclared(nodes []*model.Node, path string) []model.Identifier {
	ids := make([]model.Identifier, 0)

	for _, n := range nodes {
		current := n.Key
		if path != "" {
			current = path + "." + n.Key
		}

		if c.rules.isIdentifier(n.Key) {
			ids = append(ids, model.Identifier{Path: current, Name: n.Key})
		}

		if !n.Mapping {
			continue
		}

		// Declared child structure recurses with the same rules.
		if len(n.Contains) > 0 {
			ids = append(ids, c.collectDeclared(n.Contains, current)...)
		}

		// Embedded example payloads get the sample-side walk.
		if n.Sample != nil {
			ids = append(ids, c.collectSample(n.Sample, 0)...)
		}

		// A dict-typed entry's remaining properties are fields too.
		if n.DeclaredType == "dict" && len(n.Extra) > 0 {
			ids = append(ids, c.collectDeclared(n.Extra, current)...)
		}
	}

	return ids
}

// collectSample walks an example payload. Keys matching the instance-key
// profile are data instances, not schema fields: the walk recurses into
// their mapping values without recording the key anywhere. Remaining keys
// are candidate fields and are emitted with the bare field name as the
// path, since sample keys carry no schema ancestry.
func (c *Classifier) collectSample(v *model.Value, depth int) []model.Identifier {
	ids := make([]model.Identifier, 0)
	if v == nil {
		return ids
	}

	switch v.Kind {
	case model.ValueMapping:
		for _, e := range v.Entries {
			// Instance keys contribute nothing to any path, but their
			// recursion still counts a level. The traversal itself is not
			// depth-guarded, so stacked instance keys stay reachable while
			// field mappings beneath them hit the bound sooner.
			if c.profile.LooksLikeInstanceKey(e.Key) && e.Value.IsMapping() {
				ids = append(ids, c.collectSample(e.Value, depth+1)...)
				continue
			}

			if c.rules.isIdentifier(e.Key) {
				ids = append(ids, model.Identifier{Path: e.Key, Name: e.Key})
			}

			if e.Value.IsMapping() && depth < maxSampleDepth {
				ids = append(ids, c.collectSample(e.Value, depth+1)...)
			}
		}
	case model.ValueSequence:
		// Representative-sample convention: only the first element of a
		// list is inspected.
		if len(v.Items) > 0 && v.Items[0].IsMapping() {
			ids = append(ids, c.collectSample(v.Items[0], depth)...)
		}
	case model.ValueScalar:
		// Leaves carry no field names.
	}

	return ids
}

// dedupeByName removes identifiers whose name was already seen, preserving
// first-encounter order. Analyses always carry deduplicated identifiers.
func dedupeByName(ids []model.Identifier) []model.Identifier {
	seen := make(map[string]bool, len(ids))
	out := make([]model.Identifier, 0, len(ids))
	for _, id := range ids {
		if seen[id.Name] {
			continue
		}
		seen[id.Name] = true
		out = append(out, id)
	}
	return out
}
