package docs

import (
	"regexp"
	"strings"
)

// fragmentPatterns are the supported quoting conventions for the RETURN
// assignment, in fixed priority order: triple-double-quote,
// triple-single-quote, single-double-quote, single-single-quote, each with
// an optional raw-string prefix. The first matching convention wins.
//
// (?s) lets the body span lines; the inner group is non-greedy so the
// block ends at the first closing delimiter.
var fragmentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)RETURN\s*=\s*r?"""(.*?)"""`),
	regexp.MustCompile(`(?s)RETURN\s*=\s*r?'''(.*?)'''`),
	regexp.MustCompile(`(?s)RETURN\s*=\s*r?"(.*?)"`),
	regexp.MustCompile(`(?s)RETURN\s*=\s*r?'(.*?)'`),
}

// Extract locates the RETURN documentation block in a module source text
// and returns its inner text with surrounding whitespace trimmed.
//
// Absence is a signal, not a failure: Extract returns ErrFragmentNotFound
// when no convention matches, and callers must treat that as routing to
// the fallback analysis path, never as fatal.
func Extract(source string) (string, error) {
	for _, p := range fragmentPatterns {
		if m := p.FindStringSubmatch(source); m != nil {
			return strings.TrimSpace(m[1]), nil
		}
	}
	return "", ErrFragmentNotFound
}
