package stylecheck

import (
	"strings"
	"unicode"
)

// ExtractVariables returns the declared names in text, in order.
//
// Every line (split on "\n" only) that contains both ':' and '{' contributes
// the part before its first ':' with all whitespace removed. Duplicates and
// empty names are kept. The result is never nil.
func ExtractVariables(text string) []string {
	variables := []string{}

	for line := range strings.SplitSeq(text, "\n") {
		if !strings.Contains(line, ":") || !strings.Contains(line, "{") {
			continue
		}

		name, _, _ := strings.Cut(line, ":")
		variables = append(variables, stripSpace(name))
	}

	return variables
}

// ExtractDocument extracts variables from an optional document text. A nil
// text means no document is available and reports ok=false, which is
// distinct from a document that declares nothing.
func ExtractDocument(text *string) ([]string, bool) {
	if text == nil {
		return nil, false
	}

	return ExtractVariables(*text), true
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		// The byte order mark counts as whitespace too.
		if unicode.IsSpace(r) || r == '\uFEFF' {
			return -1
		}

		return r
	}, s)
}
