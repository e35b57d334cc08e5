package stylecheck

import "strings"

// accessPrefixes are the receivers through which a sibling references a style.
var accessPrefixes = []string{"style.", "styles."}

// IsUsed reports whether text references variable through a known receiver.
//
// This is a plain substring test: "style.widthMax" counts as a use of
// "width", and matches inside comments or string literals count as well.
func IsUsed(variable, text string) bool {
	for _, prefix := range accessPrefixes {
		if strings.Contains(text, prefix+variable) {
			return true
		}
	}

	return false
}

// FindUnused returns the variables that text never references, preserving
// order and duplicates. The result is never nil.
func FindUnused(variables []string, text string) []string {
	unused := []string{}

	for _, variable := range variables {
		if !IsUsed(variable, text) {
			unused = append(unused, variable)
		}
	}

	return unused
}
