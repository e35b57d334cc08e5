// Package stylecheck finds style variables that a style file declares but
// its sibling implementation file never references.
//
// A style file is any path containing "style". Its sibling lives in the same
// directory under the style file's name with the first ".style" removed
// (button.style.ts pairs with button.ts). Declarations are lines shaped like
// `name: {`, and a declaration counts as used when the sibling contains
// `style.name` or `styles.name` anywhere in its text.
package stylecheck

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for I/O failures. Both are wrapped together with the
// underlying cause, so errors.Is matches either one.
var (
	// ErrDirectoryRead indicates the style file's directory could not be listed.
	ErrDirectoryRead = errors.New("read directory")
	// ErrFileRead indicates a style or sibling file could not be read.
	ErrFileRead = errors.New("read file")
	// ErrInvalidUTF8 indicates a file was read but is not valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("content is not valid UTF-8")
)

// styleMarker is the file name substring that classifies a style file.
const styleMarker = "style"

// SkipReason explains why a check produced no findings without failing.
type SkipReason string

// Skip reasons. The empty reason means the check ran.
const (
	SkipNone         SkipReason = ""
	SkipNotStyleFile SkipReason = "not_style_file"
	SkipNoSibling    SkipReason = "no_sibling"
	SkipNoText       SkipReason = "no_text"
)

// Result is the outcome of checking one style file against its sibling.
type Result struct {
	StylePath string
	Skip      SkipReason
	Sibling   Sibling

	// Variables holds every declared name in declaration order.
	Variables []string
	// Unused is the subsequence of Variables not referenced by the sibling.
	Unused []string
	// SiblingSize is the byte length of the sibling content that was scanned.
	SiblingSize int
}

// Applicable reports whether the check ran. A non-applicable result is the
// "nothing to report" outcome, not a clean one.
func (r *Result) Applicable() bool {
	return r.Skip == SkipNone
}

// IsStyleFile reports whether name designates a style file. The whole string
// is inspected, so a directory named "styles" qualifies every file below it.
// The empty name is never a style file.
func IsStyleFile(name string) bool {
	return strings.Contains(name, styleMarker)
}

func directoryError(dir string, err error) error {
	return fmt.Errorf("%w %q: %w", ErrDirectoryRead, dir, err)
}

func fileError(path string, err error) error {
	return fmt.Errorf("%w %q: %w", ErrFileRead, path, err)
}
