package stylecheck

import (
	"slices"
	"strings"
)

// DefaultSeparator is the path separator used when a Resolver has none set.
const DefaultSeparator = "/"

// styleSuffix is removed once from a style file name to derive its sibling.
const styleSuffix = ".style"

// Sibling describes the implementation file paired with a style file.
type Sibling struct {
	// Dir is the directory part of the style path.
	Dir string
	// Name is the candidate sibling file name.
	Name string
	// Path is Dir and Name joined with the separator. Empty unless Exists.
	Path string
	// Exists reports whether Name was present in the directory listing.
	Exists bool
}

// Resolver locates the sibling of a style file by listing its directory.
//
// The path is split on Separator only; mixed separators are not normalized.
// A path without any separator yields the empty directory, which the OS file
// system cannot list. On Windows a file at a drive root such as
// "C:/x.style.ts" yields the directory "C:", which names the drive's current
// directory rather than its root.
type Resolver struct {
	FS        FileSystem
	Separator string
}

// Resolve derives the sibling name for path and checks it against a snapshot
// of the directory listing. Listing failures wrap ErrDirectoryRead.
func (r Resolver) Resolve(path string) (Sibling, error) {
	sep := r.Separator
	if sep == "" {
		sep = DefaultSeparator
	}

	segments := strings.Split(path, sep)
	fileName := segments[len(segments)-1]

	sibling := Sibling{
		Dir:  strings.Join(segments[:len(segments)-1], sep),
		Name: strings.Replace(fileName, styleSuffix, "", 1),
	}

	entries, err := r.FS.ReadDir(sibling.Dir)
	if err != nil {
		return Sibling{}, directoryError(sibling.Dir, err)
	}

	if !slices.Contains(entries, sibling.Name) {
		return sibling, nil
	}

	sibling.Exists = true
	sibling.Path = sibling.Dir + sep + sibling.Name

	return sibling, nil
}
