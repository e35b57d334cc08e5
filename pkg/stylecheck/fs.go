package stylecheck

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// FileSystem is the read-only file access a Checker needs. Paths are passed
// through exactly as the caller built them.
type FileSystem interface {
	// ReadDir returns the names of the immediate entries of dir.
	ReadDir(dir string) ([]string, error)
	// ReadFile returns the full content of path.
	ReadFile(path string) ([]byte, error)
}

// OSFileSystem is a FileSystem backed by the host operating system.
type OSFileSystem struct{}

// ReadDir lists dir without recursing.
func (OSFileSystem) ReadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}

	return names, nil
}

// ReadFile reads path into memory.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}

	return data, nil
}

// readText reads path through fsys and requires UTF-8 content.
func readText(fsys FileSystem, path string) (string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", fileError(path, err)
	}

	if !utf8.Valid(data) {
		return "", fileError(path, ErrInvalidUTF8)
	}

	return string(data), nil
}
