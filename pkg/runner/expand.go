package runner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sumatoshi-tech/unusedstyles/pkg/safeconv"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/stylecheck"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/textutil"
)

// skippedDirs are never descended into while walking.
var skippedDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
}

// SkipDir reports whether a directory with the given base name is left out
// of walks: hidden directories and dependency or build output folders.
func SkipDir(name string) bool {
	return strings.HasPrefix(name, ".") || skippedDirs[name]
}

// AbsPath resolves path against the working directory and converts it to
// forward slashes, so that the checked file always has a directory to list.
func AbsPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}

	return filepath.ToSlash(abs), nil
}

// Expand turns input paths into check requests. Files are taken as given.
// Directories are walked for files whose base name marks them as style
// files; hidden directories, dependency folders, binaries and files over
// MaxFileSize are left out. Paths are made absolute and converted to forward
// slashes.
func (r *Runner) Expand(paths []string) ([]Request, error) {
	var requests []Request

	for _, input := range paths {
		root, err := filepath.Abs(input)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", input, err)
		}

		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			requests = append(requests, Request{Path: filepath.ToSlash(root)})

			continue
		}

		walked, err := r.walk(root)
		if err != nil {
			return nil, err
		}

		requests = append(requests, walked...)
	}

	return requests, nil
}

func (r *Runner) walk(root string) ([]Request, error) {
	var requests []Request

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if path != root && SkipDir(entry.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if !entry.Type().IsRegular() || !stylecheck.IsStyleFile(entry.Name()) {
			return nil
		}

		include, err := r.includeWalked(path, entry)
		if err != nil {
			return err
		}

		if include {
			requests = append(requests, Request{Path: filepath.ToSlash(path)})
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	return requests, nil
}

func (r *Runner) includeWalked(path string, entry fs.DirEntry) (bool, error) {
	if r.opts.MaxFileSize > 0 {
		info, err := entry.Info()
		if err != nil {
			return false, fmt.Errorf("stat %s: %w", path, err)
		}

		if safeconv.Int64ToUint64(info.Size()) > r.opts.MaxFileSize {
			r.logger.Debug("skipping large style file", "path", path, "size", info.Size())

			return false, nil
		}
	}

	isBinary, err := textutil.IsBinaryFile(path)
	if err != nil {
		return false, err
	}

	if isBinary {
		r.logger.Debug("skipping binary style file", "path", path)
	}

	return !isBinary, nil
}
