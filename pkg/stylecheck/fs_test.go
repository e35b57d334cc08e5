package stylecheck_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// memFS is an in-memory FileSystem keyed by slash-separated paths.
type memFS struct {
	files   map[string]string
	dirErrs map[string]error
	readErr map[string]error
}

func newMemFS(files map[string]string) *memFS {
	return &memFS{files: files, dirErrs: map[string]error{}, readErr: map[string]error{}}
}

func (m *memFS) ReadDir(dir string) ([]string, error) {
	if err, ok := m.dirErrs[dir]; ok {
		return nil, err
	}

	var names []string

	found := false

	for path := range m.files {
		parent, name, ok := cutLast(path)
		if !ok || parent != dir {
			continue
		}

		found = true

		names = append(names, name)
	}

	if !found {
		return nil, fs.ErrNotExist
	}

	sort.Strings(names)

	return names, nil
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	if err, ok := m.readErr[path]; ok {
		return nil, err
	}

	content, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}

	return []byte(content), nil
}

func cutLast(path string) (string, string, bool) {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return "", "", false
	}

	return path[:idx], path[idx+1:], true
}

// writeFiles creates files under a temporary directory and returns its path.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}

	return dir
}
