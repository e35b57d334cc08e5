package stylecheck_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/unusedstyles/pkg/stylecheck"
)

func TestResolver_Found(t *testing.T) {
	t.Parallel()

	fsys := newMemFS(map[string]string{
		"/app/button.style.ts": "",
		"/app/button.ts":       "",
	})

	sibling, err := stylecheck.Resolver{FS: fsys}.Resolve("/app/button.style.ts")
	require.NoError(t, err)

	assert.True(t, sibling.Exists)
	assert.Equal(t, "/app", sibling.Dir)
	assert.Equal(t, "button.ts", sibling.Name)
	assert.Equal(t, "/app/button.ts", sibling.Path)
}

func TestResolver_Miss(t *testing.T) {
	t.Parallel()

	fsys := newMemFS(map[string]string{
		"/app/a.ts":       "",
		"/app/b.style.ts": "",
	})

	sibling, err := stylecheck.Resolver{FS: fsys}.Resolve("/app/b.style.ts")
	require.NoError(t, err)

	assert.False(t, sibling.Exists)
	assert.Equal(t, "b.ts", sibling.Name)
	assert.Empty(t, sibling.Path)
}

func TestResolver_RemovesFirstSuffixOnly(t *testing.T) {
	t.Parallel()

	fsys := newMemFS(map[string]string{
		"/app/x.style.style.ts": "",
		"/app/x.style.ts":       "",
	})

	sibling, err := stylecheck.Resolver{FS: fsys}.Resolve("/app/x.style.style.ts")
	require.NoError(t, err)

	assert.True(t, sibling.Exists)
	assert.Equal(t, "x.style.ts", sibling.Name)
}

func TestResolver_NoSuffixPairsWithItself(t *testing.T) {
	t.Parallel()

	fsys := newMemFS(map[string]string{"/styles/index.ts": ""})

	sibling, err := stylecheck.Resolver{FS: fsys}.Resolve("/styles/index.ts")
	require.NoError(t, err)

	assert.True(t, sibling.Exists)
	assert.Equal(t, "/styles/index.ts", sibling.Path)
}

func TestResolver_DirectoryError(t *testing.T) {
	t.Parallel()

	fsys := newMemFS(map[string]string{})
	cause := errors.New("permission denied")
	fsys.dirErrs["/locked"] = cause

	_, err := stylecheck.Resolver{FS: fsys}.Resolve("/locked/a.style.ts")
	require.Error(t, err)
	require.ErrorIs(t, err, stylecheck.ErrDirectoryRead)
	assert.ErrorIs(t, err, cause)
}

func TestResolver_BareFileNameHasEmptyDirectory(t *testing.T) {
	t.Parallel()

	_, err := stylecheck.Resolver{FS: stylecheck.OSFileSystem{}}.Resolve("a.style.ts")
	require.ErrorIs(t, err, stylecheck.ErrDirectoryRead)
}

func TestResolver_CustomSeparator(t *testing.T) {
	t.Parallel()

	// Backslash paths are split on the configured separator only.
	listing := &staticDir{dir: `C:\app`, names: []string{"a.ts", "a.style.ts"}}

	sibling, err := stylecheck.Resolver{FS: listing, Separator: `\`}.Resolve(`C:\app\a.style.ts`)
	require.NoError(t, err)

	assert.True(t, sibling.Exists)
	assert.Equal(t, `C:\app\a.ts`, sibling.Path)
}

func TestResolver_OSFileSystem(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"card.style.ts": "", "card.ts": ""})

	sibling, err := stylecheck.Resolver{FS: stylecheck.OSFileSystem{}}.Resolve(dir + "/card.style.ts")
	require.NoError(t, err)

	assert.True(t, sibling.Exists)
	assert.Equal(t, dir+"/card.ts", sibling.Path)
}

func TestResolver_MissingDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := stylecheck.Resolver{FS: stylecheck.OSFileSystem{}}.Resolve(dir + "/gone/a.style.ts")
	require.ErrorIs(t, err, stylecheck.ErrDirectoryRead)
}

// staticDir lists one fixed directory and has no file contents.
type staticDir struct {
	dir   string
	names []string
}

func (s *staticDir) ReadDir(dir string) ([]string, error) {
	if dir != s.dir {
		return nil, errors.New("unknown directory")
	}

	return s.names, nil
}

func (s *staticDir) ReadFile(string) ([]byte, error) {
	return nil, errors.New("no content")
}

func TestResolver_DriveRootKeepsBareDrive(t *testing.T) {
	t.Parallel()

	fsys := newMemFS(map[string]string{
		"C:/x.style.ts": "",
		"C:/x.ts":       "",
	})

	sibling, err := stylecheck.Resolver{FS: fsys}.Resolve("C:/x.style.ts")
	require.NoError(t, err)

	assert.Equal(t, "C:", sibling.Dir)
	assert.Equal(t, "C:/x.ts", sibling.Path)
}
