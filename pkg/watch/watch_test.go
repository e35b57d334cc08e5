package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/unusedstyles/pkg/report"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/runner"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/watch"
)

const waitTimeout = 5 * time.Second

type harness struct {
	root    string
	entries chan report.Entry
	errs    chan error
	cancel  context.CancelFunc
}

func startWatcher(t *testing.T, debounce time.Duration, files map[string]string) *harness {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		writeFile(t, filepath.Join(root, name), content)
	}

	h := &harness{
		root:    root,
		entries: make(chan report.Entry, 16),
		errs:    make(chan error, 1),
	}

	r := runner.New(runner.Deps{}, runner.Options{Source: runner.SourceWatch})
	w := watch.New(r, func(e report.Entry) {
		select {
		case h.entries <- e:
		default:
		}
	}, watch.Options{Debounce: debounce})

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel

	go func() { h.errs <- w.Run(ctx, []string{root}) }()

	t.Cleanup(func() {
		cancel()
		<-h.errs
	})

	select {
	case <-w.Ready():
	case err := <-h.errs:
		h.errs <- err
		t.Fatalf("watcher stopped early: %v", err)
	case <-time.After(waitTimeout):
		t.Fatal("watcher never became ready")
	}

	return h
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func (h *harness) next(t *testing.T) report.Entry {
	t.Helper()

	select {
	case entry := <-h.entries:
		return entry
	case <-time.After(waitTimeout):
		t.Fatal("no check ran")

		return report.Entry{}
	}
}

func TestStylePathFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sibling string
		want    string
	}{
		{"a/card.ts", "a/card.style.ts"},
		{"card.tsx", "card.style.tsx"},
		{"a/b.c.ts", "a/b.style.c.ts"},
		{"a/Makefile", "a/Makefile.style"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, watch.StylePathFor(tt.sibling), tt.sibling)
	}
}

func TestRun_NoRoots(t *testing.T) {
	t.Parallel()

	w := watch.New(runner.New(runner.Deps{}, runner.Options{}), nil, watch.Options{})
	require.ErrorIs(t, w.Run(context.Background(), nil), watch.ErrNoRoots)
}

func TestRun_MissingRoot(t *testing.T) {
	t.Parallel()

	w := watch.New(runner.New(runner.Deps{}, runner.Options{}), nil, watch.Options{})
	require.Error(t, w.Run(context.Background(), []string{filepath.Join(t.TempDir(), "gone")}))
}

func TestRun_StyleWriteTriggersCheck(t *testing.T) {
	t.Parallel()

	h := startWatcher(t, 20*time.Millisecond, map[string]string{
		"card.style.ts": "bg: {}\n",
		"card.ts":       "styles.bg",
	})

	writeFile(t, filepath.Join(h.root, "card.style.ts"), "bg: {}\nfg: {}\n")

	entry := h.next(t)
	assert.Equal(t, filepath.ToSlash(filepath.Join(h.root, "card.style.ts")), entry.Path)
	assert.Equal(t, report.StatusUnused, entry.Status)
	assert.Equal(t, []string{"fg"}, entry.Unused)
}

func TestRun_RelativeRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "card.style.ts"), "bg: {}\n")
	writeFile(t, filepath.Join(root, "card.ts"), "")
	t.Chdir(root)

	entries := make(chan report.Entry, 16)
	w := watch.New(runner.New(runner.Deps{}, runner.Options{}), func(e report.Entry) {
		select {
		case entries <- e:
		default:
		}
	}, watch.Options{Debounce: 20 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)

	go func() { errs <- w.Run(ctx, []string{"."}) }()

	t.Cleanup(func() {
		cancel()
		<-errs
	})

	select {
	case <-w.Ready():
	case <-time.After(waitTimeout):
		t.Fatal("watcher never became ready")
	}

	writeFile(t, "card.style.ts", "bg: {}\nfg: {}\n")

	select {
	case entry := <-entries:
		assert.True(t, filepath.IsAbs(filepath.FromSlash(entry.Path)), entry.Path)
		assert.Equal(t, report.StatusUnused, entry.Status)
		assert.Equal(t, []string{"bg", "fg"}, entry.Unused)
	case <-time.After(waitTimeout):
		t.Fatal("no check ran")
	}
}

func TestRun_SiblingWriteRechecksStyle(t *testing.T) {
	t.Parallel()

	h := startWatcher(t, 20*time.Millisecond, map[string]string{
		"card.style.ts": "bg: {}\n",
		"card.ts":       "",
	})

	writeFile(t, filepath.Join(h.root, "card.ts"), "styles.bg")

	entry := h.next(t)
	assert.Equal(t, filepath.ToSlash(filepath.Join(h.root, "card.style.ts")), entry.Path)
	assert.Equal(t, report.StatusClean, entry.Status)
}

func TestRun_NewDirectoryIsWatched(t *testing.T) {
	t.Parallel()

	h := startWatcher(t, 20*time.Millisecond, nil)

	dir := filepath.Join(h.root, "nested")
	require.NoError(t, os.Mkdir(dir, 0o750))

	// The directory is added asynchronously; keep touching the file until a
	// check for it shows up.
	stylePath := filepath.Join(dir, "list.style.ts")
	writeFile(t, filepath.Join(dir, "list.ts"), "")

	deadline := time.After(waitTimeout)

	for {
		writeFile(t, stylePath, "row: {}\n")

		select {
		case entry := <-h.entries:
			if entry.Path != filepath.ToSlash(stylePath) {
				continue
			}

			assert.Equal(t, []string{"row"}, entry.Unused)

			return
		case <-time.After(100 * time.Millisecond):
		case <-deadline:
			t.Fatal("new directory never watched")
		}
	}
}

func TestRun_DebounceCollapsesWrites(t *testing.T) {
	t.Parallel()

	h := startWatcher(t, 200*time.Millisecond, map[string]string{
		"card.style.ts": "bg: {}\n",
		"card.ts":       "",
	})

	stylePath := filepath.Join(h.root, "card.style.ts")
	for range 3 {
		writeFile(t, stylePath, "bg: {}\n")
	}

	h.next(t)

	select {
	case entry := <-h.entries:
		t.Fatalf("unexpected second check: %+v", entry)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestRun_CancelStops(t *testing.T) {
	t.Parallel()

	h := startWatcher(t, 0, nil)
	h.cancel()

	select {
	case err := <-h.errs:
		require.NoError(t, err)
		h.errs <- err
	case <-time.After(waitTimeout):
		t.Fatal("watcher did not stop")
	}
}
