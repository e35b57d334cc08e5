package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/unusedstyles/pkg/version"
)

func TestString(t *testing.T) {
	// Mutates package globals; not parallel.
	oldVersion, oldCommit, oldDate := version.Version, version.Commit, version.Date

	t.Cleanup(func() {
		version.Version, version.Commit, version.Date = oldVersion, oldCommit, oldDate
	})

	version.Version, version.Commit, version.Date = "v1.2.3", "abc123", "2026-01-02"

	assert.Equal(t, "v1.2.3 (commit: abc123, built: 2026-01-02)", version.String())
}

func TestInitBinaryVersion_KeepsLinkedValues(t *testing.T) {
	oldVersion, oldCommit := version.Version, version.Commit

	t.Cleanup(func() {
		version.Version, version.Commit = oldVersion, oldCommit
	})

	version.Version, version.Commit = "v9.9.9", "deadbeef"

	version.InitBinaryVersion()

	assert.Equal(t, "v9.9.9", version.Version)
	assert.Equal(t, "deadbeef", version.Commit)
}
