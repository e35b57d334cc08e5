// Package report turns check results into a serializable report and renders
// it as text, a table, JSON or YAML.
package report

import (
	"path"

	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/unusedstyles/pkg/stylecheck"
)

// Status is the outcome of one style file check.
type Status string

// Entry statuses.
const (
	StatusUnused  Status = "unused"
	StatusClean   Status = "clean"
	StatusSkipped Status = "skipped"
	StatusError   Status = "error"
)

// Entry is the reported outcome for one style file.
type Entry struct {
	Path            string   `json:"path"                       yaml:"path"`
	Status          Status   `json:"status"                     yaml:"status"`
	SkipReason      string   `json:"skip_reason,omitempty"      yaml:"skip_reason,omitempty"`
	Sibling         string   `json:"sibling,omitempty"          yaml:"sibling,omitempty"`
	SiblingLanguage string   `json:"sibling_language,omitempty" yaml:"sibling_language,omitempty"`
	SiblingSize     int      `json:"sibling_size"               yaml:"sibling_size"`
	Declared        int      `json:"declared"                   yaml:"declared"`
	Unused          []string `json:"unused"                     yaml:"unused"`
	Error           string   `json:"error,omitempty"            yaml:"error,omitempty"`
}

// Summary aggregates a report.
type Summary struct {
	Files   int `json:"files"   yaml:"files"`
	Checked int `json:"checked" yaml:"checked"`
	Skipped int `json:"skipped" yaml:"skipped"`
	Errors  int `json:"errors"  yaml:"errors"`
	Unused  int `json:"unused"  yaml:"unused"`
}

// Report is the full outcome of a run.
type Report struct {
	Entries []Entry `json:"entries" yaml:"entries"`
	Summary Summary `json:"summary" yaml:"summary"`
}

// New builds a report from entries, in the given order.
func New(entries []Entry) *Report {
	rep := &Report{Entries: entries}
	if rep.Entries == nil {
		rep.Entries = []Entry{}
	}

	for _, entry := range rep.Entries {
		rep.Summary.Files++

		switch entry.Status {
		case StatusSkipped:
			rep.Summary.Skipped++
		case StatusError:
			rep.Summary.Errors++
		case StatusUnused, StatusClean:
			rep.Summary.Checked++
			rep.Summary.Unused += len(entry.Unused)
		}
	}

	return rep
}

// HasUnused reports whether any entry has unused variables.
func (r *Report) HasUnused() bool {
	return r.Summary.Unused > 0
}

// HasErrors reports whether any check failed.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// FromResult converts a checker result into an entry.
func FromResult(result *stylecheck.Result) Entry {
	entry := Entry{
		Path:   result.StylePath,
		Unused: []string{},
	}

	if !result.Applicable() {
		entry.Status = StatusSkipped
		entry.SkipReason = string(result.Skip)

		return entry
	}

	entry.Sibling = result.Sibling.Path
	entry.SiblingLanguage = enry.GetLanguage(path.Base(result.Sibling.Path), nil)
	entry.SiblingSize = result.SiblingSize
	entry.Declared = len(result.Variables)
	entry.Unused = append(entry.Unused, result.Unused...)

	entry.Status = StatusClean
	if len(entry.Unused) > 0 {
		entry.Status = StatusUnused
	}

	return entry
}

// FromError converts a failed check into an entry.
func FromError(stylePath string, err error) Entry {
	return Entry{
		Path:   stylePath,
		Status: StatusError,
		Unused: []string{},
		Error:  err.Error(),
	}
}
