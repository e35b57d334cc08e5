package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/unusedstyles/pkg/safeconv"
)

// Output formats accepted by Render.
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// RenderOptions controls presentation details.
type RenderOptions struct {
	// Color enables ANSI colors in text output.
	Color bool
	// Verbose includes skipped files in text and table output.
	Verbose bool
}

// Render writes rep to w in format.
func Render(w io.Writer, rep *Report, format string, opts RenderOptions) error {
	switch format {
	case FormatText:
		return renderText(w, rep, opts)
	case FormatTable:
		return renderTable(w, rep, opts)
	case FormatJSON:
		return renderJSON(w, rep)
	case FormatYAML:
		return renderYAML(w, rep)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// StatusLine formats the unused names the way an editor status message shows them.
func StatusLine(unused []string) string {
	return "unusedStyles: " + strings.Join(unused, ",")
}

type palette struct {
	unused, clean, skipped, failed, heading *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		unused:  color.New(color.FgYellow),
		clean:   color.New(color.FgGreen),
		skipped: color.New(color.FgHiBlack),
		failed:  color.New(color.FgRed),
		heading: color.New(color.Bold),
	}

	for _, c := range []*color.Color{p.unused, p.clean, p.skipped, p.failed, p.heading} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

func renderText(w io.Writer, rep *Report, opts RenderOptions) error {
	colors := newPalette(opts.Color)

	var sb strings.Builder

	for _, entry := range rep.Entries {
		writeTextEntry(&sb, entry, colors, opts.Verbose)
	}

	fmt.Fprintf(&sb, "\n%d checked, %d skipped, %d errors, %d unused variables\n",
		rep.Summary.Checked, rep.Summary.Skipped, rep.Summary.Errors, rep.Summary.Unused)

	_, err := io.WriteString(w, sb.String())
	if err != nil {
		return fmt.Errorf("write text report: %w", err)
	}

	return nil
}

func writeTextEntry(sb *strings.Builder, entry Entry, colors palette, verbose bool) {
	switch entry.Status {
	case StatusUnused:
		sb.WriteString(colors.heading.Sprint(entry.Path))
		fmt.Fprintf(sb, " -> %s\n", entry.Sibling)
		sb.WriteString("  " + colors.unused.Sprint(StatusLine(entry.Unused)) + "\n")
	case StatusClean:
		sb.WriteString(colors.clean.Sprint("✓ "+entry.Path) + "\n")
	case StatusError:
		sb.WriteString(colors.failed.Sprintf("✗ %s: %s", entry.Path, entry.Error) + "\n")
	case StatusSkipped:
		if verbose {
			sb.WriteString(colors.skipped.Sprintf("- %s (%s)", entry.Path, entry.SkipReason) + "\n")
		}
	}
}

// RenderEntry writes a single entry as it arrives, for streaming output.
// Text and table formats print the text lines of the entry, JSON prints one
// compact object per line and YAML one document per entry.
func RenderEntry(w io.Writer, entry Entry, format string, opts RenderOptions) error {
	switch format {
	case FormatText, FormatTable:
		var sb strings.Builder

		writeTextEntry(&sb, entry, newPalette(opts.Color), opts.Verbose)

		_, err := io.WriteString(w, sb.String())
		if err != nil {
			return fmt.Errorf("write text entry: %w", err)
		}

		return nil
	case FormatJSON:
		err := json.NewEncoder(w).Encode(entry)
		if err != nil {
			return fmt.Errorf("encode json entry: %w", err)
		}

		return nil
	case FormatYAML:
		return renderYAML(w, entry)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func renderTable(w io.Writer, rep *Report, opts RenderOptions) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Style file", "Sibling", "Language", "Size", "Declared", "Unused", "Status"})

	for _, entry := range rep.Entries {
		if entry.Status == StatusSkipped && !opts.Verbose {
			continue
		}

		size := ""
		if entry.Sibling != "" {
			size = humanize.Bytes(safeconv.IntToUint64(entry.SiblingSize))
		}

		detail := strings.Join(entry.Unused, ", ")

		switch entry.Status {
		case StatusError:
			detail = entry.Error
		case StatusSkipped:
			detail = entry.SkipReason
		}

		tw.AppendRow(table.Row{
			entry.Path, entry.Sibling, entry.SiblingLanguage, size, entry.Declared, detail, string(entry.Status),
		})
	}

	tw.AppendFooter(table.Row{
		"", "", "", "", rep.Summary.Checked, rep.Summary.Unused,
		fmt.Sprintf("%d errors", rep.Summary.Errors),
	})

	tw.Render()

	return nil
}

func renderJSON(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(rep)
	if err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}

	return nil
}

func renderYAML(w io.Writer, value any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	err := enc.Encode(value)
	if err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("flush yaml report: %w", err)
	}

	return nil
}
