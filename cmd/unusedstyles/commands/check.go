package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/unusedstyles/pkg/config"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/observability"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/report"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/runner"
)

var (
	// ErrUnusedFound is returned by check when --fail-on-unused is set and
	// unused variables were reported.
	ErrUnusedFound = errors.New("unused style variables found")
	// ErrCheckFailed indicates at least one style file could not be checked.
	ErrCheckFailed = errors.New("style checks failed")
	// ErrStdinNeedsOnePath is returned when --stdin is combined with zero or
	// several paths.
	ErrStdinNeedsOnePath = errors.New("--stdin requires exactly one style file path")
)

// CheckCommand holds flags for the check command.
type CheckCommand struct {
	global *globalFlags

	format       string
	color        string
	workers      int
	failOnUnused bool
	maxFileSize  string
	stdin        bool
}

// NewCheckCommand creates the check command.
func NewCheckCommand(global *globalFlags) *cobra.Command {
	cc := &CheckCommand{global: global}

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Check style files and directories once",
		Long: `Check style files for variables their sibling never uses.

Files are checked as given. Directories are walked for files whose name
contains "style"; hidden directories, node_modules, vendor, dist, build,
binary files and files over check.max_file_size are skipped.

With --stdin the content of the single style file path is read from
standard input instead of disk, which lets editors check unsaved buffers.`,
		RunE: cc.run,
	}

	cmd.Flags().StringVarP(&cc.format, "format", "f", "", "output format: text, table, json, yaml (default from config)")
	cmd.Flags().StringVar(&cc.color, "color", "", "color mode: auto, always, never (default from config)")
	cmd.Flags().IntVar(&cc.workers, "workers", 0, "concurrent checks (default from config)")
	cmd.Flags().BoolVar(&cc.failOnUnused, "fail-on-unused", false, "exit with status 2 when unused variables are found")
	cmd.Flags().StringVar(&cc.maxFileSize, "max-file-size", "", "skip walked style files larger than this (e.g. 4MB, 0 = no limit)")
	cmd.Flags().BoolVar(&cc.stdin, "stdin", false, "read the style file content from standard input")

	return cmd
}

// applyFlags overrides config values with explicitly set flags.
func (cc *CheckCommand) applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = cc.format
	}

	if cmd.Flags().Changed("color") {
		cfg.Output.Color = cc.color
	}

	if cmd.Flags().Changed("workers") {
		cfg.Check.Workers = cc.workers
	}

	if cmd.Flags().Changed("fail-on-unused") {
		cfg.Check.FailOnUnused = cc.failOnUnused
	}

	if cmd.Flags().Changed("max-file-size") {
		cfg.Check.MaxFileSize = cc.maxFileSize
	}

	err := cfg.Validate()
	if err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	return nil
}

func (cc *CheckCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := cc.global.loadConfig()
	if err != nil {
		return err
	}

	err = cc.applyFlags(cmd, cfg)
	if err != nil {
		return err
	}

	if cc.stdin && len(args) != 1 {
		return ErrStdinNeedsOnePath
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	obsCfg, err := cc.global.observabilityConfig(cfg, observability.ModeCLI)
	if err != nil {
		return err
	}

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}
	defer shutdownProviders(providers)

	r, err := newRunner(cmd, cc.global, cfg, providers, runner.SourceCLI)
	if err != nil {
		return err
	}

	var rep *report.Report

	if cc.stdin {
		text, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("read stdin: %w", readErr)
		}

		path, absErr := runner.AbsPath(args[0])
		if absErr != nil {
			return absErr
		}

		content := string(text)
		rep = r.CheckAll(cmd.Context(), []runner.Request{{Path: path, Text: &content}})
	} else {
		rep, err = r.Run(cmd.Context(), args)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()

	err = report.Render(out, rep, cfg.Output.Format, report.RenderOptions{
		Color:   colorEnabled(cfg.Output.Color, out),
		Verbose: cc.global.verbose,
	})
	if err != nil {
		return err
	}

	if rep.HasErrors() {
		return fmt.Errorf("%w: %d of %d files", ErrCheckFailed, rep.Summary.Errors, rep.Summary.Files)
	}

	if cfg.Check.FailOnUnused && rep.HasUnused() {
		return ErrUnusedFound
	}

	return nil
}

// newRunner builds a runner wired to the providers. In verbose mode checker
// messages go to stderr.
func newRunner(
	cmd *cobra.Command,
	global *globalFlags,
	cfg *config.Config,
	providers observability.Providers,
	source string,
) (*runner.Runner, error) {
	metrics, err := observability.NewCheckMetrics(providers.Meter)
	if err != nil {
		return nil, err
	}

	maxFileSize, err := cfg.Check.MaxFileSizeBytes()
	if err != nil {
		return nil, err
	}

	deps := runner.Deps{
		Logger:  providers.Logger,
		Tracer:  providers.Tracer,
		Metrics: metrics,
	}

	if global.verbose {
		deps.Observer = messageObserver(cmd.ErrOrStderr())
	}

	return runner.New(deps, runner.Options{
		Workers:     cfg.Check.Workers,
		MaxFileSize: maxFileSize,
		Source:      source,
	}), nil
}

// colorEnabled resolves a color mode. Auto colors only a terminal stdout.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return w == io.Writer(os.Stdout) && !color.NoColor
	}
}
