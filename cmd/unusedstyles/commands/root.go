// Package commands implements CLI command handlers for unusedstyles.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/unusedstyles/pkg/config"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/observability"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/stylecheck"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/version"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	verbose    bool
	quiet      bool
	logJSON    bool
}

// NewRootCommand creates the unusedstyles root command with all subcommands.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "unusedstyles",
		Short: "Find style variables that their sibling source file never uses",
		Long: `unusedstyles reads style files (any file whose path contains "style"),
collects the variables they declare as "name: {" and reports the ones the
sibling file never references as style.<name> or styles.<name>.

The sibling of "card.style.ts" is "card.ts" in the same directory.

Commands:
  check     Check style files and directories once
  watch     Re-check style files whenever they change
  mcp       Serve the check as an MCP tool over stdio
  validate  Validate a JSON report against the report schema
  version   Show version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default: .unusedstyles.yaml in CWD or $HOME)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "verbose output and debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().BoolVar(&flags.logJSON, "log-json", false, "emit logs as JSON")

	rootCmd.AddCommand(NewCheckCommand(flags))
	rootCmd.AddCommand(NewWatchCommand(flags))
	rootCmd.AddCommand(NewMCPCommand(flags))
	rootCmd.AddCommand(NewValidateCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "unusedstyles %s\n", version.String())
		},
	}
}

// loadConfig reads the config file and applies the global flag overrides.
func (g *globalFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(g.configPath)
	if err != nil {
		return nil, err
	}

	if g.logJSON {
		cfg.Logging.JSON = true
	}

	return cfg, nil
}

// observabilityConfig maps the loaded config and global flags onto an
// observability config for mode.
func (g *globalFlags) observabilityConfig(cfg *config.Config, mode observability.AppMode) (observability.Config, error) {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Mode = mode
	obsCfg.Environment = cfg.Telemetry.Environment
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.LogJSON = cfg.Logging.JSON

	if obsCfg.OTLPEndpoint == "" {
		obsCfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	}

	if os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true" {
		obsCfg.OTLPInsecure = true
	}

	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))

	level, err := observability.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return observability.Config{}, err
	}

	switch {
	case g.verbose:
		level = slog.LevelDebug
	case g.quiet:
		level = slog.LevelError
	}

	obsCfg.LogLevel = level

	return obsCfg, nil
}

// shutdownProviders flushes telemetry, logging instead of failing on error.
func shutdownProviders(providers observability.Providers) {
	err := providers.Shutdown(context.Background())
	if err != nil {
		providers.Logger.Warn("observability shutdown failed", "error", err)
	}
}

// messageObserver prints checker messages to w. Checks run concurrently, so
// writes are serialized.
func messageObserver(w io.Writer) stylecheck.Observer {
	var mu sync.Mutex

	return func(event stylecheck.Event) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Fprintf(w, "%s: %s\n", event.Path, event.Message)
	}
}
