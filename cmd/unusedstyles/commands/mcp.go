package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/unusedstyles/pkg/mcp"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/observability"
	"github.com/Sumatoshi-tech/unusedstyles/pkg/runner"
)

// NewMCPCommand creates the MCP server command.
func NewMCPCommand(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The server exposes one tool:
  - check_unused_styles: report style variables the sibling file never uses
    (input: path, optional in-memory text)

Logs are written to stderr as JSON so stdout stays reserved for the protocol.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}

			cfg.Logging.JSON = true

			obsCfg, err := global.observabilityConfig(cfg, observability.ModeMCP)
			if err != nil {
				return err
			}

			providers, err := observability.Init(obsCfg)
			if err != nil {
				return fmt.Errorf("init observability: %w", err)
			}
			defer shutdownProviders(providers)

			// Checker messages are plain text; keep stderr JSON-only.
			noMessages := *global
			noMessages.verbose = false

			r, err := newRunner(cmd, &noMessages, cfg, providers, runner.SourceMCP)
			if err != nil {
				return err
			}

			srv := mcp.NewServer(mcp.ServerDeps{
				Logger: providers.Logger,
				Tracer: providers.Tracer,
				Runner: r,
			})

			return srv.Run(cmd.Context())
		},
	}
}
