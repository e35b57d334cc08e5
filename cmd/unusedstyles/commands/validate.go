package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/unusedstyles/pkg/report"
)

// stdinArg selects stdin as the validate input.
const stdinArg = "-"

// NewValidateCommand creates the validate command, which checks a saved JSON
// report against the embedded report schema.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <report.json|->",
		Short: "Validate a JSON report against the report schema",
		Long: `Validate a report written by "check --format json" against the
embedded report schema.

Examples:
  unusedstyles validate report.json
  unusedstyles check -f json src | unusedstyles validate -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0])
		},
	}
}

func runValidate(cmd *cobra.Command, input string) error {
	data, label, err := readValidateInput(cmd, input)
	if err != nil {
		return err
	}

	err = report.ValidateJSON(data)
	if err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "report is valid (%s)\n", label)

	return nil
}

func readValidateInput(cmd *cobra.Command, input string) ([]byte, string, error) {
	if input == stdinArg {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}

		return data, "stdin", nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, "", fmt.Errorf("read report: %w", err)
	}

	return data, input, nil
}
