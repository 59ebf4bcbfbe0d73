package commands

import (
	"context"
	"fmt"
	"os"

	"evision-results/internal/components/telemetry"

	"github.com/spf13/cobra"
)

var (
	verbose      *bool
	outputFormat *string
)

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print debug logs.")
	outputFormat = rootCmd.PersistentFlags().String("format", "table", "Output format, either table or json.")
}

var rootCmd = &cobra.Command{
	Use:           "results-cli",
	Short:         "results-cli downloads and classifies your results from e:Vision.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(*verbose)
		switch *outputFormat {
		case "table", "json":
			return nil
		}
		return fmt.Errorf("unknown output format %q", *outputFormat)
	},
}

// ExecuteContext runs the cli and returns the process exit code.
func ExecuteContext(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
