package commands

import (
	"fmt"
	"os"

	"evision-results/internal/results"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

func readResults(path string) ([]results.Result, error) {
	page, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results page: %w", err)
	}
	return results.Extract(string(page))
}

var parseCmd = &cobra.Command{
	Use:   "parse <path/to/results.html>",
	Short: "Extracts the results from a saved results page.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := readResults(args[0])
		if err != nil {
			return err
		}
		return writeResults(cmd.OutOrStdout(), rs)
	},
}
