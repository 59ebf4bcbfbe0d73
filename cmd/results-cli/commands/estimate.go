package commands

import (
	"evision-results/internal/results"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(findCmd)
}

var estimateCmd = &cobra.Command{
	Use:   "estimate <path/to/results.html>",
	Short: "Estimates the degree classification from a saved results page.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := readResults(args[0])
		if err != nil {
			return err
		}
		estimate, err := results.Estimate(rs)
		if err != nil {
			return err
		}
		return writeEstimate(cmd.OutOrStdout(), estimate)
	},
}

var findCmd = &cobra.Command{
	Use:   "find <path/to/results.html> <title or module code>",
	Short: "Finds results by module title or code.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, err := readResults(args[0])
		if err != nil {
			return err
		}
		return writeMatches(cmd.OutOrStdout(), results.FindByTitle(rs, args[1]))
	},
}
