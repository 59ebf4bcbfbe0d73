package commands

import (
	"evision-results/internal/grades"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(bandsCmd)
}

var gradeCmd = &cobra.Command{
	Use:   "grade <grade>...",
	Short: "Classifies one or more grades.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := make([]grades.Grade, len(args))
		for i, token := range args {
			g, err := grades.Classify(token)
			if err != nil {
				return err
			}
			out[i] = g
		}
		return writeGrades(cmd.OutOrStdout(), out)
	},
}

var bandsCmd = &cobra.Command{
	Use:   "bands",
	Short: "Prints every grade band.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeGrades(cmd.OutOrStdout(), grades.Bands())
	},
}
