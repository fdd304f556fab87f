package cli

import (
	"io"

	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <target>",
	Short: "Compare a comprehensive run with manual research",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}
	report, err := svc.Intelligence.CompareBaseline(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), report, func(w io.Writer) { renderComparison(w, report) })
}
