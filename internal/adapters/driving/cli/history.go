package cli

import (
	"io"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <target>",
	Short: "Show previous reports for a target",
	Long: `Lists the reports kept for a target, oldest first. The number of reports
retained per target is set by pipeline.history_limit.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}
	target := args[0]
	reports, err := svc.Intelligence.History(cmd.Context(), target)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), reports, func(w io.Writer) { renderHistory(w, target, reports) })
}
