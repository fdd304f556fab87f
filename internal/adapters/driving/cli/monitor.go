package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/logger"
)

var (
	monitorAdd    []string
	monitorRemove []string
	monitorList   bool
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Re-analyse watched targets on a schedule",
	Long: `Without flags, runs the scheduler in the foreground and re-analyses every
watched target each time the target-monitor task is due. Changes to the
watched targets in the config file are picked up without a restart.

Examples:
  foresight monitor --add acme.com:competitive_analysis
  foresight monitor --remove acme.com
  foresight monitor --list
  foresight monitor`,
	Args: cobra.NoArgs,
	RunE: runMonitor,
}

func init() {
	flags := monitorCmd.Flags()
	flags.StringSliceVar(&monitorAdd, "add", nil, "watch target[:objective]")
	flags.StringSliceVar(&monitorRemove, "remove", nil, "stop watching a target")
	flags.BoolVar(&monitorList, "list", false, "list watched targets")
	rootCmd.AddCommand(monitorCmd)
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}

	if len(monitorAdd) > 0 || len(monitorRemove) > 0 || monitorList {
		if svc.Settings == nil {
			return errors.New("settings not available")
		}
		targets := svc.Settings.Scheduler().Targets
		if len(monitorAdd) > 0 || len(monitorRemove) > 0 {
			targets, err = editTargets(targets, monitorAdd, monitorRemove)
			if err != nil {
				return err
			}
			if err := svc.Settings.SetWatchTargets(targets); err != nil {
				return err
			}
		}
		if targets == nil {
			targets = []domain.WatchTarget{}
		}
		return writeOutput(cmd.OutOrStdout(), targets, func(w io.Writer) { renderTargets(w, targets) })
	}

	if svc.Scheduler == nil {
		return errors.New("scheduler not available")
	}
	logger.SetTimestamps(true)
	defer logger.SetTimestamps(false)
	fmt.Fprintln(cmd.ErrOrStderr(), "Monitoring watched targets, press Ctrl+C to stop")

	err = svc.Scheduler.Start(cmd.Context())
	if errors.Is(err, cmd.Context().Err()) {
		return nil
	}
	return err
}

// editTargets removes then adds targets. Adding a watched target replaces its objective.
func editTargets(current []domain.WatchTarget, add, remove []string) ([]domain.WatchTarget, error) {
	out := slices.DeleteFunc(slices.Clone(current), func(t domain.WatchTarget) bool {
		return slices.Contains(remove, t.Target)
	})
	for _, s := range add {
		wt, ok := domain.ParseWatchTarget(s)
		if !ok {
			return nil, fmt.Errorf("%w: invalid watch target %q", domain.ErrInvalidInput, s)
		}
		i := slices.IndexFunc(out, func(t domain.WatchTarget) bool { return t.Target == wt.Target })
		if i >= 0 {
			out[i] = wt
			continue
		}
		out = append(out, wt)
	}
	return out, nil
}

func renderTargets(w io.Writer, targets []domain.WatchTarget) {
	if len(targets) == 0 {
		fmt.Fprintln(w, "No watched targets")
		return
	}
	for _, t := range targets {
		fmt.Fprintf(w, "%s\t%s\n", t.Target, t.Objective)
	}
}
