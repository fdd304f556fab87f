package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/foresight/internal/adapters/driving/tui"
	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/logger"
)

var (
	runObjective   string
	runFocus       string
	runFocusAreas  []string
	runIndustry    string
	runConstraints []string
	runRequestFile string
	runTUI         bool
)

var runCmd = &cobra.Command{
	Use:   "run [target]",
	Short: "Run an intelligence analysis for a target",
	Long: `Runs the four-stage pipeline (ingestion, pattern analysis, synthesis and
action planning) for a target and prints the merged report.

The request can also be read from a YAML file with --request; flags given on
the command line override fields from the file.

Examples:
  foresight run acme.com --objective competitive_analysis --focus growth
  foresight run acme.com --focus-area pricing --constraint max_actions=5
  foresight run --request request.yaml --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	flags := runCmd.Flags()
	flags.StringVar(&runObjective, "objective", "", "analysis objective (default comprehensive)")
	flags.StringVar(&runFocus, "focus", "", "business focus: growth or efficiency")
	flags.StringSliceVar(&runFocusAreas, "focus-area", nil, "topic for sources to concentrate on (repeatable)")
	flags.StringVar(&runIndustry, "industry", "", "industry of the target")
	flags.StringArrayVar(&runConstraints, "constraint", nil, "action constraint as key=value (repeatable)")
	flags.StringVar(&runRequestFile, "request", "", "read the request from a YAML file")
	flags.BoolVar(&runTUI, "tui", true, "show live progress when stdout is a terminal")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}
	req, err := buildRequest(args)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	report, err := execute(cmd, svc, req)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), report, func(w io.Writer) { renderReport(w, report) })
}

// execute runs req through the job runner when one is wired, following its
// progress, and directly through the intelligence service otherwise.
func execute(cmd *cobra.Command, svc *Services, req domain.Request) (*domain.IntelligenceReport, error) {
	ctx := cmd.Context()
	if svc.Jobs == nil || svc.Progress == nil {
		return svc.Intelligence.RunIntelligence(ctx, req)
	}

	f := follow(svc.Progress)
	defer f.stop()

	job, err := svc.Jobs.Submit(ctx, req)
	if err != nil {
		return nil, err
	}

	followCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := f.events(followCtx, job.ID)

	if useTUI(cmd) {
		if _, err := tui.Run(ctx, req.Target, events); err != nil {
			if errors.Is(err, tui.ErrDetached) {
				return nil, fmt.Errorf("analysis of %s cancelled", req.Target)
			}
			return nil, err
		}
	} else {
		// Verbose mode already mirrors events through the log notifier.
		quiet := outputFormat != formatText || logger.IsVerbose()
		for event := range events {
			if !quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %-16s %s\n", event.Status, event.Message)
			}
		}
	}
	return svc.Jobs.Wait(ctx, job.ID)
}

func useTUI(cmd *cobra.Command) bool {
	if !runTUI || outputFormat != formatText {
		return false
	}
	out, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(out.Fd()))
}

// buildRequest merges the optional request file with command-line flags.
func buildRequest(args []string) (domain.Request, error) {
	var req domain.Request
	if runRequestFile != "" {
		data, err := os.ReadFile(runRequestFile)
		if err != nil {
			return req, fmt.Errorf("reading request file: %w", err)
		}
		if err := yaml.Unmarshal(data, &req); err != nil {
			return req, fmt.Errorf("parsing request file: %w", err)
		}
	}

	if len(args) == 1 {
		req.Target = args[0]
	}
	if runObjective != "" {
		req.Objective = runObjective
	}
	if req.Objective == "" {
		req.Objective = domain.ObjectiveComprehensive
	}

	if runFocus != "" || len(runFocusAreas) > 0 || runIndustry != "" {
		if req.Context == nil {
			req.Context = make(map[string]any)
		}
		if runFocus != "" {
			req.Context["focus"] = runFocus
		}
		if len(runFocusAreas) > 0 {
			req.Context["focus_areas"] = runFocusAreas
		}
		if runIndustry != "" {
			req.Context["industry"] = runIndustry
		}
	}

	for _, c := range runConstraints {
		key, value, ok := strings.Cut(c, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return req, fmt.Errorf("%w: constraint %q is not key=value", domain.ErrInvalidInput, c)
		}
		if req.Constraints == nil {
			req.Constraints = make(map[string]any)
		}
		req.Constraints[key] = constraintValue(strings.TrimSpace(value))
	}
	return req, nil
}

// constraintValue keeps integers numeric so limits such as max_actions apply.
func constraintValue(s string) any {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return s
}
