// Package cli provides the foresight command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/foresight/internal/core/ports/driving"
	"github.com/custodia-labs/foresight/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// skipServices marks commands that run without wiring the pipeline.
const skipServices = "foresight/skip-services"

// Options are the global flags handed to the service builder.
type Options struct {
	ConfigDir string
	DataDir   string
	NoConfig  bool
}

// Services are the driving ports the commands use.
// Jobs, Scheduler, Settings and Progress are optional.
type Services struct {
	Intelligence driving.IntelligenceService
	Jobs         driving.JobService
	Scheduler    driving.Scheduler
	Settings     driving.SettingsService
	Progress     driving.ProgressFeed

	// Close releases stores and stops background work.
	Close func() error
}

// Builder wires services once the global flags are parsed.
type Builder func(ctx context.Context, opts Options) (*Services, error)

var (
	builder  Builder
	services *Services
	// built is true when services came from builder and must be closed.
	built bool

	globalOpts   Options
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "foresight",
	Short: "Multi-source business intelligence pipeline",
	Long: `Foresight ingests signals about a target from several sources, detects
patterns across them, synthesises business insights and turns them into a
prioritised, phased action plan.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "print pipeline progress and diagnostics to stderr")
	flags.StringVarP(&outputFormat, "format", "o", formatText, "output format: text, json or yaml")
	flags.StringVar(&globalOpts.ConfigDir, "config-dir", "", "configuration directory (default ~/.foresight)")
	flags.StringVar(&globalOpts.DataDir, "data-dir", "", "data directory (default ~/.foresight/data)")
	flags.BoolVar(&globalOpts.NoConfig, "no-config", false, "ignore the config file and keep history in memory")
}

// Execute runs the root command with services built by b.
func Execute(ctx context.Context, b Builder) error {
	builder = b
	return rootCmd.ExecuteContext(ctx)
}

// SetServices installs prebuilt services; the CLI will not close them.
func SetServices(s *Services) {
	services = s
	built = false
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if err := validateFormat(outputFormat); err != nil {
		return err
	}
	if cmd.Annotations[skipServices] == "true" || services != nil {
		return nil
	}
	if builder == nil {
		return errors.New("services not configured")
	}
	s, err := builder(cmd.Context(), globalOpts)
	if err != nil {
		return fmt.Errorf("starting foresight: %w", err)
	}
	services = s
	built = true
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if !built || services == nil {
		return nil
	}
	s := services
	services, built = nil, false
	if s.Close != nil {
		return s.Close()
	}
	return nil
}

// requireServices returns the wired services or an error naming the missing port.
func requireServices() (*Services, error) {
	if services == nil || services.Intelligence == nil {
		return nil, errors.New("intelligence service not configured")
	}
	return services, nil
}
