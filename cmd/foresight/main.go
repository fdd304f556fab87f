// Command foresight runs the multi-source intelligence pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/foresight/internal/adapters/driven/config/file"
	"github.com/custodia-labs/foresight/internal/adapters/driven/notify"
	"github.com/custodia-labs/foresight/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/foresight/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/foresight/internal/adapters/driving/cli"
	"github.com/custodia-labs/foresight/internal/core/domain"
	"github.com/custodia-labs/foresight/internal/core/ports/driven"
	"github.com/custodia-labs/foresight/internal/core/services"
	"github.com/custodia-labs/foresight/internal/detectors"
	"github.com/custodia-labs/foresight/internal/generators"
	"github.com/custodia-labs/foresight/internal/logger"
	"github.com/custodia-labs/foresight/internal/sources"
	"github.com/custodia-labs/foresight/internal/synthesizers"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx, build)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// build wires the pipeline from configuration.
func build(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	var (
		configStore driven.ConfigStore
		fileConfig  *file.ConfigStore
	)
	if opts.NoConfig {
		configStore = memory.NewConfigStore()
	} else {
		fc, err := file.NewConfigStore(opts.ConfigDir)
		if err != nil {
			return nil, err
		}
		configStore, fileConfig = fc, fc
	}
	settings := services.NewSettingsService(configStore)
	pipeline := settings.Pipeline()

	srcs, err := sources.NewDefaultFactory().CreateAll(settings.SourceConfigs())
	if err != nil {
		return nil, fmt.Errorf("configuring sources: %w", err)
	}
	if len(srcs) == 0 {
		logger.Warn("no sources configured; add [sources.<name>] tables to %s", configStore.Path())
	}

	detectorSettings := settings.Plugins(domain.PluginsDetectors)
	dets, err := detectors.NewRegistry().BuildAll(detectorSettings.Enabled, detectorSettings.Configs)
	if err != nil {
		return nil, fmt.Errorf("configuring detectors: %w", err)
	}
	synthSettings := settings.Plugins(domain.PluginsSynthesizers)
	synths, err := synthesizers.NewRegistry().BuildAll(synthSettings.Enabled, synthSettings.Configs)
	if err != nil {
		return nil, fmt.Errorf("configuring synthesizers: %w", err)
	}
	genSettings := settings.Plugins(domain.PluginsGenerators)
	gens, err := generators.NewRegistry().BuildAll(genSettings.Enabled, genSettings.Configs)
	if err != nil {
		return nil, fmt.Errorf("configuring generators: %w", err)
	}

	var (
		history        driven.HistoryStore
		schedulerStore driven.SchedulerStore
		closers        []func() error
	)
	if opts.NoConfig {
		history = memory.NewHistoryStore(pipeline.HistoryLimit)
		schedulerStore = memory.NewSchedulerStore()
	} else {
		store, err := sqlite.NewStore(opts.DataDir)
		if err != nil {
			return nil, err
		}
		history = store.HistoryStore(pipeline.HistoryLimit)
		schedulerStore = store.SchedulerStore()
		closers = append(closers, store.Close)
	}

	bus := notify.NewBus()
	orch := services.NewOrchestrator(
		services.NewIngestionService(srcs, pipeline),
		services.NewPatternService(dets...),
		services.NewSynthesisService(synths...),
		services.NewActionService(pipeline.ConstraintPolicy, gens...),
		history,
		notify.Multi{bus, notify.LogNotifier{}},
	)
	jobs := services.NewJobRunner(orch, memory.NewJobStore(), pipeline.MaxConcurrentJobs)
	scheduler := services.NewScheduler(settings.Scheduler(), schedulerStore, orch)

	watchCtx, cancelWatch := context.WithCancel(ctx)
	if fileConfig != nil {
		fileConfig.OnChange(func() {
			scheduler.SetTargets(settings.Scheduler().Targets)
		})
		if err := fileConfig.Watch(watchCtx); err != nil {
			logger.Warn("config reload disabled: %v", err)
		}
	}

	// Jobs close first so running pipelines can still append history.
	closers = append([]func() error{jobs.Close, scheduler.Stop}, closers...)
	return &cli.Services{
		Intelligence: orch,
		Jobs:         jobs,
		Scheduler:    scheduler,
		Settings:     settings,
		Progress:     bus,
		Close: func() error {
			cancelWatch()
			var errs []error
			for _, c := range closers {
				errs = append(errs, c())
			}
			return errors.Join(errs...)
		},
	}, nil
}
