package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/genevent-go/config"
	"github.com/AntonStoeckl/genevent-go/genevent/postgresengine"
)

// cliState is shared by all subcommands of one root command.
type cliState struct {
	configPath string
	telemetry  bool
	cfg        config.Config
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	state := &cliState{}

	rootCmd := &cobra.Command{
		Use:          "genevent",
		Short:        "Build, search, print and archive versioned generator events",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(state.configPath)
			if err != nil {
				return err
			}

			state.cfg = cfg
			state.logger = cfg.Logging.NewLogger(cmd.ErrOrStderr())

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&state.configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&state.telemetry, "telemetry", false, "write traces and metrics of archive operations to stderr")

	rootCmd.AddCommand(
		newDemoCmd(state),
		newArchiveCmd(state),
		newShowCmd(state),
	)

	return rootCmd
}

// openRecordStore connects to the configured archive. The returned close function also flushes telemetry.
func (s *cliState) openRecordStore(cmd *cobra.Command) (*postgresengine.RecordStore, func(), error) {
	ctx := cmd.Context()
	options := []postgresengine.Option{postgresengine.WithLogger(s.logger)}

	var providers *config.TelemetryProviders
	if s.telemetry {
		var err error
		if providers, err = config.NewStdoutTelemetry(cmd.ErrOrStderr()); err != nil {
			return nil, nil, err
		}

		// The telemetry options carry their own contextual logger on top of the same handler.
		options = providers.RecordStoreOptions(s.logger)
	}

	shutdownTelemetry := func() {
		if providers == nil {
			return
		}

		if err := providers.Shutdown(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("shutting down telemetry failed", "error", err.Error())
		}
	}

	store, closeStore, err := config.OpenRecordStore(ctx, s.cfg, options...)
	if err != nil {
		shutdownTelemetry()
		return nil, nil, err
	}

	return store, func() {
		closeStore()
		shutdownTelemetry()
	}, nil
}
