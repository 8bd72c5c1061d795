package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/genevent-go/genevent/attributes"
	"github.com/AntonStoeckl/genevent-go/genevent/postgresengine"
	"github.com/AntonStoeckl/genevent-go/genevent/printer"
)

var ErrInvalidRunID = errors.New("invalid run id")

const flagRun = "run"

func newShowCmd(state *cliState) *cobra.Command {
	var runIDFlag string
	var fromEventNumber, untilEventNumber int

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Query the archived events of a run and print their listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runID, err := uuid.Parse(runIDFlag)
			if err != nil {
				return errors.Join(ErrInvalidRunID, err)
			}

			filterBuilder := postgresengine.BuildRecordFilter().ForRun(runID)
			if cmd.Flags().Changed("from") {
				filterBuilder = filterBuilder.WithEventNumberFrom(fromEventNumber)
			}
			if cmd.Flags().Changed("until") {
				filterBuilder = filterBuilder.WithEventNumberUntil(untilEventNumber)
			}

			store, closeStore, err := state.openRecordStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			records, err := store.Query(cmd.Context(), filterBuilder.Finalize())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err = fmt.Fprintf(out, "run %s: %d event(s)\n", runID, len(records)); err != nil {
				return err
			}

			registry := attributes.NewRegistry()
			for _, record := range records {
				event, decodeErr := record.Event(registry)
				if decodeErr != nil {
					return decodeErr
				}

				if err = printer.Listing(out, event); err != nil {
					return err
				}
			}

			return nil
		},
	}

	showCmd.Flags().StringVar(&runIDFlag, flagRun, "", "run id of the archived events")
	showCmd.Flags().IntVar(&fromEventNumber, "from", 0, "first event number to show")
	showCmd.Flags().IntVar(&untilEventNumber, "until", 0, "last event number to show")
	_ = showCmd.MarkFlagRequired(flagRun)

	return showCmd
}
