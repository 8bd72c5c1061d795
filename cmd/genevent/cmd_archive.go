package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/genevent-go/genevent/codec"
)

var ErrInvalidEventCount = errors.New("the number of events must be at least 1")

func newArchiveCmd(state *cliState) *cobra.Command {
	var eventCount int
	var createTable bool

	archiveCmd := &cobra.Command{
		Use:   "archive",
		Short: "Encode demo events and append them to the archive under a fresh run id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if eventCount < 1 {
				return ErrInvalidEventCount
			}

			runID := uuid.New()
			recordedAt := time.Now().UTC()

			records := make(codec.Records, 0, eventCount)
			for number := 1; number <= eventCount; number++ {
				bt, err := newDemoEvent(number, state.logger)
				if err != nil {
					return err
				}

				record, err := codec.BuildRecord(runID, bt.Event, recordedAt)
				if err != nil {
					return err
				}

				records = append(records, record)
			}

			store, closeStore, err := state.openRecordStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			if createTable {
				if err = store.CreateTable(cmd.Context()); err != nil {
					return err
				}
			}

			if err = store.Append(cmd.Context(), records[0], records[1:]...); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "archived %d event(s) for run %s in table %s\n",
				len(records), runID, store.TableName())

			return err
		},
	}

	archiveCmd.Flags().IntVar(&eventCount, "events", 1, "number of demo events to archive")
	archiveCmd.Flags().BoolVar(&createTable, "create-table", true, "create the archive table if it does not exist")

	return archiveCmd
}
