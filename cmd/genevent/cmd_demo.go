package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/genevent-go/genevent"
	"github.com/AntonStoeckl/genevent-go/genevent/printer"
)

const demoDeletionVersionName = "photon removed"

func newDemoCmd(state *cliState) *cobra.Command {
	var asYAML bool

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Build the example event, run searches on it and print it before and after a deletion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.OutOrStdout(), state.logger, asYAML)
		},
	}

	demoCmd.Flags().BoolVar(&asYAML, "yaml", false, "also dump the final event as YAML")

	return demoCmd
}

func runDemo(out io.Writer, logger genevent.Logger, asYAML bool) error {
	bt, err := newDemoEvent(1, logger)
	if err != nil {
		return err
	}

	event := bt.Event
	if err = printer.Listing(out, event); err != nil {
		return err
	}

	stable, err := genevent.FindParticles(event, genevent.FieldStatus.Eq(1))
	if err != nil {
		return err
	}

	if err = printSearch(out, "stable particles", stable); err != nil {
		return err
	}

	ancestors, err := genevent.FindAncestors(bt.P5, genevent.MatchAll)
	if err != nil {
		return err
	}

	if err = printSearch(out, fmt.Sprintf("ancestors of particle %d", bt.P5.Barcode()), ancestors); err != nil {
		return err
	}

	finalState, err := genevent.FindDescendants(bt.P4, genevent.FieldStatus.Eq(1).And(genevent.HasEndVertex.Not()))
	if err != nil {
		return err
	}

	if err = printSearch(out, fmt.Sprintf("final state descendants of particle %d", bt.P4.Barcode()), finalState); err != nil {
		return err
	}

	// NarrowDown filters the existing results in place.
	if err = printSearch(out, "quarks among them", finalState.NarrowDown(genevent.FieldAbsPDGID.Le(6))); err != nil {
		return err
	}

	event.CreateNewVersion(demoDeletionVersionName)
	if err = event.DeleteParticle(bt.P5); err != nil {
		return err
	}

	if err = printer.Listing(out, event); err != nil {
		return err
	}

	if err = printer.Content(out, event); err != nil {
		return err
	}

	if asYAML {
		return printer.YAML(out, event)
	}

	return nil
}

func printSearch(out io.Writer, title string, search *genevent.Search) error {
	if _, err := fmt.Fprintf(out, "\n%s [%s] %s: %d found\n", title, search.Mode(), search.Predicate(), search.Len()); err != nil {
		return err
	}

	return printer.Lines(out, search.Results())
}
