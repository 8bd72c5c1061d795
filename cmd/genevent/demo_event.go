package main

import (
	"github.com/AntonStoeckl/genevent-go/genevent"
	"github.com/AntonStoeckl/genevent-go/genevent/attributes"
	"github.com/AntonStoeckl/genevent-go/testutil/fixtures"
)

const (
	attrCrossSection = "GenCrossSection"
	attrWeights      = "GenWeights"
)

// newDemoEvent builds the eight-particle proton-proton event together with generator attributes.
func newDemoEvent(number int, logger genevent.Logger) (fixtures.BasicTree, error) {
	bt := fixtures.NewBasicTree(genevent.WithEventNumber(number), genevent.WithLogger(logger))

	crossSection := &attributes.CrossSection{}
	crossSection.SetCrossSection(1.2e3, 4.5)
	if err := bt.Event.AddAttribute(attrCrossSection, crossSection); err != nil {
		return fixtures.BasicTree{}, err
	}

	weights := attributes.NewWeights()
	weights.PushBack("nominal", 1.0)
	weights.PushBack("scale_up", 0.93)
	weights.PushBack("scale_down", 1.08)
	if err := bt.Event.AddAttribute(attrWeights, weights); err != nil {
		return fixtures.BasicTree{}, err
	}

	return bt, nil
}
