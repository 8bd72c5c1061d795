// Package genevent provides an in-memory record of simulated particle-physics events.
//
// An Event owns a directed acyclic graph of interaction vertices and particles. Entities are
// constructed detached and receive their identity (barcode) when they are added to an Event:
// particles get strictly increasing positive barcodes, vertices strictly decreasing negative ones.
// Barcodes are never reused, not even after deletion.
//
// The Event keeps a modification history organized in versions. Every entity records the version
// it was created in and the version it was deleted in; deletion never removes anything physically,
// so earlier versions stay queryable exactly as they were.
//
// Key types:
//   - FourVector: immutable momentum or position value
//   - Particle, Vertex: graph nodes with identity, payload and links
//   - Event: owner of the graph, its identity counters and its version history
//   - Predicate: expression tree over particle fields
//   - Search: point-in-time query result (all matching, ancestors, descendants)
//
// Common usage pattern:
//
//	evt := genevent.NewEvent(genevent.WithEventNumber(1))
//
//	v1 := genevent.NewVertex()
//	_ = v1.AddParticleIn(genevent.NewParticle(genevent.NewFourVector(0, 0, 7000, 7000), 2212, 3))
//	_ = v1.AddParticleOut(genevent.NewParticle(genevent.NewFourVector(0.75, -1.569, 32.191, 32.238), 1, 3))
//
//	if err := evt.AddVertex(v1); err != nil {
//		// handle error
//	}
//
//	stable, err := genevent.FindParticles(evt, genevent.FieldStatus.Eq(1).And(genevent.FieldStatusSubcode.Eq(0)))
//	if err != nil {
//		// handle error
//	}
//
//	for _, p := range stable.Results() {
//		fmt.Println(p.Barcode(), p.PDGID())
//	}
//
// A single Event is not safe for concurrent mutation; independent events share no state and can be
// processed by independent goroutines.
package genevent
