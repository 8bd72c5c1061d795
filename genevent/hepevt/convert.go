package hepevt

import (
	"errors"
	"fmt"

	"github.com/AntonStoeckl/genevent-go/genevent"
)

var ErrInvalidParentRange = errors.New("mother range refers to entries outside the block")

// FromEvent fills a new block from the particles live in the current version of event.
//
// The incoming particles of every vertex are placed next to each other, in vertex order, so the
// mother ranges are exact. Particles without an end vertex follow in barcode order.
// Daughter ranges span from the first to the last outgoing particle of the end vertex.
func FromEvent(event *genevent.Event, options ...Option) (*Block, error) {
	b, err := NewBlock(options...)
	if err != nil {
		return nil, err
	}

	order := entryOrder(event)
	if err = b.SetNumberEntries(len(order)); err != nil {
		return nil, err
	}

	b.SetEventNumber(event.EventNumber())

	indexByBarcode := make(map[int]int, len(order))
	for i, p := range order {
		indexByBarcode[p.Barcode()] = i + 1
	}

	version := event.CurrentVersion()
	indexRange := func(list []*genevent.Particle) [2]int {
		r := [2]int{}
		for _, p := range list {
			index, ok := indexByBarcode[p.Barcode()]
			if !ok || !p.IsLiveIn(version) {
				continue
			}

			if r[0] == 0 || index < r[0] {
				r[0] = index
			}

			if index > r[1] {
				r[1] = index
			}
		}

		return r
	}

	for i, p := range order {
		momentum := p.Momentum()
		e := Entry{
			Status:   p.Status(),
			ID:       p.PDGID(),
			Momentum: [5]float64{momentum.Px(), momentum.Py(), momentum.Pz(), momentum.E(), p.GeneratedMass()},
		}

		if v, ok := liveVertex(event, p.ProductionVertex(), version); ok {
			position := v.Position()
			e.Position = [4]float64{position.X(), position.Y(), position.Z(), position.T()}
			e.Parents = indexRange(v.ParticlesIn())
		}

		if v, ok := liveVertex(event, p.EndVertex(), version); ok {
			e.Children = indexRange(v.ParticlesOut())
		}

		b.entries[i] = e
	}

	return b, nil
}

// ToEvent builds a new event from the block.
//
// Entry i becomes the particle with barcode i. Every distinct mother range becomes one vertex
// with the mothers as incoming and all entries naming that range as outgoing particles; the
// vertex position is the production position of its first daughter.
func ToEvent(b *Block, options ...genevent.Option) (*genevent.Event, error) {
	event := genevent.NewEvent(append([]genevent.Option{genevent.WithEventNumber(b.eventNumber)}, options...)...)

	particles := make([]*genevent.Particle, len(b.entries))
	for i, e := range b.entries {
		p := genevent.NewParticle(genevent.NewFourVector(e.Momentum[0], e.Momentum[1], e.Momentum[2], e.Momentum[3]), e.ID, e.Status)
		p.SetGeneratedMass(e.Momentum[4])

		if err := event.AddParticle(p); err != nil {
			return nil, err
		}

		particles[i] = p
	}

	vertices := make(map[[2]int]*genevent.Vertex)
	order := make([]*genevent.Vertex, 0)

	for k := 1; k <= len(b.entries); k++ {
		first, last := b.parentRange(k)
		if first == 0 {
			continue
		}

		if first < 1 || last > len(b.entries) {
			return nil, fmt.Errorf("%w: entry %d has mothers %d-%d", ErrInvalidParentRange, k, first, last)
		}

		key := [2]int{first, last}

		v, ok := vertices[key]
		if !ok {
			v = genevent.NewVertex()
			position := b.entries[k-1].Position
			v.SetPosition(genevent.NewFourVector(position[0], position[1], position[2], position[3]))

			for i := first; i <= last; i++ {
				if err := v.AddParticleIn(particles[i-1]); err != nil {
					return nil, err
				}
			}

			vertices[key] = v
			order = append(order, v)
		}

		if err := v.AddParticleOut(particles[k-1]); err != nil {
			return nil, fmt.Errorf("%w: entry %d is its own mother: %w", ErrInvalidParentRange, k, err)
		}
	}

	for _, v := range order {
		if err := event.AddVertex(v); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidParentRange, err)
		}
	}

	return event, nil
}

// entryOrder places all incoming particles of each live vertex contiguously, then all remaining live particles.
func entryOrder(event *genevent.Event) []*genevent.Particle {
	version := event.CurrentVersion()
	particles := event.Particles()
	placed := make(map[int]bool, len(particles))
	order := make([]*genevent.Particle, 0, len(particles))

	for _, v := range event.Vertices() {
		for _, p := range v.ParticlesIn() {
			if p.IsLiveIn(version) && !placed[p.Barcode()] {
				placed[p.Barcode()] = true
				order = append(order, p)
			}
		}
	}

	for _, p := range particles {
		if !placed[p.Barcode()] {
			order = append(order, p)
		}
	}

	return order
}

func liveVertex(event *genevent.Event, barcode int, version genevent.Version) (*genevent.Vertex, bool) {
	if barcode == 0 {
		return nil, false
	}

	v, ok := event.Vertex(barcode)
	if !ok || !v.IsLiveIn(version) {
		return nil, false
	}

	return v, true
}
