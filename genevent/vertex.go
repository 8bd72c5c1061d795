package genevent

import (
	"fmt"
	"slices"
)

// Vertex is an interaction point with ordered lists of incoming and outgoing particles.
// Insertion order of both lists is preserved.
type Vertex struct {
	event          *Event
	barcode        int
	position       FourVector
	particlesIn    []*Particle
	particlesOut   []*Particle
	versionCreated Version
	versionDeleted Version
}

type linkDirection int

const (
	linkIncoming linkDirection = iota
	linkOutgoing
)

// NewVertex is a factory method for a detached Vertex.
func NewVertex() *Vertex {
	return &Vertex{versionDeleted: NeverDeleted}
}

// Event returns the owning event or nil for a detached vertex.
func (v *Vertex) Event() *Event {
	return v.event
}

// Barcode returns the negative identity assigned by the owning event, 0 while detached.
func (v *Vertex) Barcode() int {
	return v.barcode
}

func (v *Vertex) Position() FourVector {
	return v.position
}

func (v *Vertex) SetPosition(position FourVector) {
	v.position = position
}

// ParticlesIn returns a copy of the incoming particle list.
func (v *Vertex) ParticlesIn() []*Particle {
	return slices.Clone(v.particlesIn)
}

// ParticlesOut returns a copy of the outgoing particle list.
func (v *Vertex) ParticlesOut() []*Particle {
	return slices.Clone(v.particlesOut)
}

func (v *Vertex) VersionCreated() Version {
	return v.versionCreated
}

func (v *Vertex) VersionDeleted() Version {
	return v.versionDeleted
}

// IsLiveIn reports whether the vertex is visible in the given version.
func (v *Vertex) IsLiveIn(version Version) bool {
	return v.event != nil && isLive(v.versionCreated, v.versionDeleted, version)
}

// AddParticleIn appends p to the incoming particles.
//
// On a detached vertex only the list is updated; ownership is validated by Event.AddVertex.
// On an attached vertex a detached p is adopted by the owning event and its end vertex is set.
// Adding a particle that is already listed is a no-op, listing it on both sides fails with ErrAlreadyLinked.
func (v *Vertex) AddParticleIn(p *Particle) error {
	return v.addParticle(p, linkIncoming)
}

// AddParticleOut appends p to the outgoing particles.
// It follows the same rules as AddParticleIn and sets the production vertex of p.
func (v *Vertex) AddParticleOut(p *Particle) error {
	return v.addParticle(p, linkOutgoing)
}

func (v *Vertex) addParticle(p *Particle, direction linkDirection) error {
	if p == nil {
		return ErrNilEntity
	}

	list, opposite := &v.particlesIn, v.particlesOut
	if direction == linkOutgoing {
		list, opposite = &v.particlesOut, v.particlesIn
	}

	if slices.Contains(*list, p) {
		return nil
	}

	if slices.Contains(opposite, p) {
		return fmt.Errorf("%w: particle can't be incoming and outgoing of the same vertex", ErrAlreadyLinked)
	}

	if v.event != nil {
		if err := v.event.checkLinkable(p, direction); err != nil {
			return err
		}

		if p.event == nil {
			v.event.adoptParticle(p)
		}

		v.link(p, direction)
	}

	*list = append(*list, p)

	return nil
}

func (v *Vertex) link(p *Particle, direction linkDirection) {
	switch direction {
	case linkIncoming:
		p.endVertex = v.barcode
	case linkOutgoing:
		p.productionVertex = v.barcode
	}
}
