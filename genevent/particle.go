package genevent

import "math"

// Version is an index into the modification history of an Event.
// Version 0 always exists.
type Version int

// NeverDeleted is the deletion version of entities that were never deleted.
const NeverDeleted Version = math.MaxInt

// Particle is a graph node carrying a PDG id, status codes and a momentum.
//
// Links to the production and end vertex are kept as vertex barcodes and resolved through the
// owning Event, so a particle never owns a vertex. The incoming/outgoing lists of the vertex are
// the authoritative membership.
type Particle struct {
	event              *Event
	barcode            int
	pdgID              int
	status             int
	statusSubcode      int
	momentum           FourVector
	generatedMass      float64
	isGeneratedMassSet bool
	productionVertex   int
	endVertex          int
	versionCreated     Version
	versionDeleted     Version
}

// NewParticle is a factory method for a detached Particle.
func NewParticle(momentum FourVector, pdgID int, status int) *Particle {
	return &Particle{
		momentum:       momentum,
		pdgID:          pdgID,
		status:         status,
		versionDeleted: NeverDeleted,
	}
}

// Event returns the owning event or nil for a detached particle.
func (p *Particle) Event() *Event {
	return p.event
}

// Barcode returns the positive identity assigned by the owning event, 0 while detached.
func (p *Particle) Barcode() int {
	return p.barcode
}

func (p *Particle) PDGID() int {
	return p.pdgID
}

func (p *Particle) SetPDGID(pdgID int) {
	p.pdgID = pdgID
}

func (p *Particle) Status() int {
	return p.status
}

func (p *Particle) SetStatus(status int) {
	p.status = status
}

func (p *Particle) StatusSubcode() int {
	return p.statusSubcode
}

func (p *Particle) SetStatusSubcode(subcode int) {
	p.statusSubcode = subcode
}

func (p *Particle) Momentum() FourVector {
	return p.momentum
}

func (p *Particle) SetMomentum(momentum FourVector) {
	p.momentum = momentum
}

// GeneratedMass returns the generated mass if it was set, the invariant mass of the momentum otherwise.
func (p *Particle) GeneratedMass() float64 {
	if p.isGeneratedMassSet {
		return p.generatedMass
	}

	return p.momentum.M()
}

// IsGeneratedMassSet reports whether SetGeneratedMass overrides the momentum-derived mass.
func (p *Particle) IsGeneratedMassSet() bool {
	return p.isGeneratedMassSet
}

func (p *Particle) SetGeneratedMass(mass float64) {
	p.generatedMass = mass
	p.isGeneratedMassSet = true
}

func (p *Particle) UnsetGeneratedMass() {
	p.generatedMass = 0
	p.isGeneratedMassSet = false
}

// ProductionVertex returns the barcode of the production vertex, 0 if there is none.
func (p *Particle) ProductionVertex() int {
	return p.productionVertex
}

// EndVertex returns the barcode of the end (decay) vertex, 0 if there is none.
func (p *Particle) EndVertex() int {
	return p.endVertex
}

func (p *Particle) VersionCreated() Version {
	return p.versionCreated
}

// VersionDeleted returns NeverDeleted unless the particle was deleted.
func (p *Particle) VersionDeleted() Version {
	return p.versionDeleted
}

// IsLiveIn reports whether the particle is visible in the given version.
// Detached particles are never live.
func (p *Particle) IsLiveIn(v Version) bool {
	return p.event != nil && isLive(p.versionCreated, p.versionDeleted, v)
}

func isLive(created, deleted, v Version) bool {
	return created <= v && v < deleted
}
