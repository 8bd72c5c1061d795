package fixtures

import (
	"github.com/AntonStoeckl/genevent-go/genevent"
)

// BasicTree is the eight-particle proton-proton example event:
//
//	                      p7
//	p1                   /
//	  \v1__p3      p6---v4
//	        \_v3_/       \
//	        /    \        p8
//	   v2__p4     \
//	  /            p5
//	p2
//
// p1, p2 are beam protons, p5 a stable photon, p6 an intermediate W- decaying into the quarks p7, p8.
type BasicTree struct {
	Event                          *genevent.Event
	P1, P2, P3, P4, P5, P6, P7, P8 *genevent.Particle
	V1, V2, V3, V4                 *genevent.Vertex
}

// Particles returns p1..p8 in fixture order.
func (bt BasicTree) Particles() []*genevent.Particle {
	return []*genevent.Particle{bt.P1, bt.P2, bt.P3, bt.P4, bt.P5, bt.P6, bt.P7, bt.P8}
}

// NewBasicTree builds the event the same way a generator interface would do it: some vertices are
// attached before their outgoing particles are added. It panics on errors since it's a test fixture.
func NewBasicTree(options ...genevent.Option) BasicTree {
	bt := BasicTree{Event: genevent.NewEvent(options...)}

	bt.P1 = genevent.NewParticle(genevent.NewFourVector(0.0, 0.0, 7000.0, 7000.0), 2212, 3)
	bt.P2 = genevent.NewParticle(genevent.NewFourVector(0.0, 0.0, -7000.0, 7000.0), 2212, 3)
	bt.P3 = genevent.NewParticle(genevent.NewFourVector(0.750, -1.569, 32.191, 32.238), 1, 3)
	bt.P4 = genevent.NewParticle(genevent.NewFourVector(-3.047, -19.0, -54.629, 57.920), -2, 3)

	bt.V1 = genevent.NewVertex()
	must(bt.V1.AddParticleIn(bt.P1))
	must(bt.V1.AddParticleOut(bt.P3))
	must(bt.Event.AddVertex(bt.V1))

	bt.V2 = genevent.NewVertex()
	must(bt.V2.AddParticleIn(bt.P2))
	must(bt.V2.AddParticleOut(bt.P4))
	must(bt.Event.AddVertex(bt.V2))

	bt.V3 = genevent.NewVertex()
	must(bt.V3.AddParticleIn(bt.P3))
	must(bt.V3.AddParticleIn(bt.P4))
	must(bt.Event.AddVertex(bt.V3))

	bt.P5 = genevent.NewParticle(genevent.NewFourVector(-3.813, 0.113, -1.833, 4.233), 22, 1)
	bt.P6 = genevent.NewParticle(genevent.NewFourVector(1.517, -20.68, -20.605, 85.925), -24, 3)
	must(bt.V3.AddParticleOut(bt.P5))
	must(bt.V3.AddParticleOut(bt.P6))

	bt.V4 = genevent.NewVertex()
	must(bt.V4.AddParticleIn(bt.P6))
	must(bt.Event.AddVertex(bt.V4))

	bt.P7 = genevent.NewParticle(genevent.NewFourVector(-2.445, 28.816, 6.082, 29.552), 1, 1)
	bt.P8 = genevent.NewParticle(genevent.NewFourVector(3.962, -49.498, -26.687, 56.373), -2, 1)
	must(bt.V4.AddParticleOut(bt.P7))
	must(bt.V4.AddParticleOut(bt.P8))

	return bt
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
