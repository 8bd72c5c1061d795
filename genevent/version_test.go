package genevent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/AntonStoeckl/genevent-go/genevent" //nolint:revive
	"github.com/AntonStoeckl/genevent-go/testutil/fixtures"
)

// extendBasicTree adds a second version that decays p7, adds an unconnected particle and deletes p6.
func extendBasicTree(t *testing.T) (fixtures.BasicTree, *Particle, *Particle, *Vertex) {
	t.Helper()

	bt := fixtures.NewBasicTree()
	bt.Event.CreateNewVersion("shower")

	loose := newParticle(21, 1)
	assert.NoError(t, bt.Event.AddParticle(loose))

	v5 := NewVertex()
	gluon := newParticle(21, 1)
	assert.NoError(t, v5.AddParticleIn(bt.P7))
	assert.NoError(t, v5.AddParticleOut(gluon))
	assert.NoError(t, bt.Event.AddVertex(v5))

	assert.NoError(t, bt.Event.DeleteParticle(bt.P6))

	return bt, loose, gluon, v5
}

func Test_MergedParticles_When_SingleVersion_OrdersByProductionVertex(t *testing.T) {
	bt := fixtures.NewBasicTree()

	merged := bt.Event.MergedParticles()

	assert.Equal(t, []*Particle{bt.P1, bt.P2, bt.P3, bt.P4, bt.P5, bt.P6, bt.P7, bt.P8}, merged)
}

func Test_MergedParticles_When_SeveralVersions_MergesLogs_And_SkipsDeleted(t *testing.T) {
	// arrange
	bt, loose, gluon, _ := extendBasicTree(t)

	// act
	merged := bt.Event.MergedParticles()

	// assert
	assert.Equal(t, []*Particle{bt.P1, bt.P2, loose, bt.P3, bt.P4, bt.P5, bt.P7, bt.P8, gluon}, merged)
	assert.Equal(t, -5, bt.P7.EndVertex())
}

func Test_MergedParticles_When_CursorMovedBack_IgnoresLaterLogs(t *testing.T) {
	bt, _, _, _ := extendBasicTree(t)

	assert.NoError(t, bt.Event.SetCurrentVersion(0))

	assert.Equal(t, []*Particle{bt.P1, bt.P2, bt.P3, bt.P4, bt.P5, bt.P6, bt.P7, bt.P8}, bt.Event.MergedParticles())
	assert.Equal(t, []*Vertex{bt.V1, bt.V2, bt.V3, bt.V4}, bt.Event.MergedVertices())
}

func Test_MergedVertices_OrdersByAbsoluteBarcode(t *testing.T) {
	bt, _, _, v5 := extendBasicTree(t)

	assert.Equal(t, []*Vertex{bt.V1, bt.V2, bt.V3, bt.V4, v5}, bt.Event.MergedVertices())
}

func Test_Versions_RecordIntroducedAndDeletedEntities(t *testing.T) {
	// arrange
	bt, loose, gluon, v5 := extendBasicTree(t)

	// act
	versions := bt.Event.Versions()

	// assert
	assert.Len(t, versions, 2)
	assert.Equal(t, Version(0), versions[0].Index())
	assert.Equal(t, "default", versions[0].Name())
	assert.Len(t, versions[0].Particles(), 8)
	assert.Len(t, versions[0].Vertices(), 4)
	assert.Empty(t, versions[0].DeletedParticles())

	assert.Equal(t, "shower", versions[1].Name())
	assert.Equal(t, []*Particle{loose, gluon}, versions[1].Particles())
	assert.Equal(t, []*Vertex{v5}, versions[1].Vertices())
	assert.Equal(t, []*Particle{bt.P6}, versions[1].DeletedParticles())
	assert.Empty(t, versions[1].DeletedVertices())
	assert.Equal(t, Version(1), gluon.VersionCreated())
}

func Test_Versions_ReturnsSnapshot(t *testing.T) {
	bt := fixtures.NewBasicTree()
	versions := bt.Event.Versions()

	assert.NoError(t, bt.Event.AddParticle(newParticle(22, 1)))

	assert.Len(t, versions[0].Particles(), 8)
	assert.Len(t, bt.Event.Versions()[0].Particles(), 9)
}
