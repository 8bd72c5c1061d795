package hepevt_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/genevent-go/genevent"
	. "github.com/AntonStoeckl/genevent-go/genevent/hepevt" //nolint:revive
	"github.com/AntonStoeckl/genevent-go/testutil/fixtures"
)

func newBlock(t *testing.T, options ...Option) *Block {
	t.Helper()

	b, err := NewBlock(options...)
	assert.NoError(t, err)

	return b
}

func Test_Block_Accessors_Are_OneBased(t *testing.T) {
	// arrange
	b := newBlock(t)
	assert.NoError(t, b.SetNumberEntries(2))

	// act
	assert.NoError(t, b.SetStatus(1, 3))
	assert.NoError(t, b.SetID(1, 2212))
	assert.NoError(t, b.SetChildren(1, 2, 2))
	assert.NoError(t, b.SetParents(2, 1, 1))
	assert.NoError(t, b.SetMomentum(2, 1, 2, 3, 4))
	assert.NoError(t, b.SetMass(2, 0.5))
	assert.NoError(t, b.SetPosition(2, 0.1, 0.2, 0.3, 0.4))

	// assert
	assert.Equal(t, MaxEntries, b.MaxEntries())
	assert.Equal(t, 3, b.Status(1))
	assert.Equal(t, 2212, b.ID(1))
	assert.Equal(t, 2, b.FirstChild(1))
	assert.Equal(t, 2, b.LastChild(1))
	assert.Equal(t, 1, b.FirstParent(2))
	assert.Equal(t, []float64{1, 2, 3, 4, 0.5}, []float64{b.Px(2), b.Py(2), b.Pz(2), b.E(2), b.M(2)})
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4}, []float64{b.X(2), b.Y(2), b.Z(2), b.T(2)})
	assert.Equal(t, 0, b.Status(3))

	_, ok := b.Entry(0)
	assert.False(t, ok)
	assert.ErrorIs(t, b.SetStatus(3, 1), ErrIndexOutOfRange)
	assert.ErrorIs(t, b.SetStatus(0, 1), ErrIndexOutOfRange)
}

func Test_Block_SetNumberEntries_When_ExceedingCapacity_ReturnsOverflow(t *testing.T) {
	b := newBlock(t, WithMaxEntries(4))

	assert.ErrorIs(t, b.SetNumberEntries(5), ErrBlockOverflow)
	assert.ErrorIs(t, b.SetNumberEntries(-1), ErrNegativeEntryCount)
	assert.NoError(t, b.SetNumberEntries(4))
	assert.Equal(t, 4, b.NumberEntries())

	_, err := NewBlock(WithMaxEntries(0))
	assert.Error(t, err)
}

func Test_Block_Zero(t *testing.T) {
	b := newBlock(t)
	b.SetEventNumber(5)
	assert.NoError(t, b.SetNumberEntries(3))

	b.Zero()

	assert.Equal(t, 0, b.EventNumber())
	assert.Equal(t, 0, b.NumberEntries())
}

func Test_FromEvent_PlacesMothersContiguously(t *testing.T) {
	// arrange
	bt := fixtures.NewBasicTree(genevent.WithEventNumber(12))

	// act
	b, err := FromEvent(bt.Event)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 12, b.EventNumber())
	assert.Equal(t, 8, b.NumberEntries())
	assert.Equal(t, []int{2212, 2212, 1, -2, -24, 22, 1, -2}, ids(b))

	tests := []struct {
		index    int
		parents  [2]int
		children [2]int
	}{
		{index: 1, parents: [2]int{0, 0}, children: [2]int{3, 3}},
		{index: 3, parents: [2]int{1, 1}, children: [2]int{5, 6}},
		{index: 5, parents: [2]int{3, 4}, children: [2]int{7, 8}},
		{index: 6, parents: [2]int{3, 4}, children: [2]int{0, 0}},
		{index: 8, parents: [2]int{5, 5}, children: [2]int{0, 0}},
	}

	for _, tt := range tests {
		entry, ok := b.Entry(tt.index)
		assert.True(t, ok)
		assert.Equal(t, tt.parents, entry.Parents, "parents of %d", tt.index)
		assert.Equal(t, tt.children, entry.Children, "children of %d", tt.index)
	}

	assert.Equal(t, 2, b.NumberParents(5))
	assert.Equal(t, 2, b.NumberChildren(3))
	assert.Equal(t, 2, b.NumberChildrenExact(3))
	assert.Equal(t, 0, b.NumberParents(1))
}

func Test_FromEvent_When_TooManyParticles_ReturnsOverflow(t *testing.T) {
	bt := fixtures.NewBasicTree()

	_, err := FromEvent(bt.Event, WithMaxEntries(7))

	assert.ErrorIs(t, err, ErrBlockOverflow)
}

func Test_ToEvent_RebuildsGraph(t *testing.T) {
	// arrange
	bt := fixtures.NewBasicTree()
	b, err := FromEvent(bt.Event)
	assert.NoError(t, err)

	// act
	event, err := ToEvent(b)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 8, event.ParticleCount())
	assert.Equal(t, 4, event.VertexCount())

	photon, _ := event.Particle(6)
	ancestors, err := genevent.FindAncestors(photon, genevent.MatchAll)
	assert.NoError(t, err)
	assert.Equal(t, 4, ancestors.Len())

	stable, err := genevent.FindParticles(event, genevent.FieldStatus.Eq(1))
	assert.NoError(t, err)
	assert.Equal(t, []int{6, 7, 8}, barcodes(stable.Results()))
}

func Test_ToEvent_When_MotherRangesOverlap_ReturnsError(t *testing.T) {
	b := newBlock(t)
	assert.NoError(t, b.SetNumberEntries(4))
	assert.NoError(t, b.SetParents(3, 1, 2))
	assert.NoError(t, b.SetParents(4, 2, 2))

	_, err := ToEvent(b)

	assert.ErrorIs(t, err, ErrInvalidParentRange)
	assert.ErrorIs(t, err, genevent.ErrAlreadyLinked)
}

func Test_ToEvent_When_MotherOutsideBlock_ReturnsError(t *testing.T) {
	b := newBlock(t)
	assert.NoError(t, b.SetNumberEntries(2))
	assert.NoError(t, b.SetParents(2, 1, 5))

	_, err := ToEvent(b)

	assert.ErrorIs(t, err, ErrInvalidParentRange)
}

func Test_ToEvent_When_EntryIsItsOwnMother(t *testing.T) {
	// arrange
	b := newBlock(t)
	assert.NoError(t, b.SetNumberEntries(2))
	assert.NoError(t, b.SetParents(2, 1, 2))

	// act
	_, err := ToEvent(b)

	// assert
	assert.ErrorIs(t, err, ErrInvalidParentRange)
	assert.ErrorIs(t, err, genevent.ErrAlreadyLinked)
}

func Test_FixDaughters(t *testing.T) {
	t.Run("proper record", func(t *testing.T) {
		bt := fixtures.NewBasicTree()
		b, err := FromEvent(bt.Event)
		assert.NoError(t, err)
		for i := 1; i <= b.NumberEntries(); i++ {
			assert.NoError(t, b.SetChildren(i, 0, 0))
		}

		assert.True(t, b.FixDaughters())
		assert.Equal(t, 5, b.FirstChild(3))
		assert.Equal(t, 6, b.LastChild(3))
		assert.Equal(t, 7, b.FirstChild(5))
	})

	t.Run("daughters not contiguous", func(t *testing.T) {
		b := newBlock(t)
		assert.NoError(t, b.SetNumberEntries(4))
		assert.NoError(t, b.SetParents(2, 1, 1))
		assert.NoError(t, b.SetParents(4, 1, 1))

		assert.False(t, b.FixDaughters())
		assert.Equal(t, 3, b.NumberChildren(1))
		assert.Equal(t, 2, b.NumberChildrenExact(1))
	})

	t.Run("mother range beyond the block", func(t *testing.T) {
		b := newBlock(t)
		assert.NoError(t, b.SetNumberEntries(2))
		assert.NoError(t, b.SetParents(2, 1, math.MaxInt))

		b.FixDaughters()

		assert.Equal(t, 2, b.FirstChild(1))
		assert.Equal(t, 2, b.LastChild(1))
		assert.Equal(t, 0, b.FirstChild(2), "an entry is never its own daughter")
	})

	t.Run("mother range starting before the block", func(t *testing.T) {
		b := newBlock(t)
		assert.NoError(t, b.SetNumberEntries(3))
		assert.NoError(t, b.SetParents(3, math.MinInt, 1))

		b.FixDaughters()

		assert.Equal(t, 3, b.FirstChild(1))
		assert.Equal(t, 0, b.FirstChild(2))
	})
}

func Test_Block_Print(t *testing.T) {
	bt := fixtures.NewBasicTree(genevent.WithEventNumber(1))
	bt.P6.SetGeneratedMass(80.799)
	b, err := FromEvent(bt.Event)
	assert.NoError(t, err)
	out := &bytes.Buffer{}

	assert.NoError(t, b.Print(out))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Len(t, lines, 10)
	assert.Equal(t, " Event No.: 1", lines[0])
	assert.Equal(t, "    1   2212   0 -    0     3 -    3     0.00     0.00  7000.00  7000.00     0.00", lines[2])
	assert.Equal(t, "    5    -24   3 -    4     7 -    8     1.52   -20.68   -20.61    85.92    80.80", lines[6])
	assert.ErrorIs(t, b.PrintParticle(out, 9), ErrIndexOutOfRange)
}

func ids(b *Block) []int {
	result := make([]int, b.NumberEntries())
	for i := range result {
		result[i] = b.ID(i + 1)
	}

	return result
}

func barcodes(particles []*genevent.Particle) []int {
	result := make([]int, len(particles))
	for i, p := range particles {
		result[i] = p.Barcode()
	}

	return result
}
