package postgresengine_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	. "github.com/AntonStoeckl/genevent-go/genevent/postgresengine" //nolint:revive
)

func Test_BuildRecordFilter_MatchingAnyRecord(t *testing.T) {
	// act
	filter := BuildRecordFilter().MatchingAnyRecord()

	// assert
	assert.Equal(t, uuid.Nil, filter.RunID())
	_, hasFrom := filter.EventNumberFrom()
	_, hasUntil := filter.EventNumberUntil()
	assert.False(t, hasFrom)
	assert.False(t, hasUntil)
	assert.True(t, filter.RecordedFrom().IsZero())
	assert.True(t, filter.RecordedUntil().IsZero())
}

func Test_BuildRecordFilter_WithAllCriteria(t *testing.T) {
	// arrange
	runID := uuid.New()
	from := time.Unix(1000, 0).UTC()
	until := time.Unix(2000, 0).UTC()

	// act
	filter := BuildRecordFilter().
		ForRun(runID).
		WithEventNumberFrom(3).
		WithEventNumberUntil(7).
		RecordedFrom(from).
		RecordedUntil(until).
		Finalize()

	// assert
	assert.Equal(t, runID, filter.RunID())
	numberFrom, hasFrom := filter.EventNumberFrom()
	numberUntil, hasUntil := filter.EventNumberUntil()
	assert.True(t, hasFrom)
	assert.True(t, hasUntil)
	assert.Equal(t, 3, numberFrom)
	assert.Equal(t, 7, numberUntil)
	assert.Equal(t, from, filter.RecordedFrom())
	assert.Equal(t, until, filter.RecordedUntil())
}

func Test_BuildRecordFilter_WithEventNumbersBetween_When_BoundsAreSwapped(t *testing.T) {
	// act
	filter := BuildRecordFilter().WithEventNumbersBetween(9, 2).Finalize()

	// assert
	numberFrom, _ := filter.EventNumberFrom()
	numberUntil, _ := filter.EventNumberUntil()
	assert.Equal(t, 2, numberFrom)
	assert.Equal(t, 9, numberUntil)
}

func Test_BuildRecordFilter_EventNumberZero_IsAValidBound(t *testing.T) {
	// act
	filter := BuildRecordFilter().WithEventNumberFrom(0).Finalize()

	// assert
	numberFrom, hasFrom := filter.EventNumberFrom()
	assert.True(t, hasFrom)
	assert.Equal(t, 0, numberFrom)
}

func Test_BuildRecordFilter_StepsReturnCopies(t *testing.T) {
	// arrange
	base := BuildRecordFilter().WithEventNumberFrom(1)

	// act
	narrowed := base.WithEventNumberUntil(5).Finalize()
	unchanged := base.Finalize()

	// assert
	_, narrowedHasUntil := narrowed.EventNumberUntil()
	_, unchangedHasUntil := unchanged.EventNumberUntil()
	assert.True(t, narrowedHasUntil)
	assert.False(t, unchangedHasUntil)
}
