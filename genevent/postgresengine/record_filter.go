package postgresengine

import (
	"time"

	"github.com/google/uuid"
)

/***** RecordFilter *****/

// RecordFilter selects archived records. The zero value matches every record.
type RecordFilter struct {
	runID            uuid.UUID
	eventNumberFrom  int
	eventNumberUntil int
	hasNumberFrom    bool
	hasNumberUntil   bool
	recordedFrom     time.Time
	recordedUntil    time.Time
}

// RunID returns the run the filter is restricted to, uuid.Nil if any run matches.
func (f RecordFilter) RunID() uuid.UUID {
	return f.runID
}

// EventNumberFrom returns the inclusive lower event number bound and whether it is set.
func (f RecordFilter) EventNumberFrom() (int, bool) {
	return f.eventNumberFrom, f.hasNumberFrom
}

// EventNumberUntil returns the inclusive upper event number bound and whether it is set.
func (f RecordFilter) EventNumberUntil() (int, bool) {
	return f.eventNumberUntil, f.hasNumberUntil
}

func (f RecordFilter) RecordedFrom() time.Time {
	return f.recordedFrom
}

func (f RecordFilter) RecordedUntil() time.Time {
	return f.recordedUntil
}

/***** RecordFilterBuilder *****/

// RecordFilterBuilder builds a RecordFilter step by step. Every step returns a modified copy,
// the builder is finished with Finalize.
type RecordFilterBuilder struct {
	filter RecordFilter
}

// BuildRecordFilter creates a RecordFilterBuilder which must eventually be finalized with Finalize() or MatchingAnyRecord().
func BuildRecordFilter() RecordFilterBuilder {
	return RecordFilterBuilder{}
}

// MatchingAnyRecord directly creates an empty RecordFilter.
func (fb RecordFilterBuilder) MatchingAnyRecord() RecordFilter {
	return RecordFilter{}
}

// ForRun restricts the filter to one run.
func (fb RecordFilterBuilder) ForRun(runID uuid.UUID) RecordFilterBuilder {
	fb.filter.runID = runID

	return fb
}

// WithEventNumberFrom sets the inclusive lower event number bound.
func (fb RecordFilterBuilder) WithEventNumberFrom(eventNumber int) RecordFilterBuilder {
	fb.filter.eventNumberFrom = eventNumber
	fb.filter.hasNumberFrom = true

	return fb
}

// WithEventNumberUntil sets the inclusive upper event number bound.
func (fb RecordFilterBuilder) WithEventNumberUntil(eventNumber int) RecordFilterBuilder {
	fb.filter.eventNumberUntil = eventNumber
	fb.filter.hasNumberUntil = true

	return fb
}

// WithEventNumbersBetween sets both event number bounds. Swapped bounds are put in order.
func (fb RecordFilterBuilder) WithEventNumbersBetween(from, until int) RecordFilterBuilder {
	if from > until {
		from, until = until, from
	}

	return fb.WithEventNumberFrom(from).WithEventNumberUntil(until)
}

// RecordedFrom sets the inclusive lower bound of the recording time. The zero time means unbounded.
func (fb RecordFilterBuilder) RecordedFrom(recordedFrom time.Time) RecordFilterBuilder {
	fb.filter.recordedFrom = recordedFrom

	return fb
}

// RecordedUntil sets the inclusive upper bound of the recording time. The zero time means unbounded.
func (fb RecordFilterBuilder) RecordedUntil(recordedUntil time.Time) RecordFilterBuilder {
	fb.filter.recordedUntil = recordedUntil

	return fb
}

// Finalize returns the RecordFilter.
func (fb RecordFilterBuilder) Finalize() RecordFilter {
	return fb.filter
}
