package codec

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/genevent-go/genevent"
)

var ErrEmptyRunID = errors.New("empty run id supplied")

// Records is an alias type for a slice of Record
type Records = []Record

// Record is a DTO (data transfer object) used by event archives to append encoded events and query them back.
//
// While its properties are exported, it should only be constructed with BuildRecord or BuildRecordFromPayload.
type Record struct {
	RunID          uuid.UUID
	EventNumber    int
	RecordedAt     time.Time
	PayloadJSON    []byte
	SequenceNumber uint
}

// BuildRecord is a factory method for Record.
//
// It encodes the current version of event. Returns an error if runID is the nil UUID.
func BuildRecord(runID uuid.UUID, event *genevent.Event, recordedAt time.Time) (Record, error) {
	payload, err := EncodeEvent(event)
	if err != nil {
		return Record{}, err
	}

	return BuildRecordFromPayload(runID, event.EventNumber(), recordedAt, payload)
}

// BuildRecordFromPayload is a factory method for Record with an already encoded event.
//
// Returns an error if runID is the nil UUID or payloadJSON is not valid JSON.
func BuildRecordFromPayload(runID uuid.UUID, eventNumber int, recordedAt time.Time, payloadJSON []byte) (Record, error) {
	if runID == uuid.Nil {
		return Record{}, ErrEmptyRunID
	}

	if !json.Valid(payloadJSON) {
		return Record{}, ErrInvalidEventJSON
	}

	return Record{
		RunID:       runID,
		EventNumber: eventNumber,
		RecordedAt:  recordedAt,
		PayloadJSON: payloadJSON,
	}, nil
}

// Event decodes the archived payload into a fresh Event.
func (r Record) Event(decoder AttributeDecoder, options ...genevent.Option) (*genevent.Event, error) {
	return DecodeEvent(r.PayloadJSON, decoder, options...)
}
