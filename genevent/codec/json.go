package codec

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/genevent-go/genevent"
)

var ErrInvalidEventJSON = errors.New("event json is not valid")

// json keeps full float64 precision, ConfigFastest would truncate momenta.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Encode renders data as JSON.
func Encode(data EventData) ([]byte, error) {
	return json.Marshal(data)
}

// Decode parses JSON produced by Encode.
func Decode(payload []byte) (EventData, error) {
	if !json.Valid(payload) {
		return EventData{}, ErrInvalidEventJSON
	}

	var data EventData
	if err := json.Unmarshal(payload, &data); err != nil {
		return EventData{}, errors.Join(ErrInvalidEventJSON, err)
	}

	return data, nil
}

// EncodeEvent is a shortcut for WriteData followed by Encode.
func EncodeEvent(event *genevent.Event) ([]byte, error) {
	data, err := WriteData(event)
	if err != nil {
		return nil, err
	}

	return Encode(data)
}

// DecodeEvent is a shortcut for Decode followed by ReadData.
func DecodeEvent(payload []byte, decoder AttributeDecoder, options ...genevent.Option) (*genevent.Event, error) {
	data, err := Decode(payload)
	if err != nil {
		return nil, err
	}

	return ReadData(data, decoder, options...)
}
