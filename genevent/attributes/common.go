package attributes

import (
	"errors"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var ErrUnknownAttributeType = errors.New("unknown attribute type")
var ErrMalformedAttribute = errors.New("malformed attribute payload")
var ErrEmptyTypeName = errors.New("empty attribute type name")

// json keeps full float64 precision, ConfigFastest would truncate momenta and weights.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

func unmarshal(data []byte, target any) error {
	if err := json.Unmarshal(data, target); err != nil {
		return errors.Join(ErrMalformedAttribute, err)
	}

	return nil
}
