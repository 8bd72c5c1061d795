package printer

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/genevent-go/genevent"
	"github.com/AntonStoeckl/genevent-go/genevent/codec"
)

// YAML writes the current version of event as a YAML document of codec.EventData.
func YAML(w io.Writer, event *genevent.Event) error {
	data, err := codec.WriteData(event)
	if err != nil {
		return err
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err = encoder.Encode(data); err != nil {
		return err
	}

	return encoder.Close()
}
