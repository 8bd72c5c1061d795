package codec

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/genevent-go/genevent"
)

var ErrParticleIndexOutOfRange = errors.New("vertex refers to a particle index out of range")
var ErrInconsistentGraph = errors.New("event data does not form a valid graph")
var ErrNilRegistry = errors.New("nil attribute registry supplied")

// AttributeDecoder recreates attributes from their type name and marshalled payload.
// *attributes.Registry implements it.
type AttributeDecoder interface {
	Decode(typeName string, data []byte) (genevent.Attribute, error)
}

// EventData is the serializable form of one version of an Event.
type EventData struct {
	EventNumber int             `json:"event_number" yaml:"event_number"`
	VersionName string          `json:"version_name" yaml:"version_name"`
	Particles   []ParticleData  `json:"particles" yaml:"particles"`
	Vertices    []VertexData    `json:"vertices" yaml:"vertices"`
	Attributes  []AttributeData `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// ParticleData holds the intrinsic properties of a particle, links are kept in VertexData.
type ParticleData struct {
	PDGID         int        `json:"pdg_id" yaml:"pdg_id"`
	Status        int        `json:"status" yaml:"status"`
	StatusSubcode int        `json:"status_subcode" yaml:"status_subcode"`
	IsMassSet     bool       `json:"is_mass_set" yaml:"is_mass_set"`
	Mass          float64    `json:"mass" yaml:"mass"`
	Momentum      [4]float64 `json:"momentum" yaml:"momentum,flow"`
}

// VertexData refers to its particles by their index in EventData.Particles.
type VertexData struct {
	Position     [4]float64 `json:"position" yaml:"position,flow"`
	ParticlesIn  []int      `json:"particles_in" yaml:"particles_in,flow"`
	ParticlesOut []int      `json:"particles_out" yaml:"particles_out,flow"`
}

// AttributeData is a named attribute with its marshalled payload.
type AttributeData struct {
	Name        string              `json:"name" yaml:"name"`
	Type        string              `json:"type" yaml:"type"`
	Payload     jsoniter.RawMessage `json:"payload" yaml:"-"`
	Description string              `json:"-" yaml:"description"`
}

// WriteData snapshots the particles, vertices and attributes live in the current version of event.
// Links to particles deleted in that version are dropped.
func WriteData(event *genevent.Event) (EventData, error) {
	versionName, err := event.VersionName(event.CurrentVersion())
	if err != nil {
		return EventData{}, err
	}

	data := EventData{
		EventNumber: event.EventNumber(),
		VersionName: versionName,
	}

	particles := event.Particles()
	indexByBarcode := make(map[int]int, len(particles))
	data.Particles = make([]ParticleData, 0, len(particles))

	for i, p := range particles {
		indexByBarcode[p.Barcode()] = i
		momentum := p.Momentum()

		data.Particles = append(data.Particles, ParticleData{
			PDGID:         p.PDGID(),
			Status:        p.Status(),
			StatusSubcode: p.StatusSubcode(),
			IsMassSet:     p.IsGeneratedMassSet(),
			Mass:          p.GeneratedMass(),
			Momentum:      [4]float64{momentum.Px(), momentum.Py(), momentum.Pz(), momentum.E()},
		})
	}

	toIndices := func(list []*genevent.Particle) []int {
		indices := make([]int, 0, len(list))
		for _, p := range list {
			if index, ok := indexByBarcode[p.Barcode()]; ok {
				indices = append(indices, index)
			}
		}

		return indices
	}

	vertices := event.Vertices()
	data.Vertices = make([]VertexData, 0, len(vertices))

	for _, v := range vertices {
		position := v.Position()

		data.Vertices = append(data.Vertices, VertexData{
			Position:     [4]float64{position.X(), position.Y(), position.Z(), position.T()},
			ParticlesIn:  toIndices(v.ParticlesIn()),
			ParticlesOut: toIndices(v.ParticlesOut()),
		})
	}

	for _, name := range event.AttributeNames() {
		attribute, _ := event.Attribute(name)

		payload, err := attribute.MarshalAttribute()
		if err != nil {
			return EventData{}, fmt.Errorf("marshal attribute %q: %w", name, err)
		}

		data.Attributes = append(data.Attributes, AttributeData{
			Name:        name,
			Type:        attribute.TypeName(),
			Payload:     payload,
			Description: attribute.Describe(),
		})
	}

	return data, nil
}

// ReadData builds a new Event from data.
//
// Particles are added first, in order, so they get the barcodes 1..n; vertices follow in order
// and get -1..-m. Attributes are recreated through decoder.
func ReadData(data EventData, decoder AttributeDecoder, options ...genevent.Option) (*genevent.Event, error) {
	if decoder == nil && len(data.Attributes) > 0 {
		return nil, ErrNilRegistry
	}

	event := genevent.NewEvent(append([]genevent.Option{genevent.WithEventNumber(data.EventNumber)}, options...)...)

	particles := make([]*genevent.Particle, len(data.Particles))
	for i, pd := range data.Particles {
		p := genevent.NewParticle(genevent.NewFourVector(pd.Momentum[0], pd.Momentum[1], pd.Momentum[2], pd.Momentum[3]), pd.PDGID, pd.Status)
		p.SetStatusSubcode(pd.StatusSubcode)

		if pd.IsMassSet {
			p.SetGeneratedMass(pd.Mass)
		}

		if err := event.AddParticle(p); err != nil {
			return nil, errors.Join(ErrInconsistentGraph, err)
		}

		particles[i] = p
	}

	for i, vd := range data.Vertices {
		v := genevent.NewVertex()
		v.SetPosition(genevent.NewFourVector(vd.Position[0], vd.Position[1], vd.Position[2], vd.Position[3]))

		if err := linkParticles(particles, vd.ParticlesIn, v.AddParticleIn); err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}

		if err := linkParticles(particles, vd.ParticlesOut, v.AddParticleOut); err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}

		if err := event.AddVertex(v); err != nil {
			return nil, errors.Join(ErrInconsistentGraph, fmt.Errorf("vertex %d: %w", i, err))
		}
	}

	for _, ad := range data.Attributes {
		attribute, err := decoder.Decode(ad.Type, ad.Payload)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", ad.Name, err)
		}

		if err = event.AddAttribute(ad.Name, attribute); err != nil {
			return nil, err
		}
	}

	return event, nil
}

func linkParticles(particles []*genevent.Particle, indices []int, add func(*genevent.Particle) error) error {
	for _, index := range indices {
		if index < 0 || index >= len(particles) {
			return fmt.Errorf("%w: %d of %d", ErrParticleIndexOutOfRange, index, len(particles))
		}

		if err := add(particles[index]); err != nil {
			return errors.Join(ErrInconsistentGraph, err)
		}
	}

	return nil
}
