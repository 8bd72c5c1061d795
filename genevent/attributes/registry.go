package attributes

import (
	"fmt"

	"github.com/AntonStoeckl/genevent-go/genevent"
)

// Registry maps attribute type names to constructors of empty attributes.
type Registry struct {
	constructors map[string]func() genevent.Attribute
}

// NewRegistry returns a Registry that knows all attribute types of this package.
func NewRegistry() *Registry {
	r := &Registry{constructors: make(map[string]func() genevent.Attribute)}

	_ = r.Register(TypePdfInfo, func() genevent.Attribute { return &PdfInfo{} })
	_ = r.Register(TypeHeavyIon, func() genevent.Attribute { return &HeavyIon{} })
	_ = r.Register(TypeCrossSection, func() genevent.Attribute { return &CrossSection{} })
	_ = r.Register(TypeWeights, func() genevent.Attribute { return NewWeights() })

	return r
}

// Register adds or replaces the constructor for typeName.
func (r *Registry) Register(typeName string, constructor func() genevent.Attribute) error {
	if typeName == "" {
		return ErrEmptyTypeName
	}

	r.constructors[typeName] = constructor

	return nil
}

// Decode creates an attribute of the given type and fills it from data.
func (r *Registry) Decode(typeName string, data []byte) (genevent.Attribute, error) {
	constructor, ok := r.constructors[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttributeType, typeName)
	}

	attribute := constructor()
	if err := attribute.UnmarshalAttribute(data); err != nil {
		return nil, err
	}

	return attribute, nil
}
