package genevent

import (
	"maps"
	"slices"
)

// Attribute is auxiliary metadata attached to an Event by name (cross sections, PDF info, weights, ...).
// The Event stores attributes outside of its identity and versioning rules and never inspects them.
type Attribute interface {
	// TypeName identifies the attribute variant for serializers.
	TypeName() string

	// Describe returns a one-line human-readable rendering.
	Describe() string

	MarshalAttribute() ([]byte, error)
	UnmarshalAttribute(data []byte) error
}

// AddAttribute attaches attribute under name, replacing any attribute of the same name.
func (e *Event) AddAttribute(name string, attribute Attribute) error {
	if name == "" {
		return ErrEmptyAttributeName
	}

	if attribute == nil {
		return ErrNilAttribute
	}

	e.attributes[name] = attribute

	return nil
}

func (e *Event) Attribute(name string) (Attribute, bool) {
	attribute, ok := e.attributes[name]
	return attribute, ok
}

// RemoveAttribute detaches the named attribute; removing an unknown name is a no-op.
func (e *Event) RemoveAttribute(name string) {
	delete(e.attributes, name)
}

// AttributeNames returns the names of all attached attributes in sorted order.
func (e *Event) AttributeNames() []string {
	return slices.Sorted(maps.Keys(e.attributes))
}

// AttributeAs returns the named attribute if it exists and has type T.
func AttributeAs[T Attribute](e *Event, name string) (T, bool) {
	var zero T

	attribute, ok := e.attributes[name]
	if !ok {
		return zero, false
	}

	typed, ok := attribute.(T)
	if !ok {
		return zero, false
	}

	return typed, true
}
