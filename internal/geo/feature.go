package geo

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Properties is the opaque member map of a Feature. Values are kept as raw JSON
// and never interpreted by the decoder.
type Properties map[string]json.RawMessage

// PropertiesFrom marshals every value of m into a Properties map.
func PropertiesFrom(m map[string]any) (Properties, error) {
	props := make(Properties, len(m))
	for k, v := range m {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal property %q: %w", k, err)
		}
		props[k] = raw
	}
	return props, nil
}

// Keys returns the property names in sorted order.
func (p Properties) Keys() []string {
	return slices.Sorted(maps.Keys(p))
}

func (p Properties) clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = slices.Clone(v)
	}
	return out
}

type idKind uint8

const (
	idNone idKind = iota
	idString
	idNumber
)

// ID is the optional Feature identifier: absent, a string or a number.
type ID struct {
	kind idKind
	str  string
	num  float64
}

// StringID returns a string identifier.
func StringID(s string) ID { return ID{kind: idString, str: s} }

// NumberID returns a numeric identifier.
func NumberID(n float64) ID { return ID{kind: idNumber, num: n} }

// IsZero reports whether no identifier is set.
func (id ID) IsZero() bool { return id.kind == idNone }

// Str returns the identifier if it is a string.
func (id ID) Str() (string, bool) { return id.str, id.kind == idString }

// Num returns the identifier if it is a number.
func (id ID) Num() (float64, bool) { return id.num, id.kind == idNumber }

// Feature is a geometry with properties and an optional identifier.
type Feature struct {
	geometry   Geometry
	properties Properties
	id         ID
}

// NewFeature returns a Feature owning copies of g and props. g may be nil.
func NewFeature(g Geometry, props Properties) *Feature {
	return &Feature{geometry: cloneGeometry(g), properties: props.clone()}
}

// WithID returns a copy of f carrying id.
func (f *Feature) WithID(id ID) *Feature {
	out := NewFeature(f.geometry, f.properties)
	out.id = id
	return out
}

// Geometry returns the feature geometry, nil when absent.
func (f *Feature) Geometry() Geometry { return f.geometry }

// Properties returns a copy of the feature properties.
func (f *Feature) Properties() Properties { return f.properties.clone() }

// Property returns the raw JSON value stored under key.
func (f *Feature) Property(key string) (json.RawMessage, bool) {
	v, ok := f.properties[key]
	return slices.Clone(v), ok
}

// ID returns the feature identifier.
func (f *Feature) ID() ID { return f.id }

// FeatureCollection is an ordered list of features.
type FeatureCollection struct {
	features []*Feature
}

// NewFeatureCollection returns a FeatureCollection owning copies of fs.
func NewFeatureCollection(fs ...*Feature) *FeatureCollection {
	return &FeatureCollection{features: cloneAll(fs, (*Feature).clone)}
}

// Len returns the number of features.
func (c *FeatureCollection) Len() int { return len(c.features) }

// Features returns the features.
func (c *FeatureCollection) Features() []*Feature { return slices.Clone(c.features) }

func (*Feature) Type() Type           { return TypeFeature }
func (*FeatureCollection) Type() Type { return TypeFeatureCollection }

func (*Feature) sealed()           {}
func (*FeatureCollection) sealed() {}

func (f *Feature) clone() *Feature {
	if f == nil {
		return nil
	}
	return f.WithID(f.id)
}
