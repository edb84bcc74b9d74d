// Package geo implements a typed GeoJSON object model: decoding, validation,
// canonical encoding and order-tolerant structural comparison.
//
// Values are immutable once built. Constructors copy what they are given and
// accessors hand out copies, so a tree can be shared between goroutines freely.
package geo

import "slices"

// Object is any GeoJSON object: one of the seven geometries, a Feature or a
// FeatureCollection. The set is closed; only this package implements it.
type Object interface {
	// Type returns the GeoJSON discriminator of the object.
	Type() Type
	// IsValid runs the recursive structural checks for the object.
	IsValid() bool

	sealed()
}

// Geometry is an Object that may appear as a Feature geometry or inside a
// GeometryCollection.
type Geometry interface {
	Object
	geometry()
}

// Point wraps a single position.
type Point struct {
	pos Position
}

// NewPoint returns a Point at p.
func NewPoint(p Position) *Point {
	return &Point{pos: p}
}

// Position returns the point location.
func (p *Point) Position() Position { return p.pos }

// MultiPoint is an unordered bag of positions.
type MultiPoint struct {
	positions []Position
}

// NewMultiPoint returns a MultiPoint owning a copy of ps.
// A valid MultiPoint holds at least two positions.
func NewMultiPoint(ps ...Position) *MultiPoint {
	return &MultiPoint{positions: slices.Clone(ps)}
}

// Len returns the number of positions.
func (m *MultiPoint) Len() int { return len(m.positions) }

// At returns the i-th position.
func (m *MultiPoint) At(i int) Position { return m.positions[i] }

// Positions returns a copy of the positions.
func (m *MultiPoint) Positions() []Position { return slices.Clone(m.positions) }

// LineString is an ordered path of positions. Closed line strings are also used
// as polygon rings.
type LineString struct {
	positions []Position
}

// NewLineString returns a LineString owning a copy of ps.
func NewLineString(ps ...Position) *LineString {
	return &LineString{positions: slices.Clone(ps)}
}

// Len returns the number of positions.
func (l *LineString) Len() int { return len(l.positions) }

// At returns the i-th position.
func (l *LineString) At(i int) Position { return l.positions[i] }

// Positions returns a copy of the positions.
func (l *LineString) Positions() []Position { return slices.Clone(l.positions) }

// IsClosed reports whether the first and last positions are equal.
// Line strings with fewer than two positions are never closed.
func (l *LineString) IsClosed() bool {
	n := len(l.positions)
	return n > 1 && l.positions[0] == l.positions[n-1]
}

// IsLinearRing reports whether l is closed and has at least four positions.
func (l *LineString) IsLinearRing() bool {
	return len(l.positions) >= 4 && l.IsClosed()
}

// MultiLineString is a collection of line strings.
type MultiLineString struct {
	lines []*LineString
}

// NewMultiLineString returns a MultiLineString owning copies of ls.
func NewMultiLineString(ls ...*LineString) *MultiLineString {
	return &MultiLineString{lines: cloneAll(ls, (*LineString).clone)}
}

// Len returns the number of line strings.
func (m *MultiLineString) Len() int { return len(m.lines) }

// LineStrings returns the line strings. The slice is a copy; the elements are
// immutable and shared.
func (m *MultiLineString) LineStrings() []*LineString { return slices.Clone(m.lines) }

// Polygon is a list of linear rings; the first bounds the exterior, the rest are holes.
type Polygon struct {
	rings []*LineString
}

// NewPolygon returns a Polygon owning copies of rings.
func NewPolygon(rings ...*LineString) *Polygon {
	return &Polygon{rings: cloneAll(rings, (*LineString).clone)}
}

// NewPolygonFromRings builds a Polygon from raw position rings.
func NewPolygonFromRings(rings ...[]Position) *Polygon {
	p := &Polygon{rings: make([]*LineString, len(rings))}
	for i, r := range rings {
		p.rings[i] = NewLineString(r...)
	}
	return p
}

// Len returns the number of rings.
func (p *Polygon) Len() int { return len(p.rings) }

// Rings returns the rings, exterior first.
func (p *Polygon) Rings() []*LineString { return slices.Clone(p.rings) }

// Exterior returns the outer ring or nil for an empty polygon.
func (p *Polygon) Exterior() *LineString {
	if len(p.rings) == 0 {
		return nil
	}
	return p.rings[0]
}

// Holes returns the interior rings.
func (p *Polygon) Holes() []*LineString {
	if len(p.rings) < 2 {
		return nil
	}
	return slices.Clone(p.rings[1:])
}

// MultiPolygon is a collection of polygons.
type MultiPolygon struct {
	polygons []*Polygon
}

// NewMultiPolygon returns a MultiPolygon owning copies of ps.
func NewMultiPolygon(ps ...*Polygon) *MultiPolygon {
	return &MultiPolygon{polygons: cloneAll(ps, (*Polygon).clone)}
}

// Len returns the number of polygons.
func (m *MultiPolygon) Len() int { return len(m.polygons) }

// Polygons returns the polygons.
func (m *MultiPolygon) Polygons() []*Polygon { return slices.Clone(m.polygons) }

// GeometryCollection is a heterogeneous list of geometries, nested collections included.
type GeometryCollection struct {
	geometries []Geometry
}

// NewGeometryCollection returns a GeometryCollection owning copies of gs.
func NewGeometryCollection(gs ...Geometry) *GeometryCollection {
	return &GeometryCollection{geometries: cloneAll(gs, cloneGeometry)}
}

// Len returns the number of member geometries.
func (c *GeometryCollection) Len() int { return len(c.geometries) }

// Geometries returns the member geometries.
func (c *GeometryCollection) Geometries() []Geometry { return slices.Clone(c.geometries) }

func (*Point) Type() Type              { return TypePoint }
func (*MultiPoint) Type() Type         { return TypeMultiPoint }
func (*LineString) Type() Type         { return TypeLineString }
func (*MultiLineString) Type() Type    { return TypeMultiLineString }
func (*Polygon) Type() Type            { return TypePolygon }
func (*MultiPolygon) Type() Type       { return TypeMultiPolygon }
func (*GeometryCollection) Type() Type { return TypeGeometryCollection }

func (*Point) sealed()              {}
func (*MultiPoint) sealed()         {}
func (*LineString) sealed()         {}
func (*MultiLineString) sealed()    {}
func (*Polygon) sealed()            {}
func (*MultiPolygon) sealed()       {}
func (*GeometryCollection) sealed() {}

func (*Point) geometry()              {}
func (*MultiPoint) geometry()         {}
func (*LineString) geometry()         {}
func (*MultiLineString) geometry()    {}
func (*Polygon) geometry()            {}
func (*MultiPolygon) geometry()       {}
func (*GeometryCollection) geometry() {}

func (l *LineString) clone() *LineString {
	if l == nil {
		return nil
	}
	return NewLineString(l.positions...)
}

func (p *Polygon) clone() *Polygon {
	if p == nil {
		return nil
	}
	return NewPolygon(p.rings...)
}

func cloneGeometry(g Geometry) Geometry {
	if isNil(g) {
		return g
	}

	switch g := g.(type) {
	case *Point:
		return NewPoint(g.pos)
	case *MultiPoint:
		return NewMultiPoint(g.positions...)
	case *LineString:
		return g.clone()
	case *MultiLineString:
		return NewMultiLineString(g.lines...)
	case *Polygon:
		return g.clone()
	case *MultiPolygon:
		return NewMultiPolygon(g.polygons...)
	case *GeometryCollection:
		return NewGeometryCollection(g.geometries...)
	}

	return g
}

func cloneAll[T any](in []T, clone func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}

// isNil reports whether o is nil or a typed nil pointer.
func isNil(o Object) bool {
	switch o := o.(type) {
	case nil:
		return true
	case *Point:
		return o == nil
	case *MultiPoint:
		return o == nil
	case *LineString:
		return o == nil
	case *MultiLineString:
		return o == nil
	case *Polygon:
		return o == nil
	case *MultiPolygon:
		return o == nil
	case *GeometryCollection:
		return o == nil
	case *Feature:
		return o == nil
	case *FeatureCollection:
		return o == nil
	}
	return false
}
