package geo

import "github.com/tidwall/gjson"

// Valid reports whether o is non-nil and structurally valid.
func Valid(o Object) bool {
	return !isNil(o) && o.IsValid()
}

// IsValid reports whether the position is finite.
func (p *Point) IsValid() bool {
	return p.pos.IsValid()
}

// IsValid requires at least two finite positions.
func (m *MultiPoint) IsValid() bool {
	return len(m.positions) > 1 && allValid(m.positions)
}

// IsValid requires at least two finite positions.
func (l *LineString) IsValid() bool {
	return len(l.positions) >= 2 && allValid(l.positions)
}

// IsValid requires a non-empty list of valid line strings.
func (m *MultiLineString) IsValid() bool {
	if len(m.lines) == 0 {
		return false
	}
	for _, l := range m.lines {
		if l == nil || !l.IsValid() {
			return false
		}
	}
	return true
}

// IsValid requires at least one ring, every ring closed with at least four
// finite positions. Ring containment is not checked.
func (p *Polygon) IsValid() bool {
	if len(p.rings) == 0 {
		return false
	}
	for _, r := range p.rings {
		if r == nil || !r.IsLinearRing() || !allValid(r.positions) {
			return false
		}
	}
	return true
}

// IsValid requires a non-empty list of valid polygons.
func (m *MultiPolygon) IsValid() bool {
	if len(m.polygons) == 0 {
		return false
	}
	for _, p := range m.polygons {
		if p == nil || !p.IsValid() {
			return false
		}
	}
	return true
}

// IsValid requires every member to be present and valid. An empty collection is valid.
func (c *GeometryCollection) IsValid() bool {
	for _, g := range c.geometries {
		if !Valid(g) {
			return false
		}
	}
	return true
}

// IsValid accepts a missing geometry; a present one must be valid, and every
// property must hold well-formed JSON.
func (f *Feature) IsValid() bool {
	if !isNil(f.geometry) && !f.geometry.IsValid() {
		return false
	}
	for _, raw := range f.properties {
		if !gjson.ValidBytes(raw) {
			return false
		}
	}
	return true
}

// IsValid requires every feature to be present and valid. An empty collection is valid.
func (c *FeatureCollection) IsValid() bool {
	for _, f := range c.features {
		if f == nil || !f.IsValid() {
			return false
		}
	}
	return true
}

func allValid(ps []Position) bool {
	for _, p := range ps {
		if !p.IsValid() {
			return false
		}
	}
	return true
}
