package geo

import "math"

// Position is a longitude/latitude pair with an optional altitude.
// It is a plain comparable value: two positions are equal when they have the same
// number of dimensions and identical components.
type Position struct {
	coords [3]float64
	dims   int
}

// Pos returns a two dimensional position.
func Pos(lon, lat float64) Position {
	return Position{coords: [3]float64{lon, lat, 0}, dims: 2}
}

// PosZ returns a position with altitude.
func PosZ(lon, lat, alt float64) Position {
	return Position{coords: [3]float64{lon, lat, alt}, dims: 3}
}

// Lon returns the longitude (X).
func (p Position) Lon() float64 { return p.coords[0] }

// Lat returns the latitude (Y).
func (p Position) Lat() float64 { return p.coords[1] }

// Alt returns the altitude and whether the position carries one.
func (p Position) Alt() (float64, bool) {
	return p.coords[2], p.dims == 3
}

// Dims returns 2 or 3. The zero Position reports 0.
func (p Position) Dims() int { return p.dims }

// Coords returns the components as a fresh slice of length Dims.
func (p Position) Coords() []float64 {
	out := make([]float64, p.dims)
	copy(out, p.coords[:p.dims])
	return out
}

// IsValid reports whether the position has two or three finite components.
func (p Position) IsValid() bool {
	if p.dims != 2 && p.dims != 3 {
		return false
	}
	for _, c := range p.coords[:p.dims] {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
