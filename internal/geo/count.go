package geo

// CountPositions returns the number of positions held anywhere in o.
// It is used to bound the work of Equivalent on untrusted input.
func CountPositions(o Object) int {
	if isNil(o) {
		return 0
	}

	switch o := o.(type) {
	case *Point:
		return 1
	case *MultiPoint:
		return len(o.positions)
	case *LineString:
		return len(o.positions)
	case *MultiLineString:
		return countLines(o.lines)
	case *Polygon:
		return countLines(o.rings)
	case *MultiPolygon:
		n := 0
		for _, p := range o.polygons {
			if p != nil {
				n += countLines(p.rings)
			}
		}
		return n
	case *GeometryCollection:
		n := 0
		for _, g := range o.geometries {
			n += CountPositions(g)
		}
		return n
	case *Feature:
		return CountPositions(o.geometry)
	case *FeatureCollection:
		n := 0
		for _, f := range o.features {
			n += CountPositions(f)
		}
		return n
	}

	return 0
}

func countLines(ls []*LineString) int {
	n := 0
	for _, l := range ls {
		if l != nil {
			n += len(l.positions)
		}
	}
	return n
}
