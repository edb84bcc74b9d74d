package geo

import "github.com/tidwall/pretty"

// Encode returns the canonical GeoJSON text of o. Member order is fixed with
// "type" first, so equal trees always produce identical bytes. Encoding does not
// validate: invalid trees are written as they are.
func Encode(o Object) []byte {
	return GJSON.Serialize(EncodeValue(o))
}

// EncodeIndent is Encode with human friendly indentation.
func EncodeIndent(o Object) []byte {
	return pretty.Pretty(Encode(o))
}

// EncodeValue maps o onto the generic ordered tree that Encode serializes.
func EncodeValue(o Object) Value {
	if isNil(o) {
		return nil
	}

	switch o := o.(type) {
	case *Point:
		return geometryValue(o, positionValue(o.pos))
	case *MultiPoint:
		return geometryValue(o, positionsValue(o.positions))
	case *LineString:
		return geometryValue(o, positionsValue(o.positions))
	case *MultiLineString:
		return geometryValue(o, linesValue(o.lines))
	case *Polygon:
		return geometryValue(o, linesValue(o.rings))
	case *MultiPolygon:
		polys := make([]Value, len(o.polygons))
		for i, p := range o.polygons {
			if p != nil {
				polys[i] = linesValue(p.rings)
			}
		}
		return geometryValue(o, polys)
	case *GeometryCollection:
		gs := make([]Value, len(o.geometries))
		for i, g := range o.geometries {
			gs[i] = EncodeValue(g)
		}
		return Members{
			{Key: "type", Value: o.Type().String()},
			{Key: "geometries", Value: gs},
		}
	case *Feature:
		return featureValue(o)
	case *FeatureCollection:
		fs := make([]Value, len(o.features))
		for i, f := range o.features {
			fs[i] = EncodeValue(f)
		}
		return Members{
			{Key: "type", Value: o.Type().String()},
			{Key: "features", Value: fs},
		}
	}

	return nil
}

func geometryValue(g Geometry, coords Value) Members {
	return Members{
		{Key: "type", Value: g.Type().String()},
		{Key: "coordinates", Value: coords},
	}
}

func featureValue(f *Feature) Members {
	var geom Value
	if f.geometry != nil {
		geom = EncodeValue(f.geometry)
	}

	props := make(Members, 0, len(f.properties))
	for _, k := range f.properties.Keys() {
		props = append(props, Member{Key: k, Value: RawJSON(f.properties[k])})
	}

	out := Members{
		{Key: "type", Value: f.Type().String()},
		{Key: "geometry", Value: geom},
		{Key: "properties", Value: props},
	}

	if s, ok := f.id.Str(); ok {
		out = append(out, Member{Key: "id", Value: s})
	} else if n, ok := f.id.Num(); ok {
		out = append(out, Member{Key: "id", Value: n})
	}

	return out
}

func positionValue(p Position) []Value {
	out := make([]Value, p.dims)
	for i := range out {
		out[i] = p.coords[i]
	}
	return out
}

func positionsValue(ps []Position) []Value {
	out := make([]Value, len(ps))
	for i, p := range ps {
		out[i] = positionValue(p)
	}
	return out
}

func linesValue(ls []*LineString) []Value {
	out := make([]Value, len(ls))
	for i, l := range ls {
		if l != nil {
			out[i] = positionsValue(l.positions)
		}
	}
	return out
}
