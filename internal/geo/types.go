package geo

// Type is the GeoJSON discriminator ("type" member) of an object.
type Type int

// Known GeoJSON object types. The zero value is not a valid type.
const (
	TypePoint Type = iota + 1
	TypeMultiPoint
	TypeLineString
	TypeMultiLineString
	TypePolygon
	TypeMultiPolygon
	TypeGeometryCollection
	TypeFeature
	TypeFeatureCollection
)

var typeNames = [...]string{
	TypePoint:              "Point",
	TypeMultiPoint:         "MultiPoint",
	TypeLineString:         "LineString",
	TypeMultiLineString:    "MultiLineString",
	TypePolygon:            "Polygon",
	TypeMultiPolygon:       "MultiPolygon",
	TypeGeometryCollection: "GeometryCollection",
	TypeFeature:            "Feature",
	TypeFeatureCollection:  "FeatureCollection",
}

// String returns the canonical GeoJSON name of the type.
func (t Type) String() string {
	if t < TypePoint || t > TypeFeatureCollection {
		return "Unknown"
	}
	return typeNames[t]
}

// IsGeometry reports whether the type is one of the seven geometry kinds.
func (t Type) IsGeometry() bool {
	return t >= TypePoint && t <= TypeGeometryCollection
}

// ParseType maps a case-sensitive GeoJSON type name to its Type.
func ParseType(name string) (Type, bool) {
	for t := TypePoint; t <= TypeFeatureCollection; t++ {
		if typeNames[t] == name {
			return t, true
		}
	}
	return 0, false
}
