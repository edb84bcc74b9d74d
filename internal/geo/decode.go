package geo

import (
	"encoding/json"
	"math"
	"strconv"
)

const arbitraryContext = "Error while parsing arbitrary GeoJSON: "

// Decoder turns GeoJSON text into Objects. The zero value decodes with the
// GJSON bridge and a context prefix derived from the requested type.
type Decoder struct {
	// Bridge parses the text. Nil means GJSON.
	Bridge Bridge
	// Context prefixes every error message. Empty means
	// "Error while parsing <Type>: " for typed decodes and
	// "Error while parsing arbitrary GeoJSON: " otherwise.
	Context string
}

var defaultDecoder Decoder

// Decode decodes a GeoJSON document of any supported type.
func Decode(text string) (Object, error) { return defaultDecoder.Decode(text) }

// DecodeNode decodes an already parsed JSON node.
func DecodeNode(n Node) (Object, error) { return defaultDecoder.DecodeNode(n) }

// DecodePoint decodes a document that must be a Point.
func DecodePoint(text string) (*Point, error) {
	return decodeAs[*Point](defaultDecoder, text, TypePoint)
}

// DecodeMultiPoint decodes a document that must be a MultiPoint.
func DecodeMultiPoint(text string) (*MultiPoint, error) {
	return decodeAs[*MultiPoint](defaultDecoder, text, TypeMultiPoint)
}

// DecodeLineString decodes a document that must be a LineString.
func DecodeLineString(text string) (*LineString, error) {
	return decodeAs[*LineString](defaultDecoder, text, TypeLineString)
}

// DecodeMultiLineString decodes a document that must be a MultiLineString.
func DecodeMultiLineString(text string) (*MultiLineString, error) {
	return decodeAs[*MultiLineString](defaultDecoder, text, TypeMultiLineString)
}

// DecodePolygon decodes a document that must be a Polygon.
func DecodePolygon(text string) (*Polygon, error) {
	return decodeAs[*Polygon](defaultDecoder, text, TypePolygon)
}

// DecodeMultiPolygon decodes a document that must be a MultiPolygon.
func DecodeMultiPolygon(text string) (*MultiPolygon, error) {
	return decodeAs[*MultiPolygon](defaultDecoder, text, TypeMultiPolygon)
}

// DecodeGeometryCollection decodes a document that must be a GeometryCollection.
func DecodeGeometryCollection(text string) (*GeometryCollection, error) {
	return decodeAs[*GeometryCollection](defaultDecoder, text, TypeGeometryCollection)
}

// DecodeFeature decodes a document that must be a Feature.
func DecodeFeature(text string) (*Feature, error) {
	return decodeAs[*Feature](defaultDecoder, text, TypeFeature)
}

// DecodeFeatureCollection decodes a document that must be a FeatureCollection.
func DecodeFeatureCollection(text string) (*FeatureCollection, error) {
	return decodeAs[*FeatureCollection](defaultDecoder, text, TypeFeatureCollection)
}

// TypeOf reads only the discriminator of a document.
func TypeOf(text string) (Type, error) {
	s := decodeState{ctx: arbitraryContext}
	n, err := defaultDecoder.parse(text, s.ctx)
	if err != nil {
		return 0, err
	}
	return s.objectType(n, "")
}

// Decode decodes a GeoJSON document of any supported type.
func (d Decoder) Decode(text string) (Object, error) {
	return d.DecodeType(text, 0)
}

// DecodeType decodes text and requires its discriminator to equal want.
// A zero want accepts any type.
func (d Decoder) DecodeType(text string, want Type) (Object, error) {
	s := decodeState{ctx: d.context(want)}
	n, err := d.parse(text, s.ctx)
	if err != nil {
		return nil, err
	}
	return s.object(n, "", want)
}

// DecodeNode decodes an already parsed JSON node of any supported type.
func (d Decoder) DecodeNode(n Node) (Object, error) {
	s := decodeState{ctx: d.context(0)}
	if n == nil || !n.Exists() {
		return nil, s.fail(ErrEmptyInput, "", "")
	}
	return s.object(n, "", 0)
}

func (d Decoder) context(want Type) string {
	switch {
	case d.Context != "":
		return d.Context
	case want == 0:
		return arbitraryContext
	default:
		return "Error while parsing " + want.String() + ": "
	}
}

func (d Decoder) parse(text, ctx string) (Node, error) {
	if text == "" {
		return nil, &DecodeError{Context: ctx, Kind: ErrEmptyInput}
	}

	bridge := d.Bridge
	if bridge == nil {
		bridge = GJSON
	}

	n, err := bridge.Parse(text)
	if err != nil {
		return nil, &DecodeError{Context: ctx, Kind: ErrMalformedJSON}
	}
	return n, nil
}

func decodeAs[T Object](d Decoder, text string, want Type) (T, error) {
	var zero T
	obj, err := d.DecodeType(text, want)
	if err != nil {
		return zero, err
	}
	return obj.(T), nil
}

// decodeState carries the error context through one recursive decode.
type decodeState struct {
	ctx string
}

func (s *decodeState) fail(kind error, path, key string) error {
	return &DecodeError{Context: s.ctx, Kind: kind, Key: key, Path: path}
}

func (s *decodeState) objectType(n Node, path string) (Type, error) {
	if !n.IsObject() {
		return 0, s.fail(ErrNotAnObject, path, "")
	}

	tn := n.Get("type")
	if !tn.IsString() {
		return 0, s.fail(ErrUnknownType, path, "type")
	}

	t, ok := ParseType(tn.Str())
	if !ok {
		return 0, s.fail(ErrUnknownType, path, "type")
	}
	return t, nil
}

// object decodes n, requiring type want unless want is zero.
func (s *decodeState) object(n Node, path string, want Type) (Object, error) {
	t, err := s.objectType(n, path)
	if err != nil {
		return nil, err
	}

	if want != 0 && t != want {
		return nil, &DecodeError{Context: s.ctx, Kind: ErrTypeMismatch, Want: want, Path: path}
	}

	switch t {
	case TypeFeature:
		f, err := s.feature(n, path)
		if err != nil {
			return nil, err
		}
		return f, nil
	case TypeFeatureCollection:
		fc, err := s.featureCollection(n, path)
		if err != nil {
			return nil, err
		}
		return fc, nil
	default:
		return s.geometryOf(n, path, t)
	}
}

// geometry decodes n as any geometry kind, rejecting features.
func (s *decodeState) geometry(n Node, path string) (Geometry, error) {
	t, err := s.objectType(n, path)
	if err != nil {
		return nil, err
	}
	if !t.IsGeometry() {
		return nil, s.fail(ErrUnknownType, path, "type")
	}
	return s.geometryOf(n, path, t)
}

func (s *decodeState) geometryOf(n Node, path string, t Type) (Geometry, error) {
	if t == TypeGeometryCollection {
		gc, err := s.geometryCollection(n, path)
		if err != nil {
			return nil, err
		}
		return gc, nil
	}

	coords, err := s.member(n, path, "coordinates")
	if err != nil {
		return nil, err
	}
	cpath := join(path, "coordinates")

	switch t {
	case TypePoint:
		p, err := s.position(coords, cpath)
		if err != nil {
			return nil, err
		}
		return &Point{pos: p}, nil
	case TypeMultiPoint:
		ps, err := s.positions(coords, cpath)
		if err != nil {
			return nil, err
		}
		return &MultiPoint{positions: ps}, nil
	case TypeLineString:
		l, err := s.lineString(coords, cpath)
		if err != nil {
			return nil, err
		}
		return l, nil
	case TypeMultiLineString:
		lines, err := s.lineStrings(coords, cpath)
		if err != nil {
			return nil, err
		}
		return &MultiLineString{lines: lines}, nil
	case TypePolygon:
		p, err := s.polygon(coords, cpath)
		if err != nil {
			return nil, err
		}
		return p, nil
	case TypeMultiPolygon:
		elems, err := s.array(coords, cpath)
		if err != nil {
			return nil, err
		}
		polys := make([]*Polygon, len(elems))
		for i, e := range elems {
			if polys[i], err = s.polygon(e, join(cpath, i)); err != nil {
				return nil, err
			}
		}
		return &MultiPolygon{polygons: polys}, nil
	}

	return nil, s.fail(ErrUnknownType, path, "type")
}

func (s *decodeState) geometryCollection(n Node, path string) (*GeometryCollection, error) {
	members, err := s.member(n, path, "geometries")
	if err != nil {
		return nil, err
	}
	gpath := join(path, "geometries")

	elems := members.Elements()
	out := make([]Geometry, len(elems))
	for i, e := range elems {
		if out[i], err = s.geometry(e, join(gpath, i)); err != nil {
			return nil, err
		}
	}
	return &GeometryCollection{geometries: out}, nil
}

func (s *decodeState) feature(n Node, path string) (*Feature, error) {
	f := &Feature{properties: Properties{}}

	if g := n.Get("geometry"); g.Exists() && !g.IsNull() {
		geom, err := s.geometry(g, join(path, "geometry"))
		if err != nil {
			return nil, err
		}
		f.geometry = geom
	}

	if props := n.Get("properties"); props.Exists() && !props.IsNull() {
		if !props.IsObject() {
			return nil, s.fail(ErrNotAnObject, join(path, "properties"), "properties")
		}
		props.ForEachMember(func(key string, value Node) bool {
			f.properties[key] = json.RawMessage(value.Raw())
			return true
		})
	}

	switch id := n.Get("id"); {
	case !id.Exists() || id.IsNull():
	case id.IsString():
		f.id = StringID(id.Str())
	case id.IsNumber() && finite(id.Float()):
		f.id = NumberID(id.Float())
	default:
		return nil, s.fail(ErrInvalidID, join(path, "id"), "id")
	}

	return f, nil
}

func (s *decodeState) featureCollection(n Node, path string) (*FeatureCollection, error) {
	members, err := s.member(n, path, "features")
	if err != nil {
		return nil, err
	}
	fpath := join(path, "features")

	elems := members.Elements()
	out := make([]*Feature, len(elems))
	for i, e := range elems {
		obj, err := s.object(e, join(fpath, i), TypeFeature)
		if err != nil {
			return nil, err
		}
		out[i] = obj.(*Feature)
	}
	return &FeatureCollection{features: out}, nil
}

// member returns the array stored under key.
func (s *decodeState) member(n Node, path, key string) (Node, error) {
	m := n.Get(key)
	if !m.Exists() {
		return nil, s.fail(ErrMissingKey, path, key)
	}
	if !m.IsArray() {
		return nil, s.fail(ErrNotAnArray, path, key)
	}
	return m, nil
}

func (s *decodeState) array(n Node, path string) ([]Node, error) {
	if !n.IsArray() {
		return nil, s.fail(ErrNotAnArray, path, "")
	}
	return n.Elements(), nil
}

// position reads [lon, lat] or [lon, lat, alt]. Components past the third are
// checked for being finite numbers and then dropped.
func (s *decodeState) position(n Node, path string) (Position, error) {
	elems, err := s.array(n, path)
	if err != nil {
		return Position{}, err
	}
	if len(elems) < 2 {
		return Position{}, s.fail(ErrShortPosition, path, "")
	}

	var p Position
	for i, e := range elems {
		if !e.IsNumber() {
			return Position{}, s.fail(ErrNonNumericCoordinate, join(path, i), "")
		}
		f := e.Float()
		if !finite(f) {
			return Position{}, s.fail(ErrNonNumericCoordinate, join(path, i), "")
		}
		if i < len(p.coords) {
			p.coords[i] = f
		}
	}
	p.dims = min(len(elems), len(p.coords))

	return p, nil
}

// finite rejects literals such as 1e400 that overflow float64 and cannot be
// encoded back.
func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

func (s *decodeState) positions(n Node, path string) ([]Position, error) {
	elems, err := s.array(n, path)
	if err != nil {
		return nil, err
	}

	out := make([]Position, len(elems))
	for i, e := range elems {
		if out[i], err = s.position(e, join(path, i)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *decodeState) lineString(n Node, path string) (*LineString, error) {
	ps, err := s.positions(n, path)
	if err != nil {
		return nil, err
	}
	return &LineString{positions: ps}, nil
}

func (s *decodeState) lineStrings(n Node, path string) ([]*LineString, error) {
	elems, err := s.array(n, path)
	if err != nil {
		return nil, err
	}

	out := make([]*LineString, len(elems))
	for i, e := range elems {
		if out[i], err = s.lineString(e, join(path, i)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *decodeState) polygon(n Node, path string) (*Polygon, error) {
	rings, err := s.lineStrings(n, path)
	if err != nil {
		return nil, err
	}
	return &Polygon{rings: rings}, nil
}

// join appends a gjson style path component.
func join[K string | int](path string, key K) string {
	var part string
	switch k := any(key).(type) {
	case string:
		part = k
	case int:
		part = strconv.Itoa(k)
	}

	if path == "" {
		return part
	}
	return path + "." + part
}
