package geo_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woozymasta/geokit/internal/geo"
)

func TestEquivalentReordered(t *testing.T) {
	t.Parallel()

	a := mustDecodeMultiPoint(t, validMultiPoint)
	b := mustDecodeMultiPoint(t, validDiffOrder)

	assert.True(t, geo.Equivalent(a, b))
	assert.True(t, geo.Equivalent(b, a))
	assert.NotEqual(t, string(geo.Encode(a)), string(geo.Encode(b)))
}

func TestEquivalentPairs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{
			name: "multipoint multiset",
			a:    `{"type":"MultiPoint","coordinates":[[1,1],[1,1],[2,2]]}`,
			b:    `{"type":"MultiPoint","coordinates":[[2,2],[1,1],[1,1]]}`,
			want: true,
		},
		{
			name: "multipoint multiplicity differs",
			a:    `{"type":"MultiPoint","coordinates":[[1,1],[1,1],[2,2]]}`,
			b:    `{"type":"MultiPoint","coordinates":[[2,2],[2,2],[1,1]]}`,
		},
		{
			name: "altitude matters",
			a:    `{"type":"Point","coordinates":[1,2]}`,
			b:    `{"type":"Point","coordinates":[1,2,0]}`,
		},
		{
			name: "number formatting does not matter",
			a:    `{"type":"Point","coordinates":[1,2]}`,
			b:    `{"type":"Point","coordinates":[1.0,2e0]}`,
			want: true,
		},
		{
			name: "open linestring is ordered",
			a:    `{"type":"LineString","coordinates":[[0,0],[1,1],[2,2]]}`,
			b:    `{"type":"LineString","coordinates":[[2,2],[1,1],[0,0]]}`,
		},
		{
			name: "closed linestring rotated",
			a:    `{"type":"LineString","coordinates":[[0,0],[1,0],[1,1],[0,0]]}`,
			b:    `{"type":"LineString","coordinates":[[1,1],[0,0],[1,0],[1,1]]}`,
			want: true,
		},
		{
			name: "ring rotated",
			a:    `{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,4],[0,4],[0,0]]]}`,
			b:    `{"type":"Polygon","coordinates":[[[4,4],[0,4],[0,0],[4,0],[4,4]]]}`,
			want: true,
		},
		{
			name: "ring reversed",
			a:    `{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,4],[0,4],[0,0]]]}`,
			b:    `{"type":"Polygon","coordinates":[[[0,0],[0,4],[4,4],[4,0],[0,0]]]}`,
			want: true,
		},
		{
			name: "ring reversed and rotated",
			a:    `{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,4],[0,4],[0,0]]]}`,
			b:    `{"type":"Polygon","coordinates":[[[4,0],[0,0],[0,4],[4,4],[4,0]]]}`,
			want: true,
		},
		{
			name: "ring with different vertex order",
			a:    `{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,4],[0,4],[0,0]]]}`,
			b:    `{"type":"Polygon","coordinates":[[[0,0],[4,4],[4,0],[0,4],[0,0]]]}`,
		},
		{
			name: "ring with repeated vertex rotated",
			a:    `{"type":"Polygon","coordinates":[[[0,0],[0,0],[0,0],[1,1],[0,0]]]}`,
			b:    `{"type":"Polygon","coordinates":[[[0,0],[1,1],[0,0],[0,0],[0,0]]]}`,
			want: true,
		},
		{
			name: "ring with repeated vertices in another cycle",
			a:    `{"type":"Polygon","coordinates":[[[0,0],[0,0],[1,1],[1,1],[0,0]]]}`,
			b:    `{"type":"Polygon","coordinates":[[[0,0],[1,1],[0,0],[1,1],[0,0]]]}`,
		},
		{
			name: "polygon rings reordered",
			a:    polygonWithHole,
			b:    `{"type":"Polygon","coordinates":[[[100.2,0.2],[100.8,0.2],[100.8,0.8],[100.2,0.8],[100.2,0.2]],[[100.0,0.0],[101.0,0.0],[101.0,1.0],[100.0,1.0],[100.0,0.0]]]}`,
			want: true,
		},
		{
			name: "polygon ring count differs",
			a:    polygonWithHole,
			b:    `{"type":"Polygon","coordinates":[[[100.0,0.0],[101.0,0.0],[101.0,1.0],[100.0,1.0],[100.0,0.0]]]}`,
		},
		{
			name: "multilinestring reordered",
			a:    `{"type":"MultiLineString","coordinates":[[[0,0],[1,1]],[[2,2],[3,3]]]}`,
			b:    `{"type":"MultiLineString","coordinates":[[[2,2],[3,3]],[[0,0],[1,1]]]}`,
			want: true,
		},
		{
			name: "multipolygon reordered",
			a:    `{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,0]]],[[[5,5],[6,5],[6,6],[5,5]]]]}`,
			b:    `{"type":"MultiPolygon","coordinates":[[[[6,6],[5,5],[6,5],[6,6]]],[[[0,0],[1,0],[1,1],[0,0]]]]}`,
			want: true,
		},
		{
			name: "geometry collection reordered",
			a:    geometryCollection,
			b:    `{"type":"GeometryCollection","geometries":[{"type":"LineString","coordinates":[[101.0,0.0],[102.0,1.0]]},{"type":"Point","coordinates":[100.0,0.0]}]}`,
			want: true,
		},
		{
			name: "different kinds",
			a:    `{"type":"MultiPoint","coordinates":[[0,0],[1,1]]}`,
			b:    `{"type":"LineString","coordinates":[[0,0],[1,1]]}`,
		},
		{
			name: "feature properties formatting does not matter",
			a:    `{"type":"Feature","geometry":null,"properties":{"a":{"x":1,"y":[1,2]}},"id":1}`,
			b:    `{"type":"Feature","properties":{"a":{ "y":[1, 2], "x":1.0 }},"id":1.0}`,
			want: true,
		},
		{
			name: "feature property values differ",
			a:    `{"type":"Feature","geometry":null,"properties":{"a":[1,2]}}`,
			b:    `{"type":"Feature","geometry":null,"properties":{"a":[2,1]}}`,
		},
		{
			name: "feature property sets differ",
			a:    `{"type":"Feature","geometry":null,"properties":{"a":1}}`,
			b:    `{"type":"Feature","geometry":null,"properties":{"b":1}}`,
		},
		{
			name: "feature ids differ",
			a:    `{"type":"Feature","geometry":null,"properties":{},"id":"1"}`,
			b:    `{"type":"Feature","geometry":null,"properties":{},"id":1}`,
		},
		{
			name: "feature geometry missing on one side",
			a:    `{"type":"Feature","geometry":null,"properties":{}}`,
			b:    `{"type":"Feature","geometry":{"type":"Point","coordinates":[0,0]},"properties":{}}`,
		},
		{
			name: "feature geometry equivalent",
			a:    `{"type":"Feature","geometry":{"type":"MultiPoint","coordinates":[[0,0],[1,1]]},"properties":{}}`,
			b:    `{"type":"Feature","geometry":{"type":"MultiPoint","coordinates":[[1,1],[0,0]]},"properties":{}}`,
			want: true,
		},
		{
			name: "feature collection reordered",
			a:    `{"type":"FeatureCollection","features":[{"type":"Feature","geometry":null,"properties":{},"id":"a"},{"type":"Feature","geometry":null,"properties":{},"id":"b"}]}`,
			b:    `{"type":"FeatureCollection","features":[{"type":"Feature","geometry":null,"properties":{},"id":"b"},{"type":"Feature","geometry":null,"properties":{},"id":"a"}]}`,
			want: true,
		},
		{
			name: "empty collections",
			a:    `{"type":"FeatureCollection","features":[]}`,
			b:    `{"type":"FeatureCollection","features":[]}`,
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, b := mustDecode(t, tt.a), mustDecode(t, tt.b)

			assert.Equal(t, tt.want, geo.Equivalent(a, b))
			assert.Equal(t, tt.want, geo.Equivalent(b, a), "symmetry")
			assert.True(t, geo.Equivalent(a, a), "reflexivity")
		})
	}
}

func TestEquivalentNil(t *testing.T) {
	t.Parallel()

	p := geo.NewPoint(geo.Pos(0, 0))

	assert.False(t, geo.Equivalent(nil, nil))
	assert.False(t, geo.Equivalent(p, nil))
	assert.False(t, geo.Equivalent(nil, p))
	assert.False(t, geo.Equivalent(p, (*geo.Point)(nil)))
}

func TestEquivalentNilMembers(t *testing.T) {
	t.Parallel()

	a := geo.NewGeometryCollection(nil, geo.NewPoint(geo.Pos(0, 0)))
	b := geo.NewGeometryCollection(geo.NewPoint(geo.Pos(0, 0)), nil)

	assert.False(t, geo.Equivalent(a, b))
	assert.True(t, geo.Equivalent(a, a))
}

func TestEquivalentProperties(t *testing.T) {
	t.Parallel()

	props, err := geo.PropertiesFrom(map[string]any{"n": 1, "s": "x"})
	require.NoError(t, err)

	a := geo.NewFeature(nil, props)
	b := geo.NewFeature(nil, geo.Properties{"s": json.RawMessage(`"x"`), "n": json.RawMessage(`1.0`)})

	assert.True(t, geo.Equivalent(a, b))
	assert.False(t, geo.Equivalent(a, a.WithID(geo.StringID("x"))))

	t.Run("large integers keep their identity", func(t *testing.T) {
		t.Parallel()
		x := geo.NewFeature(nil, geo.Properties{"n": json.RawMessage(`12345678901234567890`)})
		y := geo.NewFeature(nil, geo.Properties{"n": json.RawMessage(`12345678901234567891`)})
		z := geo.NewFeature(nil, geo.Properties{"n": json.RawMessage(`1.2345678901234567890e19`)})

		assert.False(t, geo.Equivalent(x, y))
		assert.True(t, geo.Equivalent(x, z))
	})

	t.Run("nested numbers", func(t *testing.T) {
		t.Parallel()
		x := geo.NewFeature(nil, geo.Properties{"v": json.RawMessage(`{"a":[1,9007199254740993]}`)})
		y := geo.NewFeature(nil, geo.Properties{"v": json.RawMessage(`{ "a": [1.0, 9007199254740992] }`)})
		z := geo.NewFeature(nil, geo.Properties{"v": json.RawMessage(`{ "a": [1.0, 9007199254740993] }`)})

		assert.False(t, geo.Equivalent(x, y))
		assert.True(t, geo.Equivalent(x, z))
	})
}

func TestEquivalentPairsDuplicates(t *testing.T) {
	t.Parallel()

	// Duplicated members must pair one to one.
	ringA := []geo.Position{geo.Pos(0, 0), geo.Pos(1, 0), geo.Pos(1, 1), geo.Pos(0, 0)}
	ringB := []geo.Position{geo.Pos(1, 0), geo.Pos(1, 1), geo.Pos(0, 0), geo.Pos(1, 0)}
	ringC := []geo.Position{geo.Pos(5, 5), geo.Pos(6, 5), geo.Pos(6, 6), geo.Pos(5, 5)}

	a := geo.NewMultiLineString(geo.NewLineString(ringA...), geo.NewLineString(ringA...), geo.NewLineString(ringC...))
	b := geo.NewMultiLineString(geo.NewLineString(ringC...), geo.NewLineString(ringB...), geo.NewLineString(ringA...))
	c := geo.NewMultiLineString(geo.NewLineString(ringC...), geo.NewLineString(ringC...), geo.NewLineString(ringA...))

	assert.True(t, geo.Equivalent(a, b))
	assert.False(t, geo.Equivalent(a, c))
}

func TestEquivalentManyDuplicates(t *testing.T) {
	t.Parallel()

	const n = 300

	t.Run("multipoint with one odd position", func(t *testing.T) {
		t.Parallel()
		same := make([]geo.Position, n+1)
		odd := make([]geo.Position, n+1)
		for i := range same {
			same[i] = geo.Pos(1, 1)
			odd[i] = geo.Pos(1, 1)
		}
		odd[n] = geo.Pos(2, 2)

		a := geo.NewMultiPoint(odd...)
		b := geo.NewMultiPoint(same...)

		assert.False(t, geo.Equivalent(a, b))
		assert.False(t, geo.Equivalent(b, a))
		assert.True(t, geo.Equivalent(a, geo.NewMultiPoint(odd...)))
	})

	t.Run("collection with one odd member", func(t *testing.T) {
		t.Parallel()
		same := make([]geo.Geometry, n+1)
		odd := make([]geo.Geometry, n+1)
		for i := range same {
			same[i] = geo.NewPoint(geo.Pos(1, 1))
			odd[i] = geo.NewPoint(geo.Pos(1, 1))
		}
		odd[0] = geo.NewPoint(geo.Pos(2, 2))

		a := geo.NewGeometryCollection(odd...)
		b := geo.NewGeometryCollection(same...)

		start := time.Now()
		assert.False(t, geo.Equivalent(a, b))
		assert.False(t, geo.Equivalent(b, a))
		assert.Less(t, time.Since(start), 5*time.Second)
	})

	t.Run("reversed rings pair up", func(t *testing.T) {
		t.Parallel()
		ring := []geo.Position{geo.Pos(0, 0), geo.Pos(1, 0), geo.Pos(1, 1), geo.Pos(0, 0)}
		back := []geo.Position{geo.Pos(0, 0), geo.Pos(1, 1), geo.Pos(1, 0), geo.Pos(0, 0)}
		other := []geo.Position{geo.Pos(5, 5), geo.Pos(6, 5), geo.Pos(6, 6), geo.Pos(5, 5)}

		lines := make([]*geo.LineString, 0, n)
		mirrored := make([]*geo.LineString, 0, n)
		for i := range n {
			lines = append(lines, geo.NewLineString(ring...))
			if i%2 == 0 {
				mirrored = append(mirrored, geo.NewLineString(back...))
			} else {
				mirrored = append(mirrored, geo.NewLineString(ring...))
			}
		}

		assert.True(t, geo.Equivalent(geo.NewMultiLineString(lines...), geo.NewMultiLineString(mirrored...)))

		mirrored[n-1] = geo.NewLineString(other...)
		assert.False(t, geo.Equivalent(geo.NewMultiLineString(lines...), geo.NewMultiLineString(mirrored...)))
	})
}

func mustDecode(t *testing.T, text string) geo.Object {
	t.Helper()
	obj, err := geo.Decode(text)
	require.NoError(t, err)
	return obj
}

func mustDecodeMultiPoint(t *testing.T, text string) *geo.MultiPoint {
	t.Helper()
	mp, err := geo.DecodeMultiPoint(text)
	require.NoError(t, err)
	return mp
}
