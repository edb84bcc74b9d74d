package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woozymasta/geokit/internal/geo"
)

func TestGJSONBridge(t *testing.T) {
	t.Parallel()

	t.Run("success - literal member lookup", func(t *testing.T) {
		t.Parallel()
		root, err := geo.GJSON.Parse(`{"a.b":1,"a":{"b":2},"*":"star"}`)
		require.NoError(t, err)

		assert.InDelta(t, 1.0, root.Get("a.b").Float(), 0)
		assert.Equal(t, "star", root.Get("*").Str())
		assert.False(t, root.Get("missing").Exists())
		assert.False(t, root.Get("a").Get("missing").Exists())
	})

	t.Run("success - elements and members", func(t *testing.T) {
		t.Parallel()
		root, err := geo.GJSON.Parse(`{"list":[1,"x",null],"n":null}`)
		require.NoError(t, err)

		items := root.Get("list").Elements()
		require.Len(t, items, 3)
		assert.True(t, items[0].IsNumber())
		assert.True(t, items[1].IsString())
		assert.True(t, items[2].IsNull())
		assert.True(t, root.Get("n").IsNull())
		assert.Nil(t, root.Get("n").Elements())

		var keys []string
		root.ForEachMember(func(key string, _ geo.Node) bool {
			keys = append(keys, key)
			return true
		})
		assert.Equal(t, []string{"list", "n"}, keys)
	})

	t.Run("error - malformed text", func(t *testing.T) {
		t.Parallel()
		_, err := geo.GJSON.Parse(`{"a":`)

		assert.ErrorIs(t, err, geo.ErrMalformedJSON)
	})

	t.Run("success - serialize ordered tree", func(t *testing.T) {
		t.Parallel()
		out := geo.GJSON.Serialize(geo.Members{
			{Key: "z", Value: []geo.Value{1.0, 0.5, nil, true}},
			{Key: "a", Value: geo.RawJSON(`{ "k" : [ 1 , 2 ] }`)},
			{Key: "s", Value: "quote \" here"},
		})

		assert.Equal(t, `{"z":[1.0,0.5,null,true],"a":{"k":[1,2]},"s":"quote \" here"}`, string(out))
	})
}

func TestTypeNames(t *testing.T) {
	t.Parallel()

	for typ := geo.TypePoint; typ <= geo.TypeFeatureCollection; typ++ {
		parsed, ok := geo.ParseType(typ.String())
		require.True(t, ok, typ.String())
		assert.Equal(t, typ, parsed)
	}

	_, ok := geo.ParseType("point")
	assert.False(t, ok)
	assert.Equal(t, "Unknown", geo.Type(0).String())
	assert.True(t, geo.TypeGeometryCollection.IsGeometry())
	assert.False(t, geo.TypeFeature.IsGeometry())
}

func TestCountPositions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, geo.CountPositions(nil))
	assert.Equal(t, 10, geo.CountPositions(mustDecode(t, polygonWithHole)))
	assert.Equal(t, 3, geo.CountPositions(mustDecode(t, geometryCollection)))
	assert.Equal(t, 5, geo.CountPositions(mustDecode(t, featureCollection)))
}
