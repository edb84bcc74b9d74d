package geo

import (
	"bytes"
	"encoding/json"
	"math/big"
	"reflect"
	"slices"

	"github.com/google/go-cmp/cmp"
)

// Equivalent reports whether a and b describe the same object regardless of
// member order. MultiPoint positions, line strings of a MultiLineString, polygon
// rings, polygons of a MultiPolygon and members of collections may appear in
// any order; closed rings may also start at any vertex and run in either
// direction. Features additionally need equal ids and equal properties.
//
// Unordered members are paired by bipartite matching, which is quadratic in the
// member count and can still be costly on large inputs.
func Equivalent(a, b Object) bool {
	if eq, done := naiveEquals(a, b); done {
		return eq
	}

	switch a := a.(type) {
	case *Point:
		return a.pos == b.(*Point).pos
	case *MultiPoint:
		return samePositions(a.positions, b.(*MultiPoint).positions)
	case *LineString:
		return pathEquivalent(a, b.(*LineString))
	case *MultiLineString:
		return matchAll(a.lines, b.(*MultiLineString).lines, pathEquivalent)
	case *Polygon:
		return matchAll(a.rings, b.(*Polygon).rings, pathEquivalent)
	case *MultiPolygon:
		return matchAll(a.polygons, b.(*MultiPolygon).polygons, func(x, y *Polygon) bool {
			return Equivalent(x, y)
		})
	case *GeometryCollection:
		return matchAll(a.geometries, b.(*GeometryCollection).geometries, func(x, y Geometry) bool {
			return Equivalent(x, y)
		})
	case *Feature:
		return featureEquivalent(a, b.(*Feature))
	case *FeatureCollection:
		return matchAll(a.features, b.(*FeatureCollection).features, func(x, y *Feature) bool {
			return Equivalent(x, y)
		})
	}

	return false
}

// naiveEquals settles the cheap cases. done is false when a full comparison is needed.
func naiveEquals(a, b Object) (eq, done bool) {
	switch {
	case isNil(a) || isNil(b):
		return false, true
	case a.Type() != b.Type():
		return false, true
	case size(a) != size(b):
		return false, true
	case a == b:
		return true, true
	case reflect.DeepEqual(a, b):
		return true, true
	}
	return false, false
}

// size is the element count compared by the fast path.
func size(o Object) int {
	switch o := o.(type) {
	case *MultiPoint:
		return len(o.positions)
	case *LineString:
		return len(o.positions)
	case *MultiLineString:
		return len(o.lines)
	case *Polygon:
		return len(o.rings)
	case *MultiPolygon:
		return len(o.polygons)
	case *GeometryCollection:
		return len(o.geometries)
	case *FeatureCollection:
		return len(o.features)
	}
	return 1
}

// pathEquivalent compares line strings. Two closed line strings are rings and
// match under rotation and reversal; anything else must match position by position.
func pathEquivalent(a, b *LineString) bool {
	if a == nil || b == nil || len(a.positions) != len(b.positions) {
		return false
	}
	if a.IsClosed() && b.IsClosed() {
		return ringEquivalent(a.positions, b.positions)
	}
	return slices.Equal(a.positions, b.positions)
}

// ringEquivalent reports whether closed rings a and b (same length) visit the
// same vertices in the same cyclic order, in either direction.
func ringEquivalent(a, b []Position) bool {
	x, y := a[:len(a)-1], b[:len(b)-1]
	n := len(x)

	for shift := range n {
		if x[0] != y[shift] {
			continue
		}

		forward, backward := true, true
		for i := 1; i < n && (forward || backward); i++ {
			if forward && x[i] != y[(shift+i)%n] {
				forward = false
			}
			if backward && x[i] != y[(shift-i+n)%n] {
				backward = false
			}
		}
		if forward || backward {
			return true
		}
	}

	return false
}

func featureEquivalent(a, b *Feature) bool {
	if a.id != b.id {
		return false
	}

	nilA, nilB := isNil(a.geometry), isNil(b.geometry)
	if nilA != nilB {
		return false
	}
	if !nilA && !Equivalent(a.geometry, b.geometry) {
		return false
	}

	return propertiesEqual(a.properties, b.properties)
}

// propertiesEqual compares property values as JSON documents, so formatting and
// member order inside a value do not matter. Numbers compare by exact value.
func propertiesEqual(a, b Properties) bool {
	if len(a) != len(b) {
		return false
	}

	for k, ra := range a {
		rb, ok := b[k]
		if !ok {
			return false
		}
		if bytes.Equal(ra, rb) {
			continue
		}

		va, err := decodeValue(ra)
		if err != nil {
			return false
		}
		vb, err := decodeValue(rb)
		if err != nil {
			return false
		}
		if !cmp.Equal(va, vb, cmp.Comparer(numbersEqual)) {
			return false
		}
	}

	return true
}

func decodeValue(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// numberPrecision is the mantissa size in bits used to compare property numbers.
const numberPrecision = 1024

// numbersEqual compares JSON numbers without rounding them to float64, so 1 and
// 1.0 match but integers beyond 2^53 keep their identity.
func numbersEqual(x, y json.Number) bool {
	if x == y {
		return true
	}

	fx, _, err := big.ParseFloat(string(x), 10, numberPrecision, big.ToNearestEven)
	if err != nil {
		return false
	}
	fy, _, err := big.ParseFloat(string(y), 10, numberPrecision, big.ToNearestEven)
	if err != nil {
		return false
	}
	return fx.Cmp(fy) == 0
}

// matchAll reports whether a one-to-one pairing of a and b exists with every
// pair equivalent under eq. It finds a maximum bipartite matching with
// augmenting paths, so the cost stays polynomial when no pairing exists.
// Pair results are cached for the duration of the call.
func matchAll[T any](a, b []T, eq func(x, y T) bool) bool {
	if len(a) != len(b) {
		return false
	}

	n := len(b)
	cache := newPairCache(len(a), n)
	pair := func(i, j int) bool {
		if same, ok := cache.get(i, j); ok {
			return same
		}
		v := eq(a[i], b[j])
		cache.set(i, j, v)
		return v
	}

	owner := make([]int, n) // owner[j] is the index in a matched to b[j], or -1
	for j := range owner {
		owner[j] = -1
	}
	visited := make([]bool, n)

	var augment func(i int) bool
	augment = func(i int) bool {
		for j := range n {
			if visited[j] || !pair(i, j) {
				continue
			}
			visited[j] = true
			if owner[j] < 0 || augment(owner[j]) {
				owner[j] = i
				return true
			}
		}
		return false
	}

	for i := range a {
		// Take a free partner directly before searching for an augmenting path.
		free := -1
		for j := range n {
			if owner[j] < 0 && pair(i, j) {
				free = j
				break
			}
		}
		if free >= 0 {
			owner[free] = i
			continue
		}

		clear(visited)
		if !augment(i) {
			return false
		}
	}

	return true
}

// pairCache stores two bits per (i, j): whether the pair was computed and its result.
type pairCache struct {
	n           int
	known, same []uint64
}

func newPairCache(rows, cols int) *pairCache {
	words := (rows*cols + 63) / 64
	return &pairCache{n: cols, known: make([]uint64, words), same: make([]uint64, words)}
}

func (c *pairCache) get(i, j int) (same, ok bool) {
	k := i*c.n + j
	w, bit := k/64, uint64(1)<<(k%64)
	return c.same[w]&bit != 0, c.known[w]&bit != 0
}

func (c *pairCache) set(i, j int, eq bool) {
	k := i*c.n + j
	w, bit := k/64, uint64(1)<<(k%64)
	c.known[w] |= bit
	if eq {
		c.same[w] |= bit
	}
}

// samePositions compares two position lists as multisets.
func samePositions(a, b []Position) bool {
	if len(a) != len(b) {
		return false
	}

	counts := make(map[Position]int, len(a))
	for _, p := range a {
		counts[p]++
	}
	for _, p := range b {
		if counts[p] == 0 {
			return false
		}
		counts[p]--
	}
	return true
}
