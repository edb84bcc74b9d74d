package geo

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// Node is a read-only view of a parsed JSON value. The decoder depends only on
// this interface, never on a concrete JSON library.
type Node interface {
	Exists() bool
	IsNull() bool
	IsObject() bool
	IsArray() bool
	IsString() bool
	IsNumber() bool

	// Get returns the member named key of an object. The result reports
	// Exists() == false when the member is absent or the node is not an object.
	Get(key string) Node
	// Elements returns the items of an array, nil for any other node.
	Elements() []Node
	// ForEachMember calls fn for every member of an object until fn returns false.
	ForEachMember(fn func(key string, value Node) bool)

	Str() string
	Float() float64
	// Raw returns the exact JSON text of the node.
	Raw() string
}

// Value is a node of the generic tree produced by the encoder. It is one of
// nil, bool, float64, string, []Value, Members or RawJSON.
type Value = any

// Member is one key/value pair of an ordered JSON object.
type Member struct {
	Key   string
	Value Value
}

// Members is a JSON object that keeps its member order when serialized.
type Members []Member

// RawJSON is a value serialized verbatim (after whitespace compaction).
type RawJSON []byte

// Bridge turns text into Nodes and generic Values back into text.
type Bridge interface {
	Parse(text string) (Node, error)
	Serialize(v Value) []byte
}

// GJSON is the default Bridge backed by github.com/tidwall/gjson.
var GJSON Bridge = gjsonBridge{}

type gjsonBridge struct{}

func (gjsonBridge) Parse(text string) (Node, error) {
	if !gjson.Valid(text) {
		return nil, ErrMalformedJSON
	}
	return gjsonNode{res: gjson.Parse(text)}, nil
}

func (gjsonBridge) Serialize(v Value) []byte {
	return appendValue(nil, v)
}

type gjsonNode struct {
	res gjson.Result
}

func (n gjsonNode) Exists() bool   { return n.res.Exists() }
func (n gjsonNode) IsNull() bool   { return n.res.Exists() && n.res.Type == gjson.Null }
func (n gjsonNode) IsObject() bool { return n.res.IsObject() }
func (n gjsonNode) IsArray() bool  { return n.res.IsArray() }
func (n gjsonNode) IsString() bool { return n.res.Type == gjson.String }
func (n gjsonNode) IsNumber() bool { return n.res.Type == gjson.Number }
func (n gjsonNode) Str() string    { return n.res.Str }
func (n gjsonNode) Float() float64 { return n.res.Num }
func (n gjsonNode) Raw() string    { return n.res.Raw }

// Get matches the key literally; gjson path syntax (dots, wildcards) is not
// interpreted, so any member name is safe to look up.
func (n gjsonNode) Get(key string) Node {
	var found gjson.Result
	if n.res.IsObject() {
		n.res.ForEach(func(k, v gjson.Result) bool {
			if k.Str == key {
				found = v
				return false
			}
			return true
		})
	}
	return gjsonNode{res: found}
}

func (n gjsonNode) Elements() []Node {
	if !n.res.IsArray() {
		return nil
	}
	items := n.res.Array()
	out := make([]Node, len(items))
	for i, item := range items {
		out[i] = gjsonNode{res: item}
	}
	return out
}

func (n gjsonNode) ForEachMember(fn func(key string, value Node) bool) {
	if !n.res.IsObject() {
		return
	}
	n.res.ForEach(func(k, v gjson.Result) bool {
		return fn(k.Str, gjsonNode{res: v})
	})
}

func appendValue(b []byte, v Value) []byte {
	switch v := v.(type) {
	case nil:
		return append(b, "null"...)
	case bool:
		return strconv.AppendBool(b, v)
	case float64:
		return appendNumber(b, v)
	case string:
		return appendString(b, v)
	case RawJSON:
		if len(v) == 0 {
			return append(b, "null"...)
		}
		return append(b, pretty.Ugly(v)...)
	case []Value:
		b = append(b, '[')
		for i, item := range v {
			if i > 0 {
				b = append(b, ',')
			}
			b = appendValue(b, item)
		}
		return append(b, ']')
	case Members:
		b = append(b, '{')
		for i, m := range v {
			if i > 0 {
				b = append(b, ',')
			}
			b = appendString(b, m.Key)
			b = append(b, ':')
			b = appendValue(b, m.Value)
		}
		return append(b, '}')
	}

	// Unknown leaf types fall back to encoding/json.
	data, err := json.Marshal(v)
	if err != nil {
		return append(b, "null"...)
	}
	return append(b, data...)
}

// appendNumber renders the shortest text that parses back to f. Integral values
// keep a ".0" suffix so 100.0 stays 100.0 across a round trip.
func appendNumber(b []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(b, "null"...)
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.AppendFloat(b, f, 'e', -1, 64)
	}

	start := len(b)
	b = strconv.AppendFloat(b, f, 'f', -1, 64)
	if !bytes.ContainsRune(b[start:], '.') {
		b = append(b, ".0"...)
	}
	return b
}

func appendString(b []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		if s[i] < ' ' || s[i] == '\\' || s[i] == '"' || s[i] > 126 {
			d, _ := json.Marshal(s)
			return append(b, d...)
		}
	}
	b = append(b, '"')
	b = append(b, s...)
	return append(b, '"')
}
