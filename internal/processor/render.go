package processor

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/woozymasta/geokit/internal/geo"

	"github.com/tdewolff/minify/v2"
	minjson "github.com/tdewolff/minify/v2/json"
)

// Format is an output encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned by Render for formats other than json and yaml.
var ErrUnknownFormat = errors.New("unknown output format")

// RenderOptions select the output layout of a decoded object.
type RenderOptions struct {
	Format Format
	// Pretty indents JSON output.
	Pretty bool
	// Minify shortens JSON output further than the canonical form, e.g. 100.0 becomes 100.
	// The result is still equivalent GeoJSON but no longer canonical.
	Minify bool
}

var minifier = newMinifier()

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFuncRegexp(regexp.MustCompile(`[/+]json$`), minjson.Minify)
	return m
}

// Render encodes obj according to opts.
func Render(obj geo.Object, opts RenderOptions) ([]byte, error) {
	switch opts.Format {
	case FormatYAML:
		return geo.EncodeYAML(obj)
	case FormatJSON, "":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}

	switch {
	case opts.Minify:
		return minifier.Bytes("application/geo+json", geo.Encode(obj))
	case opts.Pretty:
		return geo.EncodeIndent(obj), nil
	}
	return geo.Encode(obj), nil
}

// Ext returns the file extension for outputs of format f.
func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".geojson"
}
