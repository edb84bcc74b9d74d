// Package server exposes the GeoJSON codec over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/woozymasta/geokit/internal/geo"
	"github.com/woozymasta/geokit/internal/processor"

	"github.com/rs/zerolog/log"
)

// ErrTooLarge is reported when an equivalence request exceeds the configured limit.
var ErrTooLarge = errors.New("object too large to compare")

type errorResponse struct {
	Error string `json:"error"`
	Path  string `json:"path,omitempty"`
}

type decodeResponse struct {
	Type      string          `json:"type"`
	Valid     bool            `json:"valid"`
	Positions int             `json:"positions"`
	GeoJSON   json.RawMessage `json:"geojson"`
}

type validateResponse struct {
	Type  string `json:"type,omitempty"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

type equivalentResponse struct {
	Equivalent bool `json:"equivalent"`
}

// HandleDecode reports the kind and validity of the posted document together
// with its canonical form.
func (s *ServerContext) HandleDecode(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	obj, err := s.decode(body)
	if err != nil {
		writeDecodeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, decodeResponse{
		Type:      obj.Type().String(),
		Valid:     obj.IsValid(),
		Positions: geo.CountPositions(obj),
		GeoJSON:   geo.Encode(obj),
	})
}

// HandleNormalize answers with the canonical encoding of the posted document.
// Query parameters: format=json|yaml, pretty, minify, strict.
func (s *ServerContext) HandleNormalize(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	opts := processor.RenderOptions{
		Format: processor.Format(q.Get("format")),
		Pretty: queryBool(q.Get("pretty"), s.Config.Pretty),
		Minify: queryBool(q.Get("minify"), false),
	}
	if opts.Format == "" {
		opts.Format = processor.FormatJSON
	}

	obj, err := s.decode(body)
	if err != nil {
		writeDecodeError(w, err)
		return
	}

	if queryBool(q.Get("strict"), false) && !obj.IsValid() {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: fmt.Sprintf("%s: %s", obj.Type(), processor.ErrInvalidObject),
		})
		return
	}

	out, err := processor.Render(obj, opts)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	contentType := "application/geo+json"
	if opts.Format == processor.FormatYAML {
		contentType = "application/yaml"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// HandleValidate always answers 200 with the verdict; decode errors make a
// document invalid.
func (s *ServerContext) HandleValidate(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	obj, err := s.decode(body)
	if err != nil {
		writeJSON(w, http.StatusOK, validateResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, validateResponse{Type: obj.Type().String(), Valid: obj.IsValid()})
}

// HandleEquivalent compares the members "a" and "b" of the posted object.
func (s *ServerContext) HandleEquivalent(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	bridge := s.Decoder.Bridge
	if bridge == nil {
		bridge = geo.GJSON
	}

	root, err := bridge.Parse(string(body))
	if err != nil {
		writeDecodeError(w, err)
		return
	}
	if !root.IsObject() {
		writeDecodeError(w, &geo.DecodeError{Kind: geo.ErrNotAnObject})
		return
	}

	objs := make([]geo.Object, 2)
	for i, key := range []string{"a", "b"} {
		member := root.Get(key)
		if !member.Exists() {
			writeDecodeError(w, &geo.DecodeError{Kind: geo.ErrMissingKey, Key: key})
			return
		}

		obj, err := s.Decoder.DecodeNode(member)
		s.Metrics.ObserveDecode(obj, err)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: key + ": " + err.Error(), Path: decodePath(err)})
			return
		}

		if limit := s.Config.EquivalenceLimit; limit > 0 {
			if n := geo.CountPositions(obj); n > limit {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
					Error: fmt.Sprintf("%s: %s: %d positions, limit %d", key, ErrTooLarge, n, limit),
				})
				return
			}
		}
		objs[i] = obj
	}

	start := time.Now()
	equal := geo.Equivalent(objs[0], objs[1])
	s.Metrics.ObserveEquivalence(equal, time.Since(start))

	log.Debug().
		Str("a", objs[0].Type().String()).
		Str("b", objs[1].Type().String()).
		Bool("equivalent", equal).
		Dur("took", time.Since(start)).
		Msg("Equivalence checked")

	writeJSON(w, http.StatusOK, equivalentResponse{Equivalent: equal})
}

// HandleHealth is the liveness probe.
func (s *ServerContext) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *ServerContext) decode(body []byte) (geo.Object, error) {
	obj, err := s.Decoder.Decode(string(body))
	s.Metrics.ObserveDecode(obj, err)
	return obj, err
}

// readBody reads the request body within the configured size limit. On failure
// the response has already been written.
func (s *ServerContext) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if s.Config.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.Config.MaxBodyBytes)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: err.Error()})
			return nil, false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return nil, false
	}

	return body, true
}

func writeDecodeError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Path: decodePath(err)})
}

func decodePath(err error) string {
	var de *geo.DecodeError
	if errors.As(err, &de) {
		return de.Path
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(v)
}

func queryBool(v string, fallback bool) bool {
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
