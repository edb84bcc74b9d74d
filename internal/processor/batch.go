// Package processor normalizes batches of GeoJSON documents on a worker pool.
package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/woozymasta/geokit/internal/geo"
	"github.com/woozymasta/geokit/internal/metrics"

	"github.com/rs/zerolog/log"
)

// StdinSource names the standard input as a source.
const StdinSource = "-"

// ErrInvalidObject marks a document that decoded but failed validation in strict mode.
var ErrInvalidObject = errors.New("object is not valid")

// Options configure a batch run.
type Options struct {
	RenderOptions

	// OutputDir receives one file per source. When empty the rendered bytes are
	// returned in Result.Data instead.
	OutputDir   string
	Concurrency int

	// Strict turns invalid objects into failures.
	Strict bool
	// Force overwrites existing output files.
	Force  bool
}

// Result is the outcome of one source.
type Result struct {
	Source    string
	Output    string
	Type      geo.Type
	Valid     bool
	Positions int
	Skipped   bool
	Data      []byte
	Err       error
}

// Processor loads, decodes, validates and re-encodes GeoJSON documents.
type Processor struct {
	Client  *http.Client
	Decoder geo.Decoder
	Metrics *metrics.Metrics
	Stdin   io.Reader
}

type job struct {
	index  int
	source string
}

// Process handles every source and returns the results in source order.
// Sources are file paths, http(s) URLs or StdinSource.
func (p *Processor) Process(ctx context.Context, sources []string, opts Options) []Result {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	if concurrency > len(sources) {
		concurrency = len(sources)
	}

	jobs := make(chan job, len(sources))
	for i, s := range sources {
		jobs <- job{index: i, source: s}
	}
	close(jobs)

	results := make([]Result, len(sources))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					results[j.index] = Result{Source: j.source, Err: err}
					continue
				}
				p.active(1)
				results[j.index] = p.processOne(ctx, j.source, opts)
				p.active(-1)
			}
		}()
	}
	wg.Wait()

	return results
}

func (p *Processor) active(delta float64) {
	if p.Metrics != nil {
		p.Metrics.ActiveWorkers.Add(delta)
	}
}

func (p *Processor) processOne(ctx context.Context, source string, opts Options) Result {
	res := Result{Source: source}

	if opts.OutputDir != "" {
		res.Output = filepath.Join(opts.OutputDir, outputName(source, opts.Format))
		if !opts.Force {
			if info, err := os.Stat(res.Output); err == nil && info.Size() > 0 {
				log.Debug().Str("source", source).Str("output", res.Output).Msg("Output exists, skipping")
				res.Skipped = true
				return res
			}
		}
	}

	data, err := p.load(ctx, source)
	if err != nil {
		res.Err = err
		return res
	}

	obj, err := p.Decoder.Decode(string(data))
	p.Metrics.ObserveDecode(obj, err)
	if err != nil {
		log.Trace().Err(err).Str("source", source).Msg("Failed to decode document")
		res.Err = fmt.Errorf("%s: %w", source, err)
		return res
	}

	res.Type = obj.Type()
	res.Valid = obj.IsValid()
	res.Positions = geo.CountPositions(obj)

	if opts.Strict && !res.Valid {
		res.Err = fmt.Errorf("%s: %s: %w", source, res.Type, ErrInvalidObject)
		return res
	}

	out, err := Render(obj, opts.RenderOptions)
	if err != nil {
		res.Err = err
		return res
	}

	if opts.OutputDir == "" {
		res.Data = out
		return res
	}

	if err := os.MkdirAll(filepath.Dir(res.Output), 0755); err != nil {
		res.Err = err
		return res
	}
	if err := os.WriteFile(res.Output, out, 0644); err != nil {
		res.Err = err
		return res
	}

	log.Debug().
		Str("source", source).
		Str("output", res.Output).
		Str("type", res.Type.String()).
		Bool("valid", res.Valid).
		Msg("Document normalized")

	return res
}

// load reads a source from stdin, a remote URL or a local file.
func (p *Processor) load(ctx context.Context, source string) ([]byte, error) {
	if source == StdinSource {
		if p.Stdin == nil {
			return nil, fmt.Errorf("%s: no standard input", source)
		}
		return io.ReadAll(p.Stdin)
	}

	if !isURL(source) {
		return os.ReadFile(source)
	}

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s failed: %d", source, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// outputName derives the output file name from the base name of the source.
func outputName(source string, f Format) string {
	base := filepath.Base(source)
	if isURL(source) {
		if u, err := url.Parse(source); err == nil {
			base = path.Base(u.Path)
		}
	}
	if source == StdinSource || base == "/" || base == "." || base == "" {
		base = "stdin"
	}
	return strings.TrimSuffix(base, path.Ext(base)) + f.Ext()
}
