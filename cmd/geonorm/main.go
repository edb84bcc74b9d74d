package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/woozymasta/geokit/internal/config"
	"github.com/woozymasta/geokit/internal/logger"
	"github.com/woozymasta/geokit/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string `short:"c" long:"config"      env:"CONFIG_FILE" description:"Path to configuration file"`
	Output      string `short:"o" long:"out"         description:"Output directory. Writes to stdout if empty"`
	Format      string `short:"f" long:"format"      description:"Output format" choice:"json" choice:"yaml" default:"json"`
	Concurrency int    `short:"p" long:"concurrency" env:"CONCURRENCY" description:"Number of documents processed in parallel"`
	Pretty      bool   `short:"P" long:"pretty"      description:"Indent JSON output"`
	Minify      bool   `short:"m" long:"minify"      description:"Minify JSON output (drops canonical number formatting)"`
	Strict      bool   `short:"s" long:"strict"      description:"Treat structurally invalid objects as errors"`
	Force       bool   `short:"F" long:"force"       description:"Force overwrite of existing files"`

	Args struct {
		Sources []string `positional-arg-name:"SOURCE" description:"Files or http(s) URLs, - for stdin (default)"`
	} `positional-args:"yes"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if opts.Concurrency <= 0 {
		opts.Concurrency = cfg.Concurrency
	}

	sources := opts.Args.Sources
	if len(sources) == 0 {
		sources = []string{processor.StdinSource}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := &processor.Processor{
		Client: &http.Client{
			Transport: &http.Transport{
				TLSNextProto:        make(map[string]func(string, *tls.Conn) http.RoundTripper),
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
			},
			Timeout: 15 * time.Second,
		},
		Stdin: os.Stdin,
	}

	results := p.Process(ctx, sources, processor.Options{
		RenderOptions: processor.RenderOptions{
			Format: processor.Format(opts.Format),
			Pretty: opts.Pretty || cfg.Pretty,
			Minify: opts.Minify,
		},
		OutputDir:   opts.Output,
		Concurrency: opts.Concurrency,
		Strict:      opts.Strict,
		Force:       opts.Force,
	})

	failed := 0
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
			log.Error().Err(res.Err).Str("source", res.Source).Msg("Failed to normalize document")
		case res.Skipped:
			log.Info().Str("output", res.Output).Msg("Output exists, skipped")
		case res.Output != "":
			log.Info().
				Str("source", res.Source).
				Str("output", res.Output).
				Str("type", res.Type.String()).
				Bool("valid", res.Valid).
				Msg("Document normalized")
		default:
			if !res.Valid {
				log.Warn().Str("source", res.Source).Str("type", res.Type.String()).Msg("Object is not valid")
			}
			fmt.Println(string(res.Data))
		}
	}

	if failed > 0 {
		log.Error().Int("failed", failed).Int("total", len(results)).Msg("Some documents were not normalized")
		os.Exit(1)
	}
}
