package main

import (
	"fmt"
	"io"
	"os"

	"github.com/woozymasta/geokit/internal/geo"
	"github.com/woozymasta/geokit/internal/logger"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

// Exit codes.
const (
	exitEqual    = 0
	exitNotEqual = 1
	exitError    = 2
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Limit int  `short:"l" long:"limit" env:"EQUIVALENCE_LIMIT" description:"Refuse documents with more positions than this (0 = no limit)"`
	Quiet bool `short:"q" long:"quiet" description:"Do not print the verdict"`

	Args struct {
		A string `positional-arg-name:"A" description:"First document, - for stdin"  required:"yes"`
		B string `positional-arg-name:"B" description:"Second document, - for stdin" required:"yes"`
	} `positional-args:"yes"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(exitEqual)
		}
		os.Exit(exitError)
	}

	opts.Logger.Setup()

	if opts.Args.A == "-" && opts.Args.B == "-" {
		log.Error().Msg("Only one document can be read from stdin")
		os.Exit(exitError)
	}

	a := load(opts.Args.A, opts.Limit)
	b := load(opts.Args.B, opts.Limit)

	equal := geo.Equivalent(a, b)
	if !opts.Quiet {
		if equal {
			fmt.Println("equivalent")
		} else {
			fmt.Println("different")
		}
	}

	if !equal {
		os.Exit(exitNotEqual)
	}
}

// load reads and decodes one document or exits with exitError.
func load(source string, limit int) geo.Object {
	var (
		data []byte
		err  error
	)
	if source == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		log.Error().Err(err).Str("source", source).Msg("Failed to read document")
		os.Exit(exitError)
	}

	obj, err := geo.Decode(string(data))
	if err != nil {
		log.Error().Err(err).Str("source", source).Msg("Failed to decode document")
		os.Exit(exitError)
	}

	if n := geo.CountPositions(obj); limit > 0 && n > limit {
		log.Error().Str("source", source).Int("positions", n).Int("limit", limit).Msg("Document too large to compare")
		os.Exit(exitError)
	}

	log.Debug().Str("source", source).Str("type", obj.Type().String()).Msg("Document decoded")
	return obj
}
