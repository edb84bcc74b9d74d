package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/woozymasta/geokit/internal/config"
	"github.com/woozymasta/geokit/internal/logger"
	"github.com/woozymasta/geokit/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile       string `short:"c" long:"config"            env:"CONFIG_FILE"       description:"Path to configuration file"`
	Addr             string `short:"a" long:"addr"              env:"LISTEN_ADDRESS"    description:"Address to listen on"`
	Port             int    `short:"p" long:"port"              env:"LISTEN_PORT"       description:"Port to listen on"`
	EquivalenceLimit int    `short:"l" long:"equivalence-limit" env:"EQUIVALENCE_LIMIT" description:"Max positions per side of an equivalence request"`
	MaxBodyBytes     int64  `short:"b" long:"max-body-bytes"    env:"MAX_BODY_BYTES"    description:"Max request body size in bytes"`
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

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Flags override the file
	if opts.Addr != "" {
		cfg.Listen.Addr = opts.Addr
	}
	if opts.Port > 0 {
		cfg.Listen.Port = opts.Port
	}
	if opts.EquivalenceLimit > 0 {
		cfg.EquivalenceLimit = opts.EquivalenceLimit
	}
	if opts.MaxBodyBytes > 0 {
		cfg.MaxBodyBytes = opts.MaxBodyBytes
	}

	srvCtx := server.NewServerContext(cfg)

	listenAddr := fmt.Sprintf("%s:%d", cfg.Listen.Addr, cfg.Listen.Port)
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           srvCtx.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().
		Str("addr", listenAddr).
		Int("equivalence_limit", cfg.EquivalenceLimit).
		Msg("Web server started")

	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
