package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/indigo-web/rawhttp"
	"github.com/indigo-web/rawhttp/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"
)

func main() {
	var (
		directory  = flag.StringP("directory", "d", "", "root of the file store served by /files")
		addr       = flag.StringP("addr", "a", "", "address to listen on (default "+config.Default().NET.Addr+")")
		configPath = flag.StringP("config", "c", "", "path to a JSON config file")
		workers    = flag.Int("workers", 0, "minimal number of workers")
		logLevel   = flag.String("log-level", "info", "log level: trace, debug, info, warn, error")
	)
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Default()
	if len(*configPath) > 0 {
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}

	if len(*directory) > 0 {
		cfg.Files.Directory = *directory
	}
	if len(*addr) > 0 {
		cfg.NET.Addr = *addr
	}
	if *workers > 0 {
		cfg.Pool.MinWorkers = *workers
	}

	app := rawhttp.New(cfg)

	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
		<-signals
		log.Info().Msg("shutting down")
		_ = app.Stop()
	}()

	if err = app.Serve(nil); err != nil && !errors.Is(err, rawhttp.ErrShutdown) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
