package config

import (
	"fmt"
	"os"

	json "github.com/json-iterator/go"
)

type (
	NET struct {
		// Addr is the address the listener is bound to.
		Addr string `json:"addr"`
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket.
		ReadBufferSize int `json:"read_buffer_size"`
		// WriteBufferSize is a size of buffer accumulating the response before it's
		// flushed into the socket.
		WriteBufferSize int `json:"write_buffer_size"`
	}

	Headers struct {
		// MaxLineSize limits the length of the request line and every header line. Lines
		// exceeding it are rejected with 400 Bad Request.
		MaxLineSize int `json:"max_line_size"`
	}

	Pool struct {
		// MinWorkers is the lower boundary of the worker pool size. The effective size is
		// max(MinWorkers, GOMAXPROCS-1).
		MinWorkers int `json:"min_workers"`
	}

	Files struct {
		// Directory is a root of the file store served by /files. Empty means
		// not configured, in which case the endpoint responds 500.
		Directory string `json:"directory"`
	}
)

// Config holds settings used across various parts of the server. It is constructed once
// at startup and is read-only afterwards.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually.
type Config struct {
	NET     NET     `json:"net"`
	Headers Headers `json:"headers"`
	Pool    Pool    `json:"pool"`
	Files   Files   `json:"files"`
	// Encodings lists tokens of codecs available for content negotiation.
	Encodings []string `json:"encodings"`
}

// Default returns default config.
func Default() *Config {
	return &Config{
		NET: NET{
			Addr:            "127.0.0.1:4221",
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
		},
		Headers: Headers{
			MaxLineSize: 16 * 1024,
		},
		Pool: Pool{
			MinWorkers: 4,
		},
		Encodings: []string{"gzip"},
	}
}

// Fill replaces zero and invalid values with defaults.
func Fill(cfg *Config) *Config {
	def := Default()

	if cfg.NET.Addr == "" {
		cfg.NET.Addr = def.NET.Addr
	}
	if cfg.NET.ReadBufferSize <= 0 {
		cfg.NET.ReadBufferSize = def.NET.ReadBufferSize
	}
	if cfg.NET.WriteBufferSize <= 0 {
		cfg.NET.WriteBufferSize = def.NET.WriteBufferSize
	}
	if cfg.Headers.MaxLineSize <= 0 {
		cfg.Headers.MaxLineSize = def.Headers.MaxLineSize
	}
	if cfg.Pool.MinWorkers <= 0 {
		cfg.Pool.MinWorkers = def.Pool.MinWorkers
	}
	if len(cfg.Encodings) == 0 {
		cfg.Encodings = def.Encodings
	}

	return cfg
}

// Load reads a JSON config file on top of defaults. Fields absent in the file or holding
// invalid values keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err = json.ConfigCompatibleWithStandardLibrary.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	return Fill(cfg), nil
}
