package rampfx

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"io/fs"

	"github.com/opd-ai/go-rampfx/internal/config"
)

// Configuration format constants for use with NewFromReader.
const (
	// FormatLegacy indicates the legacy key-value format.
	FormatLegacy = "legacy"
	// FormatLua indicates the Lua configuration format.
	FormatLua = "lua"
)

// Effect is an embedded ramp instance with full lifecycle control.
// It is safe for concurrent use from multiple goroutines.
type Effect interface {
	// Start begins the animation loop and returns immediately.
	// Returns ErrAlreadyRunning if the loop is active.
	Start() error

	// Run is like Start but blocks until the instance stops. Window mode
	// should be run from the main goroutine, which Ebiten requires on
	// some platforms.
	Run() error

	// Stop shuts the instance down and waits for its goroutines.
	// Safe to call multiple times; subsequent calls are no-ops.
	Stop() error

	// Restart stops, reloads the configuration from its source and starts.
	Restart() error

	// ReloadConfig reloads the configuration without stopping. The new
	// settings take effect on the next frame. On error the previous
	// configuration stays active.
	ReloadConfig() error

	// IsRunning reports whether the animation loop is active.
	IsRunning() bool

	// Status returns detailed status information about the instance.
	Status() Status

	// SetErrorHandler registers a callback for runtime errors.
	// The handler runs asynchronously and panics in it are recovered.
	SetErrorHandler(handler ErrorHandler)

	// SetEventHandler registers a callback for lifecycle events.
	SetEventHandler(handler EventHandler)

	// Health returns a health check result for the instance.
	Health() HealthCheck

	// Metrics returns the metrics collector for this instance.
	Metrics() *Metrics

	// Snapshot returns a copy of the latest headless frame, or nil when
	// no CPU frame exists.
	Snapshot() image.Image

	// Render advances a stopped instance by frames ticks of 1/FPS seconds
	// on a CPU canvas and returns the last frame.
	Render(frames int) (image.Image, error)
}

// New creates an Effect from a configuration file on disk, in either the
// legacy or the Lua format. The instance is created but not started.
func New(configPath string, opts *Options) (Effect, error) {
	cfg, err := parseWith(func(p *config.Parser) (*config.Config, error) {
		return p.ParseFile(configPath)
	})
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return newEffect(cfg, opts, configPath, func() (*config.Config, error) {
		return parseWith(func(p *config.Parser) (*config.Config, error) {
			return p.ParseFile(configPath)
		})
	}), nil
}

// NewFromFS creates an Effect using configuration from a filesystem such as
// an embed.FS.
//
//	//go:embed configs/*
//	var configFS embed.FS
//
//	e, err := rampfx.NewFromFS(configFS, "configs/ramp.lua", nil)
func NewFromFS(fsys fs.FS, configPath string, opts *Options) (Effect, error) {
	load := func() (*config.Config, error) {
		return parseWith(func(p *config.Parser) (*config.Config, error) {
			return p.ParseFromFS(fsys, configPath)
		})
	}
	cfg, err := load()
	if err != nil {
		return nil, fmt.Errorf("parse config from FS: %w", err)
	}
	return newEffect(cfg, opts, "embedded:"+configPath, load), nil
}

// NewFromReader creates an Effect from configuration content. The format is
// FormatLegacy or FormatLua. The content is read once and kept for reloads.
func NewFromReader(r io.Reader, format string, opts *Options) (Effect, error) {
	if format != FormatLegacy && format != FormatLua {
		return nil, fmt.Errorf("invalid format: %s (expected '%s' or '%s')", format, FormatLua, FormatLegacy)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	load := func() (*config.Config, error) {
		return parseWith(func(p *config.Parser) (*config.Config, error) {
			return p.ParseReader(bytes.NewReader(content), format)
		})
	}
	cfg, err := load()
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return newEffect(cfg, opts, "reader", load), nil
}

// NewDefault creates an Effect with the built-in default configuration.
func NewDefault(opts *Options) (Effect, error) {
	load := func() (*config.Config, error) {
		cfg := config.DefaultConfig()
		return &cfg, nil
	}
	cfg, _ := load()
	return newEffect(cfg, opts, "default", load), nil
}

// parseWith runs fn with a fresh parser and validates the result.
func parseWith(fn func(*config.Parser) (*config.Config, error)) (*config.Config, error) {
	p, err := config.NewParser()
	if err != nil {
		return nil, fmt.Errorf("parser init: %w", err)
	}
	defer p.Close()

	cfg, err := fn(p)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
