// Package main provides the rampfx command: an animated, seamlessly tiling
// color gradient drawn as a desktop background window, headless, or into
// a PNG snapshot.
package main

import (
	"errors"
	"expvar"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-rampfx/internal/config"
	"github.com/opd-ai/go-rampfx/internal/profiling"
	"github.com/opd-ai/go-rampfx/pkg/rampfx"
)

// Version is the current version of rampfx.
// This default value can be overridden at build time using:
//
//	go build -ldflags "-X main.Version=x.y.z"
var Version = "0.1.0-dev"

// DefaultSnapshotFrames is the number of frames rendered for -snapshot.
const DefaultSnapshotFrames = 60

// flags holds the parsed command line.
type flags struct {
	configPath  string
	version     bool
	debug       bool
	jsonLogs    bool
	watch       bool
	headless    bool
	snapshot    string
	frames      int
	fps         int
	title       string
	convert     string
	check       bool
	strict      bool
	properties  bool
	metricsAddr string
	cpuProfile  string
	memProfile  string
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	f := &flags{}
	fs := flag.NewFlagSet("rampfx", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "c", "", "Path to configuration file (legacy or Lua); built-in defaults when empty")
	fs.BoolVar(&f.version, "v", false, "Print version and exit")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&f.jsonLogs, "log-json", false, "Write logs as JSON")
	fs.BoolVar(&f.watch, "watch", false, "Reload the configuration when the file changes")
	fs.BoolVar(&f.headless, "headless", false, "Animate on a CPU canvas without opening a window")
	fs.StringVar(&f.snapshot, "snapshot", "", "Render -frames frames and write the last one to this PNG file")
	fs.IntVar(&f.frames, "frames", DefaultSnapshotFrames, "Number of frames rendered for -snapshot")
	fs.IntVar(&f.fps, "fps", 0, "Override the configured frame rate")
	fs.StringVar(&f.title, "title", "", "Override the configured window title")
	fs.StringVar(&f.convert, "convert", "", "Convert a legacy config to Lua format and print to stdout")
	fs.BoolVar(&f.check, "check", false, "Validate the configuration and exit")
	fs.BoolVar(&f.strict, "strict", false, "With -check, treat clamped values as errors")
	fs.BoolVar(&f.properties, "properties", false, "List the effect properties and exit")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "Serve expvar metrics at this address under /debug/vars")
	fs.StringVar(&f.cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	fs.StringVar(&f.memProfile, "memprofile", "", "Write memory profile to file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if f.frames < 1 {
		return nil, fmt.Errorf("-frames must be at least 1, got %d", f.frames)
	}
	if f.fps < 0 {
		return nil, fmt.Errorf("-fps must not be negative, got %d", f.fps)
	}
	return f, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	switch {
	case f.version:
		fmt.Fprintf(stdout, "rampfx version %s\n", Version)
		return 0
	case f.properties:
		fmt.Fprint(stdout, config.FormatProperties(config.Properties()))
		return 0
	case f.convert != "":
		return runConvert(f.convert, stdout, stderr)
	case f.check:
		return runCheck(f.configPath, f.strict, stdout, stderr)
	}

	if f.configPath != "" {
		if _, err := os.Stat(f.configPath); err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintf(stderr, "Configuration file not found: %s\n", f.configPath)
			} else {
				fmt.Fprintf(stderr, "Error accessing configuration file %s: %v\n", f.configPath, err)
			}
			return 1
		}
	}

	prof := profiling.Config{CPUProfilePath: f.cpuProfile, MemProfilePath: f.memProfile}
	if prof.Enabled() {
		session := profiling.NewSession(prof)
		if err := session.Start(); err != nil {
			fmt.Fprintf(stderr, "Failed to start profiling: %v\n", err)
			return 1
		}
		defer func() {
			if err := session.Stop(); err != nil {
				fmt.Fprintf(stderr, "Warning: failed to stop profiling: %v\n", err)
			}
		}()
	}

	logger := newLogger(f, stderr)
	opts := &rampfx.Options{
		Headless:    f.headless || f.snapshot != "",
		WindowTitle: f.title,
		FPS:         f.fps,
		Logger:      logger,
		WatchConfig: f.watch && f.configPath != "",
	}

	e, err := newEffect(f.configPath, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating rampfx instance: %v\n", err)
		return 1
	}

	if f.snapshot != "" {
		return runSnapshot(e, f.snapshot, f.frames, stdout, stderr)
	}

	if f.metricsAddr != "" {
		e.Metrics().RegisterExpvar()
		go serveMetrics(f.metricsAddr, logger)
	}
	return runEffect(e, logger, stderr)
}

func newLogger(f *flags, stderr io.Writer) *rampfx.SlogAdapter {
	level := slog.LevelInfo
	if f.debug {
		level = slog.LevelDebug
	}
	if f.jsonLogs {
		return rampfx.JSONLogger(stderr, level)
	}
	return rampfx.NewSlogAdapter(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: f.debug,
	})))
}

func newEffect(path string, opts *rampfx.Options) (rampfx.Effect, error) {
	if path == "" {
		return rampfx.NewDefault(opts)
	}
	return rampfx.New(path, opts)
}

// runEffect animates on the calling goroutine until SIGINT or SIGTERM.
// SIGHUP reloads the configuration in place.
func runEffect(e rampfx.Effect, logger rampfx.Logger, stderr io.Writer) int {
	e.SetErrorHandler(func(err error) {
		logger.Warn("runtime error", "error", err)
	})
	e.SetEventHandler(func(ev rampfx.Event) {
		logger.Debug("event", "type", ev.Type.String(), "message", ev.Message)
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			case sig := <-sigCh:
				if sig == syscall.SIGHUP {
					logger.Info("received SIGHUP, reloading configuration")
					if err := e.ReloadConfig(); err != nil {
						logger.Error("reload failed", "error", err)
					}
					continue
				}
				logger.Info("shutting down", "signal", sig.String())
				if err := e.Stop(); err != nil {
					logger.Error("stop failed", "error", err)
				}
				return
			}
		}
	}()

	if err := e.Run(); err != nil {
		fmt.Fprintf(stderr, "Failed to run: %v\n", err)
		return 1
	}

	logger.Debug("exit", "memory", profiling.ReadMemory().String(),
		"frames", e.Metrics().Snapshot().Frames)
	return 0
}

// runSnapshot renders frames ticks and writes the last frame as a PNG.
func runSnapshot(e rampfx.Effect, path string, frames int, stdout, stderr io.Writer) int {
	img, err := e.Render(frames)
	if err != nil {
		fmt.Fprintf(stderr, "Error rendering snapshot: %v\n", err)
		return 1
	}

	out, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating snapshot file: %v\n", err)
		return 1
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		fmt.Fprintf(stderr, "Error encoding snapshot: %v\n", err)
		return 1
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(stderr, "Error writing snapshot: %v\n", err)
		return 1
	}

	b := img.Bounds()
	fmt.Fprintf(stdout, "wrote %s (%dx%d, %d frames)\n", path, b.Dx(), b.Dy(), frames)
	return 0
}

// runConvert converts a legacy config file to Lua format and writes it to
// stdout.
func runConvert(path string, stdout, stderr io.Writer) int {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(stderr, "Configuration file not found: %s\n", path)
		} else {
			fmt.Fprintf(stderr, "Error accessing configuration file %s: %v\n", path, err)
		}
		return 1
	}

	lua, err := config.MigrateLegacyFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error converting configuration: %v\n", err)
		return 1
	}
	stdout.Write(lua)
	return 0
}

// runCheck parses and validates a config file, printing every finding.
func runCheck(path string, strict bool, stdout, stderr io.Writer) int {
	if path == "" {
		fmt.Fprintln(stderr, "-check requires a configuration file. Use -c to specify one.")
		return 1
	}

	p, err := config.NewParser()
	if err != nil {
		fmt.Fprintf(stderr, "Error creating parser: %v\n", err)
		return 1
	}
	defer p.Close()

	cfg, err := p.ParseFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error parsing configuration: %v\n", err)
		return 1
	}

	result := config.NewValidator().WithStrictMode(strict).Validate(cfg)
	for _, w := range result.Warnings {
		fmt.Fprintf(stdout, "warning: %s\n", w.Error())
	}
	for _, e := range result.Errors {
		fmt.Fprintf(stdout, "error: %s\n", e.Error())
	}
	if !result.IsValid() {
		return 1
	}
	fmt.Fprintf(stdout, "%s: ok (%d colors, %s)\n", path, cfg.Effect.PaletteSize(), cfg.Effect.Direction)
	return 0
}

func serveMetrics(addr string, logger rampfx.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/debug/vars", expvar.Handler())
	logger.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", "error", err)
	}
}
