package rampfx

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opd-ai/go-rampfx/internal/config"
	"github.com/opd-ai/go-rampfx/internal/ramp"
	"github.com/opd-ai/go-rampfx/internal/render"
)

// effectImpl is the private implementation of the Effect interface.
type effectImpl struct {
	// Configuration
	cfg          *config.Config
	opts         Options
	configSource string
	configLoader func() (*config.Config, error)

	// Components
	game    *render.Game
	metrics *Metrics

	// State
	running   atomic.Bool
	startTime time.Time
	frames    atomic.Uint64
	lastError atomic.Pointer[errorBox]

	// Handlers
	errorHandler ErrorHandler
	eventHandler EventHandler

	// Synchronization
	mu     sync.RWMutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

var _ Effect = (*effectImpl)(nil)

func newEffect(cfg *config.Config, opts *Options, source string, loader func() (*config.Config, error)) *effectImpl {
	if opts == nil {
		defaults := DefaultOptions()
		opts = &defaults
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = DefaultMetrics()
	}
	if a, ok := opts.Logger.(*SlogAdapter); ok {
		ramp.SetLogger(a.Slog())
	}

	return &effectImpl{
		cfg:          cfg,
		opts:         *opts,
		configSource: source,
		configLoader: loader,
		metrics:      metrics,
	}
}

// watchable reports whether the configuration comes from a disk file.
func (c *effectImpl) watchable() bool {
	switch {
	case c.configSource == "reader", c.configSource == "default":
		return false
	case strings.HasPrefix(c.configSource, "embedded:"):
		return false
	}
	return true
}

// renderConfig builds the render configuration. Caller holds c.mu.
func (c *effectImpl) renderConfig() render.Config {
	w := c.cfg.Window
	rc := render.Config{
		Width:       w.Width,
		Height:      w.Height,
		Title:       w.Title,
		FPS:         w.FPS,
		Transparent: w.Transparent,
		Hints: render.WindowHints{
			SkipTaskbar: w.SkipTaskbar,
			SkipPager:   w.SkipPager,
			Below:       w.Below,
			Sticky:      w.Sticky,
		},
		Readback: c.cfg.Effect.Readback,
		Effect:   c.cfg.Effect.Settings(),
	}
	if c.opts.WindowTitle != "" {
		rc.Title = c.opts.WindowTitle
	}
	if c.opts.FPS > 0 {
		rc.FPS = c.opts.FPS
	}
	return rc
}

// newGame creates a game drawing into frame and wires its callbacks into
// the instance.
func (c *effectImpl) newGame(rc render.Config, frame ramp.Canvas) *render.Game {
	game := render.NewGameWithCanvas(rc, frame)
	game.SetErrorHandler(c.notifyError)
	game.SetFrameHook(func(d time.Duration) {
		c.frames.Add(1)
		c.metrics.RecordFrame(d)
		c.metrics.SetTileRebuilds(game.Effect().Animation().Seamless().Rebuilds())
	})
	return game
}

// Start begins the animation loop in a background goroutine.
func (c *effectImpl) Start() error {
	loop, err := c.prepare()
	if err != nil {
		return err
	}
	go func() {
		defer c.wg.Done()
		_ = loop()
	}()
	c.emitEvent(EventStarted, "Instance started")
	return nil
}

// Run runs the animation loop on the calling goroutine until the window
// closes or Stop is called.
func (c *effectImpl) Run() error {
	loop, err := c.prepare()
	if err != nil {
		return err
	}
	defer c.wg.Done()
	c.emitEvent(EventStarted, "Instance started")
	return loop()
}

// prepare builds the game and marks the instance running. The returned
// loop blocks until the instance stops; the caller owns one wg slot.
func (c *effectImpl) prepare() (func() error, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running.Load() {
		return nil, ErrAlreadyRunning
	}
	if c.cfg == nil {
		return nil, fmt.Errorf("failed to initialize: configuration is nil")
	}

	rc := c.renderConfig()
	if err := rc.Validate(); err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	var frame ramp.Canvas
	if c.opts.Headless {
		frame = render.NewRasterCanvas(rc.Width, rc.Height)
	} else {
		frame = windowFrame(rc)
	}
	game := c.newGame(rc, frame)
	game.SetContext(ctx)

	var watcher *configWatcher
	if c.opts.WatchConfig && c.watchable() {
		w, err := watchConfig(ctx, c.configSource, c.opts.WatchDebounce, c.ReloadConfig, c.notifyError)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to watch config: %w", err)
		}
		watcher = w
	}

	c.game = game
	c.cancel = cancel
	c.frames.Store(0)
	c.running.Store(true)
	c.startTime = time.Now()
	c.metrics.IncrementStarts()
	c.metrics.SetRunning(true)
	c.wg.Add(1)

	c.logInfo("rampfx started", "source", c.configSource, "headless", c.opts.Headless,
		"width", rc.Width, "height", rc.Height, "fps", rc.FPS)

	loop := func() error {
		defer c.metrics.SetRunning(false)
		defer c.running.Store(false)

		var err error
		if c.opts.Headless {
			err = c.runHeadless(ctx, game, rc.FPS)
		} else {
			err = c.runWindow(ctx, game, rc)
		}
		cancel()
		if watcher != nil {
			watcher.Close()
		}

		c.emitEvent(EventStopped, "Instance stopped")
		return err
	}
	return loop, nil
}

// runHeadless ticks the game at fps until ctx is cancelled.
func (c *effectImpl) runHeadless(ctx context.Context, game *render.Game, fps int) error {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := game.Update(); err != nil {
				if errors.Is(err, render.ErrGameTerminated) {
					return nil
				}
				err = fmt.Errorf("headless update: %w", err)
				c.notifyError(err)
				return err
			}
		}
	}
}

// Stop shuts the instance down.
func (c *effectImpl) Stop() error {
	if !c.running.Load() {
		return nil
	}

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	timeout := c.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}

	select {
	case <-done:
		c.metrics.IncrementStops()
		c.logInfo("rampfx stopped", "frames", c.frames.Load())
		return nil
	case <-time.After(timeout):
		err := fmt.Errorf("shutdown timeout after %v: some goroutines did not stop", timeout)
		c.notifyError(err)
		return err
	}
}

// Restart performs a stop followed by a start with a freshly loaded config.
func (c *effectImpl) Restart() error {
	if err := c.Stop(); err != nil {
		err = fmt.Errorf("stop failed: %w", err)
		c.notifyError(err)
		return err
	}

	cfg, err := c.configLoader()
	if err != nil {
		err = fmt.Errorf("config reload failed: %w", err)
		c.notifyError(err)
		return err
	}
	c.mu.Lock()
	c.cfg = cfg
	c.mu.Unlock()
	c.emitEvent(EventConfigReloaded, "Configuration reloaded")

	if err := c.Start(); err != nil {
		err = fmt.Errorf("start failed: %w", err)
		c.notifyError(err)
		return err
	}

	c.metrics.IncrementRestarts()
	c.emitEvent(EventRestarted, "Instance restarted")
	return nil
}

// ReloadConfig reloads the configuration in place. The running game picks
// up the new size and settings on its next Update.
func (c *effectImpl) ReloadConfig() error {
	if !c.running.Load() {
		return ErrNotRunning
	}

	newCfg, err := c.configLoader()
	if err != nil {
		err = fmt.Errorf("config reload failed: %w", err)
		c.notifyError(err)
		return err
	}

	c.mu.Lock()
	c.cfg = newCfg
	rc := c.renderConfig()
	game := c.game
	c.mu.Unlock()

	if game != nil {
		game.SetConfig(rc)
	}

	c.metrics.IncrementConfigReloads()
	c.logInfo("configuration reloaded", "source", c.configSource,
		"direction", rc.Effect.Direction, "colors", len(rc.Effect.Colors))
	c.emitEvent(EventConfigReloaded, "Configuration reloaded in-place")
	return nil
}

// Render advances a fresh CPU game by frames ticks of exactly 1/FPS.
func (c *effectImpl) Render(frames int) (image.Image, error) {
	if c.running.Load() {
		return nil, ErrAlreadyRunning
	}
	if frames < 1 {
		return nil, fmt.Errorf("frames must be positive, got %d", frames)
	}

	c.mu.RLock()
	rc := c.renderConfig()
	c.mu.RUnlock()
	if err := rc.Validate(); err != nil {
		return nil, err
	}

	game := c.newGame(rc, render.NewRasterCanvas(rc.Width, rc.Height))
	step := time.Second / time.Duration(rc.FPS)
	var clock time.Time
	game.SetClock(func() time.Time {
		clock = clock.Add(step)
		return clock
	})

	for range frames {
		if err := game.Update(); err != nil {
			return nil, fmt.Errorf("render frame: %w", err)
		}
	}

	c.mu.Lock()
	c.game = game
	c.mu.Unlock()
	return game.Snapshot(), nil
}

// Snapshot returns a copy of the latest CPU frame.
func (c *effectImpl) Snapshot() image.Image {
	c.mu.RLock()
	game := c.game
	c.mu.RUnlock()
	if game == nil {
		return nil
	}
	return game.Snapshot()
}

// IsRunning reports whether the animation loop is active.
func (c *effectImpl) IsRunning() bool {
	return c.running.Load()
}

// Status returns detailed status information about the instance.
func (c *effectImpl) Status() Status {
	c.mu.RLock()
	startTime := c.startTime
	c.mu.RUnlock()

	return Status{
		Running:      c.running.Load(),
		StartTime:    startTime,
		Frames:       c.frames.Load(),
		LastError:    c.getError(),
		ConfigSource: c.configSource,
	}
}

// SetErrorHandler registers a callback for runtime errors.
func (c *effectImpl) SetErrorHandler(handler ErrorHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorHandler = handler
}

// SetEventHandler registers a callback for lifecycle events.
func (c *effectImpl) SetEventHandler(handler EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eventHandler = handler
}

// Metrics returns the metrics collector for this instance.
func (c *effectImpl) Metrics() *Metrics {
	return c.metrics
}

// errorBox lets errors of differing concrete types share one atomic slot.
type errorBox struct{ err error }

func (c *effectImpl) getError() error {
	if b := c.lastError.Load(); b != nil {
		return b.err
	}
	return nil
}

func (c *effectImpl) logInfo(msg string, args ...any) {
	if c.opts.Logger != nil {
		c.opts.Logger.Info(msg, args...)
	}
}

// notifyError records err and hands it to the error handler.
func (c *effectImpl) notifyError(err error) {
	c.lastError.Store(&errorBox{err: err})
	c.metrics.IncrementErrors()

	c.mu.RLock()
	handler := c.errorHandler
	logger := c.opts.Logger
	c.mu.RUnlock()

	if logger != nil {
		logger.Error("runtime error", "error", err)
	}
	if handler != nil {
		go func() {
			defer func() {
				if r := recover(); r != nil && logger != nil {
					logger.Error("error handler panicked", "panic", r, "original_error", err)
				}
			}()
			handler(err)
		}()
	}

	c.emitEvent(EventError, err.Error())
}

// emitEvent sends an event to the event handler if configured.
func (c *effectImpl) emitEvent(eventType EventType, message string) {
	c.metrics.IncrementEventsEmitted()

	c.mu.RLock()
	handler := c.eventHandler
	c.mu.RUnlock()
	if handler == nil {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				c.mu.RLock()
				errHandler := c.errorHandler
				c.mu.RUnlock()
				if errHandler != nil {
					errHandler(fmt.Errorf("panic in event handler: %v", r))
				}
			}
		}()

		handler(Event{
			Type:      eventType,
			Timestamp: time.Now(),
			Message:   message,
		})
	}()
}

// Health returns a health check result for the instance.
func (c *effectImpl) Health() HealthCheck {
	now := time.Now()
	running := c.running.Load()
	frames := c.frames.Load()

	var uptime time.Duration
	c.mu.RLock()
	if running && !c.startTime.IsZero() {
		uptime = now.Sub(c.startTime)
	}
	c.mu.RUnlock()

	components := make(map[string]ComponentHealth, 3)
	if running {
		components["instance"] = ComponentHealth{Status: HealthOK, Message: "Instance is running", LastUpdated: now}
	} else {
		components["instance"] = ComponentHealth{Status: HealthUnhealthy, Message: "Instance is not running", LastUpdated: now}
	}

	switch {
	case running && frames > 0:
		components["renderer"] = ComponentHealth{
			Status:      HealthOK,
			Message:     fmt.Sprintf("%d frames drawn", frames),
			LastUpdated: now,
		}
	case running:
		components["renderer"] = ComponentHealth{Status: HealthDegraded, Message: "No frames drawn yet", LastUpdated: now}
	default:
		components["renderer"] = ComponentHealth{Status: HealthUnhealthy, Message: "Renderer not active", LastUpdated: now}
	}

	lastErr := c.getError()
	if lastErr != nil {
		components["errors"] = ComponentHealth{Status: HealthDegraded, Message: lastErr.Error(), LastUpdated: now}
	} else {
		components["errors"] = ComponentHealth{Status: HealthOK, Message: "No recent errors", LastUpdated: now}
	}

	status, message := HealthOK, "All components healthy"
	switch {
	case !running:
		status, message = HealthUnhealthy, "Instance is not running"
	case lastErr != nil:
		status, message = HealthDegraded, "Running with recent errors"
	}

	return HealthCheck{
		Status:     status,
		Timestamp:  now,
		Uptime:     uptime,
		Components: components,
		Message:    message,
	}
}
