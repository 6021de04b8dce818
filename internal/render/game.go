package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/opd-ai/go-rampfx/internal/ramp"
)

// ErrGameTerminated is returned when the game loop is terminated via context cancellation.
var ErrGameTerminated = errors.New("game terminated")

// ErrorHandler is a function type for handling errors during game updates.
type ErrorHandler func(err error)

// DefaultErrorHandler writes errors to stderr.
func DefaultErrorHandler(err error) {
	fmt.Fprintf(os.Stderr, "update error: %v\n", err)
}

// FrameHook is called after every animation tick with the time the tick took.
type FrameHook func(frameTime time.Duration)

// Game implements ebiten.Game. It advances the ramp in Update and presents
// the rendered frame in Draw.
type Game struct {
	config       Config
	base         BackgroundRenderer
	effect       *RampBackground
	metrics      *FrameMetrics
	errorHandler ErrorHandler
	frameHook    FrameHook
	pending      *ramp.Settings
	now          func() time.Time
	lastTick     time.Time
	hintsOnce    sync.Once
	mu           sync.RWMutex
	running      bool
	ctx          context.Context
}

// NewGame creates a Game drawing into an Ebiten offscreen frame.
func NewGame(config Config) *Game {
	return NewGameWithCanvas(config, NewEbitenCanvas(config.Width, config.Height))
}

// NewGameWithCanvas creates a Game drawing into the given frame canvas.
// This is useful for testing with a RasterCanvas.
func NewGameWithCanvas(config Config, frame ramp.Canvas) *Game {
	return &Game{
		config:       config,
		base:         NewBaseLayer(config.Transparent),
		effect:       NewRampBackground(frame, config.Effect, config.Readback),
		metrics:      NewFrameMetrics(time.Second),
		errorHandler: DefaultErrorHandler,
		now:          time.Now,
	}
}

// SetErrorHandler sets a custom error handler for update errors.
// If nil is passed, errors will be silently ignored.
func (g *Game) SetErrorHandler(handler ErrorHandler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errorHandler = handler
}

// SetFrameHook registers a callback run after every tick.
func (g *Game) SetFrameHook(hook FrameHook) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.frameHook = hook
}

// SetContext sets a context for the game loop. When the context is cancelled,
// the game loop will terminate gracefully.
func (g *Game) SetContext(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ctx = ctx
}

// SetSettings queues new ramp settings. They are applied on the next Update,
// so it is safe to call from any goroutine.
func (g *Game) SetSettings(s ramp.Settings) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = &s
}

// SetClock replaces the time source used to measure tick intervals.
// A nil clock restores time.Now.
func (g *Game) SetClock(now func() time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if now == nil {
		now = time.Now
	}
	g.now = now
	g.lastTick = time.Time{}
}

// Snapshot returns a copy of the last rendered frame. It returns nil when
// the frame lives on the GPU.
func (g *Game) Snapshot() image.Image {
	g.mu.RLock()
	defer g.mu.RUnlock()

	f, ok := g.effect.Frame().(*RasterCanvas)
	if !ok {
		return nil
	}
	src := f.Image()
	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	return out
}

// Effect returns the ramp layer.
func (g *Game) Effect() *RampBackground {
	return g.effect
}

// Metrics returns the frame timing metrics.
func (g *Game) Metrics() *FrameMetrics {
	return g.metrics
}

// elapsed returns the seconds since the previous tick. The first tick
// advances by one nominal frame.
func (g *Game) elapsed() float64 {
	now := g.now()
	defer func() { g.lastTick = now }()

	if g.lastTick.IsZero() {
		if g.config.FPS <= 0 {
			return 1.0 / 60
		}
		return 1 / float64(g.config.FPS)
	}
	return now.Sub(g.lastTick).Seconds()
}

// Update implements ebiten.Game.Update.
func (g *Game) Update() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.ctx != nil {
		select {
		case <-g.ctx.Done():
			return ErrGameTerminated
		default:
		}
	}

	if g.running {
		g.hintsOnce.Do(func() {
			if err := ApplyBackgroundHints(g.config.Hints); err != nil && g.errorHandler != nil {
				g.errorHandler(fmt.Errorf("applying window hints: %w", err))
			}
		})
	}

	if g.pending != nil {
		g.effect.Apply(*g.pending)
		g.pending = nil
	}

	dt := g.elapsed()
	start := time.Now()
	g.effect.Tick(dt)
	elapsed := time.Since(start)

	g.metrics.RecordFrame(elapsed)
	if g.frameHook != nil {
		g.frameHook(elapsed)
	}
	return nil
}

// Draw implements ebiten.Game.Draw.
func (g *Game) Draw(screen *ebiten.Image) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	g.base.Draw(screen)
	g.effect.Draw(screen)
}

// Layout implements ebiten.Game.Layout.
// It returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.Width, g.config.Height
}

// Config returns the current configuration.
func (g *Game) Config() Config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.config
}

// SetConfig updates the configuration in place, resizing the frame and
// queueing the new effect settings.
func (g *Game) SetConfig(config Config) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if config.Transparent != g.config.Transparent {
		g.base = NewBaseLayer(config.Transparent)
	}
	g.effect.Resize(config.Width, config.Height)
	g.effect.SetReadback(config.Readback)
	effect := config.Effect
	g.pending = &effect
	g.config = config

	if g.running {
		ebiten.SetWindowSize(config.Width, config.Height)
		ebiten.SetWindowTitle(config.Title)
		ebiten.SetTPS(config.FPS)
	}
}

// Run starts the Ebiten game loop.
// This function blocks until the window is closed.
func (g *Game) Run() error {
	g.mu.Lock()
	ebiten.SetWindowSize(g.config.Width, g.config.Height)
	ebiten.SetWindowTitle(g.config.Title)
	ebiten.SetTPS(g.config.FPS)
	ebiten.SetWindowDecorated(!g.config.Hints.Any())
	g.running = true
	transparent := g.config.Transparent
	g.mu.Unlock()

	err := ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{
		ScreenTransparent: transparent,
	})

	g.mu.Lock()
	g.running = false
	g.mu.Unlock()

	return err
}

// IsRunning returns whether the game loop is currently running.
func (g *Game) IsRunning() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.running
}
