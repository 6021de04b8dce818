package render

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/opd-ai/go-rampfx/internal/ramp"
)

func newTestGame(t *testing.T) (*Game, *RasterCanvas) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 160, 90
	frame := NewRasterCanvas(cfg.Width, cfg.Height)
	return NewGameWithCanvas(cfg, frame), frame
}

func TestNewGameWithCanvas(t *testing.T) {
	game, frame := newTestGame(t)
	if game.Effect().Frame() != frame {
		t.Error("effect does not draw into the supplied frame")
	}
	if game.Effect().Animation().Direction() != ramp.Left {
		t.Errorf("Direction() = %v, want Left", game.Effect().Animation().Direction())
	}
	if game.IsRunning() {
		t.Error("IsRunning() = true before Run")
	}
}

func TestGameLayout(t *testing.T) {
	game, _ := newTestGame(t)
	w, h := game.Layout(1920, 1080)
	if w != 160 || h != 90 {
		t.Errorf("Layout() = (%d, %d), want (160, 90)", w, h)
	}
}

func TestGameUpdateTicksRamp(t *testing.T) {
	game, frame := newTestGame(t)

	if err := game.Update(); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if got := game.Metrics().Frames(); got != 1 {
		t.Errorf("Frames() = %d, want 1", got)
	}
	if shift := game.Effect().Animation().Shift(); shift.X <= 0 {
		t.Errorf("shift.X = %v after one tick, want > 0", shift.X)
	}
	if got := frame.Image().RGBAAt(80, 45); got.A != 255 {
		t.Errorf("frame pixel = %v, want opaque ramp color", got)
	}
}

func TestGameUpdateUsesElapsedTime(t *testing.T) {
	game, _ := newTestGame(t)
	game.SetSettings(ramp.Settings{Colors: []string{"red", "blue"}, Direction: "left", Speed: 120, Scale: 100})

	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	game.SetClock(func() time.Time {
		clock = clock.Add(250 * time.Millisecond)
		return clock
	})

	for i := 0; i < 3; i++ {
		if err := game.Update(); err != nil {
			t.Fatal(err)
		}
	}
	// One nominal 1/60 s frame, then two 250ms steps: 2 + 30 + 30.
	if got := game.Effect().Animation().Shift().X; got < 61.999 || got > 62.001 {
		t.Errorf("shift.X = %v, want 62", got)
	}
}

func TestGameSnapshot(t *testing.T) {
	game, frame := newTestGame(t)
	if err := game.Update(); err != nil {
		t.Fatal(err)
	}

	img, ok := game.Snapshot().(*image.RGBA)
	if !ok {
		t.Fatalf("Snapshot() type = %T, want *image.RGBA", game.Snapshot())
	}
	if img.Bounds() != frame.Image().Bounds() {
		t.Errorf("Snapshot() bounds = %v, want %v", img.Bounds(), frame.Image().Bounds())
	}
	if img.RGBAAt(10, 10) != frame.Image().RGBAAt(10, 10) {
		t.Error("snapshot pixel differs from the frame")
	}

	frame.Clear()
	if img.RGBAAt(10, 10).A == 0 {
		t.Error("snapshot shares pixels with the frame")
	}
}

func TestGameSetConfigReadback(t *testing.T) {
	game, _ := newTestGame(t)
	cfg := game.Config()
	cfg.Readback = false
	game.SetConfig(cfg)
	if game.Effect().Animation().Readback() {
		t.Error("Readback() = true after SetConfig disabled it")
	}
}

func TestGameSetSettingsAppliedOnUpdate(t *testing.T) {
	game, _ := newTestGame(t)
	game.SetSettings(ramp.Settings{Colors: []string{"red"}, Direction: "down", Speed: 50, Scale: 200})

	if game.Effect().Animation().Direction() != ramp.Left {
		t.Error("settings applied before Update")
	}
	if err := game.Update(); err != nil {
		t.Fatal(err)
	}
	anim := game.Effect().Animation()
	if anim.Direction() != ramp.Down || anim.Speed() != 50 || anim.Scale() != 2 {
		t.Errorf("got direction %v speed %v scale %v, want Down 50 2", anim.Direction(), anim.Speed(), anim.Scale())
	}
}

func TestGameSetConfigResizesFrame(t *testing.T) {
	game, frame := newTestGame(t)
	cfg := game.Config()
	cfg.Width, cfg.Height = 320, 100
	game.SetConfig(cfg)

	if frame.Width() != 320 || frame.Height() != 100 {
		t.Errorf("frame = %dx%d, want 320x100", frame.Width(), frame.Height())
	}
	if w, h := game.Layout(0, 0); w != 320 || h != 100 {
		t.Errorf("Layout() = (%d, %d), want (320, 100)", w, h)
	}
	if err := game.Update(); err != nil {
		t.Fatal(err)
	}
	if got := game.Effect().Animation().Seamless().Width(); got != 320 {
		t.Errorf("ramp width = %v, want 320", got)
	}
}

func TestGameSetConfigSwitchesBaseLayer(t *testing.T) {
	game, _ := newTestGame(t)
	if game.base.Mode() != BackgroundModeSolid {
		t.Fatalf("base mode = %v, want solid", game.base.Mode())
	}
	cfg := game.Config()
	cfg.Transparent = true
	game.SetConfig(cfg)
	if game.base.Mode() != BackgroundModeNone {
		t.Errorf("base mode = %v, want none", game.base.Mode())
	}
}

func TestGameUpdateWithCancelledContext(t *testing.T) {
	game, _ := newTestGame(t)
	ctx, cancel := context.WithCancel(context.Background())
	game.SetContext(ctx)

	if err := game.Update(); err != nil {
		t.Fatalf("Update() error = %v before cancel", err)
	}
	cancel()
	if err := game.Update(); !errors.Is(err, ErrGameTerminated) {
		t.Errorf("Update() error = %v, want ErrGameTerminated", err)
	}
}

func TestGameFrameHook(t *testing.T) {
	game, _ := newTestGame(t)
	var calls int
	game.SetFrameHook(func(d time.Duration) {
		calls++
		if d < 0 {
			t.Errorf("negative frame time %v", d)
		}
	})
	for i := 0; i < 3; i++ {
		_ = game.Update()
	}
	if calls != 3 {
		t.Errorf("hook called %d times, want 3", calls)
	}
}

func TestGameConcurrentSettings(t *testing.T) {
	game, _ := newTestGame(t)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			game.SetSettings(ramp.Settings{Colors: []string{"red", "blue"}, Speed: float64(30 + i)})
			_ = game.Config()
		}(i)
	}
	for i := 0; i < 10; i++ {
		_ = game.Update()
	}
	wg.Wait()
}

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
	bad := []Config{
		{Width: 0, Height: 10, FPS: 60},
		{Width: 10, Height: -1, FPS: 60},
		{Width: 10, Height: 10, FPS: 0},
	}
	for _, c := range bad {
		if c.Validate() == nil {
			t.Errorf("Validate(%+v) = nil, want error", c)
		}
	}
}
