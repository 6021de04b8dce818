package rampfx

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/opd-ai/go-rampfx/internal/ramp"
)

const smallLua = `rampfx.config = {
    width = 64, height = 16, fps = 60,
    colors = { 'red', 'blue' },
}
`

// headlessOpts returns options with a private metrics collector.
func headlessOpts() *Options {
	return &Options{Headless: true, Metrics: NewMetrics(), ShutdownTimeout: 2 * time.Second}
}

func newSmall(t *testing.T, opts *Options) Effect {
	t.Helper()
	e, err := NewFromReader(strings.NewReader(smallLua), FormatLua, opts)
	if err != nil {
		t.Fatalf("NewFromReader failed: %v", err)
	}
	t.Cleanup(func() { e.Stop() })
	return e
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		in   EventType
		want string
	}{
		{EventStarted, "started"},
		{EventStopped, "stopped"},
		{EventRestarted, "restarted"},
		{EventConfigReloaded, "config_reloaded"},
		{EventError, "error"},
		{EventType(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("EventType(%d).String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConstructors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ramp.lua")
	if err := os.WriteFile(path, []byte(smallLua), 0o644); err != nil {
		t.Fatal(err)
	}
	fsys := fstest.MapFS{"ramp.conf": {Data: []byte("width 32\nheight 8\n")}}

	tests := []struct {
		name       string
		create     func() (Effect, error)
		wantSource string
		wantErr    bool
	}{
		{"file", func() (Effect, error) { return New(path, nil) }, path, false},
		{"missing file", func() (Effect, error) { return New(filepath.Join(dir, "nope.lua"), nil) }, "", true},
		{"fs", func() (Effect, error) { return NewFromFS(fsys, "ramp.conf", nil) }, "embedded:ramp.conf", false},
		{"fs missing", func() (Effect, error) { return NewFromFS(fsys, "other.conf", nil) }, "", true},
		{"reader legacy", func() (Effect, error) {
			return NewFromReader(strings.NewReader("speed 50"), FormatLegacy, nil)
		}, "reader", false},
		{"reader bad format", func() (Effect, error) {
			return NewFromReader(strings.NewReader("speed 50"), "yaml", nil)
		}, "", true},
		{"reader invalid config", func() (Effect, error) {
			return NewFromReader(strings.NewReader("width 0"), FormatLegacy, nil)
		}, "", true},
		{"reader bad color", func() (Effect, error) {
			return NewFromReader(strings.NewReader("colors red nonsense"), FormatLegacy, nil)
		}, "", true},
		{"default", func() (Effect, error) { return NewDefault(nil) }, "default", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := tt.create()
			if tt.wantErr {
				if err == nil {
					t.Fatal("constructor succeeded, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("constructor failed: %v", err)
			}
			if got := e.Status().ConfigSource; got != tt.wantSource {
				t.Errorf("ConfigSource = %q, want %q", got, tt.wantSource)
			}
			if e.IsRunning() {
				t.Error("new instance reports running")
			}
			if e.Metrics() == nil {
				t.Error("Metrics() = nil")
			}
		})
	}
}

func TestRender(t *testing.T) {
	opts := headlessOpts()
	e := newSmall(t, opts)

	if e.Snapshot() != nil {
		t.Error("Snapshot() before any frame should be nil")
	}

	img, err := e.Render(30)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 64, 16) {
		t.Errorf("bounds = %v, want 64x16", img.Bounds())
	}
	for x := 0; x < 64; x += 7 {
		if _, _, _, a := img.At(x, 8).RGBA(); a != 0xffff {
			t.Errorf("pixel (%d, 8) alpha = %#x, want opaque", x, a)
		}
	}

	if got := opts.Metrics.Snapshot().Frames; got != 30 {
		t.Errorf("Frames = %d, want 30", got)
	}
	if got := opts.Metrics.Snapshot().TileRebuilds; got < 1 {
		t.Errorf("TileRebuilds = %d, want at least 1", got)
	}
	if e.Snapshot() == nil {
		t.Error("Snapshot() after Render = nil")
	}

	if _, err := e.Render(0); err == nil {
		t.Error("Render(0) succeeded, want error")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	a, err := newSmall(t, headlessOpts()).Render(45)
	if err != nil {
		t.Fatal(err)
	}
	b, err := newSmall(t, headlessOpts()).Render(45)
	if err != nil {
		t.Fatal(err)
	}
	if string(a.(*image.RGBA).Pix) != string(b.(*image.RGBA).Pix) {
		t.Error("two renders of the same config and frame count differ")
	}
}

func TestRenderShiftMatchesFrameCount(t *testing.T) {
	e := newSmall(t, headlessOpts())
	if _, err := e.Render(60); err != nil {
		t.Fatal(err)
	}
	impl := e.(*effectImpl)
	// 60 frames at 60 fps and speed 100 move the ramp 100 px, which wraps
	// once around the 64 px tile.
	shift := impl.game.Effect().Animation().Shift()
	if shift.X < 35.9 || shift.X > 36.1 {
		t.Errorf("shift.X = %v, want 36", shift.X)
	}
}

func TestHeadlessLifecycle(t *testing.T) {
	opts := headlessOpts()
	e := newSmall(t, opts)

	var mu sync.Mutex
	var events []EventType
	e.SetEventHandler(func(ev Event) {
		mu.Lock()
		events = append(events, ev.Type)
		mu.Unlock()
	})

	if err := e.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !e.IsRunning() {
		t.Fatal("IsRunning() = false after Start")
	}
	if err := e.Start(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Start() = %v, want ErrAlreadyRunning", err)
	}
	if _, err := e.Render(1); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("Render while running = %v, want ErrAlreadyRunning", err)
	}

	waitFor(t, "frames", func() bool { return e.Status().Frames >= 3 })
	if e.Snapshot() == nil {
		t.Error("Snapshot() = nil while running headless")
	}
	if h := e.Health(); !h.IsHealthy() {
		t.Errorf("Health() = %v (%s), want ok", h.Status, h.Message)
	}

	if err := e.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if e.IsRunning() {
		t.Error("IsRunning() = true after Stop")
	}
	if err := e.Stop(); err != nil {
		t.Errorf("second Stop() = %v, want nil", err)
	}
	if h := e.Health(); !h.IsUnhealthy() {
		t.Errorf("Health() after Stop = %v, want unhealthy", h.Status)
	}

	snap := opts.Metrics.Snapshot()
	if snap.Starts != 1 || snap.Stops != 1 || snap.Running {
		t.Errorf("metrics = %+v, want 1 start, 1 stop, not running", snap)
	}

	waitFor(t, "stopped event", func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, ev := range events {
			if ev == EventStopped {
				return true
			}
		}
		return false
	})
}

func TestRunBlocksUntilStop(t *testing.T) {
	e := newSmall(t, headlessOpts())

	done := make(chan error, 1)
	go func() { done <- e.Run() }()

	waitFor(t, "running", e.IsRunning)
	if err := e.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestReloadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ramp.lua")
	if err := os.WriteFile(path, []byte(smallLua), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := headlessOpts()
	e, err := New(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Stop()

	if err := e.ReloadConfig(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("ReloadConfig before Start = %v, want ErrNotRunning", err)
	}
	if err := e.Start(); err != nil {
		t.Fatal(err)
	}

	updated := strings.Replace(smallLua, "fps = 60,", "fps = 60, direction = 'Up', width = 32,", 1)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := e.ReloadConfig(); err != nil {
		t.Fatalf("ReloadConfig failed: %v", err)
	}

	impl := e.(*effectImpl)
	waitFor(t, "direction change", func() bool {
		img := e.Snapshot()
		return img != nil && img.Bounds().Dx() == 32 &&
			impl.game.Config().Effect.Direction == "Up"
	})
	if got := opts.Metrics.Snapshot().ConfigReloads; got != 1 {
		t.Errorf("ConfigReloads = %d, want 1", got)
	}

	if err := os.WriteFile(path, []byte("rampfx.config = {"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := e.ReloadConfig(); err == nil {
		t.Error("ReloadConfig of a broken file succeeded, want error")
	}
	if e.Status().LastError == nil {
		t.Error("Status().LastError = nil after a failed reload")
	}
	if !e.IsRunning() {
		t.Error("failed reload stopped the instance")
	}
}

func TestRestart(t *testing.T) {
	opts := headlessOpts()
	e := newSmall(t, opts)

	if err := e.Start(); err != nil {
		t.Fatal(err)
	}
	if err := e.Restart(); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	if !e.IsRunning() {
		t.Error("IsRunning() = false after Restart")
	}
	if got := opts.Metrics.Snapshot().Restarts; got != 1 {
		t.Errorf("Restarts = %d, want 1", got)
	}
}

func TestErrorHandlerRecoversPanic(t *testing.T) {
	e := newSmall(t, headlessOpts())
	impl := e.(*effectImpl)

	called := make(chan struct{})
	e.SetErrorHandler(func(error) {
		close(called)
		panic("handler bug")
	})
	impl.notifyError(errors.New("boom"))

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("error handler not called")
	}
	if got := e.Status().LastError; got == nil || got.Error() != "boom" {
		t.Errorf("LastError = %v, want boom", got)
	}
}

func TestOptionsOverrides(t *testing.T) {
	e := newSmall(t, &Options{Headless: true, WindowTitle: "Custom", FPS: 30, Metrics: NewMetrics()})
	impl := e.(*effectImpl)

	rc := impl.renderConfig()
	if rc.Title != "Custom" || rc.FPS != 30 {
		t.Errorf("renderConfig() title %q fps %d, want Custom 30", rc.Title, rc.FPS)
	}
	if rc.Width != 64 || rc.Height != 16 {
		t.Errorf("renderConfig() size %dx%d, want 64x16", rc.Width, rc.Height)
	}
	if len(rc.Effect.Colors) != 2 || rc.Effect.Direction != ramp.Left.String() {
		t.Errorf("renderConfig() effect = %+v", rc.Effect)
	}
}

func TestWatchable(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"/etc/rampfx.lua", true},
		{"embedded:ramp.lua", false},
		{"reader", false},
		{"default", false},
	}
	for _, tt := range tests {
		c := &effectImpl{configSource: tt.source}
		if got := c.watchable(); got != tt.want {
			t.Errorf("watchable(%q) = %v, want %v", tt.source, got, tt.want)
		}
	}
}
