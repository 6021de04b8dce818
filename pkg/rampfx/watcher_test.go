package rampfx

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestConfigWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ramp.lua")
	if err := os.WriteFile(path, []byte(smallLua), 0o644); err != nil {
		t.Fatal(err)
	}

	var reloads atomic.Int32
	w, err := watchConfig(context.Background(), path, 50*time.Millisecond, func() error {
		reloads.Add(1)
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("watchConfig failed: %v", err)
	}
	defer w.Close()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte(smallLua), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	waitFor(t, "reload", func() bool { return reloads.Load() > 0 })

	time.Sleep(200 * time.Millisecond)
	if got := reloads.Load(); got != 1 {
		t.Errorf("reloads = %d, want 1 for a single burst", got)
	}
}

func TestConfigWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ramp.lua")
	if err := os.WriteFile(path, []byte(smallLua), 0o644); err != nil {
		t.Fatal(err)
	}

	var reloads atomic.Int32
	w, err := watchConfig(context.Background(), path, 20*time.Millisecond, func() error {
		reloads.Add(1)
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("watchConfig failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(150 * time.Millisecond)
	if got := reloads.Load(); got != 0 {
		t.Errorf("reloads = %d, want 0 for an unrelated file", got)
	}
}

func TestConfigWatcherMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "ramp.lua")
	if _, err := watchConfig(context.Background(), path, 0, func() error { return nil }, nil); err == nil {
		t.Error("watchConfig on a missing directory succeeded, want error")
	}
}

func TestWatchConfigReloadsEffect(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ramp.lua")
	if err := os.WriteFile(path, []byte(smallLua), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := headlessOpts()
	opts.WatchConfig = true
	opts.WatchDebounce = 20 * time.Millisecond
	e, err := New(path, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { e.Stop() })
	if err := e.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	updated := `rampfx.config = { width = 32, height = 16, fps = 60, colors = { 'red', 'blue' } }`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "config reload", func() bool { return e.Metrics().Snapshot().ConfigReloads > 0 })

	waitFor(t, "resized frame", func() bool {
		img := e.Snapshot()
		return img != nil && img.Bounds().Dx() == 32
	})
}
