package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func newParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestIsLuaConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"assignment", "rampfx.config = {}", true},
		{"indented", "  rampfx.config={}", true},
		{"after comment line", "-- settings\nrampfx.config = { speed = 1 }", true},
		{"legacy", "speed 100\ndirection Left", false},
		{"mentioned in comment", "# rampfx.config = {} is the Lua form", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isLuaConfig([]byte(tt.content)); got != tt.want {
				t.Errorf("isLuaConfig(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestParserDetectsFormat(t *testing.T) {
	p := newParser(t)

	lua, err := p.Parse([]byte(`rampfx.config = { direction = 'Up' }`))
	if err != nil {
		t.Fatalf("Parse(lua) failed: %v", err)
	}
	if lua.Effect.Direction != "Up" {
		t.Errorf("lua direction = %q, want %q", lua.Effect.Direction, "Up")
	}

	legacy, err := p.Parse([]byte("direction Down\n"))
	if err != nil {
		t.Fatalf("Parse(legacy) failed: %v", err)
	}
	if legacy.Effect.Direction != "Down" {
		t.Errorf("legacy direction = %q, want %q", legacy.Effect.Direction, "Down")
	}
}

func TestParserExpandsEnv(t *testing.T) {
	t.Setenv("RAMPFX_TEST_COLOR", "teal")
	p := newParser(t)

	cfg, err := p.Parse([]byte("color1 ${RAMPFX_TEST_COLOR}\ntitle ${RAMPFX_TEST_UNSET:-Fallback}\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Effect.Colors[0] != "teal" {
		t.Errorf("color1 = %q, want %q", cfg.Effect.Colors[0], "teal")
	}
	if cfg.Window.Title != "Fallback" {
		t.Errorf("title = %q, want %q", cfg.Window.Title, "Fallback")
	}
}

func TestParserParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rampfx.lua")
	if err := os.WriteFile(path, []byte(`rampfx.config = { speed = 250 }`), 0o644); err != nil {
		t.Fatal(err)
	}

	p := newParser(t)
	cfg, err := p.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if cfg.Effect.Speed != 250 {
		t.Errorf("speed = %v, want 250", cfg.Effect.Speed)
	}

	if _, err := p.ParseFile(filepath.Join(dir, "missing.lua")); err == nil {
		t.Error("ParseFile of a missing file succeeded, want error")
	}
}

func TestParserParseFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"configs/ramp.conf": {Data: []byte("scale 300\n")},
	}
	p := newParser(t)

	cfg, err := p.ParseFromFS(fsys, "configs/ramp.conf")
	if err != nil {
		t.Fatalf("ParseFromFS failed: %v", err)
	}
	if cfg.Effect.Scale != 300 {
		t.Errorf("scale = %v, want 300", cfg.Effect.Scale)
	}

	if _, err := p.ParseFromFS(fsys, "nope"); err == nil {
		t.Error("ParseFromFS of a missing file succeeded, want error")
	}
}

func TestParserParseReader(t *testing.T) {
	p := newParser(t)

	tests := []struct {
		name    string
		content string
		format  string
		wantErr bool
	}{
		{"lua", `rampfx.config = { fps = 24 }`, "lua", false},
		{"legacy", "fps 24", "legacy", false},
		{"unknown format", "fps 24", "toml", true},
		{"lua parse error", "rampfx.config = {", "lua", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := p.ParseReader(strings.NewReader(tt.content), tt.format)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ParseReader succeeded, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseReader failed: %v", err)
			}
			if cfg.Window.FPS != 24 {
				t.Errorf("fps = %d, want 24", cfg.Window.FPS)
			}
		})
	}
}

func TestParserSampleConfigs(t *testing.T) {
	p := newParser(t)

	for _, name := range []string{"basic.lua", "basic.conf"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := p.ParseFile(filepath.Join("..", "..", "test", "configs", name))
			if err != nil {
				t.Fatalf("ParseFile failed: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if cfg.Effect.Direction != "Right-Down" {
				t.Errorf("direction = %q, want %q", cfg.Effect.Direction, "Right-Down")
			}
			if cfg.Effect.PaletteSize() != 4 {
				t.Errorf("PaletteSize() = %d, want 4", cfg.Effect.PaletteSize())
			}
		})
	}
}
