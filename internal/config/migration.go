package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Migrator converts configurations to the Lua format.
type Migrator struct {
	// includeComments adds explanatory comments to the output.
	includeComments bool
	// preserveDefaults includes settings even when they match defaults.
	preserveDefaults bool
}

// MigratorOption is a functional option for configuring a Migrator.
type MigratorOption func(*Migrator)

// WithComments enables adding explanatory comments to the Lua output.
func WithComments(include bool) MigratorOption {
	return func(m *Migrator) {
		m.includeComments = include
	}
}

// WithDefaults includes settings that match default values in the output.
func WithDefaults(preserve bool) MigratorOption {
	return func(m *Migrator) {
		m.preserveDefaults = preserve
	}
}

// NewMigrator creates a new Migrator with the given options.
func NewMigrator(opts ...MigratorOption) *Migrator {
	m := &Migrator{
		includeComments: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MigrateToLua renders cfg as a Lua file assigning rampfx.config.
// Parsing the output yields a Config equal to cfg.
func (m *Migrator) MigrateToLua(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	var buf bytes.Buffer
	if m.includeComments {
		buf.WriteString("-- rampfx Lua configuration\n")
		buf.WriteString("-- Converted from the legacy key-value format\n\n")
	}

	buf.WriteString("rampfx.config = {\n")
	m.writeWindow(&buf, &cfg.Window)
	m.writeEffect(&buf, &cfg.Effect)
	buf.WriteString("}\n")

	return buf.Bytes(), nil
}

func (m *Migrator) writeWindow(buf *bytes.Buffer, wc *WindowConfig) {
	defaults := DefaultConfig().Window

	if m.includeComments {
		buf.WriteString("    -- Window settings\n")
	}
	m.writeIntIf(buf, "width", wc.Width, defaults.Width)
	m.writeIntIf(buf, "height", wc.Height, defaults.Height)
	if m.preserveDefaults || wc.Title != defaults.Title {
		m.writeString(buf, "title", wc.Title)
	}
	m.writeIntIf(buf, "fps", wc.FPS, defaults.FPS)
	m.writeBoolIf(buf, "transparent", wc.Transparent, defaults.Transparent)
	m.writeBoolIf(buf, "skip_taskbar", wc.SkipTaskbar, defaults.SkipTaskbar)
	m.writeBoolIf(buf, "skip_pager", wc.SkipPager, defaults.SkipPager)
	m.writeBoolIf(buf, "below", wc.Below, defaults.Below)
	m.writeBoolIf(buf, "sticky", wc.Sticky, defaults.Sticky)
}

func (m *Migrator) writeEffect(buf *bytes.Buffer, ec *EffectConfig) {
	defaults := DefaultConfig().Effect

	if m.includeComments {
		buf.WriteString("\n    -- Ramp settings\n")
	}
	if m.preserveDefaults || ec.Direction != defaults.Direction {
		m.writeString(buf, "direction", ec.Direction)
	}
	if m.preserveDefaults || ec.Speed != defaults.Speed {
		m.writeFloat(buf, "speed", ec.Speed)
	}
	if m.preserveDefaults || ec.Scale != defaults.Scale {
		m.writeFloat(buf, "scale", ec.Scale)
	}
	m.writeBoolIf(buf, "readback", ec.Readback, defaults.Readback)

	// A colors array implies its length as the count, so the count is
	// written whenever the array is.
	if m.preserveDefaults || ec.Colors != defaults.Colors {
		m.writeColors(buf, ec.Colors[:])
		fmt.Fprintf(buf, "    colors_count = %d,\n", ec.ColorsCount)
	} else {
		m.writeIntIf(buf, "colors_count", ec.ColorsCount, defaults.ColorsCount)
	}
}

// writeColors writes the color slots as a Lua array. Trailing empty slots
// are dropped.
func (m *Migrator) writeColors(buf *bytes.Buffer, colors []string) {
	n := len(colors)
	for n > 0 && colors[n-1] == "" {
		n--
	}
	quoted := make([]string, n)
	for i, c := range colors[:n] {
		quoted[i] = luaQuote(c)
	}
	fmt.Fprintf(buf, "    colors = { %s },\n", strings.Join(quoted, ", "))
}

func (m *Migrator) writeBoolIf(buf *bytes.Buffer, name string, value, def bool) {
	if m.preserveDefaults || value != def {
		fmt.Fprintf(buf, "    %s = %t,\n", name, value)
	}
}

func (m *Migrator) writeIntIf(buf *bytes.Buffer, name string, value, def int) {
	if m.preserveDefaults || value != def {
		fmt.Fprintf(buf, "    %s = %d,\n", name, value)
	}
}

// writeString writes a string setting to the buffer.
func (m *Migrator) writeString(buf *bytes.Buffer, name, value string) {
	fmt.Fprintf(buf, "    %s = %s,\n", name, luaQuote(value))
}

// writeFloat writes a number with the shortest exact representation.
func (m *Migrator) writeFloat(buf *bytes.Buffer, name string, value float64) {
	fmt.Fprintf(buf, "    %s = %s,\n", name, strconv.FormatFloat(value, 'g', -1, 64))
}

// luaQuote returns s as a single-quoted Lua string literal.
func luaQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return "'" + s + "'"
}

// MigrateLegacyFile reads a legacy file and converts it to Lua format.
func MigrateLegacyFile(path string, opts ...MigratorOption) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return MigrateLegacyContent(content, opts...)
}

// MigrateLegacyContent converts legacy content to Lua format.
func MigrateLegacyContent(content []byte, opts ...MigratorOption) ([]byte, error) {
	cfg, err := NewLegacyParser().Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse legacy config: %w", err)
	}

	return NewMigrator(opts...).MigrateToLua(cfg)
}
