package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/arnodel/golua/lib"
	rt "github.com/arnodel/golua/runtime"
)

// LuaConfigParser parses Lua configuration files. The script runs in a
// Golua runtime and must assign a table to rampfx.config.
type LuaConfigParser struct {
	runtime *rt.Runtime
	cleanup func()
	mu      sync.Mutex
}

// NewLuaConfigParser creates a new LuaConfigParser with a fresh Lua runtime.
func NewLuaConfigParser() (*LuaConfigParser, error) {
	return NewLuaConfigParserWithOutput(io.Discard)
}

// NewLuaConfigParserWithOutput creates a LuaConfigParser whose print output
// goes to stdout.
func NewLuaConfigParserWithOutput(stdout io.Writer) (*LuaConfigParser, error) {
	if stdout == nil {
		stdout = os.Stdout
	}

	runtime := rt.New(stdout)
	cleanup := lib.LoadAll(runtime)

	return &LuaConfigParser{
		runtime: runtime,
		cleanup: cleanup,
	}, nil
}

// Parse executes a Lua configuration and extracts rampfx.config.
func (p *LuaConfigParser) Parse(content []byte) (*Config, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.initGlobal()

	closure, err := p.runtime.CompileAndLoadLuaChunk(
		"config",
		content,
		rt.TableValue(p.runtime.GlobalEnv()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile Lua configuration: %w", err)
	}

	ctx := rt.RuntimeContextDef{
		HardLimits: rt.RuntimeResources{
			Cpu:    10_000_000,
			Memory: 50 * 1024 * 1024,
		},
	}
	p.runtime.PushContext(ctx)
	defer p.runtime.PopContext()

	if _, err := rt.Call1(p.runtime.MainThread(), rt.FunctionValue(closure)); err != nil {
		return nil, fmt.Errorf("failed to execute Lua configuration: %w", err)
	}

	return p.extractConfig()
}

// initGlobal resets the rampfx global to an empty config table.
func (p *LuaConfigParser) initGlobal() {
	root := rt.NewTable()
	root.Set(rt.StringValue("config"), rt.TableValue(rt.NewTable()))
	p.runtime.GlobalEnv().Set(rt.StringValue("rampfx"), rt.TableValue(root))
}

func (p *LuaConfigParser) extractConfig() (*Config, error) {
	cfg := DefaultConfig()

	rootVal := p.runtime.GlobalEnv().Get(rt.StringValue("rampfx"))
	if rootVal == rt.NilValue {
		return &cfg, nil
	}
	root, ok := rootVal.TryTable()
	if !ok {
		return nil, fmt.Errorf("rampfx is not a table")
	}

	configVal := root.Get(rt.StringValue("config"))
	if configVal == rt.NilValue {
		return &cfg, nil
	}
	table, ok := configVal.TryTable()
	if !ok {
		return nil, fmt.Errorf("rampfx.config is not a table")
	}

	if err := extractWindow(&cfg.Window, table); err != nil {
		return nil, err
	}
	if err := extractEffect(&cfg.Effect, table); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func extractWindow(wc *WindowConfig, table *rt.Table) error {
	if val := getTableInt(table, "width"); val != nil {
		wc.Width = *val
	}
	if val := getTableInt(table, "height"); val != nil {
		wc.Height = *val
	}
	if val := getTableString(table, "title"); val != nil {
		wc.Title = *val
	}
	if val := getTableInt(table, "fps"); val != nil {
		wc.FPS = *val
	}

	bools := []struct {
		key    string
		target *bool
	}{
		{"transparent", &wc.Transparent},
		{"skip_taskbar", &wc.SkipTaskbar},
		{"skip_pager", &wc.SkipPager},
		{"below", &wc.Below},
		{"sticky", &wc.Sticky},
	}
	for _, b := range bools {
		if val := getTableBool(table, b.key); val != nil {
			*b.target = *val
		}
	}
	return nil
}

func extractEffect(ec *EffectConfig, table *rt.Table) error {
	if val := getTableString(table, "direction"); val != nil {
		ec.Direction = *val
	}
	if val := getTableFloat(table, "speed"); val != nil {
		ec.Speed = *val
	}
	if val := getTableFloat(table, "scale"); val != nil {
		ec.Scale = *val
	}
	if val := getTableBool(table, "readback"); val != nil {
		ec.Readback = *val
	}

	if colorsVal := table.Get(rt.StringValue("colors")); colorsVal != rt.NilValue {
		colors, ok := colorsVal.TryTable()
		if !ok {
			return fmt.Errorf("invalid colors: expected an array of color strings")
		}
		n, err := extractColorArray(ec, colors)
		if err != nil {
			return err
		}
		ec.ColorsCount = n
	}

	for i := range ec.Colors {
		key := "color" + strconv.Itoa(i+1)
		if val := table.Get(rt.StringValue(key)); val != rt.NilValue {
			s, ok := val.TryString()
			if !ok {
				return fmt.Errorf("invalid %s: expected a color string", key)
			}
			ec.Colors[i] = s
		}
	}

	for _, key := range []string{"colors_count", "colorsCount"} {
		if val := getTableInt(table, key); val != nil {
			ec.ColorsCount = *val
		}
	}
	return nil
}

// extractColorArray replaces the color slots with the sequence part of a
// Lua table and returns its length.
func extractColorArray(ec *EffectConfig, table *rt.Table) (int, error) {
	var colors [MaxColors]string
	n := 0
	for i := 1; ; i++ {
		val := table.Get(rt.IntValue(int64(i)))
		if val == rt.NilValue {
			break
		}
		if i > MaxColors {
			return 0, fmt.Errorf("invalid colors: at most %d colors are supported", MaxColors)
		}
		s, ok := val.TryString()
		if !ok {
			return 0, fmt.Errorf("invalid colors[%d]: expected a color string", i)
		}
		colors[i-1] = s
		n = i
	}
	ec.Colors = colors
	return n, nil
}

// Close releases resources associated with the parser's Lua runtime.
func (p *LuaConfigParser) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cleanup != nil {
		p.cleanup()
		p.cleanup = nil
	}
	return nil
}

// getTableBool retrieves a boolean value from a Lua table.
// Strings such as "yes" and "true" are accepted for compatibility.
func getTableBool(table *rt.Table, key string) *bool {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}
	if b, ok := val.TryBool(); ok {
		return &b
	}
	if s, ok := val.TryString(); ok {
		b := parseBool(s)
		return &b
	}
	return nil
}

// getTableString retrieves a string value from a Lua table.
func getTableString(table *rt.Table, key string) *string {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}
	if s, ok := val.TryString(); ok {
		return &s
	}
	return nil
}

// getTableFloat retrieves a number from a Lua table.
func getTableFloat(table *rt.Table, key string) *float64 {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}
	if n, ok := val.TryFloat(); ok {
		return &n
	}
	if n, ok := val.TryInt(); ok {
		f := float64(n)
		return &f
	}
	return nil
}

// getTableInt retrieves an integer from a Lua table, truncating floats.
func getTableInt(table *rt.Table, key string) *int {
	val := table.Get(rt.StringValue(key))
	if val == rt.NilValue {
		return nil
	}
	if n, ok := val.TryInt(); ok {
		i := int(n)
		return &i
	}
	if f, ok := val.TryFloat(); ok {
		i := int(f)
		return &i
	}
	return nil
}
