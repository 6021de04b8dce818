package config

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// LegacyParser parses the legacy key-value configuration format.
// Each non-comment line holds a directive name followed by its value:
//
//	# comment
//	direction Right-Down
//	speed 150
//	colors red #00ff00 blue
//	transparent
type LegacyParser struct{}

// NewLegacyParser creates a new LegacyParser instance.
func NewLegacyParser() *LegacyParser {
	return &LegacyParser{}
}

// Parse parses legacy configuration content.
// Unknown directives are ignored.
func (p *LegacyParser) Parse(content []byte) (*Config, error) {
	cfg := DefaultConfig()
	scanner := bufio.NewScanner(bytes.NewReader(content))

	countSet := false
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, explicit, err := p.parseDirective(&cfg, line, lineNum)
		if err != nil {
			return nil, err
		}
		if key == "colors" && !countSet {
			cfg.Effect.ColorsCount = explicit
		}
		if key == "colors_count" || key == "colorscount" {
			countSet = true
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading configuration: %w", err)
	}
	return &cfg, nil
}

// parseDirective applies one directive line. It returns the lower-cased key
// and, for a colors list, the number of colors it set.
func (p *LegacyParser) parseDirective(cfg *Config, line string, lineNum int) (string, int, error) {
	key, value, _ := strings.Cut(line, " ")
	key = strings.ToLower(key)
	value = strings.TrimSpace(value)

	wc, ec := &cfg.Window, &cfg.Effect

	switch key {
	case "transparent":
		wc.Transparent = parseFlag(value)
	case "skip_taskbar":
		wc.SkipTaskbar = parseFlag(value)
	case "skip_pager":
		wc.SkipPager = parseFlag(value)
	case "below":
		wc.Below = parseFlag(value)
	case "sticky":
		wc.Sticky = parseFlag(value)
	case "readback":
		ec.Readback = parseFlag(value)

	case "title":
		wc.Title = unquote(value)
	case "direction":
		ec.Direction = unquote(value)

	case "width", "height", "fps", "colors_count", "colorscount":
		n, err := parseInt(value)
		if err != nil {
			return key, 0, fmt.Errorf("line %d: invalid %s: %w", lineNum, key, err)
		}
		switch key {
		case "width":
			wc.Width = n
		case "height":
			wc.Height = n
		case "fps":
			wc.FPS = n
		default:
			ec.ColorsCount = n
		}

	case "speed", "scale":
		f, err := parseFloat(value)
		if err != nil {
			return key, 0, fmt.Errorf("line %d: invalid %s: %w", lineNum, key, err)
		}
		if key == "speed" {
			ec.Speed = f
		} else {
			ec.Scale = f
		}

	case "colors":
		fields := strings.Fields(value)
		if len(fields) > MaxColors {
			return key, 0, fmt.Errorf("line %d: at most %d colors are supported", lineNum, MaxColors)
		}
		ec.Colors = [MaxColors]string{}
		for i, f := range fields {
			ec.Colors[i] = unquote(f)
		}
		return key, len(fields), nil

	default:
		if slot, ok := colorSlot(key); ok {
			if value == "" {
				return key, 0, fmt.Errorf("line %d: %s requires a value", lineNum, key)
			}
			ec.Colors[slot] = unquote(value)
		}
	}

	return key, 0, nil
}

// colorSlot maps "color1".."color8" to a zero-based slot index.
func colorSlot(key string) (int, bool) {
	digits, ok := strings.CutPrefix(key, "color")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 || n > MaxColors {
		return 0, false
	}
	return n - 1, true
}

// parseFlag parses a boolean directive. A bare flag is true.
func parseFlag(s string) bool {
	if strings.TrimSpace(s) == "" {
		return true
	}
	return parseBool(s)
}

// parseBool parses a boolean value from common string representations.
// Accepts: yes, no, true, false, 1, 0
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}

// parseFloat parses a float64 from a string.
func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// parseInt parses an int from a string.
func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// unquote strips one pair of matching double quotes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
