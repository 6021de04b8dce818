package config

import (
	"strconv"
	"strings"

	"github.com/opd-ai/go-rampfx/internal/ramp"
)

// Effect metadata shown by property listings.
const (
	EffectTitle       = DefaultTitle
	EffectDescription = "Animated moving gradient ramp, you can change direction, speed, scale and up to eight colors."
)

// PropertyKind is the editor type of a user-facing property.
type PropertyKind int

const (
	// KindChoice selects one of Options.
	KindChoice PropertyKind = iota
	// KindNumber is a bounded number.
	KindNumber
	// KindColor is a color string.
	KindColor
)

// String returns the kind name.
func (k PropertyKind) String() string {
	switch k {
	case KindChoice:
		return "choice"
	case KindNumber:
		return "number"
	case KindColor:
		return "color"
	default:
		return "unknown"
	}
}

// Property describes one user-editable effect setting.
type Property struct {
	// Key is the configuration key.
	Key string
	// Label is the human readable name.
	Label string
	Kind  PropertyKind
	// Options lists the choices for KindChoice.
	Options []string
	// Min and Max bound KindNumber values.
	Min, Max float64
	// Default is the default value formatted as text.
	Default string
}

// Properties returns the effect's editable settings in display order.
func Properties() []Property {
	dirs := ramp.Directions()
	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = d.String()
	}

	props := []Property{
		{
			Key: "direction", Label: "Direction", Kind: KindChoice,
			Options: names, Default: ramp.Left.String(),
		},
		{
			Key: "speed", Label: "Ramp Speed (%)", Kind: KindNumber,
			Min: ramp.MinSpeed, Max: ramp.MaxSpeed, Default: strconv.Itoa(ramp.DefaultSpeed),
		},
		{
			Key: "scale", Label: "Ramp Scale (%)", Kind: KindNumber,
			Min: ramp.MinScale, Max: ramp.MaxScale, Default: strconv.Itoa(ramp.DefaultScale),
		},
		{
			Key: "colors_count", Label: "Number of colors", Kind: KindNumber,
			Min: MinColors, Max: MaxColors, Default: strconv.Itoa(DefaultColorsCount),
		},
	}
	for i, c := range DefaultColors {
		n := strconv.Itoa(i + 1)
		props = append(props, Property{
			Key: "color" + n, Label: "Color #" + n, Kind: KindColor, Default: c,
		})
	}
	return props
}

// FormatProperties renders the property list as aligned text.
func FormatProperties(props []Property) string {
	var sb strings.Builder
	sb.WriteString(EffectTitle + "\n" + EffectDescription + "\n\n")
	for _, p := range props {
		sb.WriteString("  " + p.Key)
		sb.WriteString(strings.Repeat(" ", max(14-len(p.Key), 1)))
		sb.WriteString(p.Label + " [" + p.Kind.String())
		switch p.Kind {
		case KindChoice:
			sb.WriteString(": " + strings.Join(p.Options, ","))
		case KindNumber:
			sb.WriteString(" " + strconv.FormatFloat(p.Min, 'g', -1, 64) + ".." + strconv.FormatFloat(p.Max, 'g', -1, 64))
		}
		sb.WriteString("] default " + p.Default + "\n")
	}
	return sb.String()
}
