// Package ramp implements the seamless animated gradient ramp for go-rampfx.
// This file implements the scroll/gradient direction type.
package ramp

import "strings"

// Direction is one of the eight scroll and gradient orientations.
// The zero value is Left.
type Direction uint8

const (
	// Left scrolls the ramp towards the left edge.
	Left Direction = iota
	// Right scrolls the ramp towards the right edge.
	Right
	// Up scrolls the ramp towards the top edge.
	Up
	// Down scrolls the ramp towards the bottom edge.
	Down
	// LeftUp scrolls diagonally towards the top-left corner.
	LeftUp
	// LeftDown scrolls diagonally towards the bottom-left corner.
	LeftDown
	// RightUp scrolls diagonally towards the top-right corner.
	RightUp
	// RightDown scrolls diagonally towards the bottom-right corner.
	RightDown
)

// directionNames maps each direction to its canonical name.
var directionNames = [...]string{
	Left:      "Left",
	Right:     "Right",
	Up:        "Up",
	Down:      "Down",
	LeftUp:    "Left-Up",
	LeftDown:  "Left-Down",
	RightUp:   "Right-Up",
	RightDown: "Right-Down",
}

// Directions returns all valid directions in declaration order.
func Directions() []Direction {
	return []Direction{Left, Right, Up, Down, LeftUp, LeftDown, RightUp, RightDown}
}

// ParseDirection maps a case-insensitive name such as "left" or "Right-Down"
// to a Direction. Underscores and spaces are accepted as separators.
// Unknown names yield Left.
func ParseDirection(name string) Direction {
	d, _ := LookupDirection(name)
	return d
}

// LookupDirection is like ParseDirection but reports whether the name was
// recognized.
func LookupDirection(name string) (Direction, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)

	for d, n := range directionNames {
		if strings.ToLower(n) == key {
			return Direction(d), true
		}
	}
	return Left, false
}

// String returns the canonical name of the direction.
func (d Direction) String() string {
	if !d.Valid() {
		return "Invalid"
	}
	return directionNames[d]
}

// Valid reports whether d is one of the eight declared directions.
func (d Direction) Valid() bool {
	return d <= RightDown
}

// HasLeft reports whether the direction moves left.
func (d Direction) HasLeft() bool {
	return d == Left || d == LeftUp || d == LeftDown
}

// HasRight reports whether the direction moves right.
func (d Direction) HasRight() bool {
	return d == Right || d == RightUp || d == RightDown
}

// HasUp reports whether the direction moves up.
func (d Direction) HasUp() bool {
	return d == Up || d == LeftUp || d == RightUp
}

// HasDown reports whether the direction moves down.
func (d Direction) HasDown() bool {
	return d == Down || d == LeftDown || d == RightDown
}

// Horizontal reports whether the direction occupies the horizontal axis.
func (d Direction) Horizontal() bool {
	return d.HasLeft() || d.HasRight()
}

// Vertical reports whether the direction occupies the vertical axis.
func (d Direction) Vertical() bool {
	return d.HasUp() || d.HasDown()
}

// IsDiagonal reports whether both axes are occupied.
func (d Direction) IsDiagonal() bool {
	return d.Horizontal() && d.Vertical()
}
