// Package core provides small shared primitives for the game: clamping
// helpers, hitbox spans, the character screen buffer and semantic input
// actions. It has no external dependencies so the engine stays pure and
// testable.
package core

// Rect represents an axis-aligned box on the character screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Span is a closed vertical interval in playfield pixels.
// Lanes are discrete, so collision only ever needs the vertical extent.
type Span struct {
	Top    float64
	Bottom float64
}

// InsetSpan returns the hitbox of a sprite whose top edge is at y and whose
// height is h, shrunk to the [top, bottom] fractions of its bounding box.
func InsetSpan(y, h, top, bottom float64) Span {
	return Span{Top: y + h*top, Bottom: y + h*bottom}
}

// Overlaps reports whether two spans share at least one point.
// Touching edges count as an overlap.
func (s Span) Overlaps(other Span) bool {
	return s.Bottom >= other.Top && s.Top <= other.Bottom
}

// Height returns the extent of the span.
func (s Span) Height() float64 {
	return s.Bottom - s.Top
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
