// Package core provides the platform-neutral building blocks shared by the
// simulation and the terminal front-end: screen buffer, input frames, geometry
// and a deterministic RNG. It has no external dependencies (especially no
// Bubble Tea) so game logic stays pure and testable.
package core

// Rect represents an axis-aligned box in screen cells.
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

// SplitColumns divides the rectangle into n side-by-side columns of equal
// width. The remainder cells go to the last column.
func (r Rect) SplitColumns(n int) []Rect {
	if n <= 0 {
		return nil
	}
	w := r.W / n
	cols := make([]Rect, n)
	for i := range cols {
		cols[i] = Rect{X: r.X + i*w, Y: r.Y, W: w, H: r.H}
	}
	cols[n-1].W = r.Right() - cols[n-1].X
	return cols
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
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
