// Package geometry holds the pure coordinate math shared by the board:
// screen-to-board translation and boundary clamping.
package geometry

// Point is a position in board-local pixel coordinates.
type Point struct {
	X float64
	Y float64
}

// Rect describes a container in screen coordinates: its top-left corner
// plus its size.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// ToLocal translates pointer screen coordinates into coordinates local to
// the container.
func ToLocal(pointerX, pointerY float64, container Rect) Point {
	return Point{
		X: pointerX - container.Left,
		Y: pointerY - container.Top,
	}
}

// Clamp limits v to the [min, max] range.
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampOffset keeps an item's top-left offset within the container along one
// axis, so the item cannot leave the board. When the container is smaller
// than the item the floor wins and the result is 0.
func ClampOffset(pos, itemSize, containerSize float64) float64 {
	max := containerSize - itemSize
	if max < 0 {
		max = 0
	}
	return Clamp(pos, 0, max)
}
