package engine

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a grid is accessed outside its dimensions.
// It always indicates a caller bug, not bad input data.
var ErrOutOfRange = errors.New("position out of range")

// ErrUninitialized is returned when a grid created without a fill value is
// accessed before its storage has been built.
var ErrUninitialized = errors.New("grid storage uninitialized")

// Position is a board- or grid-space coordinate. (0,0) is the top-left cell;
// x grows rightward and y grows downward.
type Position struct {
	X, Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rectangle is an axis-aligned rectangle with inclusive, zero-indexed corners.
type Rectangle struct {
	TopLeft     Position
	BottomRight Position
}

// Overlaps reports whether the two rectangles share at least one cell.
func (r Rectangle) Overlaps(other Rectangle) bool {
	return other.TopLeft.X <= r.BottomRight.X &&
		other.TopLeft.Y <= r.BottomRight.Y &&
		other.BottomRight.X >= r.TopLeft.X &&
		other.BottomRight.Y >= r.TopLeft.Y
}

// Intersection returns the overlapping sub-rectangle of r and other.
// Only meaningful when Overlaps is true.
func (r Rectangle) Intersection(other Rectangle) Rectangle {
	return Rectangle{
		TopLeft:     Position{X: max(r.TopLeft.X, other.TopLeft.X), Y: max(r.TopLeft.Y, other.TopLeft.Y)},
		BottomRight: Position{X: min(r.BottomRight.X, other.BottomRight.X), Y: min(r.BottomRight.Y, other.BottomRight.Y)},
	}
}
