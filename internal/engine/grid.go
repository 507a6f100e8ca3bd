package engine

import (
	"fmt"
	"strings"
)

// Grid is a fixed-size 2D array addressed by Position, stored row-major in a
// single backing slice. All bounds checking for the higher layers happens
// here: Bitmap, Sprite and Board never index storage directly.
type Grid[T any] struct {
	cells []T
	cols  int
	rows  int
}

// NewGrid allocates a cols x rows grid with every cell set to fill.
func NewGrid[T any](cols, rows int, fill T) *Grid[T] {
	cells := make([]T, cols*rows)
	for i := range cells {
		cells[i] = fill
	}
	return &Grid[T]{cells: cells, cols: cols, rows: rows}
}

// NewEmptyGrid creates a grid with dimensions but no backing storage.
// Any access fails with ErrUninitialized until the grid is built from
// elements (see NewGridFromSlice).
func NewEmptyGrid[T any](cols, rows int) *Grid[T] {
	return &Grid[T]{cols: cols, rows: rows}
}

// NewGridFromSlice builds a grid over an existing row-major element slice.
// The slice length must be exactly cols*rows.
func NewGridFromSlice[T any](cols, rows int, elements []T) (*Grid[T], error) {
	if len(elements) != cols*rows {
		return nil, fmt.Errorf("grid %dx%d needs %d elements, got %d", cols, rows, cols*rows, len(elements))
	}
	cells := make([]T, len(elements))
	copy(cells, elements)
	return &Grid[T]{cells: cells, cols: cols, rows: rows}, nil
}

// Cols returns the number of x indices.
func (g *Grid[T]) Cols() int { return g.cols }

// Rows returns the number of y indices.
func (g *Grid[T]) Rows() int { return g.rows }

// InRange reports whether p addresses a cell inside the grid.
func (g *Grid[T]) InRange(p Position) bool {
	return p.X >= 0 && p.X < g.cols && p.Y >= 0 && p.Y < g.rows
}

// At returns the cell at p. Fails with ErrOutOfRange when p is outside the
// grid and ErrUninitialized when the grid has no storage yet.
func (g *Grid[T]) At(p Position) (T, error) {
	var zero T
	if g.cells == nil {
		return zero, fmt.Errorf("read %s: %w", p, ErrUninitialized)
	}
	if !g.InRange(p) {
		return zero, fmt.Errorf("read %s from %dx%d grid: %w", p, g.cols, g.rows, ErrOutOfRange)
	}
	return g.cells[p.Y*g.cols+p.X], nil
}

// Set writes v to the cell at p under the same rules as At.
func (g *Grid[T]) Set(p Position, v T) error {
	if g.cells == nil {
		return fmt.Errorf("write %s: %w", p, ErrUninitialized)
	}
	if !g.InRange(p) {
		return fmt.Errorf("write %s to %dx%d grid: %w", p, g.cols, g.rows, ErrOutOfRange)
	}
	g.cells[p.Y*g.cols+p.X] = v
	return nil
}

// Clone returns a deep copy with the same dimensions and independent storage.
func (g *Grid[T]) Clone() *Grid[T] {
	c := &Grid[T]{cols: g.cols, rows: g.rows}
	if g.cells != nil {
		c.cells = make([]T, len(g.cells))
		copy(c.cells, g.cells)
	}
	return c
}

// Elements returns a copy of the row-major backing slice, or nil for an
// uninitialized grid.
func (g *Grid[T]) Elements() []T {
	if g.cells == nil {
		return nil
	}
	out := make([]T, len(g.cells))
	copy(out, g.cells)
	return out
}

// String renders the grid bracketed and line-broken every cols elements.
func (g *Grid[T]) String() string {
	var sb strings.Builder
	sb.WriteString("[ ")
	for i, v := range g.cells {
		if i != 0 && i%g.cols == 0 {
			sb.WriteString("\n  ")
		}
		fmt.Fprintf(&sb, "%v ", v)
	}
	sb.WriteString("]")
	return sb.String()
}
