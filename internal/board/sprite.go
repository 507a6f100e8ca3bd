// Package board implements the collision-aware compositing layer: positioned
// sprites and the board that admits and composes them onto one screen bitmap.
package board

import (
	"pixelboard/internal/engine"
)

// Sprite is a bitmap placed at a fixed board-space position. The bounding
// rectangle is derived once at construction; a sprite cannot be moved after
// creation; repositioning means destroying it and creating a new one.
type Sprite struct {
	pixels *engine.Bitmap
	pos    engine.Position
	bounds engine.Rectangle
}

// NewSprite creates a cols x rows sprite at the board origin.
func NewSprite(cols, rows int, fg, bg byte) *Sprite {
	return NewSpriteAt(cols, rows, fg, bg, engine.Position{})
}

// NewSpriteAt creates a cols x rows sprite with its top-left cell at pos.
func NewSpriteAt(cols, rows int, fg, bg byte, pos engine.Position) *Sprite {
	return WrapSprite(engine.NewBitmap(cols, rows, fg, bg), pos)
}

// WrapSprite places an existing bitmap at pos and derives its bounds.
func WrapSprite(pixels *engine.Bitmap, pos engine.Position) *Sprite {
	return &Sprite{
		pixels: pixels,
		pos:    pos,
		bounds: engine.Rectangle{
			TopLeft: pos,
			// Inclusive zero-indexed corner, hence the -1.
			BottomRight: engine.Position{
				X: pos.X + pixels.Cols() - 1,
				Y: pos.Y + pixels.Rows() - 1,
			},
		},
	}
}

// Pixels returns the sprite's bitmap. Cell edits through it are visible to
// the owning board; mutating an admitted sprite can break the board's
// disjointness invariant, which Board.Update will then report.
func (s *Sprite) Pixels() *engine.Bitmap { return s.pixels }

// Pos returns the sprite's board-space top-left position.
func (s *Sprite) Pos() engine.Position { return s.pos }

// Bounds returns the sprite's inclusive bounding rectangle in board space.
func (s *Sprite) Bounds() engine.Rectangle { return s.bounds }

// PixelAt returns the cell value under the given board-space coordinate.
// The second return is false when the coordinate does not land on the
// sprite's bitmap.
func (s *Sprite) PixelAt(boardPos engine.Position) (byte, bool) {
	if boardPos.X < s.pos.X || boardPos.Y < s.pos.Y {
		return 0, false
	}
	local := engine.Position{X: boardPos.X - s.pos.X, Y: boardPos.Y - s.pos.Y}
	v, err := s.pixels.Data().At(local)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Intersects reports whether any foreground cell of s occupies the same
// board coordinate as a foreground cell of other.
//
// Broad phase first: disjoint bounding rectangles reject in O(1). Otherwise
// the narrow phase scans only the overlapping sub-rectangle and compares
// each sprite's cell against its own foreground value, so the cost is
// bounded by the overlap area rather than the sprite areas.
func (s *Sprite) Intersects(other *Sprite) bool {
	if !s.bounds.Overlaps(other.bounds) {
		return false
	}

	common := s.bounds.Intersection(other.bounds)
	for y := common.TopLeft.Y; y <= common.BottomRight.Y; y++ {
		for x := common.TopLeft.X; x <= common.BottomRight.X; x++ {
			p := engine.Position{X: x, Y: y}
			sv, sok := s.PixelAt(p)
			ov, ook := other.PixelAt(p)
			if sok && ook && sv == s.pixels.Fg() && ov == other.pixels.Fg() {
				return true
			}
		}
	}
	return false
}

// Render delegates to the sprite's bitmap.
func (s *Sprite) Render() string {
	return s.pixels.Render()
}

func (s *Sprite) String() string {
	return s.Render()
}
