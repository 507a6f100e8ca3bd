package board

import (
	"errors"
	"fmt"

	"pixelboard/internal/engine"
)

// ErrInvariant is returned by Update when the composed screen would place
// two drawn cells on the same coordinate or a sprite extends outside the
// screen. Admission control should make this unreachable; seeing it means
// a sprite's bitmap was mutated after admission or a board record was
// loaded with conflicting sprites.
var ErrInvariant = errors.New("board invariant violated")

// Board owns an ordered set of admitted sprites and the screen bitmap they
// composite onto. Insertion order is both the conflict-check order and the
// rendering order. The screen's fg/bg classify the composited result and
// are independent of any sprite's values.
type Board struct {
	sprites []*Sprite
	screen  *engine.Bitmap
}

// NewBoard creates a board with a cols x rows all-background screen and no
// sprites.
func NewBoard(cols, rows int, fg, bg byte) *Board {
	return &Board{screen: engine.NewBitmap(cols, rows, fg, bg)}
}

// Rebuild constructs a board directly from deserialized parts without
// running admission control. Update audits the result.
func Rebuild(sprites []*Sprite, screen *engine.Bitmap) *Board {
	return &Board{sprites: sprites, screen: screen}
}

// AddSprite admits s unless its foreground overlaps any already-admitted
// sprite's foreground. Rejection is silent and leaves the board unchanged;
// the return value reports whether s was admitted.
func (b *Board) AddSprite(s *Sprite) bool {
	for _, admitted := range b.sprites {
		if admitted.Intersects(s) {
			return false
		}
	}
	b.sprites = append(b.sprites, s)
	return true
}

// Len returns the number of admitted sprites.
func (b *Board) Len() int { return len(b.sprites) }

// Sprite returns the i-th admitted sprite in insertion order.
func (b *Board) Sprite(i int) *Sprite { return b.sprites[i] }

// Screen returns the board's screen bitmap.
func (b *Board) Screen() *engine.Bitmap { return b.screen }

// Update recomposes the screen from scratch: background everywhere, then
// every admitted sprite's cells copied in at its offset, in insertion order.
//
// Before each write the target cell must still be background; a non-bg cell
// or an out-of-screen write fails with ErrInvariant. The composition happens
// on a fresh bitmap that only replaces the screen on success, so a failed
// Update leaves the previous screen intact. Calling Update repeatedly with
// an unchanged sprite set produces identical screens.
func (b *Board) Update() error {
	next := engine.NewBitmap(b.screen.Cols(), b.screen.Rows(), b.screen.Fg(), b.screen.Bg())

	for i, s := range b.sprites {
		pix := s.Pixels().Data()
		for y := 0; y < pix.Rows(); y++ {
			for x := 0; x < pix.Cols(); x++ {
				target := engine.Position{X: s.Pos().X + x, Y: s.Pos().Y + y}
				cur, err := next.Data().At(target)
				if err != nil {
					return fmt.Errorf("sprite %d extends outside the %dx%d screen at %s: %w",
						i, next.Cols(), next.Rows(), target, ErrInvariant)
				}
				if cur != next.Bg() {
					return fmt.Errorf("sprite %d writes to occupied cell %s: %w", i, target, ErrInvariant)
				}
				v, err := pix.At(engine.Position{X: x, Y: y})
				if err != nil {
					return fmt.Errorf("sprite %d pixel (%d,%d): %w", i, x, y, err)
				}
				next.Data().Set(target, v)
			}
		}
	}

	b.screen = next
	return nil
}

// Render delegates to the screen bitmap.
func (b *Board) Render() string {
	return b.screen.Render()
}

func (b *Board) String() string {
	return b.Render()
}
