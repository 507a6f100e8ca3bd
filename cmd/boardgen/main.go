// Command boardgen generates a board record by scattering random sprites
// across a screen. Placement goes through the board's admission control, so
// the emitted record is always composable.
package main

import (
	"flag"
	"log"
	"math/rand"

	"pixelboard/internal/board"
	"pixelboard/internal/engine"
	"pixelboard/internal/record"
)

const (
	screenFg = 1
	screenBg = 0
	spriteFg = 4
	spriteBg = 0
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	out := flag.String("out", "board.json", "output board record path")
	cols := flag.Int("cols", 40, "screen width in cells")
	rows := flag.Int("rows", 15, "screen height in cells")
	count := flag.Int("sprites", 12, "number of sprite placements to attempt")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	b := board.NewBoard(*cols, *rows, screenFg, screenBg)

	admitted := 0
	for i := 0; i < *count; i++ {
		if placeRandomSprite(rng, b, *cols, *rows) {
			admitted++
		}
	}
	log.Printf("Admitted %d of %d sprites", admitted, *count)

	if err := b.Update(); err != nil {
		log.Fatalf("Compose generated board: %v", err)
	}
	if err := record.SaveBoardFile(*out, b); err != nil {
		log.Fatalf("Write %s: %v", *out, err)
	}
	log.Printf("Wrote %s (%dx%d, %d sprites)", *out, *cols, *rows, b.Len())
}

// placeRandomSprite tries to admit one randomly sized, randomly patterned
// sprite. Overlapping placements are rejected by the board, which is the
// expected outcome for a share of the attempts.
func placeRandomSprite(rng *rand.Rand, b *board.Board, screenCols, screenRows int) bool {
	w := 2 + rng.Intn(4)
	h := 2 + rng.Intn(3)
	if w > screenCols || h > screenRows {
		return false
	}
	pos := engine.Position{
		X: rng.Intn(screenCols - w + 1),
		Y: rng.Intn(screenRows - h + 1),
	}

	s := board.NewSpriteAt(w, h, spriteFg, spriteBg, pos)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if rng.Intn(2) == 0 {
				s.Pixels().Data().Set(engine.Position{X: x, Y: y}, spriteFg)
			}
		}
	}

	// Composition copies background cells too, so placements must keep
	// whole rectangles disjoint, not just foregrounds.
	for i := 0; i < b.Len(); i++ {
		if b.Sprite(i).Bounds().Overlaps(s.Bounds()) {
			return false
		}
	}
	return b.AddSprite(s)
}
