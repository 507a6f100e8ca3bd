package board

import (
	"testing"

	"pixelboard/internal/engine"
)

// patternSprite builds a sprite at pos from row-major cell values.
func patternSprite(t *testing.T, cols, rows int, fg, bg byte, pos engine.Position, cells []byte) *Sprite {
	t.Helper()
	g, err := engine.NewGridFromSlice(cols, rows, cells)
	if err != nil {
		t.Fatalf("build pattern grid: %v", err)
	}
	return WrapSprite(engine.NewBitmapFromGrid(g, fg, bg), pos)
}

func TestNewSpriteAt(t *testing.T) {
	s := NewSpriteAt(6, 3, 1, 0, engine.Position{X: 2, Y: 3})

	if s.Pos() != (engine.Position{X: 2, Y: 3}) {
		t.Errorf("Pos() = %s, want (2,3)", s.Pos())
	}
	wantBounds := engine.Rectangle{
		TopLeft:     engine.Position{X: 2, Y: 3},
		BottomRight: engine.Position{X: 7, Y: 5},
	}
	if s.Bounds() != wantBounds {
		t.Errorf("Bounds() = %+v, want %+v", s.Bounds(), wantBounds)
	}
}

func TestNewSpriteDefaultPos(t *testing.T) {
	s := NewSprite(6, 3, 1, 0)
	if s.Pos() != (engine.Position{}) {
		t.Errorf("Pos() = %s, want (0,0)", s.Pos())
	}
}

func TestSpritePixelAt(t *testing.T) {
	// 3x2 sprite at (2,5):
	//   4 1 4
	//   1 1 4
	s := patternSprite(t, 3, 2, 4, 1, engine.Position{X: 2, Y: 5}, []byte{
		4, 1, 4,
		1, 1, 4,
	})

	tests := []struct {
		name   string
		pos    engine.Position
		want   byte
		wantOK bool
	}{
		{"top-left corner", engine.Position{X: 2, Y: 5}, 4, true},
		{"middle of top row", engine.Position{X: 3, Y: 5}, 1, true},
		{"bottom-right corner", engine.Position{X: 4, Y: 6}, 4, true},
		{"left of sprite", engine.Position{X: 1, Y: 5}, 0, false},
		{"above sprite", engine.Position{X: 2, Y: 4}, 0, false},
		{"right of sprite", engine.Position{X: 5, Y: 5}, 0, false},
		{"below sprite", engine.Position{X: 2, Y: 7}, 0, false},
		{"board origin", engine.Position{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.PixelAt(tt.pos)
			if ok != tt.wantOK {
				t.Fatalf("PixelAt%s ok = %v, want %v", tt.pos, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("PixelAt%s = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}
}

func TestSpriteIntersects(t *testing.T) {
	cells := []byte{
		4, 1, 4,
		1, 1, 4,
	}
	at := func(x, y int) *Sprite {
		return patternSprite(t, 3, 2, 4, 1, engine.Position{X: x, Y: y}, cells)
	}

	tests := []struct {
		name string
		a, b *Sprite
		want bool
	}{
		{"identical copies at same position", at(2, 5), at(2, 5), true},
		{"disjoint rectangles", at(2, 5), at(5, 5), false},
		{"far apart vertically", at(2, 5), at(2, 9), false},
		{
			// b's left column (4,1) lands on a's right column (4,4):
			// both have fg at the shared (4,5) cell.
			name: "overlapping foregrounds",
			a:    at(2, 5),
			b:    at(4, 5),
			want: true,
		},
		{
			// Shift b so its overlap with a covers only background cells:
			// a's column x=3 is all bg, b's left column at x=3 is fg at
			// (3,6) where a has bg.
			name: "bounding boxes overlap, foregrounds disjoint",
			a:    at(2, 5),
			b: patternSprite(t, 3, 2, 4, 1, engine.Position{X: 3, Y: 5}, []byte{
				1, 1, 4,
				1, 1, 4,
			}),
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("a.Intersects(b) = %v, want %v", got, tt.want)
			}
			// Intersection is symmetric.
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("b.Intersects(a) = %v, want %v", got, tt.want)
			}
		})
	}
}

// Different sprites may use different fg values; each cell is compared
// against its own sprite's foreground.
func TestSpriteIntersectsMixedPalettes(t *testing.T) {
	a := patternSprite(t, 2, 2, 4, 1, engine.Position{X: 0, Y: 0}, []byte{
		4, 1,
		1, 1,
	})
	b := patternSprite(t, 2, 2, 9, 3, engine.Position{X: 0, Y: 0}, []byte{
		9, 3,
		3, 3,
	})
	if !a.Intersects(b) {
		t.Error("sprites with fg at the same cell should intersect despite different palettes")
	}

	c := patternSprite(t, 2, 2, 9, 3, engine.Position{X: 0, Y: 0}, []byte{
		3, 9,
		9, 9,
	})
	if a.Intersects(c) {
		t.Error("sprites with disjoint fg cells should not intersect")
	}
}
