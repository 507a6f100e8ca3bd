package engine

import "strings"

// Glyphs used by Bitmap.Render.
const (
	GlyphForeground = '#'
	GlyphBackground = ' '
	GlyphUnknown    = '?'
)

// Bitmap is a byte grid with two designated classification values. By
// convention every cell holds either the foreground or the background value;
// anything else is tolerated but renders ambiguously.
type Bitmap struct {
	data *Grid[byte]
	fg   byte
	bg   byte
}

// NewBitmap creates a cols x rows bitmap with every cell set to bg.
// fg == bg is legal: collision logic still compares against fg consistently,
// the rendering just degenerates to all '#'.
func NewBitmap(cols, rows int, fg, bg byte) *Bitmap {
	return &Bitmap{data: NewGrid(cols, rows, bg), fg: fg, bg: bg}
}

// NewBitmapFromGrid wraps an existing grid with classification values.
func NewBitmapFromGrid(data *Grid[byte], fg, bg byte) *Bitmap {
	return &Bitmap{data: data, fg: fg, bg: bg}
}

// Data returns the underlying pixel grid for direct cell access.
func (b *Bitmap) Data() *Grid[byte] { return b.data }

// Fg returns the foreground classification value.
func (b *Bitmap) Fg() byte { return b.fg }

// Bg returns the background classification value.
func (b *Bitmap) Bg() byte { return b.bg }

// Cols returns the bitmap width in cells.
func (b *Bitmap) Cols() int { return b.data.Cols() }

// Rows returns the bitmap height in cells.
func (b *Bitmap) Rows() int { return b.data.Rows() }

// Reset sets every cell back to the background value. Dimensions and the
// classification values are unchanged.
func (b *Bitmap) Reset() {
	for y := 0; y < b.data.Rows(); y++ {
		for x := 0; x < b.data.Cols(); x++ {
			b.data.Set(Position{X: x, Y: y}, b.bg)
		}
	}
}

// Clone returns an independent copy of the bitmap.
func (b *Bitmap) Clone() *Bitmap {
	return &Bitmap{data: b.data.Clone(), fg: b.fg, bg: b.bg}
}

// Glyph maps a cell value to its display rune.
func (b *Bitmap) Glyph(v byte) rune {
	switch v {
	case b.fg:
		return GlyphForeground
	case b.bg:
		return GlyphBackground
	default:
		return GlyphUnknown
	}
}

// Render produces a framed glyph map of the bitmap:
//
//	+---+
//	|# #|
//	|  #|
//	+---+
func (b *Bitmap) Render() string {
	cols, rows := b.data.Cols(), b.data.Rows()

	var sb strings.Builder
	sb.Grow((cols + 3) * (rows + 2))

	border := "+" + strings.Repeat("-", cols) + "+\n"
	sb.WriteString(border)
	for y := 0; y < rows; y++ {
		sb.WriteByte('|')
		for x := 0; x < cols; x++ {
			v, err := b.data.At(Position{X: x, Y: y})
			if err != nil {
				sb.WriteRune(GlyphUnknown)
				continue
			}
			sb.WriteRune(b.Glyph(v))
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}

func (b *Bitmap) String() string {
	return b.Render()
}
