// Package record implements the persisted JSON forms of bitmaps, sprites
// and boards. Decoding is strict: every required field must be present and
// well-typed, and failures name the offending field. Nothing here touches
// the compositing logic; records are built from and hand back plain
// in-memory engine and board values.
package record

import (
	"encoding/json"
	"errors"
	"fmt"

	"pixelboard/internal/board"
	"pixelboard/internal/engine"
)

// FieldError reports a missing or mistyped field in a persisted record.
// Callers should refuse to load the artifact; no defaults are guessed.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("malformed record: field %q %s", e.Field, e.Reason)
}

func missing(field string) error {
	return &FieldError{Field: field, Reason: "is missing"}
}

// asFieldError converts json type mismatches into FieldError so decode
// errors consistently name the bad field.
func asFieldError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &FieldError{Field: typeErr.Field, Reason: fmt.Sprintf("has wrong type (got %s)", typeErr.Value)}
	}
	return fmt.Errorf("parse record: %w", err)
}

// Canonical bitmap form. Elements are ints rather than bytes so the JSON
// stays a plain number array instead of base64.
type bitmapJSON struct {
	// Structured form fields.
	Foreground *int `json:"foreground,omitempty"`
	Background *int `json:"background,omitempty"`

	// Compact form fields.
	Fg   *int `json:"fg,omitempty"`
	Bg   *int `json:"bg,omitempty"`
	Cols *int `json:"cols,omitempty"`
	Rows *int `json:"rows,omitempty"`

	Data json.RawMessage `json:"data"`
}

type gridJSON struct {
	Rows     *int   `json:"rows"`
	Cols     *int   `json:"cols"`
	Elements *[]int `json:"elements"`
}

type posJSON struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

type spriteJSON struct {
	Pixels json.RawMessage `json:"pixels"`
	Pos    *posJSON        `json:"pos"`
}

type boardJSON struct {
	Sprites *[]json.RawMessage `json:"sprites"`
	Screen  json.RawMessage    `json:"screen"`
}

func checkByte(field string, v int) error {
	if v < 0 || v > 255 {
		return &FieldError{Field: field, Reason: fmt.Sprintf("must be a byte value, got %d", v)}
	}
	return nil
}

func checkDim(field string, v int) error {
	if v < 0 {
		return &FieldError{Field: field, Reason: fmt.Sprintf("must be non-negative, got %d", v)}
	}
	return nil
}

// DecodeBitmap parses a bitmap record in either supported encoding:
//
//	{"foreground":4,"background":1,"data":{"rows":2,"cols":3,"elements":[...]}}
//	{"fg":4,"bg":1,"cols":3,"rows":2,"data":["414","114"]}
//
// Mixing the two forms in one record is refused.
func DecodeBitmap(data []byte) (*engine.Bitmap, error) {
	var js bitmapJSON
	if err := json.Unmarshal(data, &js); err != nil {
		return nil, asFieldError(err)
	}

	structured := js.Foreground != nil || js.Background != nil
	compact := js.Fg != nil || js.Bg != nil
	switch {
	case structured && compact:
		return nil, &FieldError{Field: "fg", Reason: "mixes the structured and compact bitmap forms"}
	case compact:
		return decodeCompactBitmap(&js)
	default:
		return decodeStructuredBitmap(&js)
	}
}

func decodeStructuredBitmap(js *bitmapJSON) (*engine.Bitmap, error) {
	if js.Foreground == nil {
		return nil, missing("foreground")
	}
	if js.Background == nil {
		return nil, missing("background")
	}
	if err := checkByte("foreground", *js.Foreground); err != nil {
		return nil, err
	}
	if err := checkByte("background", *js.Background); err != nil {
		return nil, err
	}
	if len(js.Data) == 0 {
		return nil, missing("data")
	}

	var gj gridJSON
	if err := json.Unmarshal(js.Data, &gj); err != nil {
		return nil, asFieldError(fmt.Errorf("field data: %w", err))
	}
	if gj.Rows == nil {
		return nil, missing("data.rows")
	}
	if gj.Cols == nil {
		return nil, missing("data.cols")
	}
	if gj.Elements == nil {
		return nil, missing("data.elements")
	}
	if err := checkDim("data.rows", *gj.Rows); err != nil {
		return nil, err
	}
	if err := checkDim("data.cols", *gj.Cols); err != nil {
		return nil, err
	}

	elems := *gj.Elements
	if len(elems) != (*gj.Rows)*(*gj.Cols) {
		return nil, &FieldError{
			Field:  "data.elements",
			Reason: fmt.Sprintf("has %d cells, want %d for a %dx%d grid", len(elems), (*gj.Rows)*(*gj.Cols), *gj.Cols, *gj.Rows),
		}
	}

	cells := make([]byte, len(elems))
	for i, v := range elems {
		if err := checkByte(fmt.Sprintf("data.elements[%d]", i), v); err != nil {
			return nil, err
		}
		cells[i] = byte(v)
	}

	grid, err := engine.NewGridFromSlice(*gj.Cols, *gj.Rows, cells)
	if err != nil {
		return nil, fmt.Errorf("build grid: %w", err)
	}
	return engine.NewBitmapFromGrid(grid, byte(*js.Foreground), byte(*js.Background)), nil
}

func decodeCompactBitmap(js *bitmapJSON) (*engine.Bitmap, error) {
	if js.Fg == nil {
		return nil, missing("fg")
	}
	if js.Bg == nil {
		return nil, missing("bg")
	}
	if js.Cols == nil {
		return nil, missing("cols")
	}
	if js.Rows == nil {
		return nil, missing("rows")
	}
	if err := checkByte("fg", *js.Fg); err != nil {
		return nil, err
	}
	if err := checkByte("bg", *js.Bg); err != nil {
		return nil, err
	}
	if err := checkDim("cols", *js.Cols); err != nil {
		return nil, err
	}
	if err := checkDim("rows", *js.Rows); err != nil {
		return nil, err
	}
	if len(js.Data) == 0 {
		return nil, missing("data")
	}

	var rows []string
	if err := json.Unmarshal(js.Data, &rows); err != nil {
		return nil, &FieldError{Field: "data", Reason: "must be an array of digit strings in the compact form"}
	}
	if len(rows) != *js.Rows {
		return nil, &FieldError{
			Field:  "data",
			Reason: fmt.Sprintf("has %d rows, want %d", len(rows), *js.Rows),
		}
	}

	cells := make([]byte, 0, (*js.Rows)*(*js.Cols))
	for y, row := range rows {
		if len(row) != *js.Cols {
			return nil, &FieldError{
				Field:  fmt.Sprintf("data[%d]", y),
				Reason: fmt.Sprintf("has %d cells, want %d", len(row), *js.Cols),
			}
		}
		for x := 0; x < len(row); x++ {
			ch := row[x]
			if ch < '0' || ch > '9' {
				return nil, &FieldError{
					Field:  fmt.Sprintf("data[%d]", y),
					Reason: fmt.Sprintf("cell %d is %q, want a digit", x, ch),
				}
			}
			cells = append(cells, ch-'0')
		}
	}

	grid, err := engine.NewGridFromSlice(*js.Cols, *js.Rows, cells)
	if err != nil {
		return nil, fmt.Errorf("build grid: %w", err)
	}
	return engine.NewBitmapFromGrid(grid, byte(*js.Fg), byte(*js.Bg)), nil
}

// EncodeBitmap emits the canonical structured form.
func EncodeBitmap(b *engine.Bitmap) ([]byte, error) {
	cells := b.Data().Elements()
	elems := make([]int, len(cells))
	for i, v := range cells {
		elems[i] = int(v)
	}
	fg, bg := int(b.Fg()), int(b.Bg())
	rows, cols := b.Rows(), b.Cols()

	out := bitmapJSON{
		Foreground: &fg,
		Background: &bg,
	}
	data, err := json.Marshal(gridJSON{Rows: &rows, Cols: &cols, Elements: &elems})
	if err != nil {
		return nil, fmt.Errorf("encode grid: %w", err)
	}
	out.Data = data
	return json.Marshal(out)
}

// DecodeSprite parses a sprite record: a bitmap under "pixels" plus a
// required "pos". The bounding rectangle is re-derived, never read.
func DecodeSprite(data []byte) (*board.Sprite, error) {
	var js spriteJSON
	if err := json.Unmarshal(data, &js); err != nil {
		return nil, asFieldError(err)
	}
	if len(js.Pixels) == 0 {
		return nil, missing("pixels")
	}
	if js.Pos == nil {
		return nil, missing("pos")
	}
	if js.Pos.X == nil {
		return nil, missing("pos.x")
	}
	if js.Pos.Y == nil {
		return nil, missing("pos.y")
	}
	if *js.Pos.X < 0 || *js.Pos.Y < 0 {
		return nil, &FieldError{Field: "pos", Reason: fmt.Sprintf("must be non-negative, got (%d,%d)", *js.Pos.X, *js.Pos.Y)}
	}

	pixels, err := DecodeBitmap(js.Pixels)
	if err != nil {
		return nil, fmt.Errorf("pixels: %w", err)
	}
	return board.WrapSprite(pixels, engine.Position{X: *js.Pos.X, Y: *js.Pos.Y}), nil
}

// EncodeSprite emits a sprite record with the canonical bitmap form.
func EncodeSprite(s *board.Sprite) ([]byte, error) {
	pixels, err := EncodeBitmap(s.Pixels())
	if err != nil {
		return nil, err
	}
	x, y := s.Pos().X, s.Pos().Y
	return json.Marshal(spriteJSON{
		Pixels: pixels,
		Pos:    &posJSON{X: &x, Y: &y},
	})
}

// DecodeBoard parses a board record. Admission control is not re-run on the
// loaded sprites: Board.Update is the consistency auditor for persisted
// artifacts.
func DecodeBoard(data []byte) (*board.Board, error) {
	var js boardJSON
	if err := json.Unmarshal(data, &js); err != nil {
		return nil, asFieldError(err)
	}
	if js.Sprites == nil {
		return nil, missing("sprites")
	}
	if len(js.Screen) == 0 {
		return nil, missing("screen")
	}

	sprites := make([]*board.Sprite, 0, len(*js.Sprites))
	for i, raw := range *js.Sprites {
		s, err := DecodeSprite(raw)
		if err != nil {
			return nil, fmt.Errorf("sprites[%d]: %w", i, err)
		}
		sprites = append(sprites, s)
	}

	screen, err := DecodeBitmap(js.Screen)
	if err != nil {
		return nil, fmt.Errorf("screen: %w", err)
	}
	return board.Rebuild(sprites, screen), nil
}

// EncodeBoard emits a board record with every admitted sprite and the
// current screen.
func EncodeBoard(b *board.Board) ([]byte, error) {
	sprites := make([]json.RawMessage, b.Len())
	for i := 0; i < b.Len(); i++ {
		data, err := EncodeSprite(b.Sprite(i))
		if err != nil {
			return nil, fmt.Errorf("sprites[%d]: %w", i, err)
		}
		sprites[i] = data
	}
	screen, err := EncodeBitmap(b.Screen())
	if err != nil {
		return nil, fmt.Errorf("screen: %w", err)
	}
	return json.Marshal(boardJSON{Sprites: &sprites, Screen: screen})
}
