package store

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"

	"pixelboard/internal/board"
	"pixelboard/internal/engine"
)

// openTestStore points gdata at a temp dir so tests never touch real
// application data.
func openTestStore(t *testing.T) *BoardStore {
	t.Helper()

	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: "pixelboard_test"})
	if err != nil {
		t.Fatalf("gdata.Open: %v", err)
	}
	return New(m)
}

func testBoard(t *testing.T) *board.Board {
	t.Helper()
	b := board.NewBoard(4, 3, 1, 0)
	s := board.NewSpriteAt(2, 2, 4, 0, engine.Position{X: 1, Y: 1})
	s.Pixels().Data().Set(engine.Position{X: 0, Y: 0}, 4)
	if !b.AddSprite(s) {
		t.Fatal("sprite should be admitted")
	}
	return b
}

func TestStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)
	b := testBoard(t)

	if err := s.Save("demo", b); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !s.Exists("demo") {
		t.Fatal("Exists = false after Save")
	}

	got, err := s.Load("demo")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Len() != b.Len() {
		t.Errorf("Len() = %d, want %d", got.Len(), b.Len())
	}
	if got.Sprite(0).Pos() != b.Sprite(0).Pos() {
		t.Errorf("sprite pos = %s, want %s", got.Sprite(0).Pos(), b.Sprite(0).Pos())
	}
	if err := got.Update(); err != nil {
		t.Errorf("Update on loaded board: %v", err)
	}
}

func TestStoreNamesIndex(t *testing.T) {
	s := openTestStore(t)
	b := testBoard(t)

	if names := s.Names(); names != nil {
		t.Fatalf("Names() on empty store = %v, want nil", names)
	}

	for _, name := range []string{"zebra", "alpha", "mid"} {
		if err := s.Save(name, b); err != nil {
			t.Fatalf("Save %q: %v", name, err)
		}
	}
	// Saving an existing name must not duplicate the index entry.
	if err := s.Save("mid", b); err != nil {
		t.Fatalf("re-Save: %v", err)
	}

	names := s.Names()
	want := []string{"alpha", "mid", "zebra"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", names, want)
		}
	}
}

func TestStoreLoadMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Load("absent"); err == nil {
		t.Error("expected error loading a board that was never saved")
	}
}

func TestStoreRejectsReservedName(t *testing.T) {
	s := openTestStore(t)
	if err := s.Save("_index", testBoard(t)); err == nil {
		t.Error("expected error saving under the reserved index name")
	}
	if err := s.Save("", testBoard(t)); err == nil {
		t.Error("expected error saving under an empty name")
	}
}

func TestStoreDegradedMode(t *testing.T) {
	s := New(nil)

	if err := s.Save("demo", testBoard(t)); err != nil {
		t.Errorf("degraded Save: %v", err)
	}
	if s.Exists("demo") {
		t.Error("degraded store should report nothing as existing")
	}
	if _, err := s.Load("demo"); err == nil {
		t.Error("degraded Load should fail")
	}
	if names := s.Names(); names != nil {
		t.Errorf("degraded Names() = %v, want nil", names)
	}
}
