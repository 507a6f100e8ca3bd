package record

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pixelboard/internal/board"
	"pixelboard/internal/engine"
)

// LoadBitmapFile reads and decodes a bitmap record from disk.
func LoadBitmapFile(path string) (*engine.Bitmap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bitmap file: %w", err)
	}
	b, err := DecodeBitmap(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return b, nil
}

// LoadSpriteFile reads and decodes a sprite record from disk.
func LoadSpriteFile(path string) (*board.Sprite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sprite file: %w", err)
	}
	s, err := DecodeSprite(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

// LoadBoardFile reads and decodes a board record from disk.
func LoadBoardFile(path string) (*board.Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read board file: %w", err)
	}
	b, err := DecodeBoard(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return b, nil
}

// SaveBoardFile encodes a board record and writes it to disk.
func SaveBoardFile(path string, b *board.Board) error {
	data, err := EncodeBoard(b)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write board file: %w", err)
	}
	return nil
}

// LoadBoards scans a directory for *.json board files and returns them
// keyed by file stem. A directory with no board files is not an error.
func LoadBoards(dir string) (map[string]*board.Board, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read boards directory: %w", err)
	}

	boards := make(map[string]*board.Board)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		b, err := LoadBoardFile(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", entry.Name(), err)
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		boards[name] = b
	}
	return boards, nil
}
