// Package store persists named board records through gdata, which places
// them under the platform's application-data directory. A nil manager puts
// the store in degraded mode: saves are dropped and nothing is found, which
// keeps callers working when no writable data dir exists.
package store

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/quasilyte/gdata/v2"

	"pixelboard/internal/board"
	"pixelboard/internal/record"
)

const (
	boardsObject  = "boards"
	indexProperty = "_index"
)

// BoardStore is a named-board library backed by gdata.
type BoardStore struct {
	m *gdata.Manager
}

// Open creates a store for the given application name.
func Open(appName string) (*BoardStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open data store: %w", err)
	}
	return &BoardStore{m: m}, nil
}

// New wraps an existing gdata manager. A nil manager is allowed and yields
// a degraded store.
func New(m *gdata.Manager) *BoardStore {
	return &BoardStore{m: m}
}

// Save encodes b and stores it under name, updating the name index.
func (s *BoardStore) Save(name string, b *board.Board) error {
	if s.m == nil {
		return nil
	}
	if name == "" || name == indexProperty {
		return fmt.Errorf("invalid board name %q", name)
	}

	data, err := record.EncodeBoard(b)
	if err != nil {
		return fmt.Errorf("encode board %q: %w", name, err)
	}
	if err := s.m.SaveObjectProp(boardsObject, name, data); err != nil {
		return fmt.Errorf("save board %q: %w", name, err)
	}

	names := s.Names()
	for _, n := range names {
		if n == name {
			return nil
		}
	}
	return s.writeIndex(append(names, name))
}

// Load fetches and decodes the board stored under name.
func (s *BoardStore) Load(name string) (*board.Board, error) {
	if s.m == nil || !s.m.ObjectPropExists(boardsObject, name) {
		return nil, fmt.Errorf("board %q not found", name)
	}
	data, err := s.m.LoadObjectProp(boardsObject, name)
	if err != nil {
		return nil, fmt.Errorf("load board %q: %w", name, err)
	}
	b, err := record.DecodeBoard(data)
	if err != nil {
		return nil, fmt.Errorf("board %q: %w", name, err)
	}
	return b, nil
}

// Exists reports whether a board is stored under name.
func (s *BoardStore) Exists(name string) bool {
	return s.m != nil && s.m.ObjectPropExists(boardsObject, name)
}

// Names returns the stored board names, sorted. gdata has no listing
// primitive, so the store keeps its own index property.
func (s *BoardStore) Names() []string {
	if s.m == nil || !s.m.ObjectPropExists(boardsObject, indexProperty) {
		return nil
	}
	data, err := s.m.LoadObjectProp(boardsObject, indexProperty)
	if err != nil {
		return nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil
	}
	sort.Strings(names)
	return names
}

func (s *BoardStore) writeIndex(names []string) error {
	data, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("encode board index: %w", err)
	}
	if err := s.m.SaveObjectProp(boardsObject, indexProperty, data); err != nil {
		return fmt.Errorf("save board index: %w", err)
	}
	return nil
}
