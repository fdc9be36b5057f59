// Package favorites keeps the ordered collection of favorite catalog item
// ids. The newest addition comes first and an id appears at most once.
package favorites

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/montflix/internal/common"
	"github.com/dmitrijs2005/montflix/internal/logging"
	"github.com/dmitrijs2005/montflix/internal/records"
)

// State is the outcome of a toggle.
type State int

const (
	Removed State = iota
	Added
)

func (s State) String() string {
	if s == Added {
		return "added"
	}
	return "removed"
}

// Store is the favorites collection backed by the "favorites-collection"
// slot. Every toggle writes the whole collection.
type Store struct {
	store records.Store
	log   logging.Logger
	ids   []string
}

func New(store records.Store, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{store: store, log: log}
}

// Restore loads the persisted collection. A malformed slot leaves the
// collection empty.
func (f *Store) Restore(ctx context.Context) error {
	var stored []string
	_, err := records.Load(ctx, f.store, records.SlotFavorites, &stored)
	if errors.Is(err, common.ErrorCorrupted) {
		f.log.Warn(ctx, "favorites corrupted, starting empty", "error", err)
		f.ids = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore favorites: %w", err)
	}

	ids := make([]string, 0, len(stored))
	for _, id := range stored {
		if id == "" || slices.Contains(ids, id) {
			continue
		}
		ids = append(ids, id)
	}
	f.ids = ids
	return nil
}

// Toggle adds id to the front of the collection, or removes it when it is
// already present. The in-memory collection changes even when the write
// fails.
func (f *Store) Toggle(ctx context.Context, id string) (State, error) {
	state := Added
	if i := slices.Index(f.ids, id); i >= 0 {
		f.ids = slices.Delete(f.ids, i, i+1)
		state = Removed
	} else {
		f.ids = slices.Insert(f.ids, 0, id)
	}

	ids := f.ids
	if ids == nil {
		ids = []string{}
	}
	if err := records.Save(ctx, f.store, records.SlotFavorites, ids); err != nil {
		return state, fmt.Errorf("persist favorites: %w", err)
	}
	return state, nil
}

func (f *Store) Contains(id string) bool {
	return slices.Contains(f.ids, id)
}

// Items returns the ids, most recently added first.
func (f *Store) Items() []string {
	return slices.Clone(f.ids)
}

func (f *Store) Len() int {
	return len(f.ids)
}
