package testutil

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/montflix/internal/logging"
	"github.com/dmitrijs2005/montflix/internal/records"
)

// ErrInjected is returned by FlakyStore for failing slots.
var ErrInjected = errors.New("injected write failure")

// DBPath returns a fresh database path inside the test's temp dir. Opening
// the same path twice simulates a restart.
func DBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "montflix.db")
}

// OpenStore opens the slot database at path and closes it on cleanup.
func OpenStore(t *testing.T, path string) (*records.SQLiteStore, *sql.DB) {
	t.Helper()
	db, err := records.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return records.NewSQLiteStore(db, logging.Nop()), db
}

// CorruptSlot stores blob in slot with a valid checksum, so only decoding
// fails.
func CorruptSlot(t *testing.T, s records.Store, slot string, blob []byte) {
	t.Helper()
	require.NoError(t, s.Write(context.Background(), slot, blob))
}

// FlakyStore wraps a Store and fails writes and erases to selected slots.
type FlakyStore struct {
	records.Store

	mu      sync.Mutex
	failing map[string]bool
}

func NewFlakyStore(inner records.Store) *FlakyStore {
	return &FlakyStore{Store: inner, failing: map[string]bool{}}
}

// Fail makes writes to slot fail until Heal is called.
func (f *FlakyStore) Fail(slot string) {
	f.mu.Lock()
	f.failing[slot] = true
	f.mu.Unlock()
}

func (f *FlakyStore) Heal(slot string) {
	f.mu.Lock()
	delete(f.failing, slot)
	f.mu.Unlock()
}

func (f *FlakyStore) broken(slot string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failing[slot]
}

func (f *FlakyStore) Write(ctx context.Context, slot string, blob []byte) error {
	if f.broken(slot) {
		return ErrInjected
	}
	return f.Store.Write(ctx, slot, blob)
}

func (f *FlakyStore) Erase(ctx context.Context, slot string) error {
	if f.broken(slot) {
		return ErrInjected
	}
	return f.Store.Erase(ctx, slot)
}

func (f *FlakyStore) Batch(ctx context.Context, fn func(ctx context.Context, s records.Store) error) error {
	return f.Store.Batch(ctx, func(ctx context.Context, tx records.Store) error {
		return fn(ctx, &FlakyStore{Store: tx, failing: f.snapshot()})
	})
}

func (f *FlakyStore) snapshot() map[string]bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]bool, len(f.failing))
	for k, v := range f.failing {
		out[k] = v
	}
	return out
}
