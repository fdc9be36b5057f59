package records

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/montflix/internal/common"
)

// Slot names.
const (
	SlotDirectory = "identity-directory"
	SlotSession   = "active-session"
	SlotFavorites = "favorites-collection"
)

// Store reads and writes serialized blobs by slot name.
type Store interface {
	// Read returns the blob stored in slot, or nil when the slot is empty.
	// A damaged blob is erased and reported as common.ErrorCorrupted.
	Read(ctx context.Context, slot string) ([]byte, error)

	// Write replaces the blob stored in slot.
	Write(ctx context.Context, slot string, blob []byte) error

	// Erase removes slot. Erasing an empty slot is not an error.
	Erase(ctx context.Context, slot string) error

	// Batch runs fn against a Store whose writes are applied together or not
	// at all.
	Batch(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}

// Load decodes the JSON blob held in slot into v and reports whether the slot
// held data. A blob that cannot be decoded is erased and the returned error
// wraps common.ErrorCorrupted; v must then be considered unset.
func Load(ctx context.Context, s Store, slot string, v any) (bool, error) {
	blob, err := s.Read(ctx, slot)
	if err != nil {
		return false, err
	}
	if blob == nil {
		return false, nil
	}

	if err := json.Unmarshal(blob, v); err != nil {
		if eerr := s.Erase(ctx, slot); eerr != nil {
			return false, fmt.Errorf("slot[%s]: %w (erase failed: %v)", slot, common.ErrorCorrupted, eerr)
		}
		return false, fmt.Errorf("slot[%s]: %w: %v", slot, common.ErrorCorrupted, err)
	}
	return true, nil
}

// Save encodes v as JSON and writes it to slot.
func Save(ctx context.Context, s Store, slot string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode slot[%s]: %w", slot, err)
	}
	return s.Write(ctx, slot, blob)
}
