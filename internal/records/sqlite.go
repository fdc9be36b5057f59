package records

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/dmitrijs2005/montflix/internal/common"
	"github.com/dmitrijs2005/montflix/internal/dbx"
	"github.com/dmitrijs2005/montflix/internal/logging"
)

// SQLiteStore keeps slots in the "slots" table.
type SQLiteStore struct {
	db   dbx.DBTX
	conn *sql.DB // nil when the store is bound to a transaction
	log  logging.Logger
}

func NewSQLiteStore(db *sql.DB, log logging.Logger) *SQLiteStore {
	if log == nil {
		log = logging.Nop()
	}
	return &SQLiteStore{db: db, conn: db, log: log}
}

func checksum(value []byte) []byte {
	sum := blake2b.Sum256(value)
	return sum[:]
}

func (s *SQLiteStore) Read(ctx context.Context, slot string) ([]byte, error) {
	var value, sum []byte
	err := s.db.QueryRowContext(ctx, `SELECT value, checksum FROM slots WHERE name = ?`, slot).Scan(&value, &sum)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot[%s]: %w", slot, err)
	}

	if !bytes.Equal(sum, checksum(value)) {
		s.log.Warn(ctx, "checksum mismatch, clearing slot", "slot", slot)
		if err := s.Erase(ctx, slot); err != nil {
			return nil, fmt.Errorf("slot[%s]: %w (erase failed: %v)", slot, common.ErrorCorrupted, err)
		}
		return nil, fmt.Errorf("slot[%s]: %w", slot, common.ErrorCorrupted)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

func (s *SQLiteStore) Write(ctx context.Context, slot string, blob []byte) error {
	if blob == nil {
		blob = []byte{}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (name, value, checksum, updated_at)
		VALUES (?, ?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT(name) DO UPDATE SET
			value = excluded.value,
			checksum = excluded.checksum,
			updated_at = excluded.updated_at
	`, slot, blob, checksum(blob))
	if err != nil {
		return fmt.Errorf("failed to set slot[%s]: %w", slot, err)
	}
	return nil
}

func (s *SQLiteStore) Erase(ctx context.Context, slot string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE name = ?`, slot)
	if err != nil {
		return fmt.Errorf("failed to delete slot[%s]: %w", slot, err)
	}
	return nil
}

// Batch runs fn inside a transaction. A store already bound to a
// transaction runs fn directly.
func (s *SQLiteStore) Batch(ctx context.Context, fn func(ctx context.Context, st Store) error) error {
	if s.conn == nil {
		return fn(ctx, s)
	}
	return dbx.WithTx(ctx, s.conn, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &SQLiteStore{db: tx, log: s.log})
	})
}
