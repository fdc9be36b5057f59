package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/dmitrijs2005/montflix/internal/common"
	"github.com/dmitrijs2005/montflix/internal/logging"
	"github.com/dmitrijs2005/montflix/internal/records"
)

// Directory maps emails to identities. Records are kept newest-created
// first.
type Directory struct {
	store records.Store
	log   logging.Logger
	now   func() time.Time
	newID func() string
	items []Identity
}

type Option func(*Directory)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(d *Directory) { d.now = now }
}

// WithIDGenerator overrides identity id generation.
func WithIDGenerator(gen func() string) Option {
	return func(d *Directory) { d.newID = gen }
}

func WithLogger(l logging.Logger) Option {
	return func(d *Directory) { d.log = l }
}

func New(store records.Store, opts ...Option) *Directory {
	d := &Directory{
		store: store,
		log:   logging.Nop(),
		now:   time.Now,
		newID: newUUID,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ValidateEmail rejects values without a non-empty local part before '@'.
// No normalization is applied.
func ValidateEmail(email string) error {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return fmt.Errorf("%w: %q", common.ErrorInvalidEmail, email)
	}
	return nil
}

// Restore replaces the in-memory directory with the persisted one. A
// corrupted slot yields an empty directory.
func (d *Directory) Restore(ctx context.Context) error {
	var stored []Identity
	_, err := records.Load(ctx, d.store, records.SlotDirectory, &stored)
	if errors.Is(err, common.ErrorCorrupted) {
		d.log.Warn(ctx, "identity directory corrupted, starting empty", "error", err)
		d.items = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore directory: %w", err)
	}

	seen := make(map[string]struct{}, len(stored))
	items := make([]Identity, 0, len(stored))
	for _, rec := range stored {
		if !rec.valid() {
			continue
		}
		if _, dup := seen[rec.Email]; dup {
			continue
		}
		seen[rec.Email] = struct{}{}
		items = append(items, rec)
	}
	if dropped := len(stored) - len(items); dropped > 0 {
		d.log.Warn(ctx, "dropped invalid directory records", "count", dropped)
	}

	slices.SortStableFunc(items, func(a, b Identity) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	d.items = items
	d.log.Debug(ctx, "directory restored", "count", len(items))
	return nil
}

func (d *Directory) index(email string) int {
	return slices.IndexFunc(d.items, func(rec Identity) bool { return rec.Email == email })
}

// Upsert registers a login for email. An unknown email gets a new identity
// (avatarHint becomes its avatar); a known one only has LastLoginAt moved
// forward. The second result reports whether the identity was created.
//
// The returned identity reflects the in-memory directory even when the
// returned error reports a failed write.
func (d *Directory) Upsert(ctx context.Context, email string, avatarHint *string) (Identity, bool, error) {
	if err := ValidateEmail(email); err != nil {
		return Identity{}, false, err
	}

	now := d.now().UTC()

	if i := d.index(email); i >= 0 {
		rec := d.items[i]
		if now.After(rec.LastLoginAt) {
			rec.LastLoginAt = now
		}
		d.items[i] = rec
		return rec, false, d.persist(ctx, d.store)
	}

	rec := Identity{
		ID:          d.newID(),
		Email:       email,
		DisplayName: DisplayNameFor(email),
		Avatar:      cloneString(avatarHint),
		CreatedAt:   now,
		LastLoginAt: now,
	}
	d.items = slices.Insert(d.items, 0, rec)
	return rec, true, d.persist(ctx, d.store)
}

// UpdateAvatar replaces the avatar of the identity registered under email.
// Unknown emails are ignored: the second result is false and nothing is
// written.
func (d *Directory) UpdateAvatar(ctx context.Context, email, avatar string) (Identity, bool, error) {
	return d.UpdateAvatarIn(ctx, d.store, email, avatar)
}

// UpdateAvatarIn is UpdateAvatar writing through s, so the change can join a
// records.Store batch.
func (d *Directory) UpdateAvatarIn(ctx context.Context, s records.Store, email, avatar string) (Identity, bool, error) {
	i := d.index(email)
	if i < 0 {
		d.log.Debug(ctx, "avatar update for unknown email ignored", "email", email)
		return Identity{}, false, nil
	}
	d.items[i].Avatar = &avatar
	return d.items[i], true, d.persist(ctx, s)
}

// Lookup returns the identity registered under email.
func (d *Directory) Lookup(email string) (Identity, bool) {
	i := d.index(email)
	if i < 0 {
		return Identity{}, false
	}
	return d.items[i], true
}

// All yields identities newest-created first. The sequence can be ranged over
// any number of times and never changes the directory.
func (d *Directory) All() iter.Seq[Identity] {
	return func(yield func(Identity) bool) {
		for _, rec := range d.items {
			if !yield(rec) {
				return
			}
		}
	}
}

// List returns a copy of the directory, newest-created first.
func (d *Directory) List() []Identity {
	return slices.Clone(d.items)
}

func (d *Directory) Len() int {
	return len(d.items)
}

// Filter returns identities whose email or display name contains query,
// ignoring case.
func (d *Directory) Filter(query string) []Identity {
	if query == "" {
		return d.List()
	}
	fold := cases.Fold()
	q := fold.String(query)

	var out []Identity
	for rec := range d.All() {
		if strings.Contains(fold.String(rec.Email), q) || strings.Contains(fold.String(rec.DisplayName), q) {
			out = append(out, rec)
		}
	}
	return out
}

// Export writes the whole directory as indented JSON.
func (d *Directory) Export(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d.snapshot()); err != nil {
		return fmt.Errorf("export directory: %w", err)
	}
	return nil
}

func (d *Directory) snapshot() []Identity {
	if d.items == nil {
		return []Identity{}
	}
	return d.items
}

func (d *Directory) persist(ctx context.Context, s records.Store) error {
	if err := records.Save(ctx, s, records.SlotDirectory, d.snapshot()); err != nil {
		return fmt.Errorf("persist directory: %w", err)
	}
	return nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
