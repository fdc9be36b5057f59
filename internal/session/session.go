package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/montflix/internal/common"
	"github.com/dmitrijs2005/montflix/internal/directory"
	"github.com/dmitrijs2005/montflix/internal/logging"
	"github.com/dmitrijs2005/montflix/internal/records"
)

// Snapshot is the authenticated identity together with its derived role.
type Snapshot struct {
	Identity directory.Identity
	Role     Role
}

// Manager owns the active session.
type Manager struct {
	store   records.Store
	dir     *directory.Directory
	log     logging.Logger
	policy  Policy
	current *directory.Identity
}

func NewManager(store records.Store, dir *directory.Directory, policy Policy, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{store: store, dir: dir, policy: policy, log: log}
}

// Restore loads the persisted session. A stored identity becomes the active
// one as is: the directory is not consulted and LastLoginAt is not moved.
// Anything unreadable leaves the manager unauthenticated.
func (m *Manager) Restore(ctx context.Context) error {
	m.current = nil

	var stored *directory.Identity
	ok, err := records.Load(ctx, m.store, records.SlotSession, &stored)
	if errors.Is(err, common.ErrorCorrupted) {
		m.log.Warn(ctx, "session slot corrupted, starting signed out", "error", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if !ok || stored == nil {
		return nil
	}

	if stored.ID == "" || stored.Email == "" {
		m.log.Warn(ctx, "session slot holds no identity, clearing it")
		if err := m.store.Erase(ctx, records.SlotSession); err != nil {
			return fmt.Errorf("restore session: %w", err)
		}
		return nil
	}

	m.current = stored
	return nil
}

// Login upserts email in the directory and makes the resulting identity the
// active one. The session is switched even when a write fails; the returned
// error then joins every failed write.
func (m *Manager) Login(ctx context.Context, email string, avatarHint *string) (Snapshot, error) {
	rec, _, dirErr := m.dir.Upsert(ctx, email, avatarHint)
	if errors.Is(dirErr, common.ErrorInvalidEmail) {
		return Snapshot{}, dirErr
	}

	m.current = &rec
	sessErr := m.persist(ctx, m.store)

	return m.snapshot(), errors.Join(dirErr, sessErr)
}

// Logout ends the session and erases the session slot. Directory and
// favorites are left alone.
func (m *Manager) Logout(ctx context.Context) error {
	m.current = nil
	if err := m.store.Erase(ctx, records.SlotSession); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// UpdateAvatar replaces the avatar of the active identity in both the
// session copy and the directory. Both slots are written in one batch.
func (m *Manager) UpdateAvatar(ctx context.Context, avatar string) (Snapshot, error) {
	if m.current == nil {
		return Snapshot{}, common.ErrorNotAuthenticated
	}

	next := *m.current
	next.Avatar = &avatar
	m.current = &next

	err := m.store.Batch(ctx, func(ctx context.Context, tx records.Store) error {
		_, found, err := m.dir.UpdateAvatarIn(ctx, tx, next.Email, avatar)
		if err != nil {
			return err
		}
		if !found {
			m.log.Warn(ctx, "active identity missing from directory", "email", next.Email)
		}
		return m.persist(ctx, tx)
	})
	if err != nil {
		return m.snapshot(), fmt.Errorf("update avatar: %w", err)
	}
	return m.snapshot(), nil
}

// Current returns the active identity with a freshly derived role.
func (m *Manager) Current() (Snapshot, bool) {
	if m.current == nil {
		return Snapshot{}, false
	}
	return m.snapshot(), true
}

// SetPolicy replaces the privileged identities used by Current.
func (m *Manager) SetPolicy(p Policy) {
	m.policy = p
}

func (m *Manager) snapshot() Snapshot {
	id := *m.current
	return Snapshot{Identity: id, Role: DeriveRole(id.Email, m.policy)}
}

func (m *Manager) persist(ctx context.Context, s records.Store) error {
	if err := records.Save(ctx, s, records.SlotSession, m.current); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}
