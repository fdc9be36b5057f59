package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/montflix/internal/catalog"
	"github.com/dmitrijs2005/montflix/internal/common"
	"github.com/dmitrijs2005/montflix/internal/curator"
	"github.com/dmitrijs2005/montflix/internal/directory"
	"github.com/dmitrijs2005/montflix/internal/favorites"
	"github.com/dmitrijs2005/montflix/internal/locale"
	"github.com/dmitrijs2005/montflix/internal/logging"
	"github.com/dmitrijs2005/montflix/internal/notify"
	"github.com/dmitrijs2005/montflix/internal/records"
	"github.com/dmitrijs2005/montflix/internal/session"
)

// Options configures a Core. Zero values are usable: the embedded catalog,
// Portuguese messages, no privileged identities and no curator key.
type Options struct {
	Catalog     *catalog.Catalog
	Policy      session.Policy
	Language    locale.Language
	Logger      logging.Logger
	Recommender curator.Recommender
	ChatTimeout time.Duration

	// Clock and NewID override time and identity id generation.
	Clock func() time.Time
	NewID func() string
}

type Core struct {
	mu sync.Mutex

	store       records.Store
	catalog     *catalog.Catalog
	policy      session.Policy
	lang        locale.Language
	log         logging.Logger
	recommender curator.Recommender
	chatTimeout time.Duration

	dir     *directory.Directory
	session *session.Manager
	favs    *favorites.Store
	notices *notify.Queue
}

func New(store records.Store, opts Options) (*Core, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}

	cat := opts.Catalog
	if cat == nil {
		var err error
		if cat, err = catalog.Default(); err != nil {
			return nil, fmt.Errorf("load default catalog: %w", err)
		}
	}

	lang := opts.Language
	if lang == "" {
		lang = locale.Portuguese
	}

	rec := opts.Recommender
	if rec == nil {
		rec = unconfigured{}
	}

	dirOpts := []directory.Option{directory.WithLogger(log.With("component", "directory"))}
	if opts.Clock != nil {
		dirOpts = append(dirOpts, directory.WithClock(opts.Clock))
	}
	if opts.NewID != nil {
		dirOpts = append(dirOpts, directory.WithIDGenerator(opts.NewID))
	}
	dir := directory.New(store, dirOpts...)

	return &Core{
		store:       store,
		catalog:     cat,
		policy:      opts.Policy,
		lang:        lang,
		log:         log,
		recommender: rec,
		chatTimeout: opts.ChatTimeout,
		dir:         dir,
		session:     session.NewManager(store, dir, opts.Policy, log.With("component", "session")),
		favs:        favorites.New(store, log.With("component", "favorites")),
		notices:     notify.NewQueue(),
	}, nil
}

// Init restores the directory, the session and the favorites. Each is
// restored even when another fails; the returned error joins the failures.
func (c *Core) Init(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := errors.Join(
		c.dir.Restore(ctx),
		c.session.Restore(ctx),
		c.favs.Restore(ctx),
	)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}

	c.log.Debug(ctx, "core initialized", "identities", c.dir.Len(), "favorites", c.favs.Len())
	return nil
}

// Close releases nothing; the records.Store belongs to the caller.
func (c *Core) Close() error {
	return nil
}

func (c *Core) Language() locale.Language {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lang
}

// SetLanguage switches the language of later notifications and chats.
func (c *Core) SetLanguage(lang locale.Language) {
	c.mu.Lock()
	c.lang = lang
	c.mu.Unlock()
}

func (c *Core) persistFailed(ctx context.Context, op string, err error) {
	c.log.Warn(ctx, "persistence failed", "op", op, "error", err)
}

// Login signs email in, registering it on first use, and posts a welcome.
// Only an invalid email is reported as an error.
func (c *Core) Login(ctx context.Context, email string, avatarHint *string) (session.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.session.Login(ctx, email, avatarHint)
	if errors.Is(err, common.ErrorInvalidEmail) {
		return session.Snapshot{}, err
	}
	if err != nil {
		c.persistFailed(ctx, "login", err)
	}

	c.notices.Post(c.lang.Welcome(directory.LocalPart(email)))
	return snap, nil
}

// Logout ends the active session. Directory and favorites are kept.
func (c *Core) Logout(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.session.Logout(ctx); err != nil {
		c.persistFailed(ctx, "logout", err)
	}
	c.notices.Post(c.lang.LoggedOut())
}

// UpdateAvatar sets the avatar of the active identity in the session and in
// the directory.
func (c *Core) UpdateAvatar(ctx context.Context, avatar string) (session.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.session.UpdateAvatar(ctx, avatar)
	if errors.Is(err, common.ErrorNotAuthenticated) {
		return session.Snapshot{}, err
	}
	if err != nil {
		c.persistFailed(ctx, "update avatar", err)
	}

	c.notices.Post(c.lang.AvatarUpdated())
	return snap, nil
}

// ToggleFavorite adds or removes a catalog item. Adding an id missing from
// the catalog is rejected with common.ErrorUnknownItem; a stored favorite can
// always be removed, even after it left the catalog.
func (c *Core) ToggleFavorite(ctx context.Context, id string) (favorites.State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	title := id
	item, ok := c.catalog.Lookup(id)
	if ok {
		title = item.Title
	} else if !c.favs.Contains(id) {
		return favorites.Removed, fmt.Errorf("%w: %s", common.ErrorUnknownItem, id)
	}

	state, err := c.favs.Toggle(ctx, id)
	if err != nil {
		c.persistFailed(ctx, "toggle favorite", err)
	}

	if state == favorites.Added {
		c.notices.Post(c.lang.FavoriteAdded(title))
	} else {
		c.notices.Post(c.lang.FavoriteRemoved(title))
	}
	return state, nil
}

func (c *Core) IsFavorite(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.favs.Contains(id)
}

// FavoriteIDs returns the raw collection, most recently added first.
func (c *Core) FavoriteIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.favs.Items()
}

// Favorites resolves the collection against the catalog. Ids no longer in
// the catalog are skipped.
func (c *Core) Favorites() []catalog.Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := c.favs.Items()
	items := make([]catalog.Item, 0, len(ids))
	for _, id := range ids {
		if item, ok := c.catalog.Lookup(id); ok {
			items = append(items, item)
		}
	}
	return items
}

// RoleOf derives the role email would have when signed in.
func (c *Core) RoleOf(email string) session.Role {
	c.mu.Lock()
	defer c.mu.Unlock()
	return session.DeriveRole(email, c.policy)
}

func (c *Core) CurrentSession() (session.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Current()
}

// Notification returns the pending message and clears it.
func (c *Core) Notification() (string, bool) {
	return c.notices.Consume()
}

// PeekNotification returns the pending message and leaves it in place.
func (c *Core) PeekNotification() (string, bool) {
	return c.notices.Pending()
}

func (c *Core) DismissNotification() {
	c.notices.Dismiss()
}

// Search filters the catalog by title or category.
func (c *Core) Search(query string) []catalog.Item {
	return c.catalog.Search(query)
}

func (c *Core) Catalog() *catalog.Catalog {
	return c.catalog
}

// Users lists registered identities matching query. Only administrators and
// the owner may call it.
func (c *Core) Users(query string) ([]directory.Identity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.require(session.Role.CanViewDirectory); err != nil {
		return nil, err
	}
	return c.dir.Filter(query), nil
}

// Export writes the directory as JSON. Only the owner may call it.
func (c *Core) Export(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.require(session.Role.CanExport); err != nil {
		return err
	}
	return c.dir.Export(w)
}

func (c *Core) require(allowed func(session.Role) bool) error {
	snap, ok := c.session.Current()
	if !ok {
		return common.ErrorNotAuthenticated
	}
	if !allowed(snap.Role) {
		return fmt.Errorf("%w: role %s", common.ErrorForbidden, snap.Role)
	}
	return nil
}

// OpenChat starts a curator conversation greeting the active identity by
// display name, or the guest when signed out.
func (c *Core) OpenChat() *curator.Chat {
	c.mu.Lock()
	defer c.mu.Unlock()

	var name string
	if snap, ok := c.session.Current(); ok {
		name = snap.Identity.DisplayName
	}
	return curator.NewChat(c.recommender, name, c.catalog.Items(), c.lang,
		curator.WithTimeout(c.chatTimeout),
		curator.WithLogger(c.log.With("component", "curator")),
	)
}

type unconfigured struct{}

func (unconfigured) Recommend(context.Context, curator.Request) (string, error) {
	return "", curator.ErrNotConfigured
}
