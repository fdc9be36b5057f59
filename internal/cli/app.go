package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/montflix/internal/catalog"
	"github.com/dmitrijs2005/montflix/internal/config"
	"github.com/dmitrijs2005/montflix/internal/core"
	"github.com/dmitrijs2005/montflix/internal/curator"
	"github.com/dmitrijs2005/montflix/internal/logging"
	"github.com/dmitrijs2005/montflix/internal/records"
)

type App struct {
	core   *core.Core
	db     *sql.DB
	log    logging.Logger
	reader *bufio.Reader
	in     io.Reader
	out    io.Writer
	chat   *curator.Chat
}

// NewApp opens the database named in c and builds the core over it.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(os.Stderr, c.LogLevel)

	db, err := records.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	cat, err := catalog.LoadFile(c.CatalogPath)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	rec, err := curator.NewGemini(ctx, curator.GeminiConfig{APIKey: c.GeminiAPIKey, Model: c.GeminiModel})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	cr, err := core.New(records.NewSQLiteStore(db, log.With("component", "records")), core.Options{
		Catalog:     cat,
		Policy:      c.Policy(),
		Language:    c.Lang(),
		Logger:      log,
		Recommender: rec,
		ChatTimeout: c.ChatTimeout,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := cr.Init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	app := newApp(cr, os.Stdin, os.Stdout, log)
	app.db = db
	return app, nil
}

func newApp(c *core.Core, in io.Reader, out io.Writer, log logging.Logger) *App {
	return &App{core: c, log: log, in: in, reader: bufio.NewReader(in), out: out}
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Montflix CLI (type 'help' for commands)")
	runREPL(ctx, a, a.prompt, a.reader, a.out)
	a.log.Debug(ctx, "repl finished")
}

// Close closes the core and the database.
func (a *App) Close() {
	_ = a.core.Close()
	if a.db != nil {
		_ = a.db.Close()
		a.db = nil
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.core.CurrentSession()
	return ok
}

func (a *App) getStatus() string {
	snap, ok := a.core.CurrentSession()
	if !ok {
		return "(guest)"
	}
	return fmt.Sprintf("(%s %s)", snap.Identity.DisplayName, snap.Role)
}

// prompt is shown only when stdin is a terminal.
func (a *App) prompt() string {
	if !interactive(a.in) {
		return ""
	}
	return fmt.Sprintf("montflix %s> ", a.getStatus())
}

// flushNotifications prints and consumes the pending core notification.
func (a *App) flushNotifications() {
	if msg, ok := a.core.Notification(); ok {
		fmt.Fprintf(a.out, "* %s\n", msg)
	}
}
