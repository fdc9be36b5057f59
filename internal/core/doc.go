// Package core wires the identity directory, the session manager, the
// favorites collection, the catalog and the notification queue into one
// explicitly constructed store.
//
// A Core owns its records.Store. Call Init once to restore the three
// persisted aggregates; each restores on its own, so a damaged slot only
// empties its own aggregate. Every mutation is written through before it
// returns. Write failures are logged and do not undo the in-memory change.
//
// Core methods are safe for concurrent use, although the CLI drives them
// from a single goroutine.
package core
