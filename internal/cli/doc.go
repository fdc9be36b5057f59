// Package cli provides the interactive Montflix command-line client.
//
// It wires configuration, the SQLite slot store, the catalog, the curator
// recommender and core.Core, then runs a REPL over stdin. Notifications
// posted by the core are printed after each command.
//
// Commands:
//   - login <email> [avatar-file], logout, whoami
//   - avatar <image-file>
//   - search [query], list
//   - fav <item-id>, favorites
//   - users [query] (administrators), export [file] (owner)
//   - ask <question>, lang <pt|en>
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
