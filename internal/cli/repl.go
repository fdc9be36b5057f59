package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	flushNotifications()

	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Avatar(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Favorite(ctx context.Context, args []string) error
	Favorites(ctx context.Context) error
	Users(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Ask(ctx context.Context, args []string) error
	Lang(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the Montflix CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Errors returned by handlers are printed and
// the loop goes on. After every command the pending notification, if any,
// is printed. All output goes to out. The loop exits on EOF, when ctx is
// cancelled, or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt comes from promptFn and is printed without a trailing newline;
// an empty prompt is not printed.
//
//	Always:
//	  - help                      show available commands
//	  - login <email> [avatar]    sign in, registering on first use
//	  - search [query] | list     browse the catalog
//	  - fav <id>                  toggle a favorite
//	  - favorites                 show favorites
//	  - ask <question>            talk to the curator
//	  - lang <pt|en>              switch language
//	  - exit | quit               leave the program
//
//	Signed in:
//	  - whoami, avatar <file>, logout
//	  - users [query]             administrators and owner
//	  - export [file]             owner
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		if p := promptFn(); p != "" {
			fmt.Fprint(out, p)
		}
		line, err := readLine(ctx, reader)
		if line == "" && err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, "Available commands: whoami, avatar, logout, search, (l)ist, fav, favorites, users, export, ask, lang, exit")
			} else {
				fmt.Fprintln(out, "Available commands: login, search, (l)ist, fav, favorites, ask, lang, exit")
			}

		case "login":
			cmdErr = a.Login(ctx, args)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "avatar":
			cmdErr = a.Avatar(ctx, args)

		case "search":
			cmdErr = a.Search(ctx, args)

		case "l", "list":
			cmdErr = a.Search(ctx, nil)

		case "fav":
			cmdErr = a.Favorite(ctx, args)

		case "favorites":
			cmdErr = a.Favorites(ctx)

		case "users":
			cmdErr = a.Users(ctx, args)

		case "export":
			cmdErr = a.Export(ctx, args)

		case "ask":
			cmdErr = a.Ask(ctx, args)

		case "lang":
			cmdErr = a.Lang(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(out, "Error:", cmdErr)
		}
		a.flushNotifications()
	}
}

type readResult struct {
	line string
	err  error
}

// readLine reads one line from reader, giving up when ctx is done. The
// abandoned read keeps its goroutine until the underlying input delivers
// data or closes.
func readLine(ctx context.Context, reader *bufio.Reader) (string, error) {
	ch := make(chan readResult, 1)
	go func() {
		line, err := reader.ReadString('\n')
		ch <- readResult{line, err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}
