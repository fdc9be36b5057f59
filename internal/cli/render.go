package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/montflix/internal/catalog"
	"github.com/dmitrijs2005/montflix/internal/directory"
	"github.com/dmitrijs2005/montflix/internal/session"
)

// renderCatalog prints one line per item; favorites are starred.
func renderCatalog(w io.Writer, items []catalog.Item, isFavorite func(string) bool) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No titles found.")
		return err
	}
	for _, it := range items {
		mark := " "
		if isFavorite(it.ID) {
			mark = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %s: %s (%s, %d)\n", mark, it.ID, it.Title, it.Category, it.Year); err != nil {
			return err
		}
	}
	return nil
}

func renderSession(w io.Writer, snap session.Snapshot, ok bool) error {
	if !ok {
		_, err := fmt.Fprintln(w, "Not signed in.")
		return err
	}
	id := snap.Identity
	avatar := "none"
	if id.Avatar != nil {
		avatar = fmt.Sprintf("%d bytes", len(*id.Avatar))
	}
	_, err := fmt.Fprintf(w, "name: %s\nemail: %s\nrole: %s\navatar: %s\ncreated: %s\nlast login: %s\n",
		id.DisplayName, id.Email, snap.Role, avatar,
		id.CreatedAt.Format(time.RFC3339), id.LastLoginAt.Format(time.RFC3339))
	return err
}

// renderUsers lists identities; the signed-in one is marked with '>'.
func renderUsers(w io.Writer, users []directory.Identity, current string, roleOf func(string) session.Role) error {
	for _, u := range users {
		mark := " "
		if u.Email == current {
			mark = ">"
		}
		if _, err := fmt.Fprintf(w, "%s %s <%s> %s, last login %s\n",
			mark, u.DisplayName, u.Email, roleOf(u.Email), u.LastLoginAt.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d identities\n", len(users))
	return err
}
