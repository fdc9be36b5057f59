package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/montflix/internal/common"
	"github.com/dmitrijs2005/montflix/internal/locale"
)

func usage(format string) error {
	return errors.New("usage: " + format)
}

// Login signs in with the email given as the first argument, or prompts for
// one. An optional second argument names an avatar image used on first
// registration.
func (a *App) Login(ctx context.Context, args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		if email, err = GetSimpleText(a.reader, "Enter email", a.out); err != nil {
			return err
		}
	}

	var hint *string
	if len(args) > 1 {
		avatar, err := EncodeAvatarFile(args[1])
		if err != nil {
			return err
		}
		hint = &avatar
	}

	if _, err := a.core.Login(ctx, email, hint); err != nil {
		return err
	}
	a.chat = nil
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrorNotAuthenticated
	}
	a.core.Logout(ctx)
	a.chat = nil
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	snap, ok := a.core.CurrentSession()
	return renderSession(a.out, snap, ok)
}

// Avatar encodes the image file named by the first argument and sets it as
// the avatar of the signed-in identity.
func (a *App) Avatar(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("avatar <image-file>")
	}
	avatar, err := EncodeAvatarFile(args[0])
	if err != nil {
		return err
	}
	_, err = a.core.UpdateAvatar(ctx, avatar)
	return err
}

func (a *App) Search(ctx context.Context, args []string) error {
	items := a.core.Search(strings.Join(args, " "))
	return renderCatalog(a.out, items, a.core.IsFavorite)
}

func (a *App) Favorite(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("fav <item-id>")
	}
	_, err := a.core.ToggleFavorite(ctx, args[0])
	return err
}

func (a *App) Favorites(ctx context.Context) error {
	return renderCatalog(a.out, a.core.Favorites(), a.core.IsFavorite)
}

func (a *App) Users(ctx context.Context, args []string) error {
	users, err := a.core.Users(strings.Join(args, " "))
	if err != nil {
		return err
	}
	var current string
	if snap, ok := a.core.CurrentSession(); ok {
		current = snap.Identity.Email
	}
	return renderUsers(a.out, users, current, a.core.RoleOf)
}

// Export writes the directory to the file named by the first argument, or
// to the output when none is given.
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.core.Export(a.out)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	if err := a.core.Export(f); err != nil {
		_ = f.Close()
		_ = os.Remove(args[0])
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Directory exported to %s\n", args[0])
	return nil
}

// Ask opens the curator chat on first use and forwards the question.
func (a *App) Ask(ctx context.Context, args []string) error {
	opened := false
	if a.chat == nil {
		a.chat = a.core.OpenChat()
		fmt.Fprintf(a.out, "Alex: %s\n", a.chat.Greeting())
		opened = true
	}

	question := strings.Join(args, " ")
	if question == "" {
		if opened {
			return nil
		}
		return usage("ask <question>")
	}

	fmt.Fprintf(a.out, "Alex: %s\n", a.chat.Ask(ctx, question))
	return nil
}

func (a *App) Lang(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("lang <pt|en>")
	}
	lang := locale.Parse(args[0])
	a.core.SetLanguage(lang)
	a.chat = nil
	fmt.Fprintf(a.out, "Language: %s\n", lang)
	return nil
}
