package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/montflix/internal/core"
	"github.com/dmitrijs2005/montflix/internal/directory"
	"github.com/dmitrijs2005/montflix/internal/locale"
	"github.com/dmitrijs2005/montflix/internal/logging"
	"github.com/dmitrijs2005/montflix/internal/session"
	"github.com/dmitrijs2005/montflix/internal/testutil"
)

// runScript feeds script to a fresh App and returns everything it printed.
func runScript(t *testing.T, path string, opts core.Options, script string) string {
	t.Helper()

	s, _ := testutil.OpenStore(t, path)
	c, err := core.New(s, opts)
	require.NoError(t, err)
	require.NoError(t, c.Init(context.Background()))

	var out bytes.Buffer

	app := newApp(c, strings.NewReader(script), &out, logging.Nop())
	runREPL(context.Background(), app, app.prompt, app.reader, &out)
	app.Close()
	return out.String()
}

func TestApp_MemberSession(t *testing.T) {
	out := runScript(t, testutil.DBPath(t), core.Options{}, strings.Join([]string{
		"login ana@x.com",
		"fav montflix-01",
		"favorites",
		"whoami",
		"users",
		"logout",
		"whoami",
		"exit",
	}, "\n"))

	assert.Contains(t, out, "* Bem-vindo, ana!\n")
	assert.Contains(t, out, "* Tears of Steel adicionado à sua lista\n")
	assert.Contains(t, out, "* montflix-01: Tears of Steel (Sci-Fi, ")
	assert.Contains(t, out, "name: Ana\nemail: ana@x.com\nrole: member\navatar: none\n")
	assert.Contains(t, out, "Error: forbidden: role member\n")
	assert.Contains(t, out, "* Sessão encerrada\n")
	assert.Contains(t, out, "Not signed in.\n")
	assert.True(t, strings.HasSuffix(out, "Bye!\n"))
}

func TestApp_LoginPromptsForEmail(t *testing.T) {
	out := runScript(t, testutil.DBPath(t), core.Options{Language: locale.English}, "login\nbia@x.com\nwhoami\n")

	assert.Contains(t, out, "Enter email\n> ")
	assert.Contains(t, out, "* Welcome, bia!\n")
	assert.Contains(t, out, "email: bia@x.com\n")
}

func TestApp_StatePersistsAcrossRuns(t *testing.T) {
	path := testutil.DBPath(t)
	opts := core.Options{Language: locale.English}

	runScript(t, path, opts, "login ana@x.com\nfav montflix-02\n")
	out := runScript(t, path, opts, "whoami\nfavorites\n")

	assert.Contains(t, out, "email: ana@x.com\n")
	assert.Contains(t, out, "* montflix-02: Big Buck Bunny")
	assert.NotContains(t, out, "Welcome", "restoring a session is not a login")
}

func TestApp_SearchAndUnknownFavorite(t *testing.T) {
	out := runScript(t, testutil.DBPath(t), core.Options{}, "search sci-fi\nsearch nothing-like-this\nfav nope\n")

	assert.Contains(t, out, "  montflix-long-01: A Travessia do Infinito (Sci-Fi, ")
	assert.Contains(t, out, "  montflix-01: Tears of Steel (Sci-Fi, ")
	assert.NotContains(t, out, "Big Buck Bunny")
	assert.Contains(t, out, "No titles found.\n")
	assert.Contains(t, out, "Error: unknown catalog item: nope\n")
}

func TestApp_AvatarCommand(t *testing.T) {
	img := filepath.Join(t.TempDir(), "me.png")
	require.NoError(t, os.WriteFile(img, pngHeader, 0o600))

	out := runScript(t, testutil.DBPath(t), core.Options{Language: locale.English},
		"avatar "+img+"\nlogin ana@x.com\navatar "+img+"\nwhoami\n")

	assert.Contains(t, out, "Error: not authenticated\n")
	assert.Contains(t, out, "* Profile picture updated\n")
	assert.NotContains(t, out, "avatar: none")
}

func TestApp_OwnerExport(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "directory.json")
	opts := core.Options{
		Language: locale.English,
		Policy:   session.Policy{Master: "owner@montflix.app", Admins: []string{"curator@montflix.app"}},
	}

	out := runScript(t, testutil.DBPath(t), opts, strings.Join([]string{
		"login curator@montflix.app",
		"users",
		"export " + dest,
		"login owner@montflix.app",
		"export " + dest,
	}, "\n"))

	assert.Contains(t, out, "> Curator <curator@montflix.app> administrator")
	assert.Contains(t, out, "Error: forbidden: role administrator\n")
	assert.Contains(t, out, "Directory exported to "+dest+"\n")

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	var users []directory.Identity
	require.NoError(t, json.Unmarshal(data, &users))
	require.Len(t, users, 2)
	assert.Equal(t, "owner@montflix.app", users[0].Email)
}

func TestApp_AskWithoutKey(t *testing.T) {
	out := runScript(t, testutil.DBPath(t), core.Options{Language: locale.English}, "ask\nask any horror?\nlang pt\nask oi\n")

	assert.Contains(t, out, "Alex: Hello, user!")
	assert.Contains(t, out, "Alex: "+locale.English.MissingKey()+"\n")
	assert.Contains(t, out, "Language: pt\n")
	assert.Contains(t, out, "Alex: Olá, usuário!")
	assert.Contains(t, out, "Alex: "+locale.Portuguese.MissingKey()+"\n")
}
