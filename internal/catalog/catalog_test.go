package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func testItems() []Item {
	return []Item{
		{ID: "movie-1", Title: "Tears of Steel", Category: "Sci-Fi"},
		{ID: "movie-2", Title: "Big Buck Bunny", Category: "Ação"},
		{ID: "movie-3", Title: "Sci-Fi Origins", Category: "Documentário"},
		{ID: "movie-4", Title: "Cosmos", Category: "SCI-FI classics"},
	}
}

func TestFilter_EmptyQueryReturnsEverythingInOrder(t *testing.T) {
	items := testItems()

	got := Filter(items, "")
	require.Len(t, got, len(items))
	assert.Equal(t, items, got)

	got[0].Title = "mutated"
	assert.Equal(t, "Tears of Steel", items[0].Title, "result must not alias the input")
}

func TestFilter_CaseInsensitiveOnTitleOrCategory(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"SCI-FI", []string{"movie-1", "movie-3", "movie-4"}},
		{"bunny", []string{"movie-2"}},
		{"AÇÃO", []string{"movie-2"}},
		{"documentário", []string{"movie-3"}},
		{"of st", []string{"movie-1"}},
		{"western", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(testItems(), tt.query)))
		})
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	items := testItems()
	before := ids(items)
	_ = Filter(items, "sci")
	assert.Equal(t, before, ids(items))
}

func TestNew_RejectsEmptyAndDuplicateIDs(t *testing.T) {
	_, err := New([]Item{{ID: ""}})
	require.ErrorIs(t, err, ErrEmptyID)

	_, err = New([]Item{{ID: "a"}, {ID: "a"}})
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestLookup(t *testing.T) {
	c, err := New(testItems())
	require.NoError(t, err)

	it, ok := c.Lookup("movie-2")
	require.True(t, ok)
	assert.Equal(t, "Big Buck Bunny", it.Title)

	_, ok = c.Lookup("missing")
	assert.False(t, ok)
}

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.Equal(t, 5, c.Len())

	first := c.Items()[0]
	assert.Equal(t, "montflix-epic-01", first.ID)
	assert.Len(t, first.Subtitles, 2)

	assert.Equal(t, []string{"montflix-long-01", "montflix-01"}, ids(c.Search("sci-fi")))
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader("items:\n  - id: a\n    titel: typo\n"))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := "items:\n  - id: x\n    title: X Movie\n    category: Drama\n  - id: y\n    title: Y Movie\n    category: Sci-Fi\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, ids(c.Items()))

	c, err = LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, 5, c.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
