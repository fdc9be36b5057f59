package favorites

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/montflix/internal/records"
	"github.com/dmitrijs2005/montflix/internal/testutil"
)

func restored(t *testing.T, s records.Store) *Store {
	t.Helper()
	f := New(s, nil)
	require.NoError(t, f.Restore(context.Background()))
	return f
}

func TestToggle_TwiceRestoresCollection(t *testing.T) {
	s, _ := testutil.OpenStore(t, testutil.DBPath(t))
	f := restored(t, s)
	ctx := context.Background()

	state, err := f.Toggle(ctx, "movie-1")
	require.NoError(t, err)
	assert.Equal(t, Added, state)
	assert.True(t, f.Contains("movie-1"))

	state, err = f.Toggle(ctx, "movie-1")
	require.NoError(t, err)
	assert.Equal(t, Removed, state)
	assert.False(t, f.Contains("movie-1"))
	assert.Empty(t, f.Items())
}

func TestToggle_NewestFirst(t *testing.T) {
	s, _ := testutil.OpenStore(t, testutil.DBPath(t))
	f := restored(t, s)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := f.Toggle(ctx, id)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"c", "b", "a"}, f.Items())

	_, err := f.Toggle(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, f.Items())

	_, err = f.Toggle(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a"}, f.Items())
}

func TestItems_ReturnsCopy(t *testing.T) {
	s, _ := testutil.OpenStore(t, testutil.DBPath(t))
	f := restored(t, s)

	_, err := f.Toggle(context.Background(), "a")
	require.NoError(t, err)

	items := f.Items()
	items[0] = "mutated"
	assert.Equal(t, []string{"a"}, f.Items())
}

func TestRestore_RoundTrip(t *testing.T) {
	path := testutil.DBPath(t)
	s, _ := testutil.OpenStore(t, path)
	f := restored(t, s)
	ctx := context.Background()

	for _, id := range []string{"montflix-01", "montflix-long-01"} {
		_, err := f.Toggle(ctx, id)
		require.NoError(t, err)
	}

	s2, _ := testutil.OpenStore(t, path)
	again := restored(t, s2)
	assert.Equal(t, f.Items(), again.Items())
}

func TestRestore_EmptyCollectionPersists(t *testing.T) {
	path := testutil.DBPath(t)
	s, _ := testutil.OpenStore(t, path)
	f := restored(t, s)
	ctx := context.Background()

	_, err := f.Toggle(ctx, "a")
	require.NoError(t, err)
	_, err = f.Toggle(ctx, "a")
	require.NoError(t, err)

	blob, err := s.Read(ctx, records.SlotFavorites)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(blob))
}

func TestRestore_Malformed(t *testing.T) {
	tests := map[string]string{
		"not json":     `movie-1,movie-2`,
		"wrong shape":  `{"movie-1": true}`,
		"wrong values": `[1, 2, 3]`,
	}
	for name, blob := range tests {
		t.Run(name, func(t *testing.T) {
			s, _ := testutil.OpenStore(t, testutil.DBPath(t))
			testutil.CorruptSlot(t, s, records.SlotFavorites, []byte(blob))

			f := restored(t, s)
			assert.Empty(t, f.Items())

			stored, err := s.Read(context.Background(), records.SlotFavorites)
			require.NoError(t, err)
			assert.Nil(t, stored)
		})
	}
}

func TestRestore_DropsDuplicates(t *testing.T) {
	s, _ := testutil.OpenStore(t, testutil.DBPath(t))
	testutil.CorruptSlot(t, s, records.SlotFavorites, []byte(`["a","b","a","","c"]`))

	f := restored(t, s)
	assert.Equal(t, []string{"a", "b", "c"}, f.Items())
}

func TestToggle_WriteFailureKeepsInMemoryState(t *testing.T) {
	inner, _ := testutil.OpenStore(t, testutil.DBPath(t))
	s := testutil.NewFlakyStore(inner)
	f := restored(t, s)

	s.Fail(records.SlotFavorites)
	state, err := f.Toggle(context.Background(), "a")
	require.ErrorIs(t, err, testutil.ErrInjected)
	assert.Equal(t, Added, state)
	assert.True(t, f.Contains("a"))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "added", Added.String())
	assert.Equal(t, "removed", Removed.String())
}
