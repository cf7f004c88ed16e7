package selection

import (
	"context"
	"testing"

	"github.com/Veraticus/gallery/internal/common"
	"github.com/Veraticus/gallery/internal/favorites"
	"github.com/Veraticus/gallery/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	repo  *favorites.Repository
	store *testutil.FaultyStore
	notes *testutil.Notifications
	ctrl  *Controller
}

func newFixture(t *testing.T, ids ...string) *fixture {
	t.Helper()
	store := testutil.NewFaultyStore(nil)
	repo := favorites.NewRepository(store)
	for _, id := range ids {
		_, err := repo.Toggle(context.Background(), testutil.Entry(id, "Art "+id))
		require.NoError(t, err)
	}

	notes := &testutil.Notifications{}
	ctrl := New(repo, notes)
	ctrl.Observe(repo.Load(context.Background()).IDs())

	return &fixture{repo: repo, store: store, notes: notes, ctrl: ctrl}
}

func TestController_StateMachine(t *testing.T) {
	f := newFixture(t, "1", "2", "3")
	c := f.ctrl

	assert.Equal(t, ModeNormal, c.Mode())
	assert.Equal(t, "2", c.Tap("2"), "normal tap navigates")
	assert.Zero(t, c.Count())

	require.True(t, c.LongPress("2"))
	assert.Equal(t, ModeSelecting, c.Mode())
	assert.True(t, c.IsSelected("2"))

	assert.Empty(t, c.Tap("3"), "selecting tap does not navigate")
	assert.Equal(t, []string{"2", "3"}, c.Selected())

	c.Tap("2")
	assert.Equal(t, []string{"3"}, c.Selected())

	c.Tap("2")
	assert.Equal(t, []string{"2", "3"}, c.Selected(), "display order, not tap order")

	c.Cancel()
	assert.Equal(t, ModeNormal, c.Mode())
	assert.Zero(t, c.Count())
	assert.Equal(t, []string{"1", "2", "3"}, f.repo.Load(context.Background()).IDs())
}

func TestController_SelectionStaysSubsetOfFavorites(t *testing.T) {
	f := newFixture(t, "1", "2")
	c := f.ctrl

	assert.False(t, c.LongPress("nope"))
	assert.Equal(t, ModeNormal, c.Mode())

	require.True(t, c.LongPress("1"))
	c.Tap("ghost")
	assert.Equal(t, []string{"1"}, c.Selected())
}

func TestController_ObserveDropsSelectionOnAddition(t *testing.T) {
	f := newFixture(t, "1", "2")
	c := f.ctrl
	require.True(t, c.LongPress("1"))

	c.Observe([]string{"2", "1"})
	assert.Equal(t, ModeSelecting, c.Mode(), "same set in another order keeps the selection")
	assert.True(t, c.IsSelected("1"))

	c.Observe([]string{"2", "1", "3"})
	assert.Equal(t, ModeNormal, c.Mode(), "an addition drops the selection")
	assert.Zero(t, c.Count())
}

func TestController_ObservePrunesRemovedRows(t *testing.T) {
	tests := []struct {
		name     string
		observe  []string
		selected []string
		mode     Mode
	}{
		{
			name:     "unselected row removed",
			observe:  []string{"1", "2"},
			selected: []string{"1", "2"},
			mode:     ModeSelecting,
		},
		{
			name:     "one selected row removed",
			observe:  []string{"2", "3"},
			selected: []string{"2"},
			mode:     ModeSelecting,
		},
		{
			name:     "every selected row removed",
			observe:  []string{"3"},
			selected: []string{},
			mode:     ModeNormal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newFixture(t, "1", "2", "3").ctrl
			require.True(t, c.LongPress("1"))
			c.Tap("2")

			c.Observe(tt.observe)
			assert.Equal(t, tt.mode, c.Mode())
			assert.Equal(t, tt.selected, c.Selected())
		})
	}
}

func TestController_DeleteSelected(t *testing.T) {
	f := newFixture(t, "1", "2", "3", "4")
	c := f.ctrl
	writes := f.store.Sets()

	require.True(t, c.LongPress("1"))
	c.Tap("3")

	set, err := c.DeleteSelected(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "4"}, set.IDs())
	assert.Equal(t, writes+1, f.store.Sets(), "one write for the whole batch")
	assert.Equal(t, ModeNormal, c.Mode())
	assert.Zero(t, c.Count())
	assert.Equal(t, "Deleted 2 favorites", f.notes.Last())

	require.True(t, c.LongPress("4"))
	_, err = c.DeleteSelected(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Deleted 1 favorite", f.notes.Last())
}

func TestController_DeleteSelectedEmpty(t *testing.T) {
	f := newFixture(t, "1")
	writes := f.store.Sets()

	set, err := f.ctrl.DeleteSelected(context.Background())
	require.NoError(t, err)
	assert.Nil(t, set)
	assert.Equal(t, writes, f.store.Sets())
	assert.Empty(t, f.notes.Messages())
}

func TestController_DeleteSelectedFailure(t *testing.T) {
	f := newFixture(t, "1", "2")
	c := f.ctrl
	require.True(t, c.LongPress("1"))
	f.store.FailSet(true)

	_, err := c.DeleteSelected(context.Background())
	require.ErrorIs(t, err, common.ErrOperationFailed)
	assert.Equal(t, ModeNormal, c.Mode(), "selection is cleared even on failure")
	assert.Zero(t, c.Count())
	assert.Equal(t, "Could not delete the selected favorites", f.notes.Last())

	f.store.FailSet(false)
	assert.Equal(t, []string{"1", "2"}, f.repo.Load(context.Background()).IDs())
}

func TestController_DeleteAll(t *testing.T) {
	f := newFixture(t, "1", "2")
	c := f.ctrl
	require.True(t, c.LongPress("2"))

	require.NoError(t, c.DeleteAll(context.Background()))
	assert.Equal(t, ModeNormal, c.Mode())
	assert.Empty(t, f.repo.Load(context.Background()))
	assert.Equal(t, "All favorites deleted", f.notes.Last())
	assert.False(t, c.LongPress("1"), "nothing left to select")
}

func TestController_DeleteAllFailure(t *testing.T) {
	f := newFixture(t, "1")
	f.store.FailRemove(true)

	err := f.ctrl.DeleteAll(context.Background())
	require.ErrorIs(t, err, common.ErrOperationFailed)
	assert.Equal(t, "Could not delete all favorites", f.notes.Last())
}

func TestController_SwipeDelete(t *testing.T) {
	f := newFixture(t, "1", "2", "3")
	c := f.ctrl
	require.True(t, c.LongPress("1"))
	c.Tap("2")

	set, err := c.SwipeDelete(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, set.IDs())
	assert.Equal(t, "Removed from favorites", f.notes.Last())
	assert.Equal(t, ModeSelecting, c.Mode(), "marks on other rows survive")
	assert.Equal(t, []string{"1", "2"}, c.Selected())

	f.store.FailSet(true)
	_, err = c.SwipeDelete(context.Background(), "1")
	require.Error(t, err)
	assert.Equal(t, "Could not delete favorite", f.notes.Last())
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "normal", ModeNormal.String())
	assert.Equal(t, "selecting", ModeSelecting.String())
}
