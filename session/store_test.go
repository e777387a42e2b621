package session

import (
	"context"
	"testing"
	"time"

	"github.com/Elephante152/habitat/discounts"
	"github.com/Elephante152/habitat/suggest"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	store := NewStore(Deps{
		Searcher:   newFakeSearcher(),
		Normalizer: suggest.NewNormalizer(suggest.StaticSource{}),
		Resolver:   discounts.NewResolver(discounts.StaticCatalog{}),
		Clock:      clock,
	})
	t.Cleanup(store.CloseAll)
	return store, clock
}

func TestStore_CreateGetDelete(t *testing.T) {
	store, _ := newTestStore(t)

	sess := store.Create()
	_, err := uuid.Parse(sess.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(sess.ID())
	require.NoError(t, err)
	assert.Same(t, sess, got)

	require.NoError(t, store.Delete(sess.ID()))
	_, err = store.Get(sess.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(sess.ID()), ErrNotFound)

	_, err = sess.Input(context.Background(), "x")
	assert.ErrorIs(t, err, ErrClosed, "deleted sessions are closed")
}

func TestStore_PruneIdle(t *testing.T) {
	store, clock := newTestStore(t)

	idle := store.Create()
	clock.Advance(20 * time.Minute)
	active := store.Create()
	clock.Advance(5 * time.Minute)

	_, err := active.SetCelsius(false)
	require.NoError(t, err)
	clock.Advance(10 * time.Minute)

	assert.Equal(t, 1, store.PruneIdle(30*time.Minute))
	assert.Equal(t, 1, store.Len())

	_, err = store.Get(idle.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(active.ID())
	assert.NoError(t, err)
	assert.False(t, idle.View().BackdropCycling)
}

func TestStore_CloseAll(t *testing.T) {
	store, _ := newTestStore(t)
	a := store.Create()
	store.Create()

	store.CloseAll()
	assert.Equal(t, 0, store.Len())
	_, err := a.Submit(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}
