package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/sereno-labs/sereno/pkg/domain"
	"github.com/sereno-labs/sereno/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts ...Option) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewFromClient(client, opts...), mr
}

func TestContract(t *testing.T) {
	store, _ := newTestStore(t)
	ports.RunSessionStoreContract(t, store)
}

func TestSessionExpiresAfterTTL(t *testing.T) {
	store, mr := newTestStore(t, WithTTL(time.Hour))
	ctx := context.Background()

	sess := domain.NewSession("u1")
	sess.State = domain.StateSessionStarted
	require.NoError(t, store.Save(ctx, sess))

	mr.FastForward(time.Hour + time.Minute)

	loaded, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateNoSession, loaded.State)
}

func TestSaveRefreshesTTL(t *testing.T) {
	store, mr := newTestStore(t, WithTTL(time.Hour))
	ctx := context.Background()

	sess := domain.NewSession("u1")
	sess.State = domain.StateSessionStarted
	require.NoError(t, store.Save(ctx, sess))

	mr.FastForward(45 * time.Minute)
	require.NoError(t, store.Save(ctx, sess))
	mr.FastForward(45 * time.Minute)

	// 90 minutes after the first save, but only 45 after the refresh.
	loaded, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateSessionStarted, loaded.State)
}

func TestCorruptRecordYieldsFreshSession(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(store.sessionKey("u1"), "{not json"))

	loaded, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateNoSession, loaded.State)
}

func TestMoodLogSurvivesSessionDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess := domain.NewSession("u1")
	sess.State = domain.StateSessionStarted
	require.NoError(t, store.Save(ctx, sess))
	require.NoError(t, store.AppendMood(ctx, "u1", domain.MoodEntry{Command: domain.CmdFeel, Parameter: "anxious", Timestamp: time.Now().UTC()}))

	require.NoError(t, store.Delete(ctx, "u1"))

	history, err := store.MoodHistory(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, "anxious", history[0].Parameter)
}

func TestStoreUnavailable(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	mr.Close()

	_, err := store.Get(ctx, "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	err = store.Save(ctx, domain.NewSession("u1"))
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
