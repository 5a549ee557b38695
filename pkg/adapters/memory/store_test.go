package memory

import (
	"context"
	"testing"
	"time"

	"github.com/sereno-labs/sereno/pkg/domain"
	"github.com/sereno-labs/sereno/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContract(t *testing.T) {
	ports.RunSessionStoreContract(t, NewStore())
}

func TestLazyExpiry(t *testing.T) {
	store := NewStore(WithTTL(time.Hour))

	current := time.Now()
	store.now = func() time.Time { return current }

	ctx := context.Background()
	sess := domain.NewSession("u1")
	sess.State = domain.StateSessionStarted
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateSessionStarted, loaded.State)

	// Past the TTL the record is treated as absent.
	current = current.Add(time.Hour + time.Minute)
	loaded, err = store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateNoSession, loaded.State)
}

func TestGetHandsOutIsolatedCopies(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	sess := domain.NewSession("u1")
	sess.State = domain.StateSessionStarted
	sess.Context["topic"] = "work"
	require.NoError(t, store.Save(ctx, sess))

	first, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	first.Context["topic"] = "family"
	first.State = domain.StateEmergency

	second, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "work", second.Context["topic"])
	assert.Equal(t, domain.StateSessionStarted, second.State)
}

func TestMoodLogSurvivesDelete(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	sess := domain.NewSession("u1")
	sess.State = domain.StateSessionStarted
	require.NoError(t, store.Save(ctx, sess))
	require.NoError(t, store.AppendMood(ctx, "u1", domain.MoodEntry{Command: domain.CmdFeel, Parameter: "anxious"}))

	require.NoError(t, store.Delete(ctx, "u1"))

	history, err := store.MoodHistory(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
