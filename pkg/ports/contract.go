package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sereno-labs/sereno/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a
// SessionStore implementation adheres to the interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	userID := "contract-user-" + time.Now().Format("20060102150405")

	t.Run("Get Absent Yields Fresh Session", func(t *testing.T) {
		sess, err := store.Get(ctx, "never-seen-"+userID)
		require.NoError(t, err, "absence is a valid state, not a fault")
		require.NotNil(t, sess)
		assert.Equal(t, domain.StateNoSession, sess.State)
		assert.Empty(t, sess.History)
	})

	t.Run("Save and Get", func(t *testing.T) {
		sess := domain.NewSession(userID)
		sess.State = domain.StateEmotionIdentified
		sess.CurrentEmotion = &domain.NormalizedEmotion{
			Primary:      domain.Fear,
			VariantLabel: "apprehension",
			Intensity:    domain.IntensityMild,
			Confidence:   1,
			MatchedTerms: []string{"anxious"},
		}
		sess.Context["topic"] = "work"
		sess.AppendTurn(domain.Turn{Command: domain.CmdFeel, Parameter: "anxious", Summary: "ok", State: sess.State, Timestamp: time.Now().UTC()}, 10)

		require.NoError(t, store.Save(ctx, sess))

		loaded, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, domain.StateEmotionIdentified, loaded.State)
		require.NotNil(t, loaded.CurrentEmotion)
		assert.Equal(t, domain.Fear, loaded.CurrentEmotion.Primary)
		assert.Equal(t, "work", loaded.Context["topic"])
		assert.Len(t, loaded.History, 1)
	})

	t.Run("Delete", func(t *testing.T) {
		sess := domain.NewSession(userID)
		sess.State = domain.StateSessionStarted
		require.NoError(t, store.Save(ctx, sess))

		require.NoError(t, store.Delete(ctx, userID))

		loaded, err := store.Get(ctx, userID)
		require.NoError(t, err, "Get after Delete yields a fresh session, not an error")
		assert.Equal(t, domain.StateNoSession, loaded.State)
	})

	t.Run("Mood Log Append and History", func(t *testing.T) {
		moodUser := userID + "-mood"
		for i := 0; i < 5; i++ {
			entry := domain.MoodEntry{
				Command:   domain.CmdFeel,
				Parameter: fmt.Sprintf("entry-%d", i),
				Timestamp: time.Now().UTC(),
			}
			require.NoError(t, store.AppendMood(ctx, moodUser, entry))
		}

		history, err := store.MoodHistory(ctx, moodUser, 3)
		require.NoError(t, err)
		require.Len(t, history, 3)
		// Most-recent-last: the trailing 3 of 5.
		assert.Equal(t, "entry-2", history[0].Parameter)
		assert.Equal(t, "entry-4", history[2].Parameter)
	})

	t.Run("Mood History Empty", func(t *testing.T) {
		history, err := store.MoodHistory(ctx, "no-moods-"+userID, 10)
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}
