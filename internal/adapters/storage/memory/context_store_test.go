package memory_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memstore "github.com/voxhub/voicerelay/internal/adapters/storage/memory"
	"github.com/voxhub/voicerelay/internal/domain"
)

const testPrompt = "you are a test assistant"

func TestAppendSeedsSystemTurn(t *testing.T) {
	store := memstore.NewContextStore(testPrompt, 10)

	window := store.Append("conn-1", domain.RoleUser, "hello")

	require.Len(t, window, 2)
	assert.Equal(t, domain.RoleSystem, window[0].Role)
	assert.Equal(t, testPrompt, window[0].Content)
	assert.True(t, window[0].CreatedAt.IsZero())

	assert.Equal(t, domain.RoleUser, window[1].Role)
	assert.Equal(t, "hello", window[1].Content)
	assert.False(t, window[1].CreatedAt.IsZero())
}

func TestTrimKeepsSystemTurnAndMostRecent(t *testing.T) {
	store := memstore.NewContextStore(testPrompt, 10)

	for i := 0; i < 15; i++ {
		store.Append("conn-1", domain.RoleUser, fmt.Sprintf("turn-%d", i))
	}

	window := store.Turns("conn-1")
	require.Len(t, window, 11) // system + 10

	assert.Equal(t, domain.RoleSystem, window[0].Role)
	for i, turn := range window[1:] {
		assert.Equal(t, fmt.Sprintf("turn-%d", i+5), turn.Content, "most recent 10 in original order")
	}
}

func TestResetDiscardsContext(t *testing.T) {
	store := memstore.NewContextStore(testPrompt, 10)

	store.Append("conn-1", domain.RoleUser, "hello")
	store.MergePreferences("conn-1", map[string]any{"voice": "alloy"})
	store.Reset("conn-1")

	assert.Nil(t, store.Turns("conn-1"))
	assert.Nil(t, store.Preferences("conn-1"))

	// Reset of an absent context is a no-op, not an error.
	store.Reset("conn-2")

	window := store.Append("conn-1", domain.RoleUser, "again")
	require.Len(t, window, 2)
	assert.Equal(t, domain.RoleSystem, window[0].Role)
	assert.Equal(t, "again", window[1].Content)
}

func TestMergePreferencesDoesNotTouchTurns(t *testing.T) {
	store := memstore.NewContextStore(testPrompt, 10)

	store.Append("conn-1", domain.RoleUser, "hello")
	store.MergePreferences("conn-1", map[string]any{"voice": "alloy", "speed": 1.5})
	store.MergePreferences("conn-1", map[string]any{"voice": "nova"})

	prefs := store.Preferences("conn-1")
	assert.Equal(t, "nova", prefs["voice"])
	assert.Equal(t, 1.5, prefs["speed"])

	window := store.Turns("conn-1")
	require.Len(t, window, 2)
	assert.Equal(t, "hello", window[1].Content)
}

func TestSweepStale(t *testing.T) {
	store := memstore.NewContextStore(testPrompt, 10)

	now := time.Now()
	store.SetNow(func() time.Time { return now })

	store.Append("old", domain.RoleUser, "a while ago")
	store.Append("fresh", domain.RoleUser, "just now")
	store.MergePreferences("seeded-only", map[string]any{"voice": "alloy"})

	// "old" last touched 2h ago, "fresh" just inside the threshold.
	store.SetNow(func() time.Time { return now.Add(2 * time.Hour) })
	store.Append("fresh", domain.RoleUser, "still here")

	store.SetNow(func() time.Time { return now.Add(2*time.Hour + time.Minute) })
	store.SweepStale(time.Hour)

	assert.Nil(t, store.Turns("old"), "stale context must be gone")
	assert.NotNil(t, store.Turns("fresh"), "recently touched context must survive")
	assert.NotNil(t, store.Turns("seeded-only"), "system-only context is never stale")
}

func TestScheduleDelayedEviction(t *testing.T) {
	store := memstore.NewContextStore(testPrompt, 10)

	store.Append("conn-1", domain.RoleUser, "hello")
	store.ScheduleDelayedEviction("conn-1", 20*time.Millisecond)

	assert.Eventually(t, func() bool {
		return store.Turns("conn-1") == nil
	}, time.Second, 5*time.Millisecond)
}

func TestAppendCancelsPendingEviction(t *testing.T) {
	store := memstore.NewContextStore(testPrompt, 10)

	store.Append("conn-1", domain.RoleUser, "hello")
	store.ScheduleDelayedEviction("conn-1", 30*time.Millisecond)

	// Reconnect before the grace delay elapses.
	store.Append("conn-1", domain.RoleUser, "back again")

	time.Sleep(80 * time.Millisecond)

	window := store.Turns("conn-1")
	require.NotNil(t, window, "append must cancel the pending eviction")
	assert.Len(t, window, 3)
}
