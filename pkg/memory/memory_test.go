package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"shopping-assistant-be/pkg/nlu"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(store Store, cache SessionCache) *Manager {
	return New(DefaultConfig(), store, cache, nil, newStepClock().Now)
}

func turn(userID, message, intent string, confidence float64, slots nlu.Slots) Turn {
	return Turn{UserID: userID, Message: message, Intent: intent, Confidence: confidence, Slots: slots}
}

func TestRecordTurnKeepsLastFive(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(nil, nil)

	for i := 1; i <= 7; i++ {
		m.RecordTurn(ctx, turn("u1", fmt.Sprintf("m%d", i), nlu.IntentProductSearch, 0.5, nlu.Slots{}))
	}

	history := m.GetHistory(ctx, "u1", 0)
	require.Len(t, history, 5)
	assert.Equal(t, "m3", history[0].Message)
	assert.Equal(t, "m7", history[4].Message)

	last2 := m.GetHistory(ctx, "u1", 2)
	require.Len(t, last2, 2)
	assert.Equal(t, "m6", last2[0].Message)
}

func TestRecordTurnAssignsIdentity(t *testing.T) {
	m := newTestManager(nil, nil)

	recorded := m.RecordTurn(context.Background(), turn("u1", "bonjour", nlu.IntentGreeting, 1, nlu.Slots{}))

	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", recorded.ID.String())
	assert.False(t, recorded.Timestamp.IsZero())
	assert.Equal(t, "u1", recorded.UserID)
}

func TestGetContextNewestValueWins(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(nil, nil)

	m.RecordTurn(ctx, turn("u1", "a", nlu.IntentColorPreference, 0.8, nlu.Slots{Color: nlu.String("bleu"), Recipient: nlu.String("femme")}))
	m.RecordTurn(ctx, turn("u1", "b", nlu.IntentColorPreference, 0.4, nlu.Slots{Color: nlu.String("rouge")}))

	c := m.GetContext(ctx, "u1")
	assert.Equal(t, "rouge", *c.Slots.Color)
	assert.Equal(t, "femme", *c.Slots.Recipient)
	assert.Equal(t, 2, c.ConversationLength)
	assert.Equal(t, nlu.IntentColorPreference, c.LastIntent)
	assert.InDelta(t, 0.6, c.AvgConfidence, 1e-9)

	asMap := c.ToMap()
	assert.Equal(t, "rouge", asMap["color"])
	assert.Equal(t, 2, asMap["conversation_length"])
}

func TestGetContextUnseenUserIsEmpty(t *testing.T) {
	m := newTestManager(nil, nil)

	c := m.GetContext(context.Background(), "nobody")

	assert.Empty(t, c.ToMap())
	assert.NotNil(t, c.ToMap())
	assert.Empty(t, m.GetHistory(context.Background(), "nobody", 0))
}

func TestPreferencesFrequency(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(nil, nil)

	m.RecordTurn(ctx, turn("u1", "a", "x", 1, nlu.Slots{Color: nlu.String("bleu"), Age: nlu.Int(8)}))
	m.RecordTurn(ctx, turn("u1", "b", "x", 1, nlu.Slots{Color: nlu.String("bleu")}))
	m.RecordTurn(ctx, turn("u1", "c", "x", 1, nlu.Slots{Age: nlu.Int(9)}))

	prefs := m.GetPreferences(ctx, "u1")
	assert.Equal(t, Preference{Value: "bleu", Frequency: 2}, prefs["color"])
	assert.Equal(t, Preference{Value: 9, Frequency: 1}, prefs["age"])
	assert.Equal(t, "bleu", *prefs.Slots().Color)
}

func TestLogUnknownCountsFrequency(t *testing.T) {
	ctx := context.Background()

	t.Run("in memory", func(t *testing.T) {
		m := newTestManager(nil, nil)
		m.LogUnknown(ctx, "xyz")
		m.LogUnknown(ctx, "xyz")
		m.LogUnknown(ctx, "abc")

		queries, err := m.UnknownQueries(ctx, 0)
		require.NoError(t, err)
		require.Len(t, queries, 2)
		assert.Equal(t, "xyz", queries[0].Message)
		assert.Equal(t, 2, queries[0].Frequency)
		assert.True(t, queries[0].LastSeen.After(queries[0].FirstSeen))
	})

	t.Run("store is authoritative", func(t *testing.T) {
		store := newFakeStore()
		m := newTestManager(store, nil)
		m.LogUnknown(ctx, "xyz")
		m.LogUnknown(ctx, "xyz")

		queries, err := m.UnknownQueries(ctx, 10)
		require.NoError(t, err)
		require.Len(t, queries, 1)
		assert.Equal(t, 2, queries[0].Frequency)
		assert.Equal(t, 2, store.unknown["xyz"].Frequency)
	})

	t.Run("falls back when store fails", func(t *testing.T) {
		store := newFakeStore()
		store.failAll = true
		m := newTestManager(store, nil)
		m.LogUnknown(ctx, "xyz")

		queries, err := m.UnknownQueries(ctx, 10)
		require.NoError(t, err)
		require.Len(t, queries, 1)
		assert.Equal(t, 1, queries[0].Frequency)
	})

	t.Run("blank messages are ignored", func(t *testing.T) {
		m := newTestManager(nil, nil)
		m.LogUnknown(ctx, "   ")
		queries, _ := m.UnknownQueries(ctx, 10)
		assert.Empty(t, queries)
	})
}

func TestPersistenceFailureDoesNotLoseTurn(t *testing.T) {
	store := newFakeStore()
	store.failAll = true
	m := newTestManager(store, nil)

	m.RecordTurn(context.Background(), turn("u1", "a", "x", 1, nlu.Slots{}))

	assert.Len(t, m.GetHistory(context.Background(), "u1", 0), 1)
}

func TestReadsDoNotCreateSessions(t *testing.T) {
	ctx := context.Background()
	cache := newFakeCache()
	m := newTestManager(nil, cache)

	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("stranger-%d", i)
		assert.Empty(t, m.GetHistory(ctx, id, 0))
		assert.Empty(t, m.GetPreferences(ctx, id))
		assert.Nil(t, m.LastQuestions(ctx, id))
	}
	assert.Zero(t, m.Stats().ActiveSessions)

	// a cached user is still readable without being pulled into the map
	writer := newTestManager(nil, cache)
	writer.RecordTurn(ctx, turn("u1", "a", "x", 1, nlu.Slots{Color: nlu.String("vert")}))
	assert.Len(t, m.GetHistory(ctx, "u1", 0), 1)
	assert.Zero(t, m.Stats().ActiveSessions)

	m.RecordTurn(ctx, turn("u2", "a", "x", 1, nlu.Slots{}))
	assert.Equal(t, 1, m.Stats().ActiveSessions)
}

func TestClearUser(t *testing.T) {
	ctx := context.Background()

	t.Run("removes memory, cache and store", func(t *testing.T) {
		store := newFakeStore()
		cache := newFakeCache()
		m := newTestManager(store, cache)
		m.RecordTurn(ctx, turn("u1", "a", "x", 1, nlu.Slots{Color: nlu.String("bleu")}))
		m.RecordTurn(ctx, turn("u2", "a", "x", 1, nlu.Slots{}))

		require.NoError(t, m.ClearUser(ctx, "u1"))

		assert.Empty(t, m.GetHistory(ctx, "u1", 0))
		assert.Empty(t, m.GetPreferences(ctx, "u1"))
		assert.Zero(t, store.turnCount("u1"))
		assert.Equal(t, 1, store.turnCount("u2"))
		snap, _ := cache.Get(ctx, "u1")
		assert.Nil(t, snap)
	})

	t.Run("store failure keeps everything", func(t *testing.T) {
		store := newFakeStore()
		cache := newFakeCache()
		m := newTestManager(store, cache)
		m.RecordTurn(ctx, turn("u1", "a", "x", 1, nlu.Slots{Color: nlu.String("bleu")}))
		store.failClear = true

		err := m.ClearUser(ctx, "u1")

		require.Error(t, err)
		assert.ErrorIs(t, err, errStoreDown)
		assert.Len(t, m.GetHistory(ctx, "u1", 0), 1)
		assert.Equal(t, 1, store.turnCount("u1"))
		assert.NotEmpty(t, m.GetPreferences(ctx, "u1"))
		snap, _ := cache.Get(ctx, "u1")
		assert.NotNil(t, snap)
	})
}

func TestHydratesFromCacheThenStore(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	cache := newFakeCache()

	writer := newTestManager(store, cache)
	writer.RecordTurn(ctx, turn("u1", "a", "x", 1, nlu.Slots{Color: nlu.String("vert")}))
	writer.SetLastQuestions(ctx, "u1", []string{"budget ?"})

	fromCache := newTestManager(nil, cache)
	assert.Len(t, fromCache.GetHistory(ctx, "u1", 0), 1)
	assert.Equal(t, []string{"budget ?"}, fromCache.LastQuestions(ctx, "u1"))

	fromStore := newTestManager(store, nil)
	history := fromStore.GetHistory(ctx, "u1", 0)
	require.Len(t, history, 1)
	assert.Equal(t, "vert", *fromStore.GetContext(ctx, "u1").Slots.Color)
	assert.Equal(t, 1, fromStore.GetPreferences(ctx, "u1")["color"].Frequency)
}

func TestLoadRecent(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	store.turns = []Turn{
		{UserID: "old", Message: "o", Intent: "x", Timestamp: now.AddDate(0, 0, -30)},
		{UserID: "a", Message: "a1", Intent: "x", Timestamp: now.AddDate(0, 0, -2)},
		{UserID: "a", Message: "a2", Intent: "y", Timestamp: now.AddDate(0, 0, -1)},
		{UserID: "b", Message: "b1", Intent: "x", Timestamp: now.AddDate(0, 0, -1)},
	}
	store.prefs["a"] = Preferences{"color": {Value: "rose", Frequency: 3}}

	m := New(DefaultConfig(), store, nil, nil, func() time.Time { return now })
	users, err := m.LoadRecent(ctx, now.AddDate(0, 0, -7))
	require.NoError(t, err)
	assert.Equal(t, 2, users)

	stats := m.Stats()
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 3, stats.TotalConversations)
	assert.InDelta(t, 1.5, stats.AvgConversationLength, 1e-9)
	assert.Equal(t, map[string]int{"x": 2, "y": 1}, stats.IntentDistribution)
	assert.Equal(t, 5, stats.MemoryLimit)

	assert.Equal(t, 3, m.GetPreferences(ctx, "a")["color"].Frequency)
	assert.Equal(t, "a2", m.GetHistory(ctx, "a", 1)[0].Message)

	store.failAll = true
	_, err = m.LoadRecent(ctx, now)
	assert.Error(t, err)
}

func TestConcurrentTurnsForOneUser(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	m := newTestManager(store, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.WithUser(ctx, "u1", func(u *UserSession) error {
				u.RecordTurn(turn("u1", "m", "x", 1, nlu.Slots{Color: nlu.String("bleu")}))
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, store.turnCount("u1"))
	assert.Len(t, m.GetHistory(ctx, "u1", 0), 5)
	assert.Equal(t, 50, m.GetPreferences(ctx, "u1")["color"].Frequency)
}
