package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"shopping-assistant-be/pkg/memory"
	"shopping-assistant-be/pkg/nlu"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCacheKey(t *testing.T) {
	assert.Equal(t, "session:abc", key("abc"))
}

func TestSessionCacheRedis(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}
	opts, err := redis.ParseURL(redisURL)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	c := NewSessionCache(client, time.Minute)
	require.NoError(t, c.HealthCheck(ctx))

	userID := "it-" + uuid.NewString()
	missing, err := c.Get(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	snapshot := &memory.Snapshot{
		UserID: userID,
		Turns: []memory.Turn{{
			ID:      uuid.New(),
			UserID:  userID,
			Message: "un sac bleu",
			Intent:  nlu.IntentCategoryPreference,
			Slots:   nlu.Slots{Category: nlu.String("sac"), Age: nlu.Int(30)},
		}},
		Preferences:   memory.Preferences{"category": {Value: "sac", Frequency: 1}},
		LastQuestions: []string{"💰 Quel est votre budget maximum ? (ex: 20 DT, 50 DT, 100 DT)"},
	}
	require.NoError(t, c.Set(ctx, snapshot))

	got, err := c.Get(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Turns, 1)
	assert.Equal(t, "sac", *got.Turns[0].Slots.Category)
	assert.Equal(t, 30, *got.Turns[0].Slots.Age)
	assert.Equal(t, snapshot.LastQuestions, got.LastQuestions)

	require.NoError(t, c.Delete(ctx, userID))
	got, err = c.Get(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
