package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopping-assistant-be/pkg/events"
	"shopping-assistant-be/pkg/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenStore accepts writes but cannot delete.
type brokenStore struct{}

func (brokenStore) AppendTurn(context.Context, memory.Turn) error { return nil }
func (brokenStore) UpsertPreferences(context.Context, string, memory.Preferences) error {
	return nil
}
func (brokenStore) IncrementUnknown(context.Context, string, time.Time) error { return nil }
func (brokenStore) ListUnknown(context.Context, int) ([]memory.UnknownQuery, error) {
	return nil, errors.New("down")
}
func (brokenStore) LoadTurnsSince(context.Context, time.Time) ([]memory.Turn, error) {
	return nil, nil
}
func (brokenStore) LoadUser(context.Context, string, int) ([]memory.Turn, memory.Preferences, error) {
	return nil, nil, nil
}
func (brokenStore) LoadPreferences(context.Context, []string) (map[string]memory.Preferences, error) {
	return nil, nil
}
func (brokenStore) DeleteUser(context.Context, string) error { return errors.New("down") }

func TestGetMemory(t *testing.T) {
	f := newFixture(t)
	svc := NewMemoryService(f.memory, f.publisher, nil)
	ctx := context.Background()

	for _, msg := range []string{"Montrez-moi des casquettes rouges", "Bonjour", "Qui est Messi ?"} {
		_, err := f.svc.Chat(ctx, "u1", msg)
		require.NoError(t, err)
	}

	res, err := svc.GetMemory(ctx, "u1", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalTurns)
	require.Len(t, res.History, 2)
	assert.Equal(t, "Bonjour", res.History[0].Message)
	assert.Equal(t, "rouge", res.CurrentContext["color"])
	assert.Equal(t, 3, res.CurrentContext["conversation_length"])
	assert.Equal(t, "rouge", res.Preferences["color"].Value)

	unseen, err := svc.GetMemory(ctx, "nobody", 0)
	require.NoError(t, err)
	assert.Empty(t, unseen.History)
	assert.Empty(t, unseen.CurrentContext)
	assert.Equal(t, 1, f.memory.Stats().ActiveSessions, "reading an unseen user must not keep a session")

	_, err = svc.GetMemory(ctx, " ", 0)
	assert.ErrorIs(t, err, ErrMissingUserId)
}

func TestClearMemory(t *testing.T) {
	f := newFixture(t)
	svc := NewMemoryService(f.memory, f.publisher, nil)
	ctx := context.Background()

	_, err := f.svc.Chat(ctx, "u1", "Montrez-moi des casquettes rouges")
	require.NoError(t, err)

	require.NoError(t, svc.ClearMemory(ctx, "u1"))

	res, err := svc.GetMemory(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Zero(t, res.TotalTurns)
	assert.Empty(t, res.Preferences)
	assert.Contains(t, f.publisher.types(), events.TypeUserCleared)
}

func TestClearMemoryStoreFailureKeepsState(t *testing.T) {
	mem := memory.New(memory.DefaultConfig(), brokenStore{}, nil, nil, nil)
	svc := NewMemoryService(mem, nil, nil)
	ctx := context.Background()

	mem.RecordTurn(ctx, memory.Turn{UserID: "u1", Message: "hello", Intent: "greeting"})

	err := svc.ClearMemory(ctx, "u1")
	assert.Error(t, err)
	assert.Len(t, mem.GetHistory(ctx, "u1", 0), 1)
}

func TestUnknownQueriesFallBackToMemory(t *testing.T) {
	mem := memory.New(memory.DefaultConfig(), brokenStore{}, nil, nil, nil)
	svc := NewMemoryService(mem, nil, nil)
	ctx := context.Background()

	mem.LogUnknown(ctx, "qwerty")
	mem.LogUnknown(ctx, "qwerty")

	res, err := svc.UnknownQueries(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)
	assert.Equal(t, 2, res.Queries[0].Frequency)
}

func TestWarmUpWithoutStore(t *testing.T) {
	f := newFixture(t)
	svc := NewMemoryService(f.memory, nil, nil)

	n, err := svc.WarmUp(context.Background(), 7*24*time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)
}
