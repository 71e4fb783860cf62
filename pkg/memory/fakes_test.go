package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var errStoreDown = errors.New("store unavailable")

type fakeStore struct {
	mu        sync.Mutex
	turns     []Turn
	prefs     map[string]Preferences
	unknown   map[string]*UnknownQuery
	failAll   bool
	failClear bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{prefs: make(map[string]Preferences), unknown: make(map[string]*UnknownQuery)}
}

func (f *fakeStore) AppendTurn(ctx context.Context, turn Turn) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errStoreDown
	}
	f.turns = append(f.turns, turn)
	return nil
}

func (f *fakeStore) UpsertPreferences(ctx context.Context, userID string, prefs Preferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errStoreDown
	}
	f.prefs[userID] = prefs
	return nil
}

func (f *fakeStore) IncrementUnknown(ctx context.Context, message string, seenAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errStoreDown
	}
	if q, ok := f.unknown[message]; ok {
		q.Frequency++
		q.LastSeen = seenAt
		return nil
	}
	f.unknown[message] = &UnknownQuery{Message: message, Frequency: 1, FirstSeen: seenAt, LastSeen: seenAt}
	return nil
}

func (f *fakeStore) ListUnknown(ctx context.Context, limit int) ([]UnknownQuery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStoreDown
	}
	out := make([]UnknownQuery, 0, len(f.unknown))
	for _, q := range f.unknown {
		out = append(out, *q)
	}
	sortUnknown(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) LoadTurnsSince(ctx context.Context, since time.Time) ([]Turn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStoreDown
	}
	var out []Turn
	for _, t := range f.turns {
		if t.Timestamp.After(since) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (f *fakeStore) LoadUser(ctx context.Context, userID string, limit int) ([]Turn, Preferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, nil, errStoreDown
	}
	var out []Turn
	for _, t := range f.turns {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, f.prefs[userID], nil
}

func (f *fakeStore) LoadPreferences(ctx context.Context, userIDs []string) (map[string]Preferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return nil, errStoreDown
	}
	out := make(map[string]Preferences)
	for _, id := range userIDs {
		if p, ok := f.prefs[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteUser(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll || f.failClear {
		return errStoreDown
	}
	kept := f.turns[:0]
	for _, t := range f.turns {
		if t.UserID != userID {
			kept = append(kept, t)
		}
	}
	f.turns = kept
	delete(f.prefs, userID)
	return nil
}

func (f *fakeStore) turnCount(userID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.turns {
		if t.UserID == userID {
			n++
		}
	}
	return n
}

type fakeCache struct {
	mu        sync.Mutex
	snapshots map[string]*Snapshot
}

func newFakeCache() *fakeCache {
	return &fakeCache{snapshots: make(map[string]*Snapshot)}
}

func (c *fakeCache) Get(ctx context.Context, userID string) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshots[userID], nil
}

func (c *fakeCache) Set(ctx context.Context, snapshot *Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots[snapshot.UserID] = snapshot
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.snapshots, userID)
	return nil
}

// stepClock advances one second per call.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}
