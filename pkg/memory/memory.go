package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"shopping-assistant-be/internal/pkg/logger"
	repomemory "shopping-assistant-be/internal/repository/memory"
)

const logModule = "Memory"

type Config struct {
	// Capacity is the number of turns kept per user.
	Capacity       int
	SessionTTL     time.Duration
	PersistTimeout time.Duration
	UnknownLimit   int
}

func DefaultConfig() Config {
	return Config{
		Capacity:       5,
		SessionTTL:     24 * time.Hour,
		PersistTimeout: 2 * time.Second,
		UnknownLimit:   50,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Capacity <= 0 {
		c.Capacity = d.Capacity
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = d.SessionTTL
	}
	if c.PersistTimeout <= 0 {
		c.PersistTimeout = d.PersistTimeout
	}
	if c.UnknownLimit <= 0 {
		c.UnknownLimit = d.UnknownLimit
	}
	return c
}

// Manager keeps per-user conversation memory. Sessions live in process and are
// written through to the optional Store and SessionCache; a session that was
// evicted or never seen by this process is rehydrated from them on first use.
type Manager struct {
	cfg      Config
	store    Store
	cache    SessionCache
	logger   logger.ILogger
	now      func() time.Time
	sessions *repomemory.SessionRepository[*session]

	unknownMu sync.Mutex
	unknown   map[string]*UnknownQuery
}

// New builds a Manager. store and cache may be nil; clock defaults to time.Now.
func New(cfg Config, store Store, cache SessionCache, log logger.ILogger, clock func() time.Time) *Manager {
	cfg = cfg.withDefaults()
	if log == nil {
		log = logger.NewNopLogger()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Manager{
		cfg:      cfg,
		store:    store,
		cache:    cache,
		logger:   log,
		now:      clock,
		sessions: repomemory.NewSessionRepository[*session](cfg.SessionTTL, 10*time.Minute),
		unknown:  make(map[string]*UnknownQuery),
	}
}

func (m *Manager) Capacity() int {
	return m.cfg.Capacity
}

// WithUser runs fn while holding the user's lock. Everything fn does through
// the handle is atomic with respect to other calls for the same user.
func (m *Manager) WithUser(ctx context.Context, userID string, fn func(u *UserSession) error) error {
	s := m.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		m.hydrate(ctx, s)
	}
	return fn(&UserSession{ctx: ctx, m: m, s: s})
}

// ViewUser is WithUser for reads. A user without a session in this process is
// hydrated into a throwaway session that is never stored, so looking up unseen
// ids does not grow the session map. Writes made through that handle are lost.
func (m *Manager) ViewUser(ctx context.Context, userID string, fn func(u *UserSession) error) error {
	s, ok := m.sessions.Get(userID)
	if !ok {
		s = newSession(userID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		m.hydrate(ctx, s)
	}
	return fn(&UserSession{ctx: ctx, m: m, s: s})
}

func (m *Manager) RecordTurn(ctx context.Context, turn Turn) Turn {
	var recorded Turn
	_ = m.WithUser(ctx, turn.UserID, func(u *UserSession) error {
		recorded = u.RecordTurn(turn)
		return nil
	})
	return recorded
}

func (m *Manager) GetContext(ctx context.Context, userID string) Context {
	var c Context
	_ = m.ViewUser(ctx, userID, func(u *UserSession) error {
		c = u.Context()
		return nil
	})
	return c
}

func (m *Manager) GetHistory(ctx context.Context, userID string, limit int) []Turn {
	var turns []Turn
	_ = m.ViewUser(ctx, userID, func(u *UserSession) error {
		turns = u.History(limit)
		return nil
	})
	return turns
}

func (m *Manager) GetPreferences(ctx context.Context, userID string) Preferences {
	var prefs Preferences
	_ = m.ViewUser(ctx, userID, func(u *UserSession) error {
		prefs = u.Preferences()
		return nil
	})
	return prefs
}

func (m *Manager) LastQuestions(ctx context.Context, userID string) []string {
	var questions []string
	_ = m.ViewUser(ctx, userID, func(u *UserSession) error {
		questions = u.LastQuestions()
		return nil
	})
	return questions
}

func (m *Manager) SetLastQuestions(ctx context.Context, userID string, questions []string) {
	_ = m.WithUser(ctx, userID, func(u *UserSession) error {
		u.SetLastQuestions(questions)
		m.writeSnapshot(ctx, u.s)
		return nil
	})
}

// ClearUser erases everything known about a user. The persisted rows go first,
// then the cache entry; in-memory state is only reset once both succeeded.
func (m *Manager) ClearUser(ctx context.Context, userID string) error {
	s := m.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	// the store goes first so a failed transaction leaves the snapshot in place
	if m.store != nil {
		if err := m.store.DeleteUser(ctx, userID); err != nil {
			return fmt.Errorf("failed to delete user data: %w", err)
		}
	}
	if m.cache != nil {
		if err := m.cache.Delete(ctx, userID); err != nil {
			return fmt.Errorf("failed to clear cached session: %w", err)
		}
	}

	s.turns = nil
	s.prefs = Preferences{}
	s.lastQuestions = nil
	s.loaded = true

	m.logger.Info(logModule, "User data cleared", map[string]interface{}{"user_id": userID})
	return nil
}

// LoadRecent warms the memory with the turns persisted since the given time
// and the preferences of their users. It returns the number of users loaded.
func (m *Manager) LoadRecent(ctx context.Context, since time.Time) (int, error) {
	if m.store == nil {
		return 0, nil
	}

	turns, err := m.store.LoadTurnsSince(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("failed to load recent turns: %w", err)
	}

	byUser := make(map[string][]Turn)
	var order []string
	for _, t := range turns {
		if _, ok := byUser[t.UserID]; !ok {
			order = append(order, t.UserID)
		}
		byUser[t.UserID] = append(byUser[t.UserID], t)
	}
	if len(order) == 0 {
		return 0, nil
	}

	prefs, err := m.store.LoadPreferences(ctx, order)
	if err != nil {
		return 0, fmt.Errorf("failed to load preferences: %w", err)
	}

	for _, userID := range order {
		s := m.session(userID)
		s.mu.Lock()
		s.turns = nil
		s.appendTurns(byUser[userID], m.cfg.Capacity)
		if p, ok := prefs[userID]; ok && p != nil {
			s.prefs = p.clone()
		} else {
			s.prefs = Preferences{}
		}
		s.loaded = true
		s.mu.Unlock()
	}

	m.logger.Info(logModule, "Recent conversations loaded", map[string]interface{}{
		"users": len(order),
		"turns": len(turns),
		"since": since,
	})
	return len(order), nil
}

func (m *Manager) Stats() Stats {
	stats := Stats{
		IntentDistribution: make(map[string]int),
		MemoryLimit:        m.cfg.Capacity,
		ActiveSessions:     m.sessions.Count(),
	}
	for _, s := range m.sessions.Items() {
		s.mu.Lock()
		if len(s.turns) > 0 {
			stats.TotalUsers++
			stats.TotalConversations += len(s.turns)
			for _, t := range s.turns {
				stats.IntentDistribution[t.Intent]++
			}
		}
		s.mu.Unlock()
	}
	if stats.TotalUsers > 0 {
		stats.AvgConversationLength = float64(stats.TotalConversations) / float64(stats.TotalUsers)
	}
	return stats
}

func (m *Manager) session(userID string) *session {
	return m.sessions.GetOrCreate(userID, func() *session {
		return newSession(userID)
	})
}

func newSession(userID string) *session {
	return &session{userID: userID, prefs: Preferences{}}
}

// hydrate fills a fresh session from the shared cache, falling back to the
// store. Failures leave the session empty.
func (m *Manager) hydrate(ctx context.Context, s *session) {
	s.loaded = true

	lookupCtx, cancel := m.persistContext(ctx)
	defer cancel()

	if m.cache != nil {
		snapshot, err := m.cache.Get(lookupCtx, s.userID)
		if err != nil {
			m.logger.Warn(logModule, "Session cache lookup failed", map[string]interface{}{
				"user_id": s.userID,
				"error":   err.Error(),
			})
		} else if snapshot != nil {
			s.turns = nil
			s.appendTurns(snapshot.Turns, m.cfg.Capacity)
			s.prefs = Preferences{}
			if snapshot.Preferences != nil {
				s.prefs = snapshot.Preferences.clone()
			}
			s.lastQuestions = append([]string(nil), snapshot.LastQuestions...)
			return
		}
	}

	if m.store == nil {
		return
	}
	turns, prefs, err := m.store.LoadUser(lookupCtx, s.userID, m.cfg.Capacity)
	if err != nil {
		m.logger.Warn(logModule, "Failed to load user from store", map[string]interface{}{
			"user_id": s.userID,
			"error":   err.Error(),
		})
		return
	}
	s.appendTurns(turns, m.cfg.Capacity)
	if prefs != nil {
		s.prefs = prefs.clone()
	}
}

// persistTurn writes the turn and the updated preferences through. Errors are
// logged and swallowed.
func (m *Manager) persistTurn(ctx context.Context, s *session, turn Turn) {
	if m.store != nil {
		storeCtx, cancel := m.persistContext(ctx)
		if err := m.store.AppendTurn(storeCtx, turn); err != nil {
			m.logger.Error(logModule, "Failed to persist turn", map[string]interface{}{
				"user_id": s.userID,
				"turn_id": turn.ID.String(),
				"error":   err.Error(),
			})
		}
		if err := m.store.UpsertPreferences(storeCtx, s.userID, s.prefs.clone()); err != nil {
			m.logger.Error(logModule, "Failed to persist preferences", map[string]interface{}{
				"user_id": s.userID,
				"error":   err.Error(),
			})
		}
		cancel()
	}
	m.writeSnapshot(ctx, s)
}

func (m *Manager) writeSnapshot(ctx context.Context, s *session) {
	if m.cache == nil {
		return
	}
	cacheCtx, cancel := m.persistContext(ctx)
	defer cancel()
	if err := m.cache.Set(cacheCtx, s.snapshot()); err != nil {
		m.logger.Warn(logModule, "Failed to cache session", map[string]interface{}{
			"user_id": s.userID,
			"error":   err.Error(),
		})
	}
}

// persistContext detaches from the request so a client disconnect does not
// abort a write that is already under way.
func (m *Manager) persistContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), m.cfg.PersistTimeout)
}

func sortUnknown(queries []UnknownQuery) {
	sort.SliceStable(queries, func(i, j int) bool {
		if queries[i].Frequency != queries[j].Frequency {
			return queries[i].Frequency > queries[j].Frequency
		}
		return queries[i].LastSeen.After(queries[j].LastSeen)
	})
}
