package memory

import (
	"context"
	"strings"
)

// LogUnknown counts a message the assistant could not classify. The in-process
// counter is always updated; the store, when attached, is updated best-effort.
func (m *Manager) LogUnknown(ctx context.Context, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	now := m.now()

	m.unknownMu.Lock()
	if q, ok := m.unknown[message]; ok {
		q.Frequency++
		q.LastSeen = now
	} else {
		m.unknown[message] = &UnknownQuery{Message: message, Frequency: 1, FirstSeen: now, LastSeen: now}
	}
	m.unknownMu.Unlock()

	if m.store == nil {
		return
	}
	storeCtx, cancel := m.persistContext(ctx)
	defer cancel()
	if err := m.store.IncrementUnknown(storeCtx, message, now); err != nil {
		m.logger.Warn(logModule, "Failed to persist unknown query", map[string]interface{}{
			"message": message,
			"error":   err.Error(),
		})
	}
}

// UnknownQueries lists the most frequent unknown messages, most recent first on
// ties. The store is authoritative when reachable.
func (m *Manager) UnknownQueries(ctx context.Context, limit int) ([]UnknownQuery, error) {
	if limit <= 0 {
		limit = m.cfg.UnknownLimit
	}

	if m.store != nil {
		queries, err := m.store.ListUnknown(ctx, limit)
		if err == nil {
			return queries, nil
		}
		m.logger.Warn(logModule, "Falling back to in-memory unknown queries", map[string]interface{}{
			"error": err.Error(),
		})
	}

	m.unknownMu.Lock()
	queries := make([]UnknownQuery, 0, len(m.unknown))
	for _, q := range m.unknown {
		queries = append(queries, *q)
	}
	m.unknownMu.Unlock()

	sortUnknown(queries)
	if len(queries) > limit {
		queries = queries[:limit]
	}
	return queries, nil
}
