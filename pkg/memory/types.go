package memory

import (
	"time"

	"shopping-assistant-be/pkg/nlu"

	"github.com/google/uuid"
)

// Turn is one exchange between a user and the assistant. It is never modified
// after it has been recorded.
type Turn struct {
	ID         uuid.UUID `json:"id"`
	UserID     string    `json:"user_id"`
	Message    string    `json:"message"`
	Intent     string    `json:"intent"`
	Confidence float64   `json:"confidence"`
	Slots      nlu.Slots `json:"context_data"`
	Response   string    `json:"response"`
	Timestamp  time.Time `json:"timestamp"`
}

// Preference is the last value seen for a slot and how many consecutive times
// it was repeated.
type Preference struct {
	Value     interface{} `json:"value"`
	Frequency int         `json:"frequency"`
}

// Preferences is keyed by slot name.
type Preferences map[string]Preference

func (p Preferences) clone() Preferences {
	out := make(Preferences, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Slots returns the preference values as slots.
func (p Preferences) Slots() nlu.Slots {
	values := make(map[string]interface{}, len(p))
	for k, v := range p {
		values[k] = v.Value
	}
	return nlu.SlotsFromMap(values)
}

type UnknownQuery struct {
	Message   string    `json:"message"`
	Frequency int       `json:"frequency"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// Context aggregates the recent turns of a user: for every slot the most
// recent non-empty value, plus conversation state.
type Context struct {
	Slots              nlu.Slots `json:"slots"`
	ConversationLength int       `json:"conversation_length"`
	LastIntent         string    `json:"last_intent"`
	AvgConfidence      float64   `json:"avg_confidence"`
}

// ToMap flattens the context. A user without turns yields an empty map.
func (c Context) ToMap() map[string]interface{} {
	out := c.Slots.ToMap()
	if c.ConversationLength == 0 {
		return out
	}
	out["conversation_length"] = c.ConversationLength
	out["last_intent"] = c.LastIntent
	out["avg_confidence"] = c.AvgConfidence
	return out
}

// Snapshot is the cached form of a session.
type Snapshot struct {
	UserID        string      `json:"user_id"`
	Turns         []Turn      `json:"turns"`
	Preferences   Preferences `json:"preferences"`
	LastQuestions []string    `json:"last_questions"`
}

type Stats struct {
	TotalUsers            int            `json:"total_users"`
	TotalConversations    int            `json:"total_conversations"`
	AvgConversationLength float64        `json:"avg_conversation_length"`
	IntentDistribution    map[string]int `json:"intent_distribution"`
	MemoryLimit           int            `json:"memory_limit"`
	ActiveSessions        int            `json:"active_sessions"`
}
