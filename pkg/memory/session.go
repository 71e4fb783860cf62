package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

type session struct {
	mu            sync.Mutex
	userID        string
	loaded        bool
	turns         []Turn
	prefs         Preferences
	lastQuestions []string
}

// appendTurns adds turns in order and drops the oldest beyond capacity.
func (s *session) appendTurns(turns []Turn, capacity int) {
	s.turns = append(s.turns, turns...)
	if over := len(s.turns) - capacity; over > 0 {
		s.turns = append([]Turn(nil), s.turns[over:]...)
	}
}

// foldPreferences counts repeats of the same value; a new value restarts at 1.
func (s *session) foldPreferences(turn Turn) {
	turn.Slots.Each(func(name string, value interface{}) {
		if existing, ok := s.prefs[name]; ok && sameValue(existing.Value, value) {
			existing.Frequency++
			s.prefs[name] = existing
			return
		}
		s.prefs[name] = Preference{Value: value, Frequency: 1}
	})
}

func (s *session) snapshot() *Snapshot {
	return &Snapshot{
		UserID:        s.userID,
		Turns:         append([]Turn(nil), s.turns...),
		Preferences:   s.prefs.clone(),
		LastQuestions: append([]string(nil), s.lastQuestions...),
	}
}

// sameValue compares loosely so that 8 and 8.0 (after a JSON round trip) match.
func sameValue(a, b interface{}) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// UserSession is the view of one user's memory handed out by WithUser. It must
// not be retained after the callback returns.
type UserSession struct {
	ctx context.Context
	m   *Manager
	s   *session
}

func (u *UserSession) UserID() string {
	return u.s.userID
}

// Context walks the turns newest first and keeps the first value seen per slot.
func (u *UserSession) Context() Context {
	var c Context
	turns := u.s.turns
	for i := len(turns) - 1; i >= 0; i-- {
		c.Slots = c.Slots.FillMissing(turns[i].Slots)
	}
	c.ConversationLength = len(turns)
	if len(turns) > 0 {
		c.LastIntent = turns[len(turns)-1].Intent
		var sum float64
		for _, t := range turns {
			sum += t.Confidence
		}
		c.AvgConfidence = sum / float64(len(turns))
	}
	return c
}

// History returns the last limit turns oldest first; limit <= 0 means all.
func (u *UserSession) History(limit int) []Turn {
	turns := u.s.turns
	if limit > 0 && limit < len(turns) {
		turns = turns[len(turns)-limit:]
	}
	return append([]Turn{}, turns...)
}

func (u *UserSession) Preferences() Preferences {
	return u.s.prefs.clone()
}

func (u *UserSession) LastQuestions() []string {
	return append([]string(nil), u.s.lastQuestions...)
}

func (u *UserSession) SetLastQuestions(questions []string) {
	u.s.lastQuestions = append([]string(nil), questions...)
}

// RecordTurn appends the turn, folds its slots into the preferences and writes
// both through. It assigns the ID and timestamp when they are unset and returns
// the recorded turn.
func (u *UserSession) RecordTurn(turn Turn) Turn {
	if turn.ID == uuid.Nil {
		turn.ID = uuid.New()
	}
	if turn.Timestamp.IsZero() {
		turn.Timestamp = u.m.now()
	}
	turn.UserID = u.s.userID

	u.s.appendTurns([]Turn{turn}, u.m.cfg.Capacity)
	u.s.foldPreferences(turn)
	u.m.persistTurn(u.ctx, u.s, turn)
	return turn
}
