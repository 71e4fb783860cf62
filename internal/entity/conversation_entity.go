package entity

import (
	"time"

	"github.com/google/uuid"
)

type ConversationTurn struct {
	Id         uuid.UUID
	UserId     string
	Message    string
	Intent     string
	Confidence float64
	Slots      map[string]interface{}
	Response   string
	CreatedAt  time.Time
}

type PreferenceValue struct {
	Value     interface{} `json:"value"`
	Frequency int         `json:"frequency"`
}

type UserPreference struct {
	UserId      string
	Preferences map[string]PreferenceValue
	UpdatedAt   time.Time
}

type UnknownQuery struct {
	Id        uuid.UUID
	Message   string
	Frequency int
	FirstSeen time.Time
	LastSeen  time.Time
}
