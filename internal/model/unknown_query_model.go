package model

import (
	"time"

	"github.com/google/uuid"
)

// UnknownQuery counts messages the assistant could not classify. Message is
// unique so repeated messages fold into one row.
type UnknownQuery struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Message   string    `gorm:"type:text;not null;uniqueIndex"`
	Frequency int       `gorm:"not null;default:1;index"`
	FirstSeen time.Time `gorm:"not null"`
	LastSeen  time.Time `gorm:"not null;index"`
}

func (UnknownQuery) TableName() string {
	return "unknown_queries"
}
