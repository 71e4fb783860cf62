package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ConversationTurn struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId     string         `gorm:"type:varchar(255);not null;index:idx_conversation_turns_user_created,priority:1"`
	Message    string         `gorm:"type:text;not null"`
	Intent     string         `gorm:"type:varchar(64);not null;index"`
	Confidence float64        `gorm:"not null;default:0"`
	Slots      datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	Response   string         `gorm:"type:text"`
	CreatedAt  time.Time      `gorm:"not null;index:idx_conversation_turns_user_created,priority:2"`
}

func (ConversationTurn) TableName() string {
	return "conversation_turns"
}
