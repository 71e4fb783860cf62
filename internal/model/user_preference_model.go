package model

import (
	"time"

	"gorm.io/datatypes"
)

type UserPreference struct {
	UserId      string         `gorm:"type:varchar(255);primaryKey"`
	Preferences datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}
