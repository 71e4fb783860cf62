package specification

import (
	"time"

	"gorm.io/gorm"
)

// ByUserID filters by the opaque user identifier
type ByUserID struct {
	UserID string
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByUserIDs struct {
	UserIDs []string
}

func (s ByUserIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id IN ?", s.UserIDs)
}

// CreatedAfter keeps rows strictly newer than Time
type CreatedAfter struct {
	Time time.Time
}

func (s CreatedAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at > ?", s.Time)
}

// MostFrequentFirst orders unknown queries by frequency, then recency
type MostFrequentFirst struct{}

func (s MostFrequentFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("frequency DESC").Order("last_seen DESC")
}
