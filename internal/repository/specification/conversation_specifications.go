package specification

import (
	"time"

	"gorm.io/gorm"
)

// BySession filters conversations of one session, optionally one generation.
type BySession struct {
	SessionID  string
	Generation *int
}

func (s BySession) Apply(db *gorm.DB) *gorm.DB {
	db = db.Where("session_id = ?", s.SessionID)
	if s.Generation != nil {
		db = db.Where("generation = ?", *s.Generation)
	}
	return db
}

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type ByResolved struct {
	Resolved bool
}

func (s ByResolved) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_resolved = ?", s.Resolved)
}

// TimestampBetween is the half-open range [From, To).
type TimestampBetween struct {
	From time.Time
	To   time.Time
}

func (s TimestampBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("timestamp >= ? AND timestamp < ?", s.From, s.To)
}

// HasCategory skips rows without a category.
type HasCategory struct{}

func (s HasCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category IS NOT NULL AND category <> ''")
}
