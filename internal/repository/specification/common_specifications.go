package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sortableColumns are the archive columns a listing may be ordered by.
var sortableColumns = map[string]bool{
	"timestamp":     true,
	"created_at":    true,
	"overall_score": true,
	"turn_count":    true,
	"category":      true,
	"date":          true,
}

type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// OrderBy sorts by one archive column. Columns outside sortableColumns fall
// back to timestamp, so a request parameter can never reach the SQL text.
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	field := s.Field
	if !sortableColumns[field] {
		field = "timestamp"
	}
	return db.Order(clause.OrderByColumn{Column: clause.Column{Name: field}, Desc: s.Desc})
}

// Pagination skips Offset rows and returns at most Limit. A zero Limit means
// no limit.
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	if s.Limit > 0 {
		db = db.Limit(s.Limit)
	}
	if s.Offset > 0 {
		db = db.Offset(s.Offset)
	}
	return db
}
