package specification

import "gorm.io/gorm"

// Specification narrows an archive query. Repositories apply them in order,
// so filters compose with AND and ordering or paging go last.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
