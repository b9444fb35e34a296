package repositories

import "gorm.io/gorm"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// paginate is a gorm scope applying page/pageSize windowing with the
// repository defaults. Page numbers start at 1.
func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if pageSize < 1 {
			pageSize = defaultPageSize
		}
		if pageSize > maxPageSize {
			pageSize = maxPageSize
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
