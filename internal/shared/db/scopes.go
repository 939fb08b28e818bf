package db

import (
	"time"

	"gorm.io/gorm"
)

// Unexpired keeps rows whose expires_at is strictly after now.
func Unexpired(now time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("expires_at > ?", now)
	}
}

// ActiveOnly keeps rows flagged is_active. Soft-deleted rows are already
// excluded by gorm for models embedding gorm.DeletedAt.
func ActiveOnly() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true)
	}
}

// Paginate applies offset/limit with the given bounds.
func Paginate(page, pageSize, maxPageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		p, size := page, pageSize
		if p < 1 {
			p = 1
		}
		if size < 1 || size > maxPageSize {
			size = maxPageSize
		}
		return db.Offset((p - 1) * size).Limit(size)
	}
}
