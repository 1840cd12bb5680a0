package repository

import (
	"strings"
	"time"

	"github.com/sangkips/fuelinvoice-api/pkg/pagination"
	"gorm.io/gorm"
)

// Paginate applies the page's offset and limit after validating it
func Paginate(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		params.Validate()
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}

// DayRange keeps rows whose column falls on a day in [from, to].
// Either bound may be nil.
func DayRange(column string, from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where(column+" >= ?", startOfDay(*from))
		}
		if to != nil {
			db = db.Where(column+" < ?", startOfDay(*to).AddDate(0, 0, 1))
		}
		return db
	}
}

// Search matches term case-insensitively against any of columns
func Search(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		conds := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, c := range columns {
			conds[i] = c + " ILIKE ?"
			args[i] = "%" + term + "%"
		}
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
