package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// DateRangeScope filters column to [from, to]; either bound may be nil.
// Bounds are compared in UTC, the zone every timestamp is stored in.
func DateRangeScope(column string, from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where(column+" >= ?", from.UTC())
		}
		if to != nil {
			db = db.Where(column+" <= ?", to.UTC())
		}
		return db
	}
}

// ContainsFoldScope matches rows whose column contains term, ignoring case.
// LIKE wildcards in term are matched literally.
func ContainsFoldScope(column, term string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" {
			return db
		}
		return db.Where("LOWER("+column+") LIKE ? ESCAPE '!'", "%"+escapeLike(strings.ToLower(term))+"%")
	}
}

// orderItems keeps line items in the order they were entered.
func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
