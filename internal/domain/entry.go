package domain

import (
	"strings"
	"time"
)

// Entry represents a single journal record. Slug is never set directly by
// callers; it is re-derived from Title on every save.
type Entry struct {
	ID        int64
	Title     string
	Slug      string
	Date      time.Time
	TimeSpent int
	Learned   string
	Resources string
	Tags      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TagList splits the space-delimited tag string into individual tags.
func (e Entry) TagList() []string {
	return strings.Fields(e.Tags)
}
