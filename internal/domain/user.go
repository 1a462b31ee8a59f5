package domain

import "time"

// User represents the authenticated owner of the journal.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
