package models

import "time"

// Session records an issued token. Rows are written on login and never read
// back, expired or revoked.
type Session struct {
	ID       string
	UserID   int64
	Token    string
	IssuedAt time.Time
}
