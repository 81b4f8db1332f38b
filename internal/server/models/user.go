// Package models defines the rows the range server reads and writes.
package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is an account row. Password holds the credential exactly as it was
// submitted at registration and is never serialized.
type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	Role      Role       `json:"role"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Public returns the id/username/email/role view handed out on login.
func (u *User) Public() *User {
	return &User{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

// LoginResult is what both login paths return on success.
type LoginResult struct {
	User  *User
	Token string
}

// Stats are the aggregate counts behind the admin dashboard.
type Stats struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalFiles    int64 `json:"totalFiles"`
	TotalSessions int64 `json:"totalSessions"`
}
