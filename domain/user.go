package domain

import "time"

// User represents a registered account in the platform.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	FullName       string    `json:"full_name,omitempty"`
	IsActive       bool      `json:"is_active"`
	IsSuperuser    bool      `json:"is_superuser"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Active reports whether the account may log in and use the API.
func (u *User) Active() bool {
	return u != nil && u.IsActive
}

// Superuser reports whether the account may perform administrative operations.
func (u *User) Superuser() bool {
	return u != nil && u.IsSuperuser
}
