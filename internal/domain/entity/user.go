package entity

import "time"

// User is an account that can own or be associated with shops.
// DefaultShopID is a logical pointer, not a foreign key: it may reference a
// shop the user is no longer associated with, in which case it resolves to
// "no default". Empty string means unset.
type User struct {
	ID            string
	Username      string
	Email         string // optional, unique when present
	PasswordHash  string // bcrypt, never serialized
	DefaultShopID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
