package models

import "time"

// User represents a registered shop account. The password hash is an opaque
// string and is never serialized.
type User struct {
	ID             int       `db:"id" json:"id"`
	Fullname       string    `db:"fullname" json:"fullname"`
	Email          string    `db:"email" json:"email"`
	HashedPassword string    `db:"hashed_password" json:"-"`
	IsAdmin        bool      `db:"is_admin" json:"isAdmin"`
	IsActive       bool      `db:"is_active" json:"isActive"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}
