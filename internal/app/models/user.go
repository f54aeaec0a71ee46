package models

import (
	"time"
)

// User is an account able to sign in to the portal.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AccessToken records an issued JWT so it can be revoked on logout.
type AccessToken struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	TokenID   string    `db:"token_id"`
	ExpiresAt time.Time `db:"expires_at"`
	Revoked   bool      `db:"revoked"`
	CreatedAt time.Time `db:"created_at"`
}
