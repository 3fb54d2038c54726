// Package models holds the server's account and session rows.
package models

import "time"

// User is an account. Salt and Verifier come from the client's key
// derivation; the server never sees the password.
type User struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Salt      []byte    `db:"salt"`
	Verifier  []byte    `db:"verifier"`
	CreatedAt time.Time `db:"created_at"`
}
