package models

import "time"

type RefreshToken struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Token     string    `db:"token"`
	Expires   time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}
