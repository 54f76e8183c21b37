// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account bound to exactly one character.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	CharacterID  int64
	CreatedAt    time.Time
}

// Profile is the user as returned by /users/me.
type Profile struct {
	ID            int64  `json:"id"`
	Login         string `json:"login"`
	CharacterID   int64  `json:"character_id"`
	CharacterName string `json:"character_name"`
}
