package models

import "time"

type RefreshToken struct {
	UserID    int64
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
