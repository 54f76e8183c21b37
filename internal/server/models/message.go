package models

import "time"

type Message struct {
	ID         int64
	FromUserID int64
	ToUserID   int64
	Body       string
	CreatedAt  time.Time
}
