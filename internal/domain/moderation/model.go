package moderation

import "time"

// Ban marks an identity as permanently blocked.
type Ban struct {
	UserID    string    `json:"user_id" db:"user_id"`
	Reason    string    `json:"reason" db:"reason"`
	BannedBy  string    `json:"banned_by" db:"banned_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
