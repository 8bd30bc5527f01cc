package models

import "time"

// Photo is a profile photo reference; the binary lives in object storage
type Photo struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	UserID    string    `json:"user_id" gorm:"index;size:36"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
