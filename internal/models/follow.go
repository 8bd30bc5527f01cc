package models

import "time"

// UserFollowing is a directed edge in the follow graph: the observer
// follows the target. The composite primary key is the only identity the
// edge has; its presence is the whole fact.
type UserFollowing struct {
	ObserverID string    `json:"observer_id" gorm:"primaryKey;size:36"`
	TargetID   string    `json:"target_id" gorm:"primaryKey;size:36"`
	CreatedAt  time.Time `json:"created_at"`
}
