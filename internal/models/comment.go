package models

import "time"

// Comment represents a comment on an activity
type Comment struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	ActivityID string    `json:"activity_id" gorm:"index;size:36"`
	UserID     string    `json:"user_id" gorm:"index;size:36"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=1000"`
}

// CommentDto is a comment joined with its author's display fields
type CommentDto struct {
	ID          string    `json:"id"`
	Body        string    `json:"body"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
