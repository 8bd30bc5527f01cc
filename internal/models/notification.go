package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is a user notification document stored in MongoDB
type Notification struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Type        string             `json:"type" bson:"type"` // follow, comment, attend
	ActorID     string             `json:"actor_id" bson:"actor_id"`
	RecipientID string             `json:"recipient_id" bson:"recipient_id"`
	TargetID    string             `json:"target_id,omitempty" bson:"target_id,omitempty"` // activity ID for comment/attend
	Message     string             `json:"message" bson:"message"`
	IsRead      bool               `json:"is_read" bson:"is_read"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
