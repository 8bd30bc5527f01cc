package models

import "time"

// Activity represents an event users can host and attend
type Activity struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date" gorm:"index"`
	Description string    `json:"description"`
	Category    string    `json:"category" gorm:"size:50;index"`
	IsCancelled bool      `json:"is_cancelled"`
	City        string    `json:"city"`
	Venue       string    `json:"venue"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ActivityAttendee links a user to an activity they attend. Exactly one
// attendee per activity holds IsHost, assigned at creation time.
type ActivityAttendee struct {
	ActivityID string    `json:"activity_id" gorm:"primaryKey;size:36"`
	UserID     string    `json:"user_id" gorm:"primaryKey;size:36"`
	IsHost     bool      `json:"is_host"`
	DateJoined time.Time `json:"date_joined"`
}

type CreateActivityRequest struct {
	Title       string    `json:"title" validate:"required,min=3,max=100"`
	Date        time.Time `json:"date" validate:"required"`
	Description string    `json:"description" validate:"required,max=2000"`
	Category    string    `json:"category" validate:"required"`
	City        string    `json:"city" validate:"required"`
	Venue       string    `json:"venue" validate:"required"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
}

// EditActivityRequest replaces every editable field wholesale, so a zero
// latitude or an emptied venue is a settable value, not an omission
type EditActivityRequest struct {
	Title       string    `json:"title" validate:"required,min=3,max=100"`
	Date        time.Time `json:"date" validate:"required"`
	Description string    `json:"description" validate:"required,max=2000"`
	Category    string    `json:"category" validate:"required"`
	City        string    `json:"city"`
	Venue       string    `json:"venue"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
}

// ActivityDto is the flat response shape for a single activity, with the
// host resolved by an explicit join rather than ORM navigation.
type ActivityDto struct {
	Activity
	HostID          string        `json:"host_id"`
	HostDisplayName string        `json:"host_display_name"`
	Attendees       []UserProfile `json:"attendees,omitempty"`
}
