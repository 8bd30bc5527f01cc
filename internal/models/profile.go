package models

// UserProfile is the read projection of a user as seen by another user.
// Counts are computed from the follow edge table on every read, and
// Following is relative to the viewer making the request, not the user
// whose lists are being browsed.
type UserProfile struct {
	ID             string `json:"id"`
	DisplayName    string `json:"display_name"`
	Bio            string `json:"bio,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
	FollowerCount  int64  `json:"follower_count"`
	FollowingCount int64  `json:"following_count"`
	Following      bool   `json:"following"`
}
