package domain

import "time"

// Organization is a tracked club or group whose profile is acquired.
type Organization struct {
	ID          string    // Instagram handle, unique
	Name        string    // Display name
	Description string    // Profile biography
	AvatarURL   string    // Profile picture reference
	Links       []Link    // External links shown on the profile
	Followers   int       // Follower count
	Following   int       // Following count
	PostCount   int       // Post count
	UpdatedAt   time.Time // Last successful acquisition

	// PostURLs lists recent post links seen on the profile. Not persisted.
	PostURLs []string
}

type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}
