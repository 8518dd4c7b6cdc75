package domain

import "time"

// PostItem is one acquired post. Its ID is derived from its publication timestamp.
type PostItem struct {
	ID             string
	OrganizationID string
	URL            string
	Description    string
	Date           time.Time // Publication instant, also the context date for extraction
	Picture        string    // Optional media reference

	// Processed is set exactly once, when extraction finishes (even with no events).
	Processed bool
	Events    []EventRecord
}

// PostID derives the post identifier from its publication instant.
func PostID(date time.Time) string {
	return date.UTC().Format(time.RFC3339)
}
