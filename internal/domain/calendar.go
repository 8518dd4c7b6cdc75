package domain

import "time"

// EntryKey identifies a calendar entry. No two entries of an artifact share a key.
type EntryKey struct {
	Name  string
	Start time.Time
}

type CalendarEntry struct {
	Name     string
	Start    time.Time
	Details  string
	Duration time.Duration
}

func (c CalendarEntry) Key() EntryKey {
	return EntryKey{Name: c.Name, Start: c.Start.UTC()}
}

// Artifact is the deduplicated calendar of one organization.
type Artifact struct {
	OrganizationID string
	Entries        []CalendarEntry
}
