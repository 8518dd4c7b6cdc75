package domain

import "time"

// EventRecord is a calendar-worthy event extracted from a post.
type EventRecord struct {
	Name     string        `json:"Name"`
	Date     time.Time     `json:"Date"`
	Details  string        `json:"Details"`
	Duration EventDuration `json:"Duration"`
}

// EventDuration is the estimated length of an event in whole days and hours.
// Zero means open-ended, and each boundary of a multi-day event is its own record.
type EventDuration struct {
	Estimated Estimate `json:"estimated duration"`
}

type Estimate struct {
	Days  int `json:"days"`
	Hours int `json:"hours"`
}

// Elapsed materializes the duration as days*86400 + hours*3600 seconds.
func (d EventDuration) Elapsed() time.Duration {
	return time.Duration(d.Estimated.Days)*24*time.Hour + time.Duration(d.Estimated.Hours)*time.Hour
}

// Key returns the duplicate-suppression key of the event.
func (e EventRecord) Key() EntryKey {
	return EntryKey{Name: e.Name, Start: e.Date.UTC()}
}
