package calendar

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/orgball2608/insta-event-calendar/internal/domain"
	"github.com/orgball2608/insta-event-calendar/pkg/errors"
)

const ProductID = "-//insta-event-calendar//Organization Events//EN"

// UID derives a stable VEVENT identifier from the entry key.
func UID(key domain.EntryKey) string {
	sum := sha1.Sum([]byte(key.Name + "\x00" + key.Start.UTC().Format(time.RFC3339)))
	return hex.EncodeToString(sum[:]) + "@insta-event-calendar"
}

// Encode renders the artifact as an ICS document.
// The output only depends on the set of entries, so encoding the same calendar twice is byte-identical.
func Encode(a domain.Artifact) []byte {
	entries := make([]domain.CalendarEntry, len(a.Entries))
	copy(entries, a.Entries)
	sortEntries(entries)

	cal := ics.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetMethod(ics.MethodPublish)
	cal.SetXWRCalName(a.OrganizationID)

	for _, entry := range entries {
		start := entry.Start.UTC()
		ev := cal.AddEvent(UID(entry.Key()))
		ev.SetDtStampTime(start)
		ev.SetStartAt(start)
		ev.SetEndAt(start.Add(entry.Duration))
		ev.SetSummary(entry.Name)
		if entry.Details != "" {
			ev.SetDescription(entry.Details)
		}
	}

	return []byte(cal.Serialize())
}

// Decode reads an ICS document written by Encode. Events without a summary or start are dropped.
// TEXT values come back unescaped from the parser and are used as is.
func Decode(orgID string, body []byte) (domain.Artifact, error) {
	artifact := domain.Artifact{OrganizationID: orgID, Entries: []domain.CalendarEntry{}}
	if len(bytes.TrimSpace(body)) == 0 {
		return artifact, nil
	}

	cal, err := ics.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return artifact, errors.Parse(fmt.Sprintf("failed to parse calendar of %s", orgID), err)
	}

	for _, ev := range cal.Events() {
		summary := ev.GetProperty(ics.ComponentPropertySummary)
		if summary == nil || summary.Value == "" {
			continue
		}
		start, err := ev.GetStartAt()
		if err != nil {
			continue
		}

		entry := domain.CalendarEntry{
			Name:  summary.Value,
			Start: start.UTC(),
		}
		if end, err := ev.GetEndAt(); err == nil && end.After(start) {
			entry.Duration = end.Sub(start)
		}
		if desc := ev.GetProperty(ics.ComponentPropertyDescription); desc != nil {
			entry.Details = desc.Value
		}
		artifact.Entries = append(artifact.Entries, entry)
	}

	sortEntries(artifact.Entries)
	return artifact, nil
}

func sortEntries(entries []domain.CalendarEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Start.Equal(entries[j].Start) {
			return entries[i].Start.Before(entries[j].Start)
		}
		return entries[i].Name < entries[j].Name
	})
}
