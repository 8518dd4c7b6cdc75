package calendar

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/orgball2608/insta-event-calendar/internal/domain"
)

func sampleArtifact() domain.Artifact {
	return domain.Artifact{
		OrganizationID: "club",
		Entries: []domain.CalendarEntry{
			{Name: "Trivia", Start: time.Date(2024, 3, 9, 18, 0, 0, 0, time.UTC), Details: "Bring a team", Duration: 3 * time.Hour},
			{Name: "Game Night", Start: time.Date(2024, 3, 8, 19, 0, 0, 0, time.UTC), Details: "Game night Friday 7pm", Duration: 2 * time.Hour},
			{Name: "Club Fair", Start: time.Date(2024, 3, 8, 19, 0, 0, 0, time.UTC)},
		},
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	a := sampleArtifact()
	first := Encode(a)

	reversed := sampleArtifact()
	for i, j := 0, len(reversed.Entries)-1; i < j; i, j = i+1, j-1 {
		reversed.Entries[i], reversed.Entries[j] = reversed.Entries[j], reversed.Entries[i]
	}
	if !bytes.Equal(first, Encode(reversed)) {
		t.Fatal("encoding depends on entry order")
	}

	body := string(first)
	for _, want := range []string{"BEGIN:VCALENDAR", ProductID, "SUMMARY:Game Night", "DTSTART:20240308T190000Z", "DTEND:20240308T210000Z"} {
		if !strings.Contains(body, want) {
			t.Errorf("encoded calendar is missing %q", want)
		}
	}
	if strings.Index(body, "SUMMARY:Club Fair") > strings.Index(body, "SUMMARY:Game Night") {
		t.Error("entries with the same start must be ordered by name")
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	a := sampleArtifact()
	body := Encode(a)

	decoded, err := Decode("club", body)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded.Entries) != 3 {
		t.Fatalf("got %d entries", len(decoded.Entries))
	}

	got := decoded.Entries[1]
	if got.Name != "Game Night" || got.Duration != 2*time.Hour || got.Details != "Game night Friday 7pm" {
		t.Fatalf("unexpected entry: %+v", got)
	}
	if !bytes.Equal(Encode(decoded), body) {
		t.Fatal("re-encoding a decoded calendar changed it")
	}
}

func TestDecodeEmpty(t *testing.T) {
	a, err := Decode("club", nil)
	if err != nil || a.Entries == nil || len(a.Entries) != 0 {
		t.Fatalf("got %+v, %v", a, err)
	}
}

func TestUIDIsStable(t *testing.T) {
	start := time.Date(2024, 3, 8, 19, 0, 0, 0, time.UTC)
	a := UID(domain.EntryKey{Name: "Game Night", Start: start})
	b := UID(domain.EntryKey{Name: "Game Night", Start: start.In(time.FixedZone("PST", -8*3600))})
	if a != b {
		t.Fatal("UID must not depend on the zone of the start")
	}
	if a == UID(domain.EntryKey{Name: "Game Night", Start: start.Add(time.Hour)}) {
		t.Fatal("different starts must give different UIDs")
	}
}

func TestEntryFromEvent(t *testing.T) {
	start := time.Date(2024, 4, 5, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		event   domain.EventRecord
		wantErr bool
		wantDur time.Duration
	}{
		{"ok", domain.EventRecord{Name: "Hackathon", Date: start, Duration: domain.EventDuration{Estimated: domain.Estimate{Days: 1, Hours: 2}}}, false, 26 * time.Hour},
		{"open ended", domain.EventRecord{Name: "Sign ups", Date: start}, false, 0},
		{"no name", domain.EventRecord{Date: start}, true, 0},
		{"no date", domain.EventRecord{Name: "x"}, true, 0},
		{"negative", domain.EventRecord{Name: "x", Date: start, Duration: domain.EventDuration{Estimated: domain.Estimate{Hours: -1}}}, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := EntryFromEvent(tt.event)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedEvent) {
					t.Fatalf("want ErrMalformedEvent, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if entry.Duration != tt.wantDur {
				t.Fatalf("Duration = %v, want %v", entry.Duration, tt.wantDur)
			}
		})
	}
}

func TestDecodeRoundTripsEscapedText(t *testing.T) {
	start := time.Date(2024, 3, 8, 19, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		details string
	}{
		{`Install party C:\new`, `copy C:\tools\n and bring a USB`},
		{`Back\\slash`, `two\\backslashes`},
		{"Fair; food, drinks", "Line one\nline two; more, later"},
		{`Literal \N and \n`, "ends with \\"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := domain.Artifact{
				OrganizationID: "club",
				Entries:        []domain.CalendarEntry{{Name: tt.name, Start: start, Details: tt.details, Duration: time.Hour}},
			}
			body := Encode(a)

			decoded, err := Decode("club", body)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(decoded.Entries) != 1 {
				t.Fatalf("got %d entries", len(decoded.Entries))
			}
			got := decoded.Entries[0]
			if got.Name != tt.name || got.Details != tt.details {
				t.Fatalf("got (%q, %q), want (%q, %q)", got.Name, got.Details, tt.name, tt.details)
			}
			if got.Key() != a.Entries[0].Key() {
				t.Fatal("decoded entry key differs from the encoded one")
			}
			if !bytes.Equal(Encode(decoded), body) {
				t.Fatal("re-encoding a decoded calendar changed it")
			}
		})
	}
}

func TestEncodeEscapesTextOnce(t *testing.T) {
	body := string(Encode(domain.Artifact{
		OrganizationID: "club",
		Entries:        []domain.CalendarEntry{{Name: `C:\new, fair; food`, Start: time.Date(2024, 3, 8, 19, 0, 0, 0, time.UTC)}},
	}))
	if !strings.Contains(body, `SUMMARY:C:\\new\, fair\; food`) {
		t.Fatalf("summary not escaped exactly once:\n%s", body)
	}
}
