package extractorimpl

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/orgball2608/insta-event-calendar/internal/domain"
	"github.com/orgball2608/insta-event-calendar/internal/extractor"
	"github.com/orgball2608/insta-event-calendar/pkg/errors"
	"github.com/tidwall/gjson"
)

// dateLayouts are tried in order. Layouts without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseEvents validates a raw completion against the event schema.
// Non-JSON output matches extractor.ErrDecode; any shape violation matches errors.ErrValidation.
func ParseEvents(raw string) ([]domain.EventRecord, error) {
	raw = stripFence(raw)
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("%w: %.80q", extractor.ErrDecode, raw)
	}

	doc := gjson.Parse(raw)
	if !doc.IsArray() {
		return nil, errors.Validation("top-level value must be an array", nil)
	}

	events := []domain.EventRecord{}
	for i, value := range doc.Array() {
		event, err := parseEvent(value)
		if err != nil {
			return nil, errors.Validation(fmt.Sprintf("element %d", i), err)
		}
		events = append(events, event)
	}
	return events, nil
}

func parseEvent(value gjson.Result) (domain.EventRecord, error) {
	if !value.IsObject() {
		return domain.EventRecord{}, fmt.Errorf("must be an object")
	}
	fields := objectFields(value)

	name, ok := fields["Name"]
	if !ok || name.Type != gjson.String || strings.TrimSpace(name.String()) == "" {
		return domain.EventRecord{}, fmt.Errorf("Name must be a non-empty string")
	}

	date, ok := fields["Date"]
	if !ok || date.Type != gjson.String {
		return domain.EventRecord{}, fmt.Errorf("Date must be a string")
	}
	start, err := parseDate(date.String())
	if err != nil {
		return domain.EventRecord{}, err
	}

	var details string
	if d, ok := fields["Details"]; ok && d.Type != gjson.Null {
		if d.Type != gjson.String {
			return domain.EventRecord{}, fmt.Errorf("Details must be a string")
		}
		details = d.String()
	}

	duration, err := parseDuration(fields["Duration"])
	if err != nil {
		return domain.EventRecord{}, err
	}

	return domain.EventRecord{
		Name:     strings.TrimSpace(name.String()),
		Date:     start,
		Details:  details,
		Duration: duration,
	}, nil
}

// parseDuration reads {"estimated duration": {"days": n, "hours": n}}. Absent or null means zero.
func parseDuration(value gjson.Result) (domain.EventDuration, error) {
	if !value.Exists() || value.Type == gjson.Null {
		return domain.EventDuration{}, nil
	}
	if !value.IsObject() {
		return domain.EventDuration{}, fmt.Errorf("Duration must be an object")
	}

	estimate, ok := objectFields(value)["estimated duration"]
	if !ok || estimate.Type == gjson.Null {
		return domain.EventDuration{}, nil
	}
	if !estimate.IsObject() {
		return domain.EventDuration{}, fmt.Errorf("estimated duration must be an object")
	}

	fields := objectFields(estimate)
	days, err := wholeNumber(fields["days"], "days")
	if err != nil {
		return domain.EventDuration{}, err
	}
	hours, err := wholeNumber(fields["hours"], "hours")
	if err != nil {
		return domain.EventDuration{}, err
	}
	return domain.EventDuration{Estimated: domain.Estimate{Days: days, Hours: hours}}, nil
}

// wholeNumber accepts numbers and numeric strings, rounding fractions.
func wholeNumber(value gjson.Result, field string) (int, error) {
	var f float64
	switch value.Type {
	case gjson.Null:
		return 0, nil
	case gjson.Number:
		f = value.Float()
	case gjson.String:
		s := strings.TrimSpace(value.String())
		if s == "" {
			return 0, nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%s is not a number: %q", field, s)
		}
		f = parsed
	default:
		return 0, fmt.Errorf("%s must be a number", field)
	}

	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s must be non-negative", field)
	}
	return int(math.Round(f)), nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("Date %q is not ISO-8601", s)
}

// objectFields indexes an object's members; keys are trimmed and compared case-sensitively.
func objectFields(obj gjson.Result) map[string]gjson.Result {
	fields := map[string]gjson.Result{}
	obj.ForEach(func(key, value gjson.Result) bool {
		fields[strings.TrimSpace(key.String())] = value
		return true
	})
	return fields
}

// stripFence removes a surrounding markdown code fence such as ```json ... ```.
func stripFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	if i := strings.IndexByte(raw, '\n'); i >= 0 {
		raw = raw[i+1:]
	} else {
		raw = strings.TrimPrefix(raw, "```")
	}
	raw = strings.TrimSpace(raw)
	return strings.TrimSpace(strings.TrimSuffix(raw, "```"))
}
