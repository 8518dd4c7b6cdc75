package extractorimpl

import (
	"time"

	"github.com/orgball2608/insta-event-calendar/internal/completion"
	"github.com/orgball2608/insta-event-calendar/internal/domain"
)

const systemPrompt = `You read the description of a social media post together with a context date and list the calendar events it announces.

Rules:
- Output ONLY a JSON array. No prose, no markdown fences, no newlines inside strings.
- One object per event: {"Name": "event name", "Date": "ISO-8601 date-time", "Details": "what the event is, including any links", "Duration": {"estimated duration": {"days": 0, "hours": 0}}}.
- Resolve relative dates (weekdays, "tomorrow", "next week") against the context date, never against today.
- days and hours are non-negative whole numbers. Use 0 and 0 when the event is open-ended or runs until further notice.
- An event spanning several days becomes two objects with the same Name, one for the first day and one for the last day, each with zero duration.
- No duplicates.
- Return [] when the post announces no event or is not relevant.`

func buildRequest(item *domain.PostItem) completion.Request {
	return completion.Request{
		System: systemPrompt,
		User:   item.Description + " context date: " + item.Date.UTC().Format(time.RFC3339),
	}
}
