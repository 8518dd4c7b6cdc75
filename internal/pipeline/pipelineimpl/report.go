package pipelineimpl

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/orgball2608/insta-event-calendar/internal/pipeline"
	"github.com/orgball2608/insta-event-calendar/pkg/formatter"
)

// FormatReport renders a run report as a Telegram MarkdownV2 message.
func FormatReport(r pipeline.Report) string {
	var sb strings.Builder

	failed := r.Failed()
	processed, events, entries := 0, 0, 0
	for _, res := range r.Organizations {
		processed += res.Extraction.Processed
		events += res.Extraction.Events
		entries += res.Entries
	}

	sb.WriteString("*Calendar run finished*\n")
	fmt.Fprintf(&sb, "Organizations: %s, failed: %s\n",
		formatter.FormatNumber(len(r.Targets)),
		formatter.FormatNumber(len(failed)),
	)
	fmt.Fprintf(&sb, "Posts extracted: %s, new events: %s, calendar entries: %s\n",
		formatter.FormatNumber(processed),
		formatter.FormatNumber(events),
		formatter.FormatNumber(entries),
	)
	fmt.Fprintf(&sb, "Duration: %s\n", formatter.EscapeMarkdownV2(r.Duration().Round(time.Second).String()))

	if len(failed) > 0 {
		sb.WriteString("\n*Failed*\n")
		for _, id := range failed {
			fmt.Fprintf(&sb, "• %s: %s\n", formatter.EscapeMarkdownV2(id), formatter.EscapeMarkdownV2(failureReason(r, id)))
		}
	}

	var updated []string
	for id, res := range r.Organizations {
		if res.Extraction.Events > 0 {
			updated = append(updated, id)
		}
	}
	sort.Strings(updated)
	if len(updated) > 0 {
		sb.WriteString("\n*Updated calendars*\n")
		for _, id := range updated {
			fmt.Fprintf(&sb, "• %s \\+%s\n",
				formatter.EscapeMarkdownV2(id),
				formatter.FormatNumber(r.Organizations[id].Extraction.Events),
			)
		}
	}

	return sb.String()
}

// FormatError renders a failed run as a Telegram MarkdownV2 message.
func FormatError(err error) string {
	return "*Calendar run failed*\n" + formatter.EscapeMarkdownV2(err.Error())
}

func failureReason(r pipeline.Report, id string) string {
	if res, ok := r.Organizations[id]; ok && res.Err != nil {
		return res.Err.Error()
	}
	if o, ok := r.Scrape[id]; ok && o.Err != nil {
		return o.Err.Error()
	}
	return "unknown error"
}
