package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/hyst16/VB-Schedule-Nebraska/internal/schedule"
)

const uidDomain = "vb-schedule.hyst16.github.io"

// GenerateICS renders rows as all-day events. Local start times are kept in
// the description since the source publishes them as free text.
func GenerateICS(rows []schedule.ScheduleRow, now time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//VB Schedule//vb-schedule//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("X-WR-CALNAME:Nebraska Volleyball\r\n")

	stamp := formatICSTime(now)
	for _, r := range rows {
		day, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			continue
		}
		writeEvent(&ics, r, day, stamp)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeEvent(ics *strings.Builder, r schedule.ScheduleRow, day time.Time, stamp string) {
	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s@%s\r\n", EventUID(r), uidDomain))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", stamp))
	ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", day.Format("20060102")))
	ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", day.AddDate(0, 0, 1).Format("20060102")))

	summary := fmt.Sprintf("%s %s", r.HomeAway.Divider(), r.Title)
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	if desc := description(r); desc != "" {
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(desc)))
	}

	var where []string
	for _, part := range []string{r.Arena, r.City} {
		if part != "" {
			where = append(where, part)
		}
	}
	if len(where) > 0 {
		ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(strings.Join(where, ", "))))
	}

	if len(r.Links) > 0 && r.Links[0].Href != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", r.Links[0].Href))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("TRANSP:TRANSPARENT\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

func description(r schedule.ScheduleRow) string {
	var lines []string
	if r.Result != "" {
		lines = append(lines, "Result: "+r.Result)
	} else if r.TimeLocal != "" {
		lines = append(lines, "Time: "+r.TimeLocal)
	}
	if len(r.TV) > 0 {
		lines = append(lines, "TV: "+strings.Join(r.TV, ", "))
	}
	return strings.Join(lines, "\n")
}

// EventUID is stable across runs for the same date and opponent.
func EventUID(r schedule.ScheduleRow) string {
	return strings.ReplaceAll(r.Date, "-", "") + "-" + schedule.Slug(r.Opponent)
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
