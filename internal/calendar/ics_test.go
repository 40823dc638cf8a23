package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/hyst16/VB-Schedule-Nebraska/internal/schedule"
)

var stamp = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func sampleRows() []schedule.ScheduleRow {
	return []schedule.ScheduleRow{
		{
			Date:      "2025-09-20",
			HomeAway:  schedule.Home,
			Opponent:  "Stanford",
			Title:     "#9 Stanford",
			Arena:     "Bob Devaney Sports Center",
			City:      "Lincoln, Neb.",
			Status:    schedule.StatusFinal,
			Result:    "W 3-1",
			TV:        []string{"BTN"},
			Links:     []schedule.Link{{Title: "Box Score", Href: "https://huskers.com/boxscore/1"}},
			ResultCSS: "W",
		},
		{
			Date:      "2025-10-04",
			TimeLocal: "7:00 PM CDT",
			HomeAway:  schedule.Away,
			Opponent:  "Wisconsin",
			Title:     "Wisconsin",
			Status:    schedule.StatusScheduled,
		},
	}
}

func TestGenerateICS(t *testing.T) {
	ics := GenerateICS(sampleRows(), stamp)

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//VB Schedule//vb-schedule//EN",
		"BEGIN:VEVENT",
		"UID:20250920-stanford@" + uidDomain,
		"DTSTAMP:20250901T120000Z",
		"DTSTART;VALUE=DATE:20250920",
		"DTEND;VALUE=DATE:20250921",
		"SUMMARY:vs #9 Stanford",
		"DESCRIPTION:Result: W 3-1\\nTV: BTN",
		"LOCATION:Bob Devaney Sports Center\\, Lincoln\\, Neb.",
		"URL:https://huskers.com/boxscore/1",
		"SUMMARY:at Wisconsin",
		"DESCRIPTION:Time: 7:00 PM CDT",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	for _, field := range requiredFields {
		if !strings.Contains(ics, field) {
			t.Errorf("ICS missing required field: %s", field)
		}
	}

	if n := strings.Count(ics, "BEGIN:VEVENT"); n != 2 {
		t.Errorf("got %d events, want 2", n)
	}
	for _, line := range strings.Split(strings.TrimSuffix(ics, "\r\n"), "\r\n") {
		if strings.Contains(line, "\n") {
			t.Errorf("line %q is not CRLF terminated", line)
		}
	}
}

func TestGenerateICS_Empty(t *testing.T) {
	ics := GenerateICS(nil, stamp)

	if strings.Contains(ics, "BEGIN:VEVENT") {
		t.Error("empty schedule should produce no events")
	}
	if !strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n") || !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Errorf("calendar envelope missing: %q", ics)
	}
}

func TestGenerateICS_SkipsUndated(t *testing.T) {
	rows := []schedule.ScheduleRow{{Date: "TBA", Opponent: "Iowa", Title: "Iowa"}}

	if ics := GenerateICS(rows, stamp); strings.Contains(ics, "BEGIN:VEVENT") {
		t.Error("row without an ISO date should be skipped")
	}
}

func TestGenerateICS_NoLocation(t *testing.T) {
	ics := GenerateICS(sampleRows()[1:], stamp)

	if strings.Contains(ics, "LOCATION:") {
		t.Error("LOCATION should be omitted when arena and city are empty")
	}
	if strings.Contains(ics, "URL:") {
		t.Error("URL should be omitted without links")
	}
}

func TestEventUID(t *testing.T) {
	tests := []struct {
		row  schedule.ScheduleRow
		want string
	}{
		{schedule.ScheduleRow{Date: "2025-09-20", Opponent: "Stanford"}, "20250920-stanford"},
		{schedule.ScheduleRow{Date: "2025-11-28", Opponent: "Penn State"}, "20251128-penn-state"},
		{schedule.ScheduleRow{Date: "2025-10-01", Opponent: "Universidad Autónoma"}, "20251001-universidad-autonoma"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := EventUID(tt.row); got != tt.want {
				t.Errorf("EventUID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatICSTime(t *testing.T) {
	testTime := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	formatted := formatICSTime(testTime)

	expected := "20260315T143000Z"
	if formatted != expected {
		t.Errorf("formatICSTime() = %q, want %q", formatted, expected)
	}
}

func TestEscapeICS(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Simple text", "Simple text"},
		{"Text with, comma", "Text with\\, comma"},
		{"Text with; semicolon", "Text with\\; semicolon"},
		{"Text with\\backslash", "Text with\\\\backslash"},
		{"Text with\nnewline", "Text with\\nnewline"},
		{"All, special; chars\\\n", "All\\, special\\; chars\\\\\\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := escapeICS(tt.input)
			if got != tt.expected {
				t.Errorf("escapeICS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
