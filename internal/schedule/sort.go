package schedule

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	lastDate = "9999-12-31"
	lastTime = "23:59"
)

var (
	clockPattern = regexp.MustCompile(`(?i)^\s*(\d{1,2})(?::(\d{2}))?\s*([ap])\.?\s*m\.?`)
	hhmmPattern  = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// TimeKey converts "7:00 PM CDT" to "19:00" for ordering. Missing or
// unrecognised times ("TBA") sort last within their date.
func TimeKey(timeLocal string) string {
	m := clockPattern.FindStringSubmatch(timeLocal)
	if m == nil {
		if t := strings.TrimSpace(timeLocal); hhmmPattern.MatchString(t) {
			return t
		}
		return lastTime
	}
	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if hour < 1 || hour > 12 || minute > 59 {
		return lastTime
	}
	hour %= 12
	if strings.EqualFold(m[3], "p") {
		hour += 12
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// SortRows orders rows by (date, time), stable for equal keys.
func SortRows(rows []ScheduleRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		di, dj := sortDate(rows[i].Date), sortDate(rows[j].Date)
		if di != dj {
			return di < dj
		}
		return TimeKey(rows[i].TimeLocal) < TimeKey(rows[j].TimeLocal)
	})
}

func sortDate(d string) string {
	if d == "" {
		return lastDate
	}
	return d
}
