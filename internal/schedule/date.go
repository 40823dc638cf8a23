package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// months maps every accepted month spelling to its month.
var months = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// ParseMonth converts a month token ("Sep", "SEPT.", "September") to a month.
// Returns 0 when the token is not a month.
func ParseMonth(token string) time.Month {
	token = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(token), "."))
	if m, ok := months[token]; ok {
		return m
	}
	if len(token) < 3 {
		return 0
	}
	for m := time.January; m <= time.December; m++ {
		if strings.HasPrefix(strings.ToLower(m.String()), token) {
			return m
		}
	}
	return 0
}

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsISODate reports whether s is a well-formed, existing YYYY-MM-DD date.
func IsISODate(s string) bool {
	if !isoDatePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// dateRule turns the submatches of its pattern into a date.
type dateRule struct {
	pattern *regexp.Regexp
	parse   func(m []string, seasonYear int) (time.Time, bool)
}

const weekdayPrefix = `(?:(?:mon|tue|wed|thu|fri|sat|sun)[a-z]*\.?,?\s+)?`

// dateRules are tried in order; the first matching pattern decides.
var dateRules = []dateRule{
	{
		// "Sep 20", "SEPT. 20", "Friday, September 20"
		pattern: regexp.MustCompile(`(?i)^` + weekdayPrefix + `([a-z]+)\.?\s+(\d{1,2})(?:st|nd|rd|th)?$`),
		parse: func(m []string, seasonYear int) (time.Time, bool) {
			return buildDate(seasonYear, ParseMonth(m[1]), m[2])
		},
	},
	{
		// "Sep 20, 2025", "Sep 20 2025"
		pattern: regexp.MustCompile(`(?i)^` + weekdayPrefix + `([a-z]+)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})$`),
		parse: func(m []string, _ int) (time.Time, bool) {
			year, _ := strconv.Atoi(m[3])
			return buildDate(year, ParseMonth(m[1]), m[2])
		},
	},
	{
		// "9/20"
		pattern: regexp.MustCompile(`^(\d{1,2})/(\d{1,2})$`),
		parse: func(m []string, seasonYear int) (time.Time, bool) {
			month, _ := strconv.Atoi(m[1])
			return buildDate(seasonYear, time.Month(month), m[2])
		},
	},
	{
		// "9/20/2025", "09/20/25"
		pattern: regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2}|\d{4})$`),
		parse: func(m []string, _ int) (time.Time, bool) {
			month, _ := strconv.Atoi(m[1])
			year, _ := strconv.Atoi(m[3])
			if year < 100 {
				year += 2000
			}
			return buildDate(year, time.Month(month), m[2])
		},
	},
}

// buildDate validates the day against the month so "Feb 30" is rejected
// instead of rolling over into March.
func buildDate(year int, month time.Month, dayText string) (time.Time, bool) {
	day, err := strconv.Atoi(dayText)
	if err != nil || month < time.January || month > time.December || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// ParseDateText parses a visible date label into YYYY-MM-DD, completing a
// year-less label with seasonYear. Returns "" when the label is not a date.
func ParseDateText(label string, seasonYear int) string {
	label = strings.Join(strings.Fields(label), " ")
	if label == "" {
		return ""
	}
	for _, rule := range dateRules {
		m := rule.pattern.FindStringSubmatch(label)
		if m == nil {
			continue
		}
		if t, ok := rule.parse(m, seasonYear); ok {
			return t.Format("2006-01-02")
		}
		return ""
	}
	return ""
}

// ResolveDate returns the row's ISO date: the machine-readable date when it is
// well-formed, else the parsed date label. "" means the row cannot be dated.
func ResolveDate(ev RawEvent, seasonYear int) string {
	if d := strings.TrimSpace(ev.Date); IsISODate(d) {
		return d
	}
	return ParseDateText(ev.DateText, seasonYear)
}

var scrapedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// SeasonYear derives the season year from the scrape timestamp. When the
// timestamp is missing or unparsable it falls back to now's year in loc.
func SeasonYear(scrapedAt string, now time.Time, loc *time.Location) int {
	scrapedAt = strings.TrimSpace(scrapedAt)
	for _, layout := range scrapedAtLayouts {
		if t, err := time.Parse(layout, scrapedAt); err == nil {
			return t.Year()
		}
	}
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Year()
}
