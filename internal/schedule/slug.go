package schedule

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// UnknownArenaKey is the arena key of rows without a usable arena name.
const UnknownArenaKey = "unknown"

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slug makes a URL-ish join key: diacritics folded, lowercased, every run of
// non-alphanumerics collapsed to one hyphen, no leading or trailing hyphen.
// Slug(Slug(s)) == Slug(s).
func Slug(s string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}
	s = nonAlnum.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}

// ArenaKey is Slug with the "unknown" fallback used for manifest joins.
func ArenaKey(arena string) string {
	if key := Slug(arena); key != "" {
		return key
	}
	return UnknownArenaKey
}

var sponsorClause = regexp.MustCompile(`(?i)\s*\bpresented by\b.*$`)

// StripSponsor removes a trailing "presented by ..." clause from an arena name.
func StripSponsor(arena string) string {
	return strings.TrimSpace(sponsorClause.ReplaceAllString(arena, ""))
}

var locationPattern = regexp.MustCompile(`^(.+?)\s*/\s*(.+)$`)

// SplitLocation splits "Lincoln, Neb. / Bob Devaney Sports Center" into city
// and sponsor-free arena. Text without a slash yields no city or arena.
func SplitLocation(location string) (city, arena string) {
	m := locationPattern.FindStringSubmatch(CleanText(location))
	if m == nil {
		return "", ""
	}
	return strings.TrimSpace(m[1]), StripSponsor(m[2])
}

// CleanText collapses all whitespace runs to single spaces.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
