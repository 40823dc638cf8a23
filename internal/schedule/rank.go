package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var leadingRank = regexp.MustCompile(`^\s*#\s*(\d{1,3})\s+(.*)$`)

// SplitRank splits a "#12 Team" display name into its rank and name.
// Names without a rank marker come back unchanged with a nil rank.
func SplitRank(name string) (*int, string) {
	m := leadingRank.FindStringSubmatch(name)
	if m == nil {
		return nil, strings.TrimSpace(name)
	}
	rest := strings.TrimSpace(m[2])
	if rest == "" {
		return nil, strings.TrimSpace(name)
	}
	rank, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, strings.TrimSpace(name)
	}
	return &rank, rest
}

var rankToken = regexp.MustCompile(`#\s*(\d{1,3})`)

// FindRanks returns every "#N" token in s, in order.
func FindRanks(s string) []int {
	var ranks []int
	for _, m := range rankToken.FindAllStringSubmatch(s, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			ranks = append(ranks, n)
		}
	}
	return ranks
}

// NormalizeDashes replaces every Unicode dash (and the minus sign) with "-".
func NormalizeDashes(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '−' || unicode.Is(unicode.Pd, r) {
			return '-'
		}
		return r
	}, s)
}

// ParseSets pulls the set score out of a result label such as "Win 3–1".
// The first token containing a hyphen wins; without one the whole label is
// returned.
func ParseSets(label string) string {
	label = NormalizeDashes(CleanText(label))
	for _, tok := range strings.Fields(label) {
		if strings.Contains(tok, "-") {
			return tok
		}
	}
	return label
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}
