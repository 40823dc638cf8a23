package schedule

import (
	"fmt"
	"strings"
	"time"
)

// ResultStyle selects the vocabulary of ScheduleRow.ResultCSS.
type ResultStyle string

const (
	ResultStyleLetter ResultStyle = "letter" // W, L, T
	ResultStyleWord   ResultStyle = "word"   // win, loss, tie
)

// ParseResultStyle validates a result style name.
func ParseResultStyle(s string) (ResultStyle, error) {
	switch style := ResultStyle(strings.ToLower(strings.TrimSpace(s))); style {
	case ResultStyleLetter, ResultStyleWord:
		return style, nil
	default:
		return "", fmt.Errorf("invalid result style: %q (must be 'letter' or 'word')", s)
	}
}

// ArenaOverride forces the arena for a recurring matchup.
type ArenaOverride struct {
	Arena string `json:"arena"`
}

// ArenaOverrides is keyed by opponent display name.
type ArenaOverrides map[string]ArenaOverride

// Lookup finds the override for an opponent, exact match first then
// case-insensitive.
func (o ArenaOverrides) Lookup(opponent string) (string, bool) {
	if ov, ok := o[opponent]; ok && strings.TrimSpace(ov.Arena) != "" {
		return strings.TrimSpace(ov.Arena), true
	}
	for name, ov := range o {
		if strings.EqualFold(name, opponent) && strings.TrimSpace(ov.Arena) != "" {
			return strings.TrimSpace(ov.Arena), true
		}
	}
	return "", false
}

// Options holds the normalizer policy.
type Options struct {
	// TitleRankPrefix renders titles as "#9 Stanford" instead of "Stanford".
	TitleRankPrefix bool
	ResultStyle     ResultStyle
	// HomeCity marks a "vs" divider as a home match.
	HomeCity string
	// Location is the reference zone for the season-year fallback.
	Location *time.Location
	Now      func() time.Time
}

// DefaultOptions returns the policy used when nothing is configured.
func DefaultOptions() Options {
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		loc = time.UTC
	}
	return Options{
		TitleRankPrefix: true,
		ResultStyle:     ResultStyleLetter,
		HomeCity:        "Lincoln",
		Location:        loc,
		Now:             time.Now,
	}
}

// Stats counts what happened to the input rows.
type Stats struct {
	SeasonYear       int `json:"season_year"`
	Input            int `json:"input"`
	Emitted          int `json:"emitted"`
	DroppedNoDate    int `json:"dropped_no_date"`
	DroppedOffSeason int `json:"dropped_off_season"`
	DroppedInvalid   int `json:"dropped_invalid"`
}

// Dropped is the total number of rows left out of the output.
func (s Stats) Dropped() int {
	return s.DroppedNoDate + s.DroppedOffSeason + s.DroppedInvalid
}

type dropReason int

const (
	keep dropReason = iota
	dropNoDate
	dropOffSeason
	dropInvalid
)

// Normalize resolves raw events into ordered schedule rows. It never fails:
// rows that cannot be dated, fall outside the season or are otherwise
// unusable are counted in Stats and left out.
func Normalize(items []RawEvent, scrapedAt string, overrides ArenaOverrides, opts Options) ([]ScheduleRow, Stats) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ResultStyle == "" {
		opts.ResultStyle = ResultStyleLetter
	}

	stats := Stats{
		SeasonYear: SeasonYear(scrapedAt, opts.Now(), opts.Location),
		Input:      len(items),
	}

	rows := make([]ScheduleRow, 0, len(items))
	for _, it := range items {
		row, reason := normalizeRow(it, stats.SeasonYear, overrides, opts)
		switch reason {
		case keep:
			rows = append(rows, row)
		case dropNoDate:
			stats.DroppedNoDate++
		case dropOffSeason:
			stats.DroppedOffSeason++
		default:
			stats.DroppedInvalid++
		}
	}

	SortRows(rows)
	stats.Emitted = len(rows)
	return rows, stats
}

// normalizeRow maps one raw event. A panic on a malformed row drops only that
// row.
func normalizeRow(it RawEvent, seasonYear int, overrides ArenaOverrides, opts Options) (row ScheduleRow, reason dropReason) {
	defer func() {
		if r := recover(); r != nil {
			row, reason = ScheduleRow{}, dropInvalid
		}
	}()

	date := ResolveDate(it, seasonYear)
	if date == "" {
		return ScheduleRow{}, dropNoDate
	}
	if !strings.HasPrefix(date, fmt.Sprintf("%04d-", seasonYear)) {
		return ScheduleRow{}, dropOffSeason
	}

	oppRank := it.OppRank
	rank, opponent := SplitRank(CleanText(it.OpponentName))
	if oppRank == nil {
		oppRank = rank
	}
	if opponent == "" {
		opponent = "TBA"
	}

	city := CleanText(it.City)
	arena := StripSponsor(CleanText(it.Arena))
	if forced, ok := overrides.Lookup(opponent); ok {
		arena = forced
	}

	row = ScheduleRow{
		Date:      date,
		TimeLocal: CleanText(it.TimeLocal),
		HomeAway:  ResolveVenue(firstNonEmpty(it.VenueLabel, it.DividerText), city, opts.HomeCity),
		NURank:    it.NURank,
		Opponent:  opponent,
		OppRank:   oppRank,
		Title:     Title(opponent, oppRank, opts.TitleRankPrefix),
		Arena:     arena,
		City:      city,
		ArenaKey:  ArenaKey(arena),
		NULogo:    it.NebraskaLogo,
		OppLogo:   it.OpponentLogo,
		TVLogo:    it.TVNetworkLogo,
		TV:        nonNilStrings(it.Networks),
		Status:    StatusScheduled,
		Links:     nonNilLinks(it.Links),
	}

	if it.Result != nil && it.Result.Outcome != "" {
		outcome := strings.ToUpper(strings.TrimSpace(it.Result.Outcome))
		row.Status = StatusFinal
		row.Result = strings.TrimSpace(outcome + " " + NormalizeDashes(strings.TrimSpace(it.Result.Sets)))
		row.ResultCSS = ResultCSS(outcome, opts.ResultStyle)
	}
	return row, keep
}

// Title composes the display title, optionally rank-prefixed.
func Title(opponent string, rank *int, withRank bool) string {
	if withRank && rank != nil && *rank > 0 {
		return fmt.Sprintf("#%d %s", *rank, opponent)
	}
	return opponent
}

// ResultCSS maps an outcome letter to the styling tag for style.
func ResultCSS(outcome string, style ResultStyle) string {
	words := map[string]string{"W": "win", "L": "loss", "T": "tie"}
	word, ok := words[outcome]
	if !ok {
		return ""
	}
	if style == ResultStyleWord {
		return word
	}
	return outcome
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilLinks(l []Link) []Link {
	if l == nil {
		return []Link{}
	}
	return l
}
