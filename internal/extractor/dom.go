package extractor

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/hyst16/VB-Schedule-Nebraska/internal/schedule"
)

// Selectors for the event-card markup of the schedule page.
const (
	eventSelector        = ".schedule-event-item"
	dividerSelector      = ".schedule-event-item-default__divider"
	opponentNameSelector = ".schedule-event-item-default__opponent-name"
	imagesSelector       = ".schedule-event-item-default__images"
	imageWrapperSelector = ".schedule-event-item-default__images .schedule-event-item-default__image-wrapper"
	locationSelector     = ".schedule-event-item-default__location .schedule-event-location"
	homeRankSelector     = ".schedule-event-item-default__home-rank, .schedule-event-item-default__nebraska-rank, .schedule-event-item-default__rank--home"
	opponentRankSelector = ".schedule-event-item-default__opponent-rank, .schedule-event-item-default__rank--away"
	winSelector          = ".schedule-event-item-result__win"
	lossSelector         = ".schedule-event-item-result__loss"
	tieSelector          = ".schedule-event-item-result__tie"
	resultLabelSelector  = ".schedule-event-item-result__label"
	dateTimeSelector     = ".schedule-event-date time[datetime]"
	anyDateTimeSelector  = "time[datetime]"
	dateLabelSelector    = ".schedule-event-date__label"
	dateDateSelector     = ".schedule-event-date__date"
	venueTypeSelector    = ".schedule-event-venue__type-label"
	tvLogoSelector       = ".schedule-event-bottom__link img, .schedule-event-item-links__image"
	linkSelector         = ".schedule-event-bottom__link"
	linkTitleSelector    = ".schedule-event-item-links__title"
)

// extractDOM parses every event card. found is false when the page has no
// cards at all, which is the signal to try another strategy.
func extractDOM(doc *goquery.Document, opts Options) (events []schedule.RawEvent, skipped int, found bool) {
	cards := doc.Find(eventSelector)
	if cards.Length() == 0 {
		return nil, 0, false
	}

	events = make([]schedule.RawEvent, 0, cards.Length())
	cards.Each(func(_ int, card *goquery.Selection) {
		ev, ok := parseCard(card, opts)
		if !ok {
			skipped++
			return
		}
		events = append(events, ev)
	})
	return events, skipped, true
}

// parseCard extracts one event card. ok is false for cards that do not
// involve the subject team or have no opponent.
func parseCard(card *goquery.Selection, opts Options) (schedule.RawEvent, bool) {
	var ev schedule.RawEvent

	ev.DividerText = strings.ToLower(firstText(card, dividerSelector))
	ev.OppRank, ev.OpponentName = schedule.SplitRank(firstText(card, opponentNameSelector))
	if ev.OpponentName == "" {
		return ev, false
	}

	wrappers := card.Find(imageWrapperSelector)
	if !involvesTeam(wrappers, opts.TeamMarker) {
		return ev, false
	}
	if wrappers.Length() >= 1 {
		ev.NebraskaLogo = imageSource(wrappers.Eq(0).Find("img"), opts.SourceURL)
	}
	if wrappers.Length() >= 2 {
		ev.OpponentLogo = imageSource(wrappers.Eq(1).Find("img"), opts.SourceURL)
	}

	ev.City, ev.Arena = schedule.SplitLocation(firstText(card, locationSelector))

	// The rank strip shows the team's rank first, then the opponent's.
	ranks := schedule.FindRanks(firstText(card, imagesSelector))
	if len(ranks) >= 1 {
		ev.NURank = schedule.IntPtr(ranks[0])
	}
	if ev.OppRank == nil && len(ranks) >= 2 {
		ev.OppRank = schedule.IntPtr(ranks[1])
	}
	if ev.NURank == nil {
		if r := schedule.FindRanks(firstText(card, homeRankSelector)); len(r) > 0 {
			ev.NURank = schedule.IntPtr(r[0])
		}
	}
	if ev.OppRank == nil {
		if r := schedule.FindRanks(firstText(card, opponentRankSelector)); len(r) > 0 {
			ev.OppRank = schedule.IntPtr(r[0])
		}
	}

	parseResult(card, &ev)
	parseDate(card, &ev)
	ev.VenueLabel = venueLabel(card, ev.DividerText, ev.City, opts.HomeCity)

	ev.TVNetworkLogo = imageSource(card.Find(tvLogoSelector), opts.SourceURL)
	card.Find(linkSelector).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		title := firstText(a, linkTitleSelector)
		if title == "" {
			title = schedule.CleanText(a.Text())
		}
		ev.Links = append(ev.Links, schedule.Link{Title: title, Href: resolveURL(opts.SourceURL, href)})
	})

	return ev, true
}

// parseResult fills the outcome for finished matches; for upcoming ones the
// result label carries the local start time instead.
func parseResult(card *goquery.Selection, ev *schedule.RawEvent) {
	label := firstText(card, resultLabelSelector)

	var outcome string
	switch {
	case card.Find(winSelector).Length() > 0:
		outcome = "W"
	case card.Find(lossSelector).Length() > 0:
		outcome = "L"
	case card.Find(tieSelector).Length() > 0:
		outcome = "T"
	}

	if outcome != "" {
		ev.Status = schedule.StatusFinal
		ev.Result = &schedule.Result{Outcome: outcome, Sets: schedule.ParseSets(label)}
		return
	}
	ev.TimeLocal = label
	if label != "" {
		ev.Status = schedule.StatusScheduled
	} else {
		ev.Status = "tbd"
	}
}

// parseDate prefers the machine-readable datetime attribute and always keeps
// the visible label for the normalizer.
func parseDate(card *goquery.Selection, ev *schedule.RawEvent) {
	for _, sel := range []string{dateTimeSelector, anyDateTimeSelector} {
		attr, ok := card.Find(sel).First().Attr("datetime")
		if !ok {
			continue
		}
		attr = strings.TrimSpace(attr)
		if day, _, hasTime := strings.Cut(attr, "T"); hasTime && schedule.IsISODate(day) {
			ev.Date = day
			break
		}
		if schedule.IsISODate(attr) {
			ev.Date = attr
			break
		}
	}

	ev.DateText = firstText(card, dateLabelSelector)
	if ev.DateText == "" {
		ev.DateText = firstText(card, dateDateSelector)
	}
}

// venueLabel uses the explicit Home/Away/Neutral label when the card has one
// and otherwise infers it from the divider preposition.
func venueLabel(card *goquery.Selection, divider, city, homeCity string) string {
	explicit := strings.ToLower(firstText(card, venueTypeSelector))
	switch {
	case strings.Contains(explicit, "home"):
		return "Home"
	case strings.Contains(explicit, "away"):
		return "Away"
	case strings.Contains(explicit, "neutral"):
		return "Neutral"
	}

	switch schedule.ResolveVenue(divider, city, homeCity) {
	case schedule.Home:
		return "Home"
	case schedule.Away:
		return "Away"
	default:
		return "Neutral"
	}
}

// involvesTeam reports whether the subject team is one of the two
// participants. Cards without any participant markers are kept, since a
// single-team schedule page does not label its own side.
func involvesTeam(wrappers *goquery.Selection, marker string) bool {
	want := labelWords(marker)
	if len(want) == 0 {
		return true
	}

	var labels []string
	wrappers.Each(func(_ int, w *goquery.Selection) {
		w.Find("img").Each(func(_ int, img *goquery.Selection) {
			for _, attr := range []string{"alt", "title"} {
				if v, ok := img.Attr(attr); ok && strings.TrimSpace(v) != "" {
					labels = append(labels, v)
				}
			}
		})
		if txt := schedule.CleanText(w.Text()); txt != "" && len(schedule.FindRanks(txt)) == 0 {
			labels = append(labels, txt)
		}
	})
	if len(labels) == 0 {
		return true
	}

	for _, l := range labels {
		if containsWords(labelWords(l), want) {
			return true
		}
	}
	return false
}

// labelWords splits a participant label into lowercase words. Hyphens stay
// inside a word so "Nebraska-Omaha" never matches "Nebraska".
func labelWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '\''
	})
}

// containsWords reports whether want occurs as a contiguous run in words.
func containsWords(words, want []string) bool {
	for i := 0; i+len(want) <= len(words); i++ {
		match := true
		for j, w := range want {
			if words[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// imageSource returns the first real image URL of the selection resolved
// against base, skipping inline data: placeholders left by lazy loaders.
func imageSource(imgs *goquery.Selection, base string) string {
	img := imgs.First()
	if img.Length() == 0 {
		return ""
	}
	candidates := []string{img.AttrOr("src", ""), img.AttrOr("data-src", "")}
	if srcset := strings.Fields(img.AttrOr("srcset", "")); len(srcset) > 0 {
		candidates = append(candidates, srcset[0])
	}
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c != "" && !strings.HasPrefix(c, "data:image") {
			return resolveURL(base, c)
		}
	}
	return ""
}

// firstText returns the whitespace-collapsed text of the first match.
func firstText(s *goquery.Selection, selector string) string {
	return schedule.CleanText(s.Find(selector).First().Text())
}
