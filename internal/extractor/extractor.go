package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hyst16/VB-Schedule-Nebraska/internal/schedule"
)

// Strategy names the extraction path that produced a result.
type Strategy string

const (
	StrategyDOM  Strategy = "dom"
	StrategyText Strategy = "text"
	StrategyPDF  Strategy = "pdf"
	StrategyNone Strategy = "none"
)

// Options configures extraction for one team.
type Options struct {
	// SourceURL resolves relative link and image targets.
	SourceURL string
	// TeamMarker identifies the subject team in participant logo labels.
	TeamMarker string
	// HomeCity marks a "vs" divider as a home match.
	HomeCity string
}

// Result is the ordered output of one extraction.
type Result struct {
	Events   []schedule.RawEvent
	Strategy Strategy
	// Skipped counts cards dropped by the subject-team filter or for lacking an opponent.
	Skipped int
}

// Extract runs the DOM strategy and falls back to the server-rendered text
// strategy when the page has no event cards.
func Extract(doc *goquery.Document, opts Options) Result {
	if events, skipped, found := extractDOM(doc, opts); found {
		return Result{Events: events, Strategy: StrategyDOM, Skipped: skipped}
	}
	if events := extractText(doc); len(events) > 0 {
		return Result{Events: events, Strategy: StrategyText}
	}
	return Result{Events: []schedule.RawEvent{}, Strategy: StrategyNone}
}

// resolveURL makes href absolute against base. Unparsable values come back
// unchanged.
func resolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || base == "" {
		return href
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}
