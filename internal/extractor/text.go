package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/hyst16/VB-Schedule-Nebraska/internal/schedule"
)

// Patterns for the server-rendered text layout, where each event is a run of
// lines such as:
//
//	Home / Friday / Sep 5 / W / Win 3-0 / #1 / vs. / Wright State / Lincoln, Neb. / Bob Devaney Sports Center
var (
	venueLine    = regexp.MustCompile(`^(Home|Away|Neutral)$`)
	textDate     = regexp.MustCompile(`\b(?:Mon|Tues?|Wed(?:nes)?|Thu(?:rs)?|Fri|Sat(?:ur)?|Sun)(?:day)?\.?,?\s+([A-Z][a-z]{2,8})\.?\s+(\d{1,2})\b`)
	textTime     = regexp.MustCompile(`\b(\d{1,2}(?::\d{2})?\s*[AaPp]\.?[Mm]\.?(?:\s+[CEMP][SD]T)?)`)
	textResult   = regexp.MustCompile(`\b([WLT])\s+(?:Win|Loss|Tie)?\s*(\d+\s*[-–—]\s*\d+)`)
	textNURank   = regexp.MustCompile(`(?:^| )#\s*(\d{1,2})(?: |$)`)
	dividerLine  = regexp.MustCompile(`(?i)^(vs\.?|at)(?:\s+(.+))?$`)
	trailerWords = regexp.MustCompile(`\s+(?:Watch|Listen|Live Stats|Sold Out|Box Score|Recap|Tickets)\b.*$`)
)

// extractText parses the server-rendered text layout.
func extractText(doc *goquery.Document) []schedule.RawEvent {
	lines := textLines(doc)
	for i, ln := range lines {
		if ln == "Schedule Events" {
			lines = lines[i:]
			break
		}
	}

	var events []schedule.RawEvent
	for _, block := range splitBlocks(lines) {
		if ev, ok := parseBlock(block); ok {
			events = append(events, ev)
		}
	}
	return events
}

// splitBlocks starts a new block at every Home/Away/Neutral line.
func splitBlocks(lines []string) [][]string {
	var blocks [][]string
	var buf []string
	for _, ln := range lines {
		if venueLine.MatchString(ln) && len(buf) > 0 {
			blocks = append(blocks, buf)
			buf = nil
		}
		buf = append(buf, ln)
	}
	if len(buf) > 0 {
		blocks = append(blocks, buf)
	}
	return blocks
}

func parseBlock(block []string) (schedule.RawEvent, bool) {
	var ev schedule.RawEvent
	if !venueLine.MatchString(block[0]) {
		return ev, false
	}
	ev.VenueLabel = block[0]

	chunk := strings.Join(block, " ")
	m := textDate.FindStringSubmatch(chunk)
	if m == nil || schedule.ParseMonth(m[1]) == 0 {
		return ev, false
	}
	ev.DateText = m[1] + " " + m[2]

	dividerAt := -1
	for i, ln := range block {
		dm := dividerLine.FindStringSubmatch(ln)
		if dm == nil {
			continue
		}
		dividerAt = i
		ev.DividerText = strings.ToLower(dm[1])
		if dm[2] != "" {
			ev.OpponentName = dm[2]
		} else if i+1 < len(block) {
			ev.OpponentName = block[i+1]
		}
		break
	}
	if dividerAt < 0 || ev.OpponentName == "" {
		return ev, false
	}
	ev.OppRank, ev.OpponentName = schedule.SplitRank(trailerWords.ReplaceAllString(ev.OpponentName, ""))

	before := strings.Join(block[:dividerAt], " ")
	if nm := textNURank.FindStringSubmatch(before); nm != nil {
		if n, err := strconv.Atoi(nm[1]); err == nil {
			ev.NURank = schedule.IntPtr(n)
		}
	}

	for _, ln := range block[dividerAt:] {
		if strings.Contains(ln, "/") {
			ev.City, ev.Arena = schedule.SplitLocation(trailerWords.ReplaceAllString(ln, ""))
			break
		}
	}
	if rm := textResult.FindStringSubmatch(before); rm != nil {
		ev.Result = &schedule.Result{Outcome: rm[1], Sets: schedule.ParseSets(rm[2])}
		ev.Status = schedule.StatusFinal
	} else if tm := textTime.FindStringSubmatch(before); tm != nil {
		ev.TimeLocal = tm[1]
		ev.Status = schedule.StatusScheduled
	} else {
		ev.Status = "tbd"
	}
	return ev, true
}

// textLines returns the page's visible text, one whitespace-collapsed line
// per text node line, skipping scripts and styles.
func textLines(doc *goquery.Document) []string {
	var lines []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			for _, ln := range strings.Split(n.Data, "\n") {
				if ln = schedule.CleanText(ln); ln != "" {
					lines = append(lines, ln)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return lines
}
