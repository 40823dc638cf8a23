package extractor

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"

	"github.com/hyst16/VB-Schedule-Nebraska/internal/schedule"
)

var (
	// Fri., Nov. 28 Penn State * Lincoln, Neb. (Bob Devaney Sports Center) BTN 5:30 p.m.
	pdfLine   = regexp.MustCompile(`^(?:Sun|Mon|Tues?|Wed|Thu(?:rs?)?|Fri|Sat)\.?\s*,?\s*([A-Za-z]{3,})\.?\s+(\d{1,2})\s+(.*)$`)
	pdfCity   = regexp.MustCompile(`^(.*)\s+([A-Z][A-Za-z.'-]*(?:\s[A-Z][A-Za-z.'-]*)?,\s+[A-Z][A-Za-z]*\.?)$`)
	pdfResult = regexp.MustCompile(`\b([WLT]),?\s+(\d+\s*[-–—]\s*\d+)`)
)

// FindPDFLink returns the absolute URL of the printable schedule linked from
// the page, or "" when there is none.
func FindPDFLink(doc *goquery.Document, sourceURL string) string {
	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		text := strings.ToLower(a.Text())
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if strings.Contains(text, "schedule") && strings.Contains(text, "pdf") &&
			strings.HasSuffix(strings.ToLower(href), ".pdf") {
			found = resolveURL(sourceURL, href)
			return false
		}
		return true
	})
	return found
}

// PDFText extracts the plain text of a PDF document.
func PDFText(data []byte) (text string, err error) {
	// The PDF reader panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("reading PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting text from PDF: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("reading plain text from PDF: %w", err)
	}
	return string(b), nil
}

// ExtractPDF parses a printable schedule. Any failure yields no events.
func ExtractPDF(data []byte) ([]schedule.RawEvent, error) {
	text, err := PDFText(data)
	if err != nil {
		return []schedule.RawEvent{}, err
	}
	return ParsePDFText(text), nil
}

// ParsePDFText matches schedule lines in the text of a printable schedule.
func ParsePDFText(text string) []schedule.RawEvent {
	events := []schedule.RawEvent{}
	for _, line := range strings.Split(text, "\n") {
		line = schedule.CleanText(line)
		m := pdfLine.FindStringSubmatch(line)
		if m == nil || schedule.ParseMonth(m[1]) == 0 {
			continue
		}
		if ev, ok := parsePDFRest(m[3]); ok {
			ev.DateText = strings.TrimSuffix(m[1], ".") + " " + m[2]
			events = append(events, ev)
		}
	}
	return events
}

// parsePDFRest splits "Penn State * Lincoln, Neb. (Arena) BTN 5:30 p.m.".
// A "*" marks a conference match.
func parsePDFRest(rest string) (schedule.RawEvent, bool) {
	var ev schedule.RawEvent

	head, tail := rest, ""
	if open := strings.Index(rest, "("); open > 0 {
		head = rest[:open]
		if end := strings.Index(rest[open:], ")"); end > 0 {
			ev.Arena = schedule.StripSponsor(rest[open+1 : open+end])
			tail = rest[open+end+1:]
		}
	}
	head = strings.TrimSpace(head)

	opponent := head
	if star := strings.Index(head, "*"); star >= 0 {
		opponent = head[:star]
		ev.City = strings.TrimSpace(head[star+1:])
	} else if cm := pdfCity.FindStringSubmatch(head); cm != nil && ev.Arena != "" {
		opponent, ev.City = cm[1], cm[2]
	}

	opponent = strings.TrimSpace(opponent)
	if dm := dividerLine.FindStringSubmatch(opponent); dm != nil && dm[2] != "" {
		ev.DividerText = strings.ToLower(dm[1])
		opponent = dm[2]
	}
	ev.OppRank, ev.OpponentName = schedule.SplitRank(opponent)
	if ev.OpponentName == "" {
		return ev, false
	}

	if rm := pdfResult.FindStringSubmatch(tail); rm != nil {
		ev.Result = &schedule.Result{Outcome: rm[1], Sets: schedule.ParseSets(rm[2])}
		ev.Status = schedule.StatusFinal
	} else if tm := textTime.FindStringSubmatch(tail); tm != nil {
		ev.TimeLocal = tm[1]
		ev.Status = schedule.StatusScheduled
	}
	return ev, true
}
