// Package extractor turns a rendered schedule page into raw schedule events.
//
// Three strategies are tried in order: the event-card DOM of the current site,
// the server-rendered text blocks of the older layout, and finally the
// printable PDF schedule linked from the page. Extraction is pure and
// tolerant: a missing field becomes an absent value, a broken card is skipped,
// and a page with nothing recognisable yields no events rather than an error.
package extractor
