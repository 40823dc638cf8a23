package fetch

import (
	"context"
	"time"
)

// DefaultUserAgent identifies the scraper to the schedule site.
const DefaultUserAgent = "vb-schedule/1.0 (github.com/hyst16/VB-Schedule-Nebraska)"

// Fetcher retrieves remote documents.
type Fetcher interface {
	// FetchPage returns the HTML of a schedule page.
	FetchPage(ctx context.Context, url string) ([]byte, error)
	// FetchFile returns the raw bytes of a linked document such as a PDF.
	FetchFile(ctx context.Context, url string) ([]byte, error)
}

// Options configures both fetchers.
type Options struct {
	UserAgent         string
	Timeout           time.Duration
	MaxRetries        int
	RequestsPerMinute int
	// ChromePath selects the Chrome binary for Browser; empty uses the default lookup.
	ChromePath string
}

func (o Options) withDefaults() Options {
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	return o
}

// New returns the browser fetcher when useBrowser is set and the HTTP
// fetcher otherwise.
func New(opts Options, useBrowser bool) Fetcher {
	if useBrowser {
		return NewBrowser(opts)
	}
	return NewHTTP(opts)
}
