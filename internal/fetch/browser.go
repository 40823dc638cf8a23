package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/hyst16/VB-Schedule-Nebraska/internal/logger"
)

const settleDelay = 750 * time.Millisecond

// scrollCards brings every event card into view so lazy-loaded logos
// resolve their real src.
const scrollCards = `(() => {
	const cards = document.querySelectorAll(".schedule-event-item");
	cards.forEach(c => c.scrollIntoView({block: "center"}));
	window.scrollTo(0, 0);
	return cards.length;
})()`

// Browser renders pages in headless Chrome. Linked files are fetched over
// plain HTTP.
type Browser struct {
	chromePath string
	timeout    time.Duration
	userAgent  string
	files      *HTTP
}

// NewBrowser creates a headless Chrome fetcher.
func NewBrowser(opts Options) *Browser {
	opts = opts.withDefaults()
	return &Browser{
		chromePath: opts.ChromePath,
		timeout:    opts.Timeout,
		userAgent:  opts.UserAgent,
		files:      NewHTTP(opts),
	}
}

// FetchPage navigates to url, waits for the body, scrolls the event cards
// into view and returns the rendered document.
func (b *Browser) FetchPage(ctx context.Context, url string) ([]byte, error) {
	start := time.Now()
	defer func() { logger.RecordTiming("fetch.browser", time.Since(start)) }()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.UserAgent(b.userAgent),
	)
	if b.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(b.chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()
	runCtx, cancelRun := context.WithTimeout(browserCtx, b.timeout)
	defer cancelRun()

	var html string
	var cards int
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(scrollCards, &cards),
		chromedp.Sleep(settleDelay),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		logger.IncrCounter("fetch.failures")
		return nil, fmt.Errorf("rendering %s: %w", url, err)
	}

	logger.Debug("page rendered", logger.Fields{"url": url, "cards": cards})
	logger.IncrCounter("fetch.requests")
	return []byte(html), nil
}

// FetchFile fetches a linked document over HTTP.
func (b *Browser) FetchFile(ctx context.Context, url string) ([]byte, error) {
	return b.files.FetchFile(ctx, url)
}
