package cli

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"

	"github.com/hyst16/VB-Schedule-Nebraska/internal/extractor"
	"github.com/hyst16/VB-Schedule-Nebraska/internal/logger"
	"github.com/hyst16/VB-Schedule-Nebraska/internal/schedule"
	"github.com/hyst16/VB-Schedule-Nebraska/internal/storage"
)

func newScrapeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Fetch the schedule page and write the raw events file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.scrape(cmd.Context())
			if err != nil {
				return err
			}
			return a.report("scrape", res)
		},
	}
}

// scrape fetches the page, extracts events and writes the raw file. A fetch
// failure is the only error; an empty schedule is a successful run.
func (a *app) scrape(ctx context.Context) (StageResult, error) {
	start := time.Now()

	page, err := a.fetcher.FetchPage(ctx, a.cfg.SourceURL)
	if err != nil {
		return StageResult{}, fmt.Errorf("fetching schedule page: %w", err)
	}
	logger.Debug("fetched schedule page", logger.Fields{"url": a.cfg.SourceURL, "bytes": len(page)})

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return StageResult{}, fmt.Errorf("parsing HTML: %w", err)
	}

	res := extractor.Extract(doc, a.cfg.ExtractOptions())
	if len(res.Events) == 0 {
		if events := a.pdfFallback(ctx, doc); len(events) > 0 {
			res = extractor.Result{Events: events, Strategy: extractor.StrategyPDF}
		}
	}

	payload := &schedule.RawPayload{
		SourceURL: a.cfg.SourceURL,
		ScrapedAt: a.now().In(a.cfg.Location()).Format(time.RFC3339),
		Items:     res.Events,
	}
	if err := a.store.SaveRaw(payload); err != nil {
		return StageResult{}, err
	}

	logger.AddCounter("events.extracted", int64(len(res.Events)))
	logger.AddCounter("events.skipped", int64(res.Skipped))
	logger.RecordTiming("stage.scrape", time.Since(start))
	logger.Info("scrape complete", logger.Fields{
		"strategy": string(res.Strategy),
		"events":   len(res.Events),
		"skipped":  res.Skipped,
		"path":     a.store.Path(storage.RawFile),
	})
	if len(res.Events) == 0 {
		logger.Warn("no schedule events found", logger.Fields{"url": a.cfg.SourceURL})
	}

	return StageResult{
		Stage:    "scrape",
		File:     a.store.Path(storage.RawFile),
		Count:    len(res.Events),
		Strategy: string(res.Strategy),
		Skipped:  res.Skipped,
	}, nil
}

// pdfFallback parses the printable schedule linked from the page. Failures
// are logged and yield no events.
func (a *app) pdfFallback(ctx context.Context, doc *goquery.Document) []schedule.RawEvent {
	link := extractor.FindPDFLink(doc, a.cfg.SourceURL)
	if link == "" {
		return nil
	}

	data, err := a.fetcher.FetchFile(ctx, link)
	if err != nil {
		logger.Warn("printable schedule fetch failed", logger.Fields{"url": link, "error": err.Error()})
		return nil
	}
	events, err := extractor.ExtractPDF(data)
	if err != nil {
		logger.Warn("printable schedule unreadable", logger.Fields{"url": link, "error": err.Error()})
		return nil
	}
	logger.Info("used printable schedule", logger.Fields{"url": link, "events": len(events)})
	return events
}
