package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/hyst16/VB-Schedule-Nebraska/internal/logger"
	"github.com/hyst16/VB-Schedule-Nebraska/internal/schedule"
	"github.com/hyst16/VB-Schedule-Nebraska/internal/storage"
)

func newNormalizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize",
		Short: "Normalize the raw events file into schedule rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.normalize()
			if err != nil {
				return err
			}
			return a.report("normalize", res)
		},
	}
}

func (a *app) normalize() (StageResult, error) {
	start := time.Now()

	raw, err := a.store.LoadRaw()
	if err != nil {
		return StageResult{}, err
	}
	overrides := a.store.LoadOverrides()

	opts := a.cfg.NormalizeOptions()
	opts.Now = a.now
	rows, stats := schedule.Normalize(raw.Items, raw.ScrapedAt, overrides, opts)
	stats.Input += raw.Invalid
	stats.DroppedInvalid += raw.Invalid

	if err := a.store.SaveSchedule(rows); err != nil {
		return StageResult{}, err
	}

	logger.SetGauge("season_year", float64(stats.SeasonYear))
	logger.AddCounter("rows.emitted", int64(stats.Emitted))
	logger.AddCounter("rows.dropped_no_date", int64(stats.DroppedNoDate))
	logger.AddCounter("rows.dropped_off_season", int64(stats.DroppedOffSeason))
	logger.AddCounter("rows.dropped_invalid", int64(stats.DroppedInvalid))
	logger.RecordTiming("stage.normalize", time.Since(start))

	fields := logger.Fields{
		"season_year":        stats.SeasonYear,
		"input":              stats.Input,
		"emitted":            stats.Emitted,
		"dropped_no_date":    stats.DroppedNoDate,
		"dropped_off_season": stats.DroppedOffSeason,
		"dropped_invalid":    stats.DroppedInvalid,
		"overrides":          len(overrides),
	}
	if stats.Dropped() > 0 {
		logger.Warn("rows dropped during normalization", fields)
	}
	logger.Info("normalize complete", fields)

	return StageResult{
		Stage: "normalize",
		File:  a.store.Path(storage.ScheduleFile),
		Count: stats.Emitted,
		Stats: &stats,
	}, nil
}
