package cli

import (
	"github.com/spf13/cobra"

	"github.com/hyst16/VB-Schedule-Nebraska/internal/calendar"
	"github.com/hyst16/VB-Schedule-Nebraska/internal/logger"
	"github.com/hyst16/VB-Schedule-Nebraska/internal/storage"
)

func newICSCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ics",
		Short: "Export the normalized schedule as an iCalendar feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.ics()
			if err != nil {
				return err
			}
			return a.report("ics", res)
		},
	}
}

func (a *app) ics() (StageResult, error) {
	rows, err := a.store.LoadSchedule()
	if err != nil {
		return StageResult{}, err
	}

	if err := a.store.WriteFile(storage.CalendarFile, []byte(calendar.GenerateICS(rows, a.now()))); err != nil {
		return StageResult{}, err
	}
	logger.Info("calendar written", logger.Fields{"events": len(rows)})

	return StageResult{
		Stage: "ics",
		File:  a.store.Path(storage.CalendarFile),
		Count: len(rows),
	}, nil
}
