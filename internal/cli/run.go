package cli

import (
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	var withICS bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run scrape, normalize and manifest in sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scraped, err := a.scrape(cmd.Context())
			if err != nil {
				return err
			}
			normalized, err := a.normalize()
			if err != nil {
				return err
			}
			manifested, err := a.manifest()
			if err != nil {
				return err
			}
			stages := []StageResult{scraped, normalized, manifested}

			if withICS {
				cal, err := a.ics()
				if err != nil {
					return err
				}
				stages = append(stages, cal)
			}
			return a.report("run", stages...)
		},
	}
	cmd.Flags().BoolVar(&withICS, "ics", false, "Also export the iCalendar feed")
	return cmd
}
