package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/hyst16/VB-Schedule-Nebraska/internal/schedule"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// StageResult summarizes one pipeline stage.
type StageResult struct {
	Stage    string          `json:"stage"`
	File     string          `json:"file"`
	Count    int             `json:"count"`
	Strategy string          `json:"strategy,omitempty"`
	Skipped  int             `json:"skipped,omitempty"`
	Missing  int             `json:"missing_images,omitempty"`
	Stats    *schedule.Stats `json:"stats,omitempty"`
}

// OutputResult contains data to be output
type OutputResult struct {
	RunID      string        `json:"run_id"`
	Command    string        `json:"command"`
	FinishedAt time.Time     `json:"finished_at"`
	Stages     []StageResult `json:"stages"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	for _, s := range result.Stages {
		switch s.Stage {
		case "scrape":
			fmt.Fprintf(w, "scrape: %d events via %s -> %s\n", s.Count, s.Strategy, s.File)
			if verbose && s.Skipped > 0 {
				fmt.Fprintf(w, "        %d cards skipped\n", s.Skipped)
			}
		case "normalize":
			fmt.Fprintf(w, "normalize: %d rows -> %s\n", s.Count, s.File)
			if s.Stats != nil && (verbose || s.Stats.Dropped() > 0) {
				fmt.Fprintf(w, "           season %d, %d in, %d dropped (no date %d, off season %d, invalid %d)\n",
					s.Stats.SeasonYear, s.Stats.Input, s.Stats.Dropped(),
					s.Stats.DroppedNoDate, s.Stats.DroppedOffSeason, s.Stats.DroppedInvalid)
			}
		case "manifest":
			fmt.Fprintf(w, "manifest: %d arenas -> %s\n", s.Count, s.File)
			if s.Missing > 0 {
				fmt.Fprintf(w, "          %d arena images missing\n", s.Missing)
			}
		default:
			fmt.Fprintf(w, "%s: %d -> %s\n", s.Stage, s.Count, s.File)
		}
	}
	if verbose {
		fmt.Fprintf(w, "run %s finished at %s\n", result.RunID, result.FinishedAt.Format(time.RFC3339))
	}
	return nil
}
