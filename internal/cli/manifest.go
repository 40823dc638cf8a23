package cli

import (
	"github.com/spf13/cobra"

	"github.com/hyst16/VB-Schedule-Nebraska/internal/logger"
	"github.com/hyst16/VB-Schedule-Nebraska/internal/manifest"
	"github.com/hyst16/VB-Schedule-Nebraska/internal/storage"
)

func newManifestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "manifest",
		Short: "Build the arena image manifest from the normalized schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.manifest()
			if err != nil {
				return err
			}
			return a.report("manifest", res)
		},
	}
}

func (a *app) manifest() (StageResult, error) {
	rows, err := a.store.LoadSchedule()
	if err != nil {
		return StageResult{}, err
	}

	entries := manifest.Build(rows, a.cfg.ImagesDir)
	if err := a.store.SaveManifest(entries); err != nil {
		return StageResult{}, err
	}

	missing := manifest.Missing(entries, ".")
	for _, e := range missing {
		logger.Debug("arena image missing", logger.Fields{"arena_key": e.ArenaKey, "image_path": e.ImagePath})
	}
	logger.SetGauge("arenas", float64(len(entries)))
	logger.Info("manifest complete", logger.Fields{
		"arenas":         len(entries),
		"missing_images": len(missing),
	})

	return StageResult{
		Stage:   "manifest",
		File:    a.store.Path(storage.ManifestFile),
		Count:   len(entries),
		Missing: len(missing),
	}, nil
}
