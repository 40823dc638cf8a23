package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hyst16/VB-Schedule-Nebraska/internal/config"
	"github.com/hyst16/VB-Schedule-Nebraska/internal/fetch"
	"github.com/hyst16/VB-Schedule-Nebraska/internal/logger"
	"github.com/hyst16/VB-Schedule-Nebraska/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// app carries the state shared by the subcommands of one invocation.
type app struct {
	// flags
	envFile    string
	dataDir    string
	imagesDir  string
	sourceURL  string
	format     string
	logLevel   string
	resultCSS  string
	titleRank  bool
	useBrowser bool
	verbose    bool

	cfg     *config.Config
	store   *storage.Storage
	fetcher fetch.Fetcher
	runID   string
	now     func() time.Time
	out     io.Writer
	errOut  io.Writer
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{now: time.Now, out: os.Stdout, errOut: os.Stderr})
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vb-schedule",
		Short: "Scrape and normalize the Nebraska volleyball schedule",
		Long: `vb-schedule scrapes the public volleyball schedule page, normalizes the
matches into UI-ready rows and builds the arena image manifest.

Stages communicate only through JSON files in the data directory:
  scrape     -> vb_raw.json
  normalize  -> vb_schedule_normalized.json
  manifest   -> arena_manifest.json
  ics        -> vb_schedule.ics`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Debug("run metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.envFile, "env-file", ".env", "Optional dotenv file to load")
	pf.StringVar(&a.dataDir, "data-dir", "data", "Directory for pipeline files (env: VB_DATA_DIR)")
	pf.StringVar(&a.imagesDir, "images-dir", "docs/images/arenas", "Arena image directory referenced by the manifest (env: VB_IMAGES_DIR)")
	pf.StringVar(&a.sourceURL, "source-url", config.DefaultSourceURL, "Schedule page URL (env: VB_SOURCE_URL)")
	pf.StringVar(&a.format, "format", "text", "Summary format: text or json")
	pf.StringVar(&a.logLevel, "log-level", "INFO", "Log level: DEBUG, INFO, WARN or ERROR (env: LOG_LEVEL)")
	pf.StringVar(&a.resultCSS, "result-css", "letter", "result_css vocabulary: letter (W/L/T) or word (win/loss/tie) (env: VB_RESULT_CSS)")
	pf.BoolVar(&a.titleRank, "title-rank", true, "Prefix titles with the opponent rank (env: VB_TITLE_RANK_PREFIX)")
	pf.BoolVar(&a.useBrowser, "browser", false, "Render the page in headless Chrome (env: VB_USE_BROWSER)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newScrapeCmd(a),
		newNormalizeCmd(a),
		newManifestCmd(a),
		newICSCmd(a),
		newRunCmd(a),
	)
	return cmd
}

// setup loads configuration, applies explicitly set flags over it and
// prepares logging, storage and the fetcher.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(a.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", a.format)
	}

	cfg, err := config.Load(a.envFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = a.dataDir
	}
	if flags.Changed("images-dir") {
		cfg.ImagesDir = a.imagesDir
	}
	if flags.Changed("source-url") {
		cfg.SourceURL = a.sourceURL
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("result-css") {
		cfg.ResultStyle = a.resultCSS
	}
	if flags.Changed("title-rank") {
		cfg.TitleRankPrefix = a.titleRank
	}
	if flags.Changed("browser") {
		cfg.UseBrowser = a.useBrowser
	}
	if a.verbose {
		cfg.LogLevel = string(logger.LevelDebug)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	a.runID = uuid.NewString()
	logger.SetDefault(logger.New(cfg.Level(), a.errOut).With(logger.Fields{
		"run_id":  a.runID,
		"command": cmd.Name(),
	}))

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	a.store = store

	if a.fetcher == nil {
		a.fetcher = fetch.New(cfg.FetchOptions(), cfg.UseBrowser)
	}

	logger.Debug("configuration loaded", logger.Fields{
		"data_dir":    store.Dir(),
		"source_url":  cfg.SourceURL,
		"browser":     cfg.UseBrowser,
		"result_css":  cfg.ResultStyle,
		"title_rank":  cfg.TitleRankPrefix,
		"images_dir":  cfg.ImagesDir,
		"season_zone": cfg.Timezone,
	})
	return nil
}

// report writes the command summary to stdout.
func (a *app) report(command string, stages ...StageResult) error {
	result := &OutputResult{
		RunID:      a.runID,
		Command:    command,
		FinishedAt: a.now().UTC(),
		Stages:     stages,
	}
	if err := WriteOutput(a.out, result, OutputFormat(strings.ToLower(a.format)), a.verbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		logger.Error("command failed", nil, err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}
