// Package config provides the pipeline configuration loaded from the
// environment, an optional .env file and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hyst16/VB-Schedule-Nebraska/internal/extractor"
	"github.com/hyst16/VB-Schedule-Nebraska/internal/fetch"
	"github.com/hyst16/VB-Schedule-Nebraska/internal/logger"
	"github.com/hyst16/VB-Schedule-Nebraska/internal/manifest"
	"github.com/hyst16/VB-Schedule-Nebraska/internal/schedule"
)

// DefaultSourceURL is the public schedule page.
const DefaultSourceURL = "https://huskers.com/sports/volleyball/schedule"

// Config holds every setting of a pipeline run.
type Config struct {
	// Source
	SourceURL  string
	TeamMarker string
	HomeCity   string

	// Files
	DataDir   string
	ImagesDir string

	// Normalizer policy
	Timezone        string
	TitleRankPrefix bool
	ResultStyle     string

	// Fetching
	UseBrowser        bool
	ChromePath        string
	FetchTimeout      time.Duration
	FetchRetries      int
	RequestsPerMinute int
	UserAgent         string

	LogLevel string

	location *time.Location
}

// Load reads envFile when it exists, then the environment. Values are not
// validated until Validate so flags can override them first.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	return &Config{
		SourceURL:  envOr("VB_SOURCE_URL", DefaultSourceURL),
		TeamMarker: envOr("VB_TEAM_MARKER", "Nebraska"),
		HomeCity:   envOr("VB_HOME_CITY", "Lincoln"),

		DataDir:   envOr("VB_DATA_DIR", "data"),
		ImagesDir: envOr("VB_IMAGES_DIR", manifest.DefaultImagesDir),

		Timezone:        envOr("VB_TIMEZONE", "America/Chicago"),
		TitleRankPrefix: envBool("VB_TITLE_RANK_PREFIX", true),
		ResultStyle:     envOr("VB_RESULT_CSS", string(schedule.ResultStyleLetter)),

		UseBrowser:        envBool("VB_USE_BROWSER", false),
		ChromePath:        envOr("VB_CHROME_PATH", ""),
		FetchTimeout:      envDuration("VB_FETCH_TIMEOUT", 30*time.Second),
		FetchRetries:      envInt("VB_FETCH_RETRIES", 3),
		RequestsPerMinute: envInt("VB_REQUESTS_PER_MINUTE", 30),
		UserAgent:         envOr("VB_USER_AGENT", fetch.DefaultUserAgent),

		LogLevel: envOr("LOG_LEVEL", string(logger.LevelInfo)),
	}, nil
}

// Validate checks enumerated values and resolves the time zone.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SourceURL) == "" {
		return fmt.Errorf("source URL must not be empty")
	}
	if _, err := schedule.ParseResultStyle(c.ResultStyle); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.FetchRetries < 0 {
		return fmt.Errorf("fetch retries must be >= 0, got %d", c.FetchRetries)
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("loading time zone %q: %w", c.Timezone, err)
	}
	c.location = loc
	return nil
}

// Location returns the reference time zone, UTC before Validate succeeds.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// Level returns the configured log level.
func (c *Config) Level() logger.Level {
	level, _ := logger.ParseLevel(c.LogLevel)
	return level
}

// NormalizeOptions returns the normalizer policy.
func (c *Config) NormalizeOptions() schedule.Options {
	style, err := schedule.ParseResultStyle(c.ResultStyle)
	if err != nil {
		style = schedule.ResultStyleLetter
	}
	return schedule.Options{
		TitleRankPrefix: c.TitleRankPrefix,
		ResultStyle:     style,
		HomeCity:        c.HomeCity,
		Location:        c.Location(),
		Now:             time.Now,
	}
}

// ExtractOptions returns the extractor settings.
func (c *Config) ExtractOptions() extractor.Options {
	return extractor.Options{
		SourceURL:  c.SourceURL,
		TeamMarker: c.TeamMarker,
		HomeCity:   c.HomeCity,
	}
}

// FetchOptions returns the fetcher settings.
func (c *Config) FetchOptions() fetch.Options {
	return fetch.Options{
		UserAgent:         c.UserAgent,
		Timeout:           c.FetchTimeout,
		MaxRetries:        c.FetchRetries,
		RequestsPerMinute: c.RequestsPerMinute,
		ChromePath:        c.ChromePath,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

// envDuration accepts Go durations ("45s") or whole seconds ("45").
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}
