package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyst16/VB-Schedule-Nebraska/internal/schedule"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.SourceURL != DefaultSourceURL {
		t.Errorf("SourceURL = %q", cfg.SourceURL)
	}
	if cfg.DataDir != "data" || cfg.ImagesDir != "docs/images/arenas" {
		t.Errorf("DataDir/ImagesDir = %q/%q", cfg.DataDir, cfg.ImagesDir)
	}
	if !cfg.TitleRankPrefix || cfg.ResultStyle != "letter" {
		t.Errorf("policy = %v/%q, want rank prefix on and letter style", cfg.TitleRankPrefix, cfg.ResultStyle)
	}
	if cfg.FetchTimeout != 30*time.Second || cfg.FetchRetries != 3 || cfg.RequestsPerMinute != 30 {
		t.Errorf("fetch = %v/%d/%d", cfg.FetchTimeout, cfg.FetchRetries, cfg.RequestsPerMinute)
	}
	if cfg.Location().String() != "America/Chicago" {
		t.Errorf("Location() = %v", cfg.Location())
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("VB_SOURCE_URL", "https://example.com/schedule")
	t.Setenv("VB_TITLE_RANK_PREFIX", "false")
	t.Setenv("VB_RESULT_CSS", "word")
	t.Setenv("VB_FETCH_TIMEOUT", "45")
	t.Setenv("VB_FETCH_RETRIES", "not-a-number")
	t.Setenv("VB_USE_BROWSER", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.SourceURL != "https://example.com/schedule" {
		t.Errorf("SourceURL = %q", cfg.SourceURL)
	}
	if cfg.TitleRankPrefix {
		t.Error("TitleRankPrefix = true, want false")
	}
	if cfg.FetchTimeout != 45*time.Second {
		t.Errorf("FetchTimeout = %v, want 45s", cfg.FetchTimeout)
	}
	if cfg.FetchRetries != 3 {
		t.Errorf("FetchRetries = %d, want fallback 3", cfg.FetchRetries)
	}
	if !cfg.UseBrowser {
		t.Error("UseBrowser = false, want true")
	}
	if opts := cfg.NormalizeOptions(); opts.ResultStyle != schedule.ResultStyleWord || opts.TitleRankPrefix {
		t.Errorf("NormalizeOptions() = %+v", opts)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("VB_HOME_CITY=Omaha\nVB_TEAM_MARKER=Creighton\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables that are already set.
	t.Setenv("VB_TEAM_MARKER", "Nebraska")
	t.Setenv("VB_HOME_CITY", "")
	os.Unsetenv("VB_HOME_CITY") // nolint:errcheck

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HomeCity != "Omaha" {
		t.Errorf("HomeCity = %q, want Omaha from .env", cfg.HomeCity)
	}
	if cfg.TeamMarker != "Nebraska" {
		t.Errorf("TeamMarker = %q, want environment to win", cfg.TeamMarker)
	}
	if eo := cfg.ExtractOptions(); eo.HomeCity != "Omaha" || eo.SourceURL != cfg.SourceURL {
		t.Errorf("ExtractOptions() = %+v", eo)
	}
}

func TestLoad_MissingEnvFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Errorf("Load() with missing env file error = %v, want nil", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"bad result style", func(c *Config) { c.ResultStyle = "emoji" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "chatty" }, true},
		{"bad time zone", func(c *Config) { c.Timezone = "Mars/Olympus" }, true},
		{"negative retries", func(c *Config) { c.FetchRetries = -1 }, true},
		{"empty source", func(c *Config) { c.SourceURL = " " }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)

			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFetchOptions(t *testing.T) {
	cfg, _ := Load("")
	cfg.FetchRetries = 5
	cfg.ChromePath = "/usr/bin/chromium"

	fo := cfg.FetchOptions()

	if fo.MaxRetries != 5 || fo.ChromePath != "/usr/bin/chromium" || fo.Timeout != cfg.FetchTimeout {
		t.Errorf("FetchOptions() = %+v", fo)
	}
}
