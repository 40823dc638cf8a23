package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/hyst16/VB-Schedule-Nebraska/internal/logger"
	"github.com/hyst16/VB-Schedule-Nebraska/internal/manifest"
	"github.com/hyst16/VB-Schedule-Nebraska/internal/schedule"
)

// File names inside the data directory.
const (
	RawFile       = "vb_raw.json"
	ScheduleFile  = "vb_schedule_normalized.json"
	ManifestFile  = "arena_manifest.json"
	OverridesFile = "arena_overrides.json"
	CalendarFile  = "vb_schedule.ics"
)

// Storage reads and writes the pipeline files in one directory.
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// Dir returns the resolved data directory.
func (s *Storage) Dir() string {
	return s.dataDir
}

// Path returns the path of a file in the data directory.
func (s *Storage) Path(name string) string {
	return filepath.Join(s.dataDir, name)
}

// WriteJSON writes v as indented JSON with HTML characters left unescaped.
func (s *Storage) WriteJSON(name string, v interface{}) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return s.WriteFile(name, buf.Bytes())
}

// WriteFile atomically replaces a file in the data directory.
func (s *Storage) WriteFile(name string, data []byte) error {
	if err := renameio.WriteFile(s.Path(name), data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// readJSON decodes a file into v. found is false when the file does not
// exist.
func (s *Storage) readJSON(name string, v interface{}) (found bool, err error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("parsing %s: %w", name, err)
	}
	return true, nil
}

// LoadRaw loads the raw events file. A missing or malformed file yields an
// empty payload, which normalizes to an empty schedule. Individual items
// that fail to decode are skipped and counted in Invalid.
func (s *Storage) LoadRaw() (*schedule.RawPayload, error) {
	var p schedule.RawPayload
	found, err := s.readJSON(RawFile, &p)
	if err != nil {
		if !found {
			return nil, err
		}
		logger.Warn("raw events file is malformed, treating as empty", logger.Fields{"path": s.Path(RawFile), "error": err.Error()})
		p = schedule.RawPayload{}
	}
	if p.Invalid > 0 {
		logger.Warn("skipped malformed raw events", logger.Fields{"path": s.Path(RawFile), "skipped": p.Invalid})
	}
	if p.Items == nil {
		p.Items = []schedule.RawEvent{}
	}
	return &p, nil
}

// SaveRaw writes the raw events file.
func (s *Storage) SaveRaw(p *schedule.RawPayload) error {
	if p.Items == nil {
		p.Items = []schedule.RawEvent{}
	}
	return s.WriteJSON(RawFile, p)
}

// LoadSchedule loads the normalized schedule. A missing file yields no rows.
func (s *Storage) LoadSchedule() ([]schedule.ScheduleRow, error) {
	var p schedule.SchedulePayload
	if _, err := s.readJSON(ScheduleFile, &p); err != nil {
		return nil, err
	}
	if p.Items == nil {
		p.Items = []schedule.ScheduleRow{}
	}
	return p.Items, nil
}

// SaveSchedule writes the normalized schedule.
func (s *Storage) SaveSchedule(rows []schedule.ScheduleRow) error {
	if rows == nil {
		rows = []schedule.ScheduleRow{}
	}
	return s.WriteJSON(ScheduleFile, schedule.SchedulePayload{Items: rows})
}

// LoadManifest loads the arena manifest. A missing file yields no entries.
func (s *Storage) LoadManifest() ([]manifest.Entry, error) {
	var p manifest.Payload
	if _, err := s.readJSON(ManifestFile, &p); err != nil {
		return nil, err
	}
	if p.Arenas == nil {
		p.Arenas = []manifest.Entry{}
	}
	return p.Arenas, nil
}

// SaveManifest writes the arena manifest.
func (s *Storage) SaveManifest(entries []manifest.Entry) error {
	if entries == nil {
		entries = []manifest.Entry{}
	}
	return s.WriteJSON(ManifestFile, manifest.Payload{Arenas: entries})
}

// LoadOverrides loads the arena override table. Overrides are optional: a
// missing, unreadable or malformed file yields an empty table.
func (s *Storage) LoadOverrides() schedule.ArenaOverrides {
	overrides := schedule.ArenaOverrides{}
	found, err := s.readJSON(OverridesFile, &overrides)
	if err != nil {
		logger.Warn("ignoring arena overrides", logger.Fields{"path": s.Path(OverridesFile), "error": err.Error()})
		return schedule.ArenaOverrides{}
	}
	if found {
		logger.Debug("loaded arena overrides", logger.Fields{"count": len(overrides)})
	}
	return overrides
}
