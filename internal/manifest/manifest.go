package manifest

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hyst16/VB-Schedule-Nebraska/internal/schedule"
)

// DefaultImagesDir is where arena photos live relative to the site root.
const DefaultImagesDir = "docs/images/arenas"

const (
	unknownArenaName = "Unknown Arena"
	unknownOpponent  = "TBA"
)

// Entry is one arena of the manifest.
type Entry struct {
	ArenaKey       string `json:"arena_key"`
	DisplayName    string `json:"display_name"`
	SampleOpponent string `json:"sample_opponent"`
	City           string `json:"city"`
	ImageFilename  string `json:"image_filename"`
	ImagePath      string `json:"image_path"`
}

// Payload is the arena manifest file.
type Payload struct {
	Arenas []Entry `json:"arenas"`
}

// Build groups rows by arena key, keeping the last row seen for each key,
// and returns the entries sorted by key. Rows whose arenas slug to the same
// key (including "unknown") share one entry.
func Build(rows []schedule.ScheduleRow, imagesDir string) []Entry {
	if imagesDir == "" {
		imagesDir = DefaultImagesDir
	}
	imagesDir = strings.TrimSuffix(filepath.ToSlash(imagesDir), "/")

	byKey := make(map[string]Entry)
	for _, r := range rows {
		key := strings.TrimSpace(r.ArenaKey)
		if key == "" {
			key = schedule.ArenaKey(r.Arena)
		}

		name := strings.TrimSpace(r.Arena)
		if name == "" {
			name = unknownArenaName
		}
		opponent := strings.TrimSpace(r.Opponent)
		if opponent == "" {
			opponent = unknownOpponent
		}

		filename := key + ".jpg"
		byKey[key] = Entry{
			ArenaKey:       key,
			DisplayName:    name,
			SampleOpponent: opponent,
			City:           strings.TrimSpace(r.City),
			ImageFilename:  filename,
			ImagePath:      path.Join(imagesDir, filename),
		}
	}

	entries := make([]Entry, 0, len(byKey))
	for _, e := range byKey {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ArenaKey < entries[j].ArenaKey
	})
	return entries
}

// Missing returns the entries whose image file does not exist under root.
func Missing(entries []Entry, root string) []Entry {
	var missing []Entry
	for _, e := range entries {
		_, err := os.Stat(filepath.Join(root, filepath.FromSlash(e.ImagePath)))
		if errors.Is(err, fs.ErrNotExist) {
			missing = append(missing, e)
		}
	}
	return missing
}
