package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hyst16/VB-Schedule-Nebraska/internal/schedule"
)

func TestBuild(t *testing.T) {
	rows := []schedule.ScheduleRow{
		{Opponent: "Kentucky", Arena: "Bob Devaney Sports Center", City: "Lincoln, Neb.", ArenaKey: "bob-devaney-sports-center"},
		{Opponent: "Texas", Arena: "Gregory Gym", City: "Austin, Texas", ArenaKey: "gregory-gym"},
		{Opponent: "Wisconsin", Arena: "Bob Devaney Sports Center", City: "Lincoln, Neb.", ArenaKey: "bob-devaney-sports-center"},
	}

	entries := Build(rows, "")

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].ArenaKey != "bob-devaney-sports-center" || entries[1].ArenaKey != "gregory-gym" {
		t.Errorf("entries not sorted by key: %q, %q", entries[0].ArenaKey, entries[1].ArenaKey)
	}
	if entries[0].SampleOpponent != "Wisconsin" {
		t.Errorf("SampleOpponent = %q, want last seen Wisconsin", entries[0].SampleOpponent)
	}
	if entries[1].ImageFilename != "gregory-gym.jpg" {
		t.Errorf("ImageFilename = %q", entries[1].ImageFilename)
	}
	if entries[1].ImagePath != "docs/images/arenas/gregory-gym.jpg" {
		t.Errorf("ImagePath = %q", entries[1].ImagePath)
	}
}

func TestBuild_UnknownCollision(t *testing.T) {
	rows := []schedule.ScheduleRow{
		{Opponent: "Iowa", ArenaKey: "unknown"},
		{Opponent: "Ohio State", ArenaKey: "unknown", City: "Columbus, Ohio"},
	}

	entries := Build(rows, "img/")

	if len(entries) != 1 {
		t.Fatalf("got %d entries, want exactly one for the shared unknown key", len(entries))
	}
	e := entries[0]
	if e.ArenaKey != "unknown" || e.DisplayName != "Unknown Arena" {
		t.Errorf("entry = %+v", e)
	}
	if e.ImagePath != "img/unknown.jpg" {
		t.Errorf("ImagePath = %q, want img/unknown.jpg", e.ImagePath)
	}
}

func TestBuild_KeyFallbacks(t *testing.T) {
	tests := []struct {
		name         string
		row          schedule.ScheduleRow
		wantKey      string
		wantOpponent string
	}{
		{"slug from arena", schedule.ScheduleRow{Arena: "Xfinity Center", Opponent: "Maryland"}, "xfinity-center", "Maryland"},
		{"no arena", schedule.ScheduleRow{}, "unknown", "TBA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Build([]schedule.ScheduleRow{tt.row}, "")
			if len(entries) != 1 {
				t.Fatalf("got %d entries, want 1", len(entries))
			}
			if entries[0].ArenaKey != tt.wantKey {
				t.Errorf("ArenaKey = %q, want %q", entries[0].ArenaKey, tt.wantKey)
			}
			if entries[0].SampleOpponent != tt.wantOpponent {
				t.Errorf("SampleOpponent = %q, want %q", entries[0].SampleOpponent, tt.wantOpponent)
			}
		})
	}
}

func TestBuild_Empty(t *testing.T) {
	entries := Build(nil, "")
	if entries == nil || len(entries) != 0 {
		t.Errorf("Build(nil) = %v, want empty slice", entries)
	}
}

func TestMissing(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "docs", "images", "arenas")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "gregory-gym.jpg"), []byte("jpg"), 0644); err != nil {
		t.Fatal(err)
	}

	entries := Build([]schedule.ScheduleRow{
		{Arena: "Gregory Gym", ArenaKey: "gregory-gym"},
		{Arena: "UW Field House", ArenaKey: "uw-field-house"},
	}, "")

	missing := Missing(entries, root)

	if len(missing) != 1 || missing[0].ArenaKey != "uw-field-house" {
		t.Errorf("Missing() = %+v, want only uw-field-house", missing)
	}
}
