package formatter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/mp3x/internal/models"
)

func sampleExport() *models.PlaylistExport {
	return &models.PlaylistExport{
		Playlist: models.Playlist{
			ID:          "pl_123",
			Name:        "Road Trip",
			Description: "Songs for driving",
			Public:      false,
			TrackCount:  2,
		},
		Tracks: []models.Track{
			{ID: "t1", Title: "Karma Police", Artist: "Radiohead", Album: "OK Computer", Duration: 261, ISRC: "GBAYE9700123"},
			{ID: "t2", Title: "Roads", Artist: "Portishead", Album: "Dummy", Duration: 307},
		},
	}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(sampleExport())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	t.Run("header row", func(t *testing.T) {
		if lines[0] != "ID,Title,Artist,Album,Duration,ISRC" {
			t.Errorf("unexpected header %q", lines[0])
		}
	})

	t.Run("one row per track", func(t *testing.T) {
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d", len(lines))
		}
		if !strings.Contains(lines[1], "Karma Police") {
			t.Errorf("expected first track row, got %q", lines[1])
		}
		if !strings.Contains(lines[2], "Portishead") {
			t.Errorf("expected second track row, got %q", lines[2])
		}
	})
}

func TestExportToMarkdown(t *testing.T) {
	data, err := ExportToMarkdown(sampleExport())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	content := string(data)

	t.Run("title heading", func(t *testing.T) {
		if !strings.HasPrefix(content, "# Road Trip") {
			t.Errorf("expected heading, got %q", content[:20])
		}
	})

	t.Run("numbered tracks with duration", func(t *testing.T) {
		if !strings.Contains(content, "1. Radiohead - Karma Police (OK Computer) [4:21]") {
			t.Errorf("missing first track line in %q", content)
		}
	})

	t.Run("visibility", func(t *testing.T) {
		if !strings.Contains(content, "**Visibility**: private") {
			t.Error("expected private visibility")
		}
	})
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(sampleExport())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "Playlist: Road Trip") {
		t.Error("expected playlist name")
	}
	if !strings.Contains(content, "2. Portishead - Roads") {
		t.Error("expected numbered track lines")
	}
}

func TestWriteExport(t *testing.T) {
	t.Run("csv writes tracks and metadata files", func(t *testing.T) {
		dir := t.TempDir()

		files, err := WriteExport(sampleExport(), "csv", dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(files) != 2 {
			t.Fatalf("expected 2 files, got %d", len(files))
		}

		for _, f := range files {
			if _, err := os.Stat(f); err != nil {
				t.Errorf("expected %s to exist: %v", f, err)
			}
		}
	})

	t.Run("json is the default", func(t *testing.T) {
		dir := t.TempDir()

		files, err := WriteExport(sampleExport(), "", dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(files) != 1 || !strings.HasSuffix(files[0], "Road Trip.json") {
			t.Fatalf("unexpected files %v", files)
		}

		data, err := os.ReadFile(files[0])
		if err != nil {
			t.Fatal(err)
		}

		var export models.PlaylistExport
		if err := json.Unmarshal(data, &export); err != nil {
			t.Fatalf("expected valid JSON: %v", err)
		}
		if export.Playlist.Name != "Road Trip" {
			t.Errorf("expected playlist name round trip, got %q", export.Playlist.Name)
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		if _, err := WriteExport(sampleExport(), "yaml", t.TempDir()); err == nil {
			t.Error("expected an error for an unsupported format")
		}
	})
}

func TestWritePullManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "pull_manifest.json")

	manifest := PullManifest{
		PlaylistID:      "pl_123",
		PlaylistName:    "Road Trip",
		OutputDirectory: "out",
		TotalTracks:     2,
		Downloaded:      1,
		Failed:          1,
		Tracks: []PullManifestEntry{
			{Title: "Karma Police", Artist: "Radiohead", Path: "out/Radiohead - Karma Police.mp3", Success: true},
			{Title: "Roads", Artist: "Portishead", Error: "no results"},
		},
	}

	if err := WritePullManifest(manifest, path); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var decoded PullManifest
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("expected valid JSON: %v", err)
	}

	if decoded.Downloaded != 1 || decoded.Failed != 1 {
		t.Errorf("unexpected counters %+v", decoded)
	}
	if len(decoded.Tracks) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(decoded.Tracks))
	}
	if decoded.Tracks[1].Error != "no results" {
		t.Errorf("expected error string preserved, got %q", decoded.Tracks[1].Error)
	}
}
