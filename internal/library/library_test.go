package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/mp3x/internal/models"
)

func TestParseFilename(t *testing.T) {
	cases := []struct {
		name string
		path string
		want models.LocalTrack
	}{
		{
			name: "four parts with track number",
			path: "/music/03 - Radiohead - OK Computer - Karma Police.mp3",
			want: models.LocalTrack{Track: models.Track{
				TrackNumber: 3, Artist: "Radiohead", Album: "OK Computer", Title: "Karma Police",
			}},
		},
		{
			name: "three parts",
			path: "Radiohead - OK Computer - Karma Police.mp3",
			want: models.LocalTrack{Track: models.Track{
				Artist: "Radiohead", Album: "OK Computer", Title: "Karma Police",
			}},
		},
		{
			name: "two parts",
			path: "OK Computer - Karma Police.mp3",
			want: models.LocalTrack{Track: models.Track{
				Album: "OK Computer", Title: "Karma Police",
			}},
		},
		{
			name: "single part",
			path: "Karma Police.mp3",
			want: models.LocalTrack{Track: models.Track{Title: "Karma Police"}},
		},
		{
			name: "underscores become spaces",
			path: "Radiohead_-_OK_Computer_-_Karma_Police.mp3",
			want: models.LocalTrack{Track: models.Track{
				Artist: "Radiohead", Album: "OK Computer", Title: "Karma Police",
			}},
		},
		{
			name: "non numeric first part of four",
			path: "Intro - Radiohead - OK Computer - Airbag.mp3",
			want: models.LocalTrack{Track: models.Track{
				Artist: "Radiohead", Album: "OK Computer", Title: "Airbag",
			}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseFilename(tc.path)

			if got.Title != tc.want.Title {
				t.Errorf("expected title %q, got %q", tc.want.Title, got.Title)
			}
			if got.Artist != tc.want.Artist {
				t.Errorf("expected artist %q, got %q", tc.want.Artist, got.Artist)
			}
			if got.Album != tc.want.Album {
				t.Errorf("expected album %q, got %q", tc.want.Album, got.Album)
			}
			if got.TrackNumber != tc.want.TrackNumber {
				t.Errorf("expected track number %d, got %d", tc.want.TrackNumber, got.TrackNumber)
			}
		})
	}
}

func TestScanner(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		scanner := NewScanner("mp3", nil)

		if _, err := scanner.Scan(filepath.Join(t.TempDir(), "nope")); err == nil {
			t.Error("expected an error for a missing directory")
		}
	})

	t.Run("path is a file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "song.mp3")
		if err := os.WriteFile(path, []byte("not audio"), 0644); err != nil {
			t.Fatal(err)
		}

		scanner := NewScanner("mp3", nil)
		if _, err := scanner.Scan(path); err == nil {
			t.Error("expected an error for a non-directory path")
		}
	})

	t.Run("falls back to filename for tagless files", func(t *testing.T) {
		dir := t.TempDir()
		sub := filepath.Join(dir, "albums")
		if err := os.Mkdir(sub, 0755); err != nil {
			t.Fatal(err)
		}

		files := []string{
			filepath.Join(dir, "Radiohead - OK Computer - Karma Police.mp3"),
			filepath.Join(sub, "Airbag.mp3"),
			filepath.Join(dir, "notes.txt"),
		}
		for _, f := range files {
			if err := os.WriteFile(f, []byte("data"), 0644); err != nil {
				t.Fatal(err)
			}
		}

		scanner := NewScanner("mp3", nil)
		tracks, err := scanner.Scan(dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(tracks) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(tracks))
		}

		for _, track := range tracks {
			if track.Source != models.SourceFilename {
				t.Errorf("expected filename source for %s, got %s", track.Path, track.Source)
			}
			if track.Title == "" {
				t.Errorf("expected a title for %s", track.Path)
			}
		}
	})

	t.Run("default extension", func(t *testing.T) {
		scanner := NewScanner("", nil)

		if scanner.ext != ".mp3" {
			t.Errorf("expected .mp3, got %s", scanner.ext)
		}
	})
}

func TestReadTrack(t *testing.T) {
	t.Run("unreadable file uses filename", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "Portishead - Dummy - Roads.mp3")
		if err := os.WriteFile(path, []byte("junk"), 0644); err != nil {
			t.Fatal(err)
		}

		scanner := NewScanner("mp3", nil)
		track := scanner.ReadTrack(path)

		if track.Source != models.SourceFilename {
			t.Errorf("expected filename source, got %s", track.Source)
		}
		if track.Title != "Roads" {
			t.Errorf("expected title Roads, got %q", track.Title)
		}
		if track.Path != path {
			t.Errorf("expected path %s, got %s", path, track.Path)
		}
	})
}
