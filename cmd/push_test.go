package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/mp3x/internal/models"
	tu "github.com/desertthunder/mp3x/internal/testing"
)

// stubScanner returns canned library tracks for dry-run previews.
type stubScanner struct {
	tracks []models.LocalTrack
	err    error
}

func (s *stubScanner) Scan(dir string) ([]models.LocalTrack, error) {
	return s.tracks, s.err
}

// stubJobs serves a canned prior sync job.
type stubJobs struct {
	latest *models.SyncJob
}

func (s *stubJobs) Create(job *models.SyncJob) error { return nil }

func (s *stubJobs) Latest(playlistName string) (*models.SyncJob, error) {
	return s.latest, nil
}

func TestReportLastRun(t *testing.T) {
	t.Run("prints the prior run against the playlist", func(t *testing.T) {
		job := models.NewSyncJob(1, models.SyncPush, "p1", "Mix")
		job.Complete(10, 9, 1)

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Spotify: &tu.MockService{},
			Jobs:    &stubJobs{latest: job},
			Output:  output,
		})

		runner.reportLastRun("Mix")

		result := output.String()
		if !strings.Contains(result, "Last push") {
			t.Errorf("expected prior run line, got %q", result)
		}
		if !strings.Contains(result, "9/10 succeeded") {
			t.Errorf("expected prior run counts, got %q", result)
		}
	})

	t.Run("stays silent without a prior run", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Spotify: &tu.MockService{},
			Jobs:    &stubJobs{},
			Output:  output,
		})

		runner.reportLastRun("Mix")

		if output.Len() != 0 {
			t.Errorf("expected no output, got %q", output.String())
		}
	})
}

func TestPushDryRun(t *testing.T) {
	libTracks := []models.LocalTrack{
		{Path: "/lib/roads.mp3", Track: models.Track{Title: "Roads", Artist: "Portishead", ISRC: "ISRC1"}},
		{Path: "/lib/karma.mp3", Track: models.Track{Title: "Karma Police", Artist: "Radiohead"}},
	}

	t.Run("previews against an existing playlist", func(t *testing.T) {
		output := &bytes.Buffer{}
		spotify := &tu.MockService{
			ExportPlaylistFn: func(ctx context.Context, playlistID string) (*models.PlaylistExport, error) {
				if playlistID != "p1" {
					return nil, errors.New("not found")
				}
				return &models.PlaylistExport{
					Playlist: models.Playlist{ID: "p1", Name: "Mix"},
					Tracks:   []models.Track{{ID: "t1", Title: "Roads", Artist: "Portishead", ISRC: "ISRC1"}},
				}, nil
			},
			FindPlaylistFn: func(ctx context.Context, name string) (*models.Playlist, error) {
				if name == "Mix" {
					return &models.Playlist{ID: "p1", Name: "Mix"}, nil
				}
				return nil, nil
			},
		}

		runner := NewRunner(RunnerOpts{
			Spotify: spotify,
			Scanner: &stubScanner{tracks: libTracks},
			Output:  output,
		})

		if err := runner.pushDryRun(context.Background(), "/lib", "Mix"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "Already present: 1") {
			t.Errorf("expected matched count, got %s", result)
		}
		if !strings.Contains(result, "Would add: 1") {
			t.Errorf("expected would-add count, got %s", result)
		}
		if !strings.Contains(result, "Karma Police") {
			t.Errorf("expected missing track listed, got %s", result)
		}
	})

	t.Run("previews a playlist that does not exist yet", func(t *testing.T) {
		output := &bytes.Buffer{}
		spotify := &tu.MockService{
			ExportPlaylistFn: func(ctx context.Context, playlistID string) (*models.PlaylistExport, error) {
				return nil, errors.New("not found")
			},
		}

		runner := NewRunner(RunnerOpts{
			Spotify: spotify,
			Scanner: &stubScanner{tracks: libTracks},
			Output:  output,
		})

		if err := runner.pushDryRun(context.Background(), "/lib", "BrandNew"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "Would create playlist: BrandNew") {
			t.Errorf("expected playlist creation preview, got %s", result)
		}
		if !strings.Contains(result, "Would add: 2") {
			t.Errorf("expected would-add count, got %s", result)
		}
		if !strings.Contains(result, "Roads") || !strings.Contains(result, "Karma Police") {
			t.Errorf("expected all scanned tracks listed, got %s", result)
		}
		if len(spotify.AddedTracks) != 0 {
			t.Errorf("dry run must not add tracks, got %v", spotify.AddedTracks)
		}
	})
}
