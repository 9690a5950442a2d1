package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/mp3x/internal/shared"
	"github.com/desertthunder/mp3x/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Push scans the library and syncs its tracks onto a Spotify playlist.
func (r *Runner) Push(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String("dir")
	playlistName := cmd.String("playlist")

	if dir == "" {
		dir = r.config.Library.Dir
	}

	if cmd.Bool("dry-run") {
		return r.pushDryRun(ctx, dir, playlistName)
	}

	r.logger.Info("starting push", "dir", dir, "playlist", playlistName)
	r.writePlain("Pushing local library to Spotify...\n")
	r.writePlain("Library: %s\n", dir)
	r.writePlain("Playlist: %s\n", playlistName)
	r.reportLastRun(playlistName)
	r.writePlain("\n")

	// Create progress channel and goroutine to handle updates
	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.ScanLibrary:
				r.writePlain("📂 %s\n", update.Message)
			case tasks.MatchTracks:
				if update.Step == 0 {
					r.writePlain("\n🔍 %s\n", update.Message)
				} else {
					r.writePlain("   %s\n", update.Message)
				}
			case tasks.ResolvePlaylist, tasks.AddTracks:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	// Run the engine operation
	result, err := r.engine.Push(ctx, progressCh, dir, playlistName)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Push Complete!")
	if result.CreatedPlaylist {
		r.writePlain("Created playlist: %s\n", result.Playlist.Name)
	} else {
		r.writePlain("Playlist: %s\n", result.Playlist.Name)
	}
	r.writePlain("Local tracks: %d\n", result.TotalTracks)
	r.writePlain("Added: %d\n", result.AddedCount)
	r.writePlain("Already present: %d\n", result.AlreadyPresent)
	r.writePlain("Match rate: %.1f%%\n", result.MatchPercentage)

	if result.FailedCount > 0 {
		r.writePlain("\nFailed to match %d tracks:\n", result.FailedCount)
		for _, match := range result.TrackMatches {
			if match.Error != nil {
				r.writePlain("  - %s\n", match.Local.DisplayName())
			}
		}
	}

	return nil
}

// pushDryRun previews a push without searching Spotify or touching the playlist.
func (r *Runner) pushDryRun(ctx context.Context, dir, playlistName string) error {
	r.logger.Info("push dry run", "dir", dir, "playlist", playlistName)
	r.writePlain("Dry run: comparing library against playlist...\n\n")

	result, err := r.engine.Diff(ctx, nil, dir, playlistName)
	if errors.Is(err, shared.ErrPlaylistNotFound) {
		return r.pushDryRunNewPlaylist(dir, playlistName)
	}
	if err != nil {
		return err
	}

	r.writePlainHeader("Push Preview")
	r.writePlain("Library: %s (%d tracks)\n", dir, result.Comparison.LocalCount)
	r.writePlain("Playlist: %s\n", result.Comparison.Playlist.Playlist.Name)
	r.writePlain("Already present: %d\n", result.Comparison.MatchedCount)
	r.writePlain("Would add: %d\n", len(result.Comparison.MissingRemote))

	if len(result.Comparison.MissingRemote) > 0 {
		r.writePlain("\nTracks to add:\n")
		for i, track := range result.Comparison.MissingRemote {
			r.writePlain("  %d. %s\n", i+1, track.DisplayName())
		}
	}

	return nil
}

// pushDryRunNewPlaylist previews a push whose destination playlist does not
// exist yet: the push would create it and every scanned track is a candidate.
func (r *Runner) pushDryRunNewPlaylist(dir, playlistName string) error {
	tracks, err := r.scanner.Scan(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrLibraryNotFound, err)
	}

	r.writePlainHeader("Push Preview")
	r.writePlain("Library: %s (%d tracks)\n", dir, len(tracks))
	r.writePlain("Would create playlist: %s (private)\n", playlistName)
	r.writePlain("Would add: %d\n", len(tracks))

	if len(tracks) > 0 {
		r.writePlain("\nTracks to add:\n")
		for i, track := range tracks {
			r.writePlain("  %d. %s\n", i+1, track.DisplayName())
		}
	}

	return nil
}

// Diff compares the local library against a Spotify playlist.
func (r *Runner) Diff(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String("dir")
	playlist := cmd.String("playlist")

	if dir == "" {
		dir = r.config.Library.Dir
	}

	r.logger.Info("diff requested", "dir", dir, "playlist", playlist)
	r.writePlain("Comparing library against playlist...\n\n")

	progressCh := make(chan tasks.ProgressUpdate, 10)
	go func() {
		for update := range progressCh {
			r.writePlain("📥 %s\n", update.Message)
		}
	}()

	result, err := r.engine.Diff(ctx, progressCh, dir, playlist)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n✓ Library: %s (%d tracks)\n", dir, result.Comparison.LocalCount)
	r.writePlain("✓ Playlist: %s (%d tracks)\n\n", result.Comparison.Playlist.Playlist.Name, len(result.Comparison.Playlist.Tracks))

	r.writePlainHeader("Comparison Results")
	r.writePlain("Matched: %d tracks\n", result.Comparison.MatchedCount)
	r.writePlain("Missing from playlist: %d tracks\n", len(result.Comparison.MissingRemote))
	r.writePlain("Missing from library: %d tracks\n\n", len(result.Comparison.MissingLocal))

	if len(result.Comparison.MissingRemote) > 0 {
		r.writePlain("Missing from playlist:\n")
		for i, track := range result.Comparison.MissingRemote {
			r.writePlain("  %d. %s", i+1, track.DisplayName())
			if track.Album != "" {
				r.writePlain(" (%s)", track.Album)
			}
			r.writePlain("\n")
		}
		r.writePlain("\n")
	}

	if len(result.Comparison.MissingLocal) > 0 {
		r.writePlain("Missing from library:\n")
		for i, track := range result.Comparison.MissingLocal {
			r.writePlain("  %d. %s", i+1, track.DisplayName())
			if track.Album != "" {
				r.writePlain(" (%s)", track.Album)
			}
			r.writePlain("\n")
		}
	}

	return nil
}
