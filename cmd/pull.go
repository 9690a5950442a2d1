package main

import (
	"context"

	"github.com/desertthunder/mp3x/internal/downloader"
	"github.com/desertthunder/mp3x/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Pull downloads a Spotify playlist's missing tracks into the library.
func (r *Runner) Pull(ctx context.Context, cmd *cli.Command) error {
	playlist := cmd.String("playlist")
	outputDir := cmd.String("dir")
	workers := cmd.Int("workers")
	rateLimit := cmd.Float("rate")

	if outputDir == "" {
		outputDir = r.config.Library.Dir
	}
	if workers == 0 {
		workers = r.config.Downloader.Workers
	}
	if rateLimit == 0 {
		rateLimit = r.config.Downloader.RateLimit
	}
	if format := cmd.String("format"); format != "" {
		if dl, ok := r.downloader.(*downloader.Downloader); ok {
			dl.SetFormat(format)
		}
	}

	r.logger.Info("starting pull", "playlist", playlist, "output", outputDir)
	r.writePlain("Pulling playlist from Spotify...\n")
	r.writePlain("Playlist: %s\n", playlist)
	r.writePlain("Output: %s\n", outputDir)
	r.reportLastRun(playlist)
	r.writePlain("\n")

	// Create progress channel and goroutine to handle updates
	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchPlaylist:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.DownloadTracks:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	opts := tasks.PullOpts{
		OutputDir:  outputDir,
		NumWorkers: workers,
		RateLimit:  rateLimit,
	}

	// Run the engine operation
	result, err := r.engine.Pull(ctx, progressCh, playlist, opts)
	close(progressCh)

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Pull Complete!")
	r.writePlain("Playlist: %s (%d tracks)\n", result.Playlist.Playlist.Name, result.TotalTracks)
	r.writePlain("Downloaded: %d\n", result.Downloaded)
	r.writePlain("Already in library: %d\n", result.SkippedExisting)
	r.writePlain("Manifest: %s\n", result.ManifestPath)

	if result.FailedCount > 0 {
		r.writePlain("\nFailed to download %d tracks:\n", result.FailedCount)
		for _, res := range result.Results {
			if !res.Success && !res.Skipped {
				r.writePlain("  - %s\n", res.Track.DisplayName())
			}
		}
	}

	return nil
}
