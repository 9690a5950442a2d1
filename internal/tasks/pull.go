package tasks

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/desertthunder/mp3x/internal/formatter"
	"github.com/desertthunder/mp3x/internal/models"
	"github.com/desertthunder/mp3x/internal/shared"
	"golang.org/x/time/rate"
)

// PullOpts contains configuration for pulling a playlist into the library.
type PullOpts struct {
	OutputDir  string  // Destination directory (default: playlist name)
	NumWorkers int     // Concurrent downloads (default: 3)
	RateLimit  float64 // Downloads started per second (default: 1)
}

// DownloadResult represents the outcome of downloading a single track.
type DownloadResult struct {
	Track   models.Track `json:"track"`
	Path    string       `json:"path,omitempty"`
	Skipped bool         `json:"skipped,omitempty"`
	Success bool         `json:"success"`
	Error   error        `json:"-"`
}

// PullResult contains all data from a pull operation.
type PullResult struct {
	Playlist        *models.PlaylistExport // Source playlist with tracks
	OutputDirectory string                 // Where files were written
	Results         []DownloadResult       // Individual download outcomes
	TotalTracks     int                    // Playlist tracks processed
	Downloaded      int                    // Tracks downloaded this run
	SkippedExisting int                    // Tracks already on disk
	FailedCount     int                    // Tracks that failed to download
	ManifestPath    string                 // Path of the written manifest
}

// downloadJob pairs a track with its position for progress reporting.
type downloadJob struct {
	track models.Track
	index int
}

// Pull downloads a playlist's missing tracks concurrently with rate limiting
// and progress tracking.
//
// This method implements a worker pool pattern so downloads overlap without
// hammering the search backend. Tracks already present in the output directory
// (matched by ISRC or normalized title/artist) are skipped, partial failures
// are reported per track, and a manifest file summarizes the run.
func (e *LibraryEngine) Pull(ctx context.Context, progress chan<- ProgressUpdate, playlistIDOrName string, opts PullOpts) (*PullResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: streaming service not initialized", shared.ErrServiceUnavailable)
	}
	if e.downloader == nil {
		return nil, fmt.Errorf("%w: downloader not initialized", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 6 {
		opts.NumWorkers = 6
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 1.0
	}

	e.sendProgress(progress, fetchPlaylistUpdate(1, 1, playlistIDOrName))

	export, err := e.resolvePlaylist(ctx, playlistIDOrName)
	if err != nil {
		return nil, err
	}

	if opts.OutputDir == "" {
		opts.OutputDir = shared.SanitizeFilename(export.Playlist.Name)
	}

	total := len(export.Tracks)
	result := &PullResult{
		Playlist:        export,
		OutputDirectory: opts.OutputDir,
		Results:         make([]DownloadResult, 0, total),
		TotalTracks:     total,
	}

	e.sendProgress(progress, foundPlaylistUpdate(1, 1, export))

	// Existing files count as present even when their tags were written by
	// another tool, so match on metadata rather than filename.
	var existingISRC, existingKey map[string]models.Track
	if e.scanner != nil {
		if locals, err := e.scanner.Scan(opts.OutputDir); err == nil {
			existing := make([]models.Track, len(locals))
			for i, local := range locals {
				existing[i] = local.Track
			}
			existingISRC, existingKey = playlistKeys(existing)
		}
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan downloadJob, total)
	results := make(chan DownloadResult, total)

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.downloadWorker(ctx, &wg, limiter, jobs, results, opts.OutputDir)
	}

	go func() {
		for i, track := range export.Tracks {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}

			if containsTrack(track, existingISRC, existingKey) {
				results <- DownloadResult{Track: track, Skipped: true, Success: true}
				continue
			}

			jobs <- downloadJob{track: track, index: i}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		switch {
		case res.Skipped:
			result.SkippedExisting++
			e.sendProgress(progress, downloadSkippedUpdate(completed, total, res.Track))
		case res.Success:
			result.Downloaded++
			e.cacheTrack(res.Track, res.Path)
			e.sendProgress(progress, downloadCompletedUpdate(completed, total, res.Track))
		default:
			result.FailedCount++
			e.sendProgress(progress, downloadFailedUpdate(completed, total, res.Track, res.Error))
		}
	}

	e.recordJob(models.SyncPull, &export.Playlist, total, result.Downloaded+result.SkippedExisting, result.FailedCount)

	manifestPath := filepath.Join(opts.OutputDir, "pull_manifest.json")
	if err := formatter.WritePullManifest(pullManifest(result), manifestPath); err != nil {
		return result, fmt.Errorf("pull completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// downloadWorker is a worker goroutine that downloads tracks from the jobs channel.
func (e *LibraryEngine) downloadWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan downloadJob,
	results chan<- DownloadResult,
	destDir string,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := limiter.Wait(ctx); err != nil {
			return
		}

		results <- e.downloadSingleTrack(ctx, job.track, destDir)
	}
}

// downloadSingleTrack downloads one track and embeds the playlist's metadata.
func (e *LibraryEngine) downloadSingleTrack(ctx context.Context, track models.Track, destDir string) DownloadResult {
	result := DownloadResult{Track: track}

	path, err := e.downloader.Download(ctx, track, destDir)
	if err != nil {
		result.Error = err
		return result
	}

	result.Path = path

	if e.writeTags != nil {
		if err := e.writeTags(path, track); err != nil {
			// The file is usable without tags, keep it on disk, but the
			// track counts as failed so the run reports it.
			result.Error = err
			return result
		}
	}

	result.Success = true
	return result
}

// pullManifest converts a PullResult into the formatter's manifest shape.
func pullManifest(r *PullResult) formatter.PullManifest {
	manifest := formatter.PullManifest{
		PlaylistID:      r.Playlist.Playlist.ID,
		PlaylistName:    r.Playlist.Playlist.Name,
		OutputDirectory: r.OutputDirectory,
		TotalTracks:     r.TotalTracks,
		Downloaded:      r.Downloaded,
		Skipped:         r.SkippedExisting,
		Failed:          r.FailedCount,
	}

	for _, res := range r.Results {
		entry := formatter.PullManifestEntry{
			Title:   res.Track.Title,
			Artist:  res.Track.Artist,
			Path:    res.Path,
			Skipped: res.Skipped,
			Success: res.Success,
		}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		manifest.Tracks = append(manifest.Tracks, entry)
	}

	return manifest
}
