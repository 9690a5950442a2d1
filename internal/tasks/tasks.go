package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/mp3x/internal/library"
	"github.com/desertthunder/mp3x/internal/models"
	"github.com/desertthunder/mp3x/internal/services"
	"github.com/desertthunder/mp3x/internal/shared"
)

// TrackMatchResult represents the result of matching a single local track.
type TrackMatchResult struct {
	Local     models.LocalTrack // Local track from the library scan
	Matched   *models.Track     // Matched streaming track (nil if not found)
	FromCache bool              // Match resolved from the local cache
	Error     error             // Error if match failed
}

// PushResult contains all data from a push operation.
type PushResult struct {
	Playlist        *models.Playlist   // Destination playlist
	CreatedPlaylist bool               // Playlist was created during this run
	TrackMatches    []TrackMatchResult // Individual track match results
	TotalTracks     int                // Local tracks processed
	AddedCount      int                // Tracks added to the playlist
	AlreadyPresent  int                // Matched tracks the playlist already had
	FailedCount     int                // Tracks with no match
	MatchPercentage float64            // Match rate as percentage
}

// ComparisonResult contains track comparison details between the library and a playlist.
type ComparisonResult struct {
	Playlist      *models.PlaylistExport // Playlist with tracks
	LocalCount    int                    // Local tracks scanned
	MatchedCount  int                    // Tracks found in both
	MissingRemote []models.Track         // Local tracks absent from the playlist
	MissingLocal  []models.Track         // Playlist tracks absent from the library
}

// DiffResult contains the results of comparing the library against a playlist.
type DiffResult struct {
	Comparison ComparisonResult
}

// SyncEngine defines operations for syncing a local library with a streaming playlist.
type SyncEngine interface {
	// Push scans the library directory and adds its tracks to the named playlist, creating the playlist when absent.
	Push(ctx context.Context, progress chan<- ProgressUpdate, dir, playlistName string) (*PushResult, error)

	// Pull downloads the playlist's tracks that are missing from the output directory.
	Pull(ctx context.Context, progress chan<- ProgressUpdate, playlistIDOrName string, opts PullOpts) (*PullResult, error)

	// Diff compares the library directory against a playlist without changing either side.
	Diff(ctx context.Context, progress chan<- ProgressUpdate, dir, playlistIDOrName string) (*DiffResult, error)
}

// LibraryScanner reads local tracks from a directory.
type LibraryScanner interface {
	Scan(dir string) ([]models.LocalTrack, error)
}

// TrackDownloader fetches a streaming track into a local directory.
type TrackDownloader interface {
	Download(ctx context.Context, track models.Track, destDir string) (string, error)
}

// TrackCacher persists track matches between runs.
// This abstraction allows for easier testing and decoupling from concrete implementation.
type TrackCacher interface {
	CacheTrack(service string, track models.Track, path string) error
	CachedTrack(path string) *models.PersistedTrack
	TrackByISRC(isrc string) *models.PersistedTrack
}

// JobRecorder persists one record per sync run.
type JobRecorder interface {
	Create(job *models.SyncJob) error
	Latest(playlistName string) (*models.SyncJob, error)
}

// LibraryEngine implements SyncEngine for library/playlist operations.
// Contains dependencies on the streaming service, scanner, and downloader.
type LibraryEngine struct {
	service    services.Service
	scanner    LibraryScanner
	downloader TrackDownloader
	tracks     TrackCacher // optional
	jobs       JobRecorder // optional
	writeTags  func(path string, track models.Track) error
}

// NewLibraryEngine creates a new LibraryEngine with the provided dependencies.
// The cacher and recorder may be nil, disabling persistence.
func NewLibraryEngine(service services.Service, scanner LibraryScanner, dl TrackDownloader, tracks TrackCacher, jobs JobRecorder) *LibraryEngine {
	return &LibraryEngine{
		service:    service,
		scanner:    scanner,
		downloader: dl,
		tracks:     tracks,
		jobs:       jobs,
		writeTags:  library.WriteTags,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *LibraryEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// cacheTrack persists a match without disrupting the run. Errors are ignored.
func (e *LibraryEngine) cacheTrack(track models.Track, path string) {
	if e.tracks == nil {
		return
	}
	_ = e.tracks.CacheTrack(e.service.Name(), track, path)
}

// recordJob persists a sync job row. Errors are ignored.
func (e *LibraryEngine) recordJob(direction models.SyncDirection, pl *models.Playlist, total, succeeded, failed int) {
	if e.jobs == nil || pl == nil {
		return
	}
	job := models.NewSyncJob(0, direction, pl.ID, pl.Name)
	job.Complete(total, succeeded, failed)
	_ = e.jobs.Create(job)
}

// matchLocal resolves a local track to a streaming track, consulting the
// cache by path and ISRC before searching.
func (e *LibraryEngine) matchLocal(ctx context.Context, local models.LocalTrack) TrackMatchResult {
	result := TrackMatchResult{Local: local}

	if e.tracks != nil {
		if cached := e.tracks.CachedTrack(local.Path); cached != nil {
			dto := cached.Dto()
			dto.ID = cached.ServiceID()
			result.Matched = &dto
			result.FromCache = true
			return result
		}

		// A file matched under another path, e.g. after a move or rename,
		// still resolves by its ISRC. Re-cache it so the new path hits next run.
		if local.ISRC != "" {
			if cached := e.tracks.TrackByISRC(local.ISRC); cached != nil {
				dto := cached.Dto()
				dto.ID = cached.ServiceID()
				result.Matched = &dto
				result.FromCache = true
				e.cacheTrack(dto, local.Path)
				return result
			}
		}
	}

	matched, err := e.service.SearchTrack(ctx, local.Title, local.Artist)
	if err != nil {
		result.Error = err
		return result
	}

	result.Matched = matched
	e.cacheTrack(*matched, local.Path)
	return result
}

// playlistKeys builds ISRC and normalized title/artist lookup maps for a track set.
func playlistKeys(tracks []models.Track) (byISRC, byKey map[string]models.Track) {
	byISRC = make(map[string]models.Track)
	byKey = make(map[string]models.Track)
	for _, track := range tracks {
		byKey[shared.NormalizeTrackKey(track.Title, track.Artist)] = track
		if track.ISRC != "" {
			byISRC[track.ISRC] = track
		}
	}
	return byISRC, byKey
}

// containsTrack reports whether a track is present in the lookup maps,
// preferring ISRC over the normalized key.
func containsTrack(track models.Track, byISRC, byKey map[string]models.Track) bool {
	if track.ISRC != "" {
		if _, found := byISRC[track.ISRC]; found {
			return true
		}
	}
	_, found := byKey[shared.NormalizeTrackKey(track.Title, track.Artist)]
	return found
}

// Push scans the library and syncs its tracks onto the named playlist.
func (e *LibraryEngine) Push(ctx context.Context, progress chan<- ProgressUpdate, dir, playlistName string) (*PushResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: streaming service not initialized", shared.ErrServiceUnavailable)
	}
	if e.scanner == nil {
		return nil, fmt.Errorf("%w: library scanner not initialized", shared.ErrServiceUnavailable)
	}

	result := &PushResult{}

	e.sendProgress(progress, scanLibraryUpdate(1, 1, dir))

	locals, err := e.scanner.Scan(dir)
	if err != nil {
		return nil, err
	}
	if len(locals) == 0 {
		return nil, fmt.Errorf("%w: no audio files in %s", shared.ErrLibraryNotFound, dir)
	}

	total := len(locals)
	result.TotalTracks = total

	e.sendProgress(progress, matchTracksUpdate(0, total, nil))

	matches := make([]TrackMatchResult, total)
	successCount := 0

	for i, local := range locals {
		e.sendProgress(progress, matchTracksUpdate(i+1, total, &local.Track))

		matches[i] = e.matchLocal(ctx, local)
		if matches[i].Error == nil {
			successCount++
		}
	}

	result.TrackMatches = matches
	result.FailedCount = total - successCount
	if total > 0 {
		result.MatchPercentage = float64(successCount) / float64(total) * 100
	}

	if successCount == 0 {
		return result, fmt.Errorf("no tracks were matched - nothing to push")
	}

	e.sendProgress(progress, resolvePlaylistUpdate(1, 1, playlistName))

	playlist, err := e.service.FindPlaylist(ctx, playlistName)
	if err != nil {
		return result, fmt.Errorf("%w: failed to look up playlist: %v", shared.ErrAPIRequest, err)
	}

	var existing []models.Track
	if playlist == nil {
		description := fmt.Sprintf("Synced from local library: %s", dir)
		playlist, err = e.service.CreatePlaylist(ctx, playlistName, description, false)
		if err != nil {
			return result, fmt.Errorf("%w: failed to create playlist: %v", shared.ErrAPIRequest, err)
		}
		result.CreatedPlaylist = true
	} else {
		export, err := e.service.ExportPlaylist(ctx, playlist.ID)
		if err != nil {
			return result, fmt.Errorf("%w: failed to export playlist: %v", shared.ErrAPIRequest, err)
		}
		existing = export.Tracks
	}
	result.Playlist = playlist

	byISRC, byKey := playlistKeys(existing)

	seen := make(map[string]bool)
	var toAdd []string
	for _, match := range matches {
		if match.Matched == nil || seen[match.Matched.ID] {
			continue
		}
		seen[match.Matched.ID] = true

		if containsTrack(*match.Matched, byISRC, byKey) {
			result.AlreadyPresent++
			continue
		}
		toAdd = append(toAdd, match.Matched.ID)
	}

	if len(toAdd) > 0 {
		e.sendProgress(progress, addTracksUpdate(1, 1, len(toAdd), playlist.Name))
		if err := e.service.AddTracks(ctx, playlist.ID, toAdd); err != nil {
			return result, fmt.Errorf("%w: failed to add tracks: %v", shared.ErrAPIRequest, err)
		}
		result.AddedCount = len(toAdd)
	}

	e.recordJob(models.SyncPush, playlist, total, successCount, result.FailedCount)
	e.sendProgress(progress, pushCompletedUpdate(1, 1, playlist, result.AddedCount, result.AlreadyPresent))
	return result, nil
}

// resolvePlaylist exports a playlist by ID, falling back to a name lookup.
func (e *LibraryEngine) resolvePlaylist(ctx context.Context, idOrName string) (*models.PlaylistExport, error) {
	export, err := e.service.ExportPlaylist(ctx, idOrName)
	if err == nil {
		return export, nil
	}

	playlist, findErr := e.service.FindPlaylist(ctx, idOrName)
	if findErr != nil {
		return nil, fmt.Errorf("%w: failed to get playlists: %v", shared.ErrAPIRequest, findErr)
	}
	if playlist == nil {
		return nil, fmt.Errorf("%w: no playlist found with name '%s'", shared.ErrPlaylistNotFound, idOrName)
	}

	export, err = e.service.ExportPlaylist(ctx, playlist.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to export playlist: %v", shared.ErrAPIRequest, err)
	}
	return export, nil
}

// Diff compares the library directory against a playlist.
func (e *LibraryEngine) Diff(ctx context.Context, progress chan<- ProgressUpdate, dir, playlistIDOrName string) (*DiffResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: streaming service not initialized", shared.ErrServiceUnavailable)
	}
	if e.scanner == nil {
		return nil, fmt.Errorf("%w: library scanner not initialized", shared.ErrServiceUnavailable)
	}

	result := &DiffResult{}

	e.sendProgress(progress, scanLibraryUpdate(1, 2, dir))
	locals, err := e.scanner.Scan(dir)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, fetchPlaylistUpdate(2, 2, playlistIDOrName))
	export, err := e.resolvePlaylist(ctx, playlistIDOrName)
	if err != nil {
		return nil, err
	}

	result.Comparison.Playlist = export
	result.Comparison.LocalCount = len(locals)

	localTracks := make([]models.Track, len(locals))
	for i, local := range locals {
		localTracks[i] = local.Track
	}

	e.sendProgress(progress, compareUpdate(1, 2))
	remoteISRC, remoteKey := playlistKeys(export.Tracks)
	localISRC, localKey := playlistKeys(localTracks)

	e.sendProgress(progress, compareUpdate(2, 2))
	matchedCount := 0
	var missingRemote []models.Track
	for _, track := range localTracks {
		if containsTrack(track, remoteISRC, remoteKey) {
			matchedCount++
		} else {
			missingRemote = append(missingRemote, track)
		}
	}

	var missingLocal []models.Track
	for _, track := range export.Tracks {
		if !containsTrack(track, localISRC, localKey) {
			missingLocal = append(missingLocal, track)
		}
	}

	result.Comparison.MatchedCount = matchedCount
	result.Comparison.MissingRemote = missingRemote
	result.Comparison.MissingLocal = missingLocal

	return result, nil
}
