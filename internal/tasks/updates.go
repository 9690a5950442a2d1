package tasks

import (
	"fmt"

	"github.com/desertthunder/mp3x/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ScanLibrary Phase = iota
	MatchTracks
	ResolvePlaylist
	FetchPlaylist
	AddTracks
	DownloadTracks
	Compare
	PushComplete
)

func (p Phase) String() string {
	switch p {
	case ScanLibrary:
		return "scan_library"
	case MatchTracks:
		return "match_tracks"
	case ResolvePlaylist:
		return "resolve_playlist"
	case FetchPlaylist:
		return "fetch_playlist"
	case AddTracks:
		return "add_tracks"
	case DownloadTracks:
		return "download_tracks"
	case Compare:
		return "compare"
	case PushComplete:
		return "push_complete"
	default:
		return ""
	}
}

func scanLibraryUpdate(step, total int, dir string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ScanLibrary,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Scanning library (%s)...", dir),
	}
}

func matchTracksUpdate(step, total int, tr *models.Track) ProgressUpdate {
	if tr == nil {
		return ProgressUpdate{
			Phase:   MatchTracks,
			Step:    step,
			Total:   total,
			Message: "Matching tracks on Spotify...",
		}
	}
	return ProgressUpdate{
		Phase:   MatchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, tr.DisplayName()),
	}
}

func resolvePlaylistUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolvePlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Looking up playlist '%s'...", name),
	}
}

func fetchPlaylistUpdate(step, total int, idOrName string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching playlist (%s)...", idOrName),
	}
}

func foundPlaylistUpdate(step, total int, export *models.PlaylistExport) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Found playlist: %s (%d tracks)", export.Playlist.Name, len(export.Tracks)),
		Data:    export,
	}
}

func addTracksUpdate(step, total, count int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Adding %d tracks to %s...", count, name),
	}
}

func pushCompletedUpdate(step, total int, pl *models.Playlist, added, present int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PushComplete,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Playlist synced: %s (%d added, %d already present)", pl.Name, added, present),
		Data:    pl,
	}
}

func compareUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Compare,
		Step:    step,
		Total:   total,
		Message: "Comparing tracks...",
	}
}

func downloadCompletedUpdate(step, total int, tr models.Track) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DownloadTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, tr.DisplayName()),
	}
}

func downloadSkippedUpdate(step, total int, tr models.Track) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DownloadTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] - %s (already in library)", step, total, tr.DisplayName()),
	}
}

func downloadFailedUpdate(step, total int, tr models.Track, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DownloadTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, tr.DisplayName(), err),
	}
}
