// package models defines the data model for the library sync tool
package models

import (
	"fmt"
	"strings"
	"time"
)

// Model defines the base interface for all persistent models.
// Implementations include PersistedTrack and SyncJob.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Playlist represents a music playlist from Spotify
type Playlist struct {
	ID          string
	Name        string
	Description string
	TrackCount  int
	Public      bool
}

// PlaylistExport represents a playlist with all its tracks
type PlaylistExport struct {
	Playlist Playlist
	Tracks   []Track
}

// Track represents a music track from any source
type Track struct {
	ID          string
	Title       string
	Artist      string
	Album       string
	TrackNumber int
	Duration    int    // Duration in seconds
	ISRC        string // International Standard Recording Code for matching
}

// TagSource indicates where a LocalTrack's metadata came from.
type TagSource int

const (
	SourceID3 TagSource = iota
	SourceFilename
)

func (s TagSource) String() string {
	switch s {
	case SourceID3:
		return "id3"
	case SourceFilename:
		return "filename"
	default:
		return ""
	}
}

// LocalTrack represents a track parsed from a local audio file.
type LocalTrack struct {
	Path   string
	Source TagSource
	Track
}

// IsValid reports whether the track carries enough metadata to search for.
func (t LocalTrack) IsValid() bool {
	return t.Title != ""
}

// SearchQuery builds a Spotify search query for the track.
//
// Uses the fielded artist filter when the artist is known, otherwise
// falls back to a bare title query.
func (t Track) SearchQuery() string {
	if t.Title == "" {
		return ""
	}
	if t.Artist != "" {
		return fmt.Sprintf("artist:%s %s", t.Artist, t.Title)
	}
	return t.Title
}

// DisplayName renders the track as "Artist - Title" for logs and output.
func (t Track) DisplayName() string {
	if t.Artist == "" {
		return t.Title
	}
	return strings.TrimSpace(t.Artist + " - " + t.Title)
}
