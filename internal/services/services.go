// package services defines interface Service for interacting with HTTP APIs
package services

import (
	"context"

	"github.com/desertthunder/mp3x/internal/models"
	"golang.org/x/oauth2"
)

// Service defines the interface for music service providers that can
// list, export, and populate playlists and search their catalog.
type Service interface {
	// Authenticate performs OAuth or API key authentication with the service.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// GetPlaylists retrieves all playlists for the authenticated user.
	GetPlaylists(ctx context.Context) ([]models.Playlist, error)

	// GetPlaylist retrieves a specific playlist by ID.
	GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error)

	// FindPlaylist locates a playlist by exact name among the user's playlists.
	// Returns nil (no error) when no playlist matches.
	FindPlaylist(ctx context.Context, name string) (*models.Playlist, error)

	// CreatePlaylist creates a new playlist for the authenticated user.
	CreatePlaylist(ctx context.Context, name, description string, public bool) (*models.Playlist, error)

	// AddTracks appends tracks to an existing playlist, preserving order.
	AddTracks(ctx context.Context, playlistID string, trackIDs []string) error

	// ExportPlaylist exports a playlist with all its tracks.
	ExportPlaylist(ctx context.Context, playlistID string) (*models.PlaylistExport, error)

	// ImportPlaylist creates a new playlist and populates it with the provided tracks.
	ImportPlaylist(ctx context.Context, playlist *models.PlaylistExport) (*models.Playlist, error)

	// SearchTrack searches for a track by title and artist.
	// Returns the best match or an error if no match is found.
	SearchTrack(ctx context.Context, title, artist string) (*models.Track, error)

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// OAuthService extends Service with the OAuth2 authorization-code flow.
type OAuthService interface {
	Service

	// GetAuthURL returns the authorization URL for the given CSRF state token.
	GetAuthURL(state string) string

	// GetOAuthConfig exposes the underlying [oauth2.Config] for callback handling.
	GetOAuthConfig() *oauth2.Config

	// OAuthenticate authenticates with a previously issued token.
	OAuthenticate(ctx context.Context, token *oauth2.Token) error

	// SetTokenRefreshCallback registers a callback invoked when the token source
	// refreshes the access token, so callers can persist the new token.
	SetTokenRefreshCallback(fn func(token *oauth2.Token))
}
