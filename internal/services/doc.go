// Package services implements music service clients behind the [Service] interface.
//
// [SpotifyService] is the only remote implementation: an OAuth2-authenticated
// Spotify Web API client covering profile, playlist listing/export/creation,
// chunked track addition, and best-match track search. The local library side
// of a sync lives in internal/library and internal/downloader.
package services
