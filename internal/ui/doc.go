// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for pulling a playlist into the local library:
//  1. [PlaylistListView] : Browse and select Spotify playlists
//  2. [TrackListView] : Preview tracks before downloading
//  3. [ConfirmView] : Confirm the pull operation
//  4. [PullView] : Monitor real-time download progress
//  5. [ResultView] : Display success metrics and failed downloads
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the LibraryEngine, providing non-blocking status reporting during downloads.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
