// Package tasks orchestrates syncs between a local mp3 library and a streaming playlist with real-time progress reporting.
//
// # Core Operations
//
// The [SyncEngine] interface defines three operations:
//
//  1. [SyncEngine.Push] : Local library → streaming playlist
//     - Scans the library directory for audio files
//     - Matches each track against the streaming catalog (cache first, then search)
//     - Finds or creates the destination playlist and adds only the missing tracks
//     - Returns detailed results including failed matches
//
//  2. [SyncEngine.Pull] : Streaming playlist → local library
//     - Exports the playlist and skips tracks already on disk
//     - Downloads missing tracks through a rate-limited worker pool
//     - Embeds playlist metadata into each downloaded file
//     - Writes a manifest summarizing the run
//
//  3. [SyncEngine.Diff] : Compare library and playlist without changing either
//     - Matches tracks via ISRC (preferred) or normalized title/artist
//     - Reports matched count, tracks missing remotely, and tracks missing locally
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Track Caching
//
// The optional [TrackCacher] interface enables automatic track persistence during syncs.
//
// Tracks are cached silently (errors ignored) to avoid disrupting a run.
// This lets repeat pushes resolve matches without hitting the search API.
//
// # Implementation
//
// [LibraryEngine] implements [SyncEngine] with dependencies on:
//   - [services.Service] : streaming API client
//   - [LibraryScanner] : local file scanner (library.Scanner)
//   - [TrackDownloader] : audio downloader (downloader.Downloader)
//   - [TrackCacher] / [JobRecorder] : optional persistence layer (repositories)
package tasks
