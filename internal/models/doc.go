// Package models defines domain entities and persistence interfaces for the mp3x library sync tool.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing service and filesystem data
//   - [Playlist] : Basic playlist metadata from Spotify
//   - [PlaylistExport] : Playlist with complete track listing
//   - [Track] : Song metadata with ISRC for matching
//   - [LocalTrack] : A track parsed from a local audio file (tags or filename)
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [PersistedTrack] : Cached tracks linking Spotify IDs to local file paths
//   - [SyncJob] : Push/pull runs with per-run counters
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
