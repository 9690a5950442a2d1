// Package repositories implements SQLite-backed persistence for mp3x's cache.
//
// [TrackRepository] caches matched tracks (Spotify identity + local path) so
// repeat syncs resolve matches without search calls. [SyncJobRepository]
// records push/pull runs. Both use soft deletes and per-table sequences
// generated by [NextSequence].
package repositories
