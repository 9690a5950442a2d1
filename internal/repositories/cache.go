package repositories

import "github.com/desertthunder/mp3x/internal/models"

// CacheTrack upserts a matched or downloaded track keyed by its service ID.
// An existing row keeps its identity and picks up the new local path.
func (r *TrackRepository) CacheTrack(service string, dto models.Track, path string) error {
	if existing, err := r.GetByServiceID(service, dto.ID); err == nil && existing != nil {
		if path != "" {
			existing.SetPath(path)
		}
		return r.Update(existing)
	}

	track := models.NewPersistedTrack(0, service, dto.ID, dto)
	if path != "" {
		track.SetPath(path)
	}
	return r.Create(track)
}

// CachedTrack returns the cached track for a local file path, or nil when the
// path has never been matched. Lookup errors are treated as a cache miss.
func (r *TrackRepository) CachedTrack(path string) *models.PersistedTrack {
	track, err := r.GetByPath(path)
	if err != nil {
		return nil
	}
	return track
}

// TrackByISRC returns the cached track carrying the given ISRC code, or nil
// when no matched file carries it. Lookup errors are treated as a cache miss.
func (r *TrackRepository) TrackByISRC(isrc string) *models.PersistedTrack {
	track, err := r.GetByISRC(isrc)
	if err != nil {
		return nil
	}
	return track
}
