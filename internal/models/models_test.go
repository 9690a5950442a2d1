package models

import "testing"

func TestTrackSearchQuery(t *testing.T) {
	t.Run("uses the fielded artist filter when the artist is known", func(t *testing.T) {
		track := Track{Title: "Karma Police", Artist: "Radiohead"}
		if got := track.SearchQuery(); got != "artist:Radiohead Karma Police" {
			t.Errorf("expected fielded query, got %q", got)
		}
	})

	t.Run("falls back to a bare title query", func(t *testing.T) {
		track := Track{Title: "Karma Police"}
		if got := track.SearchQuery(); got != "Karma Police" {
			t.Errorf("expected bare title, got %q", got)
		}
	})

	t.Run("returns empty for an untitled track", func(t *testing.T) {
		if got := (Track{Artist: "Radiohead"}).SearchQuery(); got != "" {
			t.Errorf("expected empty query, got %q", got)
		}
	})

	t.Run("is available on scanned local tracks", func(t *testing.T) {
		local := LocalTrack{
			Path:  "/lib/roads.mp3",
			Track: Track{Title: "Roads", Artist: "Portishead"},
		}
		if got := local.SearchQuery(); got != "artist:Portishead Roads" {
			t.Errorf("expected fielded query, got %q", got)
		}
	})
}
