// Package library scans local audio files and reads/writes their ID3 metadata.
//
// Metadata is read from ID3v2 tags via [id3v2.Open]; files without usable tags
// fall back to a filename heuristic that splits "Artist - Album - Title" style
// names. Scans never abort on a single bad file.
package library

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/mp3x/internal/models"
	"github.com/desertthunder/mp3x/internal/shared"
)

// Scanner walks a directory of audio files and produces [models.LocalTrack] values.
type Scanner struct {
	ext    string
	logger *log.Logger
}

// NewScanner creates a Scanner for the given audio extension (without dot, e.g. "mp3").
func NewScanner(ext string, logger *log.Logger) *Scanner {
	if ext == "" {
		ext = "mp3"
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Scanner{ext: "." + strings.TrimPrefix(ext, "."), logger: logger}
}

// Scan walks dir (including subdirectories) and returns a track per readable
// audio file. Unreadable files are logged and skipped.
func (s *Scanner) Scan(dir string) ([]models.LocalTrack, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrLibraryNotFound, dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", shared.ErrLibraryNotFound, dir)
	}

	var tracks []models.LocalTrack

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("skipping unreadable entry", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), s.ext) {
			return nil
		}

		track := s.ReadTrack(path)
		if !track.IsValid() {
			s.logger.Warn("no usable metadata", "path", path)
			return nil
		}

		tracks = append(tracks, track)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk library: %w", err)
	}

	return tracks, nil
}

// ReadTrack reads metadata for a single file, preferring ID3 tags and falling
// back to the filename heuristic.
func (s *Scanner) ReadTrack(path string) models.LocalTrack {
	if track, err := readTags(path); err == nil && track.Title != "" {
		track.Path = path
		track.Source = models.SourceID3
		return track
	}

	track := ParseFilename(path)
	track.Path = path
	track.Source = models.SourceFilename
	return track
}

// readTags reads ID3v2 metadata from the file.
func readTags(path string) (models.LocalTrack, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return models.LocalTrack{}, fmt.Errorf("%w: %v", shared.ErrUnreadableFile, err)
	}
	defer tag.Close()

	track := models.LocalTrack{
		Track: models.Track{
			Title:  strings.TrimSpace(tag.Title()),
			Artist: strings.TrimSpace(tag.Artist()),
			Album:  strings.TrimSpace(tag.Album()),
		},
	}

	if frame := tag.GetTextFrame(tag.CommonID("Track number/Position in set")); frame.Text != "" {
		// TRCK may be "3" or "3/12"
		numText := strings.SplitN(frame.Text, "/", 2)[0]
		if num, err := strconv.Atoi(strings.TrimSpace(numText)); err == nil {
			track.TrackNumber = num
		}
	}

	return track, nil
}

// ParseFilename derives track metadata from a filename.
//
// Underscores become spaces, then the stem splits on " - ":
//
//	4 parts: TrackNo - Artist - Album - Title
//	3 parts: Artist - Album - Title
//	2 parts: Album - Title
//	1 part:  Title
func ParseFilename(path string) models.LocalTrack {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem = strings.ReplaceAll(stem, "_", " ")

	parts := strings.Split(stem, " - ")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var track models.LocalTrack
	switch len(parts) {
	case 4:
		if num, err := strconv.Atoi(parts[0]); err == nil {
			track.TrackNumber = num
		}
		track.Artist = parts[1]
		track.Album = parts[2]
		track.Title = parts[3]
	case 3:
		track.Artist = parts[0]
		track.Album = parts[1]
		track.Title = parts[2]
	case 2:
		track.Album = parts[0]
		track.Title = parts[1]
	case 1:
		track.Title = parts[0]
	default:
		track.Title = stem
	}

	return track
}

// WriteTags embeds the track's metadata into the audio file at path.
//
// Used after a pull download so files carry the playlist's metadata even when
// the downloader's own embedding was incomplete.
func WriteTags(path string, track models.Track) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrUnreadableFile, err)
	}
	defer tag.Close()

	if track.Title != "" {
		tag.SetTitle(track.Title)
	}
	if track.Artist != "" {
		tag.SetArtist(track.Artist)
	}
	if track.Album != "" {
		tag.SetAlbum(track.Album)
	}
	if track.TrackNumber > 0 {
		tag.AddFrame(tag.CommonID("Track number/Position in set"), id3v2.TextFrame{
			Encoding: tag.DefaultEncoding(),
			Text:     strconv.Itoa(track.TrackNumber),
		})
	}
	if track.ISRC != "" {
		tag.AddFrame("TSRC", id3v2.TextFrame{
			Encoding: tag.DefaultEncoding(),
			Text:     track.ISRC,
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save tags: %w", err)
	}

	return nil
}
