// Package downloader shells out to yt-dlp to fetch playlist tracks as audio files.
package downloader

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mp3x/internal/models"
	"github.com/desertthunder/mp3x/internal/shared"
)

// Downloader wraps the yt-dlp binary. Each download runs a search for the
// track and extracts the first result as an mp3 into a staging directory,
// then moves the finished file into the destination directory.
type Downloader struct {
	path    string
	staging string
	format  string
	logger  *log.Logger
}

// NewDownloader creates a Downloader using the given yt-dlp binary path. An
// empty path defaults to "yt-dlp" resolved via PATH, and an empty staging
// directory defaults to the system temp dir.
func NewDownloader(path, staging string, logger *log.Logger) *Downloader {
	if path == "" {
		path = "yt-dlp"
	}
	if staging == "" {
		staging = filepath.Join(os.TempDir(), "mp3x-staging")
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Downloader{path: path, staging: staging, format: "mp3", logger: logger}
}

// SetFormat overrides the audio format passed to yt-dlp. Anything yt-dlp's
// --audio-format accepts works here; the default is mp3.
func (d *Downloader) SetFormat(format string) {
	if format != "" {
		d.format = format
	}
}

// Check verifies the yt-dlp binary is present and runnable.
func (d *Downloader) Check(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, d.path, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("%w: %s (%v)", shared.ErrDownloaderMissing, d.path, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// searchTerm builds the yt-dlp search target for a track.
func searchTerm(track models.Track) string {
	if track.Artist != "" {
		return fmt.Sprintf("ytsearch1:%s %s", track.Artist, track.Title)
	}
	return "ytsearch1:" + track.Title
}

// stagingName is the yt-dlp output template for a track, scoped to the
// staging directory so partial downloads never land in the library.
func (d *Downloader) stagingName(track models.Track) string {
	name := shared.SanitizeFilename(track.DisplayName())
	return filepath.Join(d.staging, name+".%(ext)s")
}

// args builds the yt-dlp invocation for a track.
func (d *Downloader) args(track models.Track) []string {
	return []string{
		"-x",
		"--audio-format", d.format,
		"--embed-thumbnail",
		"--add-metadata",
		"--no-playlist",
		"-o", d.stagingName(track),
		searchTerm(track),
	}
}

// Download fetches the track into destDir and returns the final file path.
// The file lands in staging first and is renamed into destDir only after
// yt-dlp exits cleanly.
func (d *Downloader) Download(ctx context.Context, track models.Track, destDir string) (string, error) {
	if err := os.MkdirAll(d.staging, 0755); err != nil {
		return "", fmt.Errorf("failed to create staging dir: %w", err)
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create destination dir: %w", err)
	}

	name := shared.SanitizeFilename(track.DisplayName()) + "." + d.format
	staged := filepath.Join(d.staging, name)
	dest := filepath.Join(destDir, name)

	if _, err := os.Stat(dest); err == nil {
		d.logger.Debug("already downloaded", "path", dest)
		return dest, nil
	}

	cmd := exec.CommandContext(ctx, d.path, d.args(track)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	d.logger.Debug("running downloader", "track", track.DisplayName())

	if err := cmd.Run(); err != nil {
		_ = os.Remove(staged)
		return "", fmt.Errorf("%w: %s: %v (%s)",
			shared.ErrDownloadFailed, track.DisplayName(), err, lastLine(stderr.String()))
	}

	if _, err := os.Stat(staged); err != nil {
		return "", fmt.Errorf("%w: %s: output file missing", shared.ErrDownloadFailed, track.DisplayName())
	}

	if err := os.Rename(staged, dest); err != nil {
		return "", fmt.Errorf("failed to move download into place: %w", err)
	}

	return dest, nil
}

// lastLine trims stderr output down to its final non-empty line for error
// messages.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return "no output"
}
