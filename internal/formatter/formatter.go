// package formatter renders playlist data to export formats (CSV, Markdown, plain text) and writes pull manifests
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/desertthunder/mp3x/internal/models"
	"github.com/desertthunder/mp3x/internal/shared"
)

// ExportToCSV converts a PlaylistExport to CSV format with columns: ID, Title, Artist, Album, Duration, ISRC
func ExportToCSV(export *models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Duration", "ISRC"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range export.Tracks {
		record := []string{
			track.ID,
			track.Title,
			track.Artist,
			track.Album,
			strconv.Itoa(track.Duration),
			track.ISRC,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a PlaylistExport to Markdown format
func ExportToMarkdown(export *models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.Playlist.Name))

	if export.Playlist.Description != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", export.Playlist.Description))
	}

	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n", len(export.Tracks)))
	buf.WriteString(fmt.Sprintf("**Visibility**: %s\n\n", shared.VisibilityString(export.Playlist.Public)))

	buf.WriteString("## Tracks\n\n")
	for i, track := range export.Tracks {
		duration := shared.FormatDuration(track.Duration)
		albumPart := ""
		if track.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", track.Album)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s]\n", i+1, track.Artist, track.Title, albumPart, duration))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a PlaylistExport to plain text format
func ExportToText(export *models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", export.Playlist.Name))
	if export.Playlist.Description != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", export.Playlist.Description))
	}
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(export.Tracks)))

	for i, track := range export.Tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.Artist, track.Title))
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON representation of playlist metadata (without tracks)
func ToMetadataJSON(playlist models.Playlist) ([]byte, error) {
	return shared.MarshalJSON(playlist, true)
}

// WriteExport renders a playlist in the given format and writes it under dir.
//
// Formats: csv (tracks file plus metadata JSON), markdown, txt, and json
// (the default). Returns the paths of the files written.
func WriteExport(export *models.PlaylistExport, format, dir string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	base := filepath.Join(dir, shared.SanitizeFilename(export.Playlist.Name))

	switch format {
	case "csv":
		csvData, err := ExportToCSV(export)
		if err != nil {
			return nil, fmt.Errorf("failed to generate CSV: %w", err)
		}

		tracksFile := base + "_tracks.csv"
		if err := os.WriteFile(tracksFile, csvData, 0644); err != nil {
			return nil, fmt.Errorf("failed to write CSV file: %w", err)
		}

		metadataJSON, err := ToMetadataJSON(export.Playlist)
		if err != nil {
			return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
		}

		metadataFile := base + "_metadata.json"
		if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
			return nil, fmt.Errorf("failed to write metadata file: %w", err)
		}

		return []string{tracksFile, metadataFile}, nil

	case "markdown":
		mdData, err := ExportToMarkdown(export)
		if err != nil {
			return nil, fmt.Errorf("failed to generate Markdown: %w", err)
		}

		mdFile := base + ".md"
		if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
			return nil, fmt.Errorf("failed to write Markdown file: %w", err)
		}

		return []string{mdFile}, nil

	case "txt":
		textData, err := ExportToText(export)
		if err != nil {
			return nil, fmt.Errorf("failed to generate text: %w", err)
		}

		txtFile := base + "_tracks.txt"
		if err := os.WriteFile(txtFile, textData, 0644); err != nil {
			return nil, fmt.Errorf("failed to write text file: %w", err)
		}

		return []string{txtFile}, nil

	case "json", "":
		data, err := shared.MarshalJSON(export, true)
		if err != nil {
			return nil, fmt.Errorf("failed to generate JSON: %w", err)
		}

		jsonFile := base + ".json"
		if err := os.WriteFile(jsonFile, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write JSON file: %w", err)
		}

		return []string{jsonFile}, nil

	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// PullManifestEntry records the outcome for a single playlist track.
type PullManifestEntry struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Path    string `json:"path,omitempty"`
	Skipped bool   `json:"skipped,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// PullManifest summarizes a pull run for later inspection.
type PullManifest struct {
	PlaylistID      string              `json:"playlist_id"`
	PlaylistName    string              `json:"playlist_name"`
	OutputDirectory string              `json:"output_directory"`
	TotalTracks     int                 `json:"total_tracks"`
	Downloaded      int                 `json:"downloaded"`
	Skipped         int                 `json:"skipped"`
	Failed          int                 `json:"failed"`
	Tracks          []PullManifestEntry `json:"tracks"`
}

// WritePullManifest writes the manifest as pretty-printed JSON to path.
func WritePullManifest(manifest PullManifest, path string) error {
	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}
