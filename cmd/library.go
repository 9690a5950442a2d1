package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/mp3x/internal/shared"
	"github.com/urfave/cli/v3"
)

// LibraryScan scans the library directory and prints the discovered tracks.
func (r *Runner) LibraryScan(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String("dir")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if dir == "" {
		dir = r.config.Library.Dir
	}

	r.logger.Info("scanning library", "dir", dir)

	tracks, err := r.scanner.Scan(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrLibraryNotFound, err)
	}

	if useJSON {
		return r.writeJSON(tracks, pretty)
	}

	r.writePlain("Found %d tracks in %s:\n\n", len(tracks), dir)
	for i, track := range tracks {
		r.writePlain("%d. %s\n", i+1, track.DisplayName())
		if track.Album != "" {
			r.writePlain("   Album: %s\n", track.Album)
		}
		r.writePlain("   Path: %s\n", track.Path)
		r.writePlain("   Tags: %s\n", track.Source)
		r.writePlain("\n")
	}

	return nil
}
