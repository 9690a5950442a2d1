// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// configFlag is shared by every command that reads config.toml.
func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand handles setup operations for the database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize the track cache database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
		},
	}
}

// spotifyCommand handles Spotify operations
func spotifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "spotify",
		Aliases: []string{"spot"},
		Usage:   "Spotify account operations",
		Commands: []*cli.Command{
			{
				Name:   "auth",
				Usage:  "Authenticate with Spotify using OAuth2",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SpotifyAuth,
			},
			{
				Name:  "playlists",
				Usage: "List Spotify playlists",
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of playlists to return",
						Value: 50,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
					&cli.BoolFlag{
						Name:  "save",
						Usage: "Save playlists to spotify_playlists.json",
					},
				},
				Action: r.SpotifyPlaylists,
			},
			{
				Name:  "export",
				Usage: "Export a playlist's tracks to a file",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Playlist ID or name to export",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: json, csv, markdown, txt",
						Value: "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
						Value:   ".",
					},
				},
				Action: r.SpotifyExport,
			},
		},
	}
}

// libraryCommand handles local library operations
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Local library operations",
		Commands: []*cli.Command{
			{
				Name:  "scan",
				Usage: "Scan the library directory and print discovered tracks",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "dir",
						Aliases: []string{"d"},
						Usage:   "Library directory (defaults to config library.dir)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.LibraryScan,
			},
		},
	}
}

// pushCommand syncs the local library onto a Spotify playlist.
func pushCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "push",
		Usage: "Add local library tracks to a Spotify playlist",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Library directory (defaults to config library.dir)",
			},
			&cli.StringFlag{
				Name:     "playlist",
				Aliases:  []string{"p"},
				Usage:    "Destination playlist name",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show what would be added without modifying the playlist",
			},
		},
		Action: r.Push,
	}
}

// pullCommand downloads a Spotify playlist into the local library.
func pullCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "pull",
		Usage: "Download a Spotify playlist's missing tracks as mp3 files",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "playlist",
				Aliases:  []string{"p"},
				Usage:    "Source playlist name or ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d", "output"},
				Usage:   "Destination directory (defaults to config library.dir)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent downloads",
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Downloads started per second",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Audio format passed to yt-dlp (default mp3)",
			},
		},
		Action: r.Pull,
	}
}

// diffCommand compares the local library against a Spotify playlist.
func diffCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "diff",
		Usage: "Show tracks missing locally or missing from a playlist",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Library directory (defaults to config library.dir)",
			},
			&cli.StringFlag{
				Name:     "playlist",
				Aliases:  []string{"p"},
				Usage:    "Playlist name or ID",
				Required: true,
			},
		},
		Action: r.Diff,
	}
}

// tuiCommand returns the top-level TUI command for interactive playlist pulls.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for pulling playlists",
		Action:  r.TUI,
	}
}
