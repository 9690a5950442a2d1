package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/mp3x/internal/repositories"
	"github.com/desertthunder/mp3x/internal/services"
	"github.com/desertthunder/mp3x/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	ctx := context.Background()

	config := shared.DefaultConfig()
	configPath := "config.toml"
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		}
	}

	var spotifyService services.Service
	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		if svc, err := services.NewSpotifyService(config.Credentials.Spotify.Map()); err == nil {
			if token := config.Credentials.Spotify.Token(); token != nil {
				svc.SetTokenRefreshCallback(persistToken(configPath, config, logger))
				if err := svc.OAuthenticate(ctx, token); err != nil {
					logger.Warn("failed to restore saved session", "error", err)
				}
			}
			spotifyService = svc
		}
	}

	opts := RunnerOpts{
		Config:  config,
		Spotify: spotifyService,
		Logger:  logger,
	}

	// The track cache is opt-in: it only activates once `mp3x setup database`
	// has created the database file.
	if _, err := os.Stat(config.Database.Path); err == nil {
		if db, err := shared.NewDatabase(config.Database.Path); err == nil {
			shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
			opts.Tracks = repositories.NewTrackRepository(db)
			opts.Jobs = repositories.NewSyncJobRepository(db)
		} else {
			logger.Warn("failed to open track cache", "error", err)
		}
	}

	runner := NewRunner(opts)

	app := &cli.Command{
		Name:     "mp3x",
		Usage:    "Sync a local mp3 library with Spotify playlists",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(ctx, os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
