package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "mp3x.db" {
			t.Errorf("expected database path mp3x.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.Library.AudioFormat != "mp3" {
			t.Errorf("expected audio format mp3, got %s", config.Library.AudioFormat)
		}

		if config.Downloader.Path != "yt-dlp" {
			t.Errorf("expected downloader path yt-dlp, got %s", config.Downloader.Path)
		}

		if config.Downloader.Workers != 3 {
			t.Errorf("expected 3 workers, got %d", config.Downloader.Workers)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[server]
host = "0.0.0.0"
port = 8080

[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"
redirect_uri = "http://localhost:3000/callback"

[library]
dir = "/music"
audio_format = "mp3"

[downloader]
path = "/usr/local/bin/yt-dlp"
workers = 5
rate_limit = 0.5
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}

		if config.Credentials.Spotify.ClientID != "test_client_id" {
			t.Errorf("expected spotify client_id test_client_id, got %s", config.Credentials.Spotify.ClientID)
		}

		if config.Library.Dir != "/music" {
			t.Errorf("expected library dir /music, got %s", config.Library.Dir)
		}

		if config.Downloader.RateLimit != 0.5 {
			t.Errorf("expected rate limit 0.5, got %v", config.Downloader.RateLimit)
		}
	})

	t.Run("SaveConfig round trip", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		config := DefaultConfig()
		config.Credentials.Spotify.ClientID = "saved_id"
		config.Credentials.Spotify.AccessToken = "saved_token"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to reload config: %v", err)
		}

		if loaded.Credentials.Spotify.ClientID != "saved_id" {
			t.Errorf("expected client_id saved_id, got %s", loaded.Credentials.Spotify.ClientID)
		}
		if loaded.Credentials.Spotify.AccessToken != "saved_token" {
			t.Errorf("expected saved access token, got %s", loaded.Credentials.Spotify.AccessToken)
		}
	})

	t.Run("SpotifyConfig Token", func(t *testing.T) {
		t.Run("returns nil when no token persisted", func(t *testing.T) {
			s := SpotifyConfig{ClientID: "id"}
			if s.Token() != nil {
				t.Error("expected nil token")
			}
		})

		t.Run("reconstructs persisted token", func(t *testing.T) {
			s := SpotifyConfig{
				AccessToken:  "access",
				RefreshToken: "refresh",
				TokenExpiry:  "2026-01-02T15:04:05Z",
			}

			token := s.Token()
			if token == nil {
				t.Fatal("expected non-nil token")
			}
			if token.AccessToken != "access" {
				t.Errorf("expected access token, got %s", token.AccessToken)
			}
			if token.RefreshToken != "refresh" {
				t.Errorf("expected refresh token, got %s", token.RefreshToken)
			}
			if token.Expiry.IsZero() {
				t.Error("expected expiry to be parsed")
			}
		})
	})
}
