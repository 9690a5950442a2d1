package downloader

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/mp3x/internal/models"
)

func TestSearchTerm(t *testing.T) {
	t.Run("artist and title", func(t *testing.T) {
		track := models.Track{Title: "Roads", Artist: "Portishead"}

		if got := searchTerm(track); got != "ytsearch1:Portishead Roads" {
			t.Errorf("unexpected search term %q", got)
		}
	})

	t.Run("title only", func(t *testing.T) {
		track := models.Track{Title: "Roads"}

		if got := searchTerm(track); got != "ytsearch1:Roads" {
			t.Errorf("unexpected search term %q", got)
		}
	})
}

func TestArgs(t *testing.T) {
	d := NewDownloader("yt-dlp", "/tmp/stage", nil)
	track := models.Track{Title: "Roads", Artist: "Portishead"}

	args := d.args(track)

	t.Run("extracts mp3 audio", func(t *testing.T) {
		joined := strings.Join(args, " ")
		for _, want := range []string{"-x", "--audio-format mp3", "--embed-thumbnail", "--add-metadata", "--no-playlist"} {
			if !strings.Contains(joined, want) {
				t.Errorf("expected args to contain %q, got %v", want, args)
			}
		}
	})

	t.Run("output template in staging dir", func(t *testing.T) {
		var tmpl string
		for i, arg := range args {
			if arg == "-o" && i+1 < len(args) {
				tmpl = args[i+1]
			}
		}

		if !strings.HasPrefix(tmpl, "/tmp/stage"+string(filepath.Separator)) {
			t.Errorf("expected template under staging dir, got %q", tmpl)
		}
		if !strings.HasSuffix(tmpl, ".%(ext)s") {
			t.Errorf("expected extension placeholder, got %q", tmpl)
		}
	})

	t.Run("search term is last", func(t *testing.T) {
		if last := args[len(args)-1]; last != "ytsearch1:Portishead Roads" {
			t.Errorf("expected search term last, got %q", last)
		}
	})

	t.Run("SetFormat changes audio format", func(t *testing.T) {
		dl := NewDownloader("yt-dlp", "/tmp/stage", nil)
		dl.SetFormat("opus")

		joined := strings.Join(dl.args(track), " ")
		if !strings.Contains(joined, "--audio-format opus") {
			t.Errorf("expected opus format, got %v", joined)
		}

		dl.SetFormat("")
		joined = strings.Join(dl.args(track), " ")
		if !strings.Contains(joined, "--audio-format opus") {
			t.Error("empty format should keep the previous value")
		}
	})
}

func TestDefaults(t *testing.T) {
	d := NewDownloader("", "", nil)

	if d.path != "yt-dlp" {
		t.Errorf("expected default binary yt-dlp, got %s", d.path)
	}
	if d.staging == "" {
		t.Error("expected a default staging dir")
	}
}

func TestCheck(t *testing.T) {
	t.Run("missing binary", func(t *testing.T) {
		d := NewDownloader(filepath.Join(t.TempDir(), "no-such-binary"), "", nil)

		if _, err := d.Check(context.Background()); err == nil {
			t.Error("expected an error for a missing binary")
		}
	})
}

func TestLastLine(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"multiline", "WARNING: foo\nERROR: no results", "ERROR: no results"},
		{"trailing newlines", "ERROR: gone\n\n\n", "ERROR: gone"},
		{"empty", "", "no output"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := lastLine(tc.input); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
