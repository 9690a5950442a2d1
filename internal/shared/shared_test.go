package shared

import "testing"

func TestNormalizeTrackKey(t *testing.T) {
	tc := []struct {
		name   string
		title  string
		artist string
		want   string
	}{
		{
			name:   "basic normalization",
			title:  "Song Title",
			artist: "Artist Name",
			want:   "song title|artist name",
		},
		{
			name:   "extra whitespace",
			title:  "  Song   Title  ",
			artist: "  Artist   Name  ",
			want:   "song title|artist name",
		},
		{
			name:   "mixed case",
			title:  "SoNg TiTlE",
			artist: "ArTiSt NaMe",
			want:   "song title|artist name",
		},
		{
			name:   "punctuation stripped",
			title:  "Don't Stop Me Now!",
			artist: "Queen",
			want:   "dont stop me now|queen",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTrackKey(tt.title, tt.artist)
			if got != tt.want {
				t.Errorf("normalizeTrackKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tc := []struct {
		name    string
		seconds int
		want    string
	}{
		{name: "zero", seconds: 0, want: "0:00"},
		{name: "under a minute", seconds: 42, want: "0:42"},
		{name: "minutes and seconds", seconds: 261, want: "4:21"},
		{name: "over an hour", seconds: 3725, want: "62:05"},
		{name: "negative clamps to zero", seconds: -10, want: "0:00"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatDuration(tt.seconds)
			if got != tt.want {
				t.Errorf("FormatDuration(%d) = %v, want %v", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tc := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain name unchanged", input: "Road Trip", want: "Road Trip"},
		{name: "slashes replaced", input: "AC/DC", want: "AC_DC"},
		{name: "colon replaced", input: "OK: Computer", want: "OK- Computer"},
		{name: "question mark dropped", input: "Where Is My Mind?", want: "Where Is My Mind"},
		{name: "empty falls back", input: "   ", want: "untitled"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeFilename(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
