package cli

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/bigbang/pkg/render"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir("")
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if filepath.Base(dir) != appName {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}

	if dir, _ := cacheDir("/srv/cache"); dir != "/srv/cache" {
		t.Errorf("configured dir ignored: %q", dir)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"data/words.csv", "data/words"},
		{"words.json", "words"},
		{"out/words.layout.json", "out/words"},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		if got := basePath(tt.in); got != tt.want {
			t.Errorf("basePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output string
		format render.Format
		single bool
		want   string
	}{
		{"default svg", "words.csv", "", render.FormatSVG, true, "words.svg"},
		{"json never clobbers input", "words.json", "", render.FormatJSON, true, "words.layout.json"},
		{"explicit single", "words.csv", "chart.svg", render.FormatSVG, true, "chart.svg"},
		{"explicit base", "words.csv", "out/chart.svg", render.FormatPNG, false, "out/chart.png"},
		{"layout input", "words.layout.json", "", render.FormatPDF, false, "words.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.input, tt.output, tt.format, tt.single); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
