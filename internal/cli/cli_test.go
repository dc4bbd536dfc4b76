package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/bigbang/pkg/config"
	"github.com/matzehuels/bigbang/pkg/core/bubble"
	"github.com/matzehuels/bigbang/pkg/dataset"
	"github.com/matzehuels/bigbang/pkg/layout"
	"github.com/matzehuels/bigbang/pkg/pipeline"
)

const wordsCSV = `character,season,word,count
Sheldon,1,bazinga,12
Sheldon,1,spot,7
Penny,1,sweetie,9
Leonard,1,physics,5
Stuart,1,comics,3
Sheldon,2,train,4
`

// runCLI executes the root command with args in a scratch environment and
// returns the status output.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	buf := captureOutput(t)

	var logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(buf)
	root.SetErr(&logs)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func writeWords(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "words.csv")
	if err := os.WriteFile(path, []byte(wordsCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, path
}

func TestLayoutCommand(t *testing.T) {
	dir, input := writeWords(t)

	got, err := runCLI(t, dir, "layout", input, "--season", "1")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if !strings.Contains(got, "Layout complete") || !strings.Contains(got, "words.layout.json") {
		t.Errorf("unexpected output:\n%s", got)
	}

	l, err := layout.ReadFile(filepath.Join(dir, "words.layout.json"))
	if err != nil {
		t.Fatal(err)
	}
	// Stuart is not main cast and season 2 is filtered out.
	if len(l.Bubbles) != 4 || !l.Settled {
		t.Errorf("bubbles = %d settled = %v", len(l.Bubbles), l.Settled)
	}
	if _, ok := l.Anchor("Stuart"); ok {
		t.Error("non main-cast character laid out without --all")
	}
	if l.Width != bubble.DefaultWidth {
		t.Errorf("width = %v", l.Width)
	}

	// The second run is served from the cache.
	got, err = runCLI(t, dir, "layout", input, "--season", "1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "cached") {
		t.Errorf("second run not cached:\n%s", got)
	}
}

func TestLayoutCommandFlagsOverrideConfig(t *testing.T) {
	dir, input := writeWords(t)
	cfgPath := filepath.Join(dir, "bigbang.toml")
	if err := os.WriteFile(cfgPath, []byte("[canvas]\nwidth = 400\nheight = 300\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(dir, "custom.json")
	if _, err := runCLI(t, dir, "--config", cfgPath, "layout", input, "--all", "--height", "250", "-o", dest); err != nil {
		t.Fatal(err)
	}
	l, err := layout.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if l.Width != 400 || l.Height != 250 {
		t.Errorf("canvas = %vx%v, want 400x250", l.Width, l.Height)
	}
	if _, ok := l.Anchor("Stuart"); !ok {
		t.Error("--all did not include Stuart")
	}
}

func TestVisualizeCommand(t *testing.T) {
	dir, input := writeWords(t)
	if _, err := runCLI(t, dir, "layout", input); err != nil {
		t.Fatal(err)
	}

	got, err := runCLI(t, dir, "visualize", filepath.Join(dir, "words.layout.json"), "-f", "svg,dot", "--legend")
	if err != nil {
		t.Fatalf("visualize: %v", err)
	}
	svg, err := os.ReadFile(filepath.Join(dir, "words.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("bubble-legend")) {
		t.Error("SVG missing or without legend")
	}
	if _, err := os.Stat(filepath.Join(dir, "words.dot")); err != nil {
		t.Errorf("DOT not written: %v", err)
	}
	if !strings.Contains(got, "words.dot") {
		t.Errorf("output does not list files:\n%s", got)
	}
}

func TestRenderCommand(t *testing.T) {
	dir, input := writeWords(t)
	base := filepath.Join(dir, "out", "chart")

	if _, err := runCLI(t, dir, "render", input, "-f", "svg,json", "-o", base, "--limit", "1"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(base + ".svg"); err != nil {
		t.Error(err)
	}
	l, err := layout.ReadFile(base + ".layout.json")
	if err != nil {
		t.Fatal(err)
	}
	if counts := l.CategoryCounts(); counts["Sheldon"] != 1 {
		t.Errorf("limit not applied: %v", counts)
	}
}

func TestRenderCommandBadFormat(t *testing.T) {
	dir, input := writeWords(t)
	if _, err := runCLI(t, dir, "render", input, "-f", "gif"); err == nil {
		t.Error("expected error for gif")
	}
}

func TestStatsCommand(t *testing.T) {
	dir, input := writeWords(t)
	got, err := runCLI(t, dir, "stats", input, "--all")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Character", "Sheldon", "bazinga (12)", "Stuart", "6 records, 4 characters"} {
		if !strings.Contains(got, want) {
			t.Errorf("stats output missing %q:\n%s", want, got)
		}
	}

	got, err = runCLI(t, dir, "stats", input, "--season", "9")
	if err != nil || !strings.Contains(got, "No records") {
		t.Errorf("empty stats = %q, %v", got, err)
	}
}

func TestConfigCommands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf", "bigbang.toml")

	if _, err := runCLI(t, dir, "--config", path, "config", "init"); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Canvas.Width != bubble.DefaultWidth {
		t.Errorf("width = %v", cfg.Canvas.Width)
	}
	if _, err := runCLI(t, dir, "--config", path, "config", "init"); err == nil {
		t.Error("init overwrote an existing file without --force")
	}

	got, err := runCLI(t, dir, "--config", path, "config", "path")
	if err != nil || strings.TrimSpace(got) != path {
		t.Errorf("config path = %q, %v", got, err)
	}
}

func TestCacheCommands(t *testing.T) {
	dir, input := writeWords(t)
	if _, err := runCLI(t, dir, "render", input); err != nil {
		t.Fatal(err)
	}

	got, err := runCLI(t, dir, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "Cleared 2 cached entries") {
		t.Errorf("clear output:\n%s", got)
	}
	got, _ = runCLI(t, dir, "cache", "clear")
	if !strings.Contains(got, "Cache is empty") {
		t.Errorf("second clear:\n%s", got)
	}

	got, err = runCLI(t, dir, "cache", "path")
	if err != nil || !strings.HasSuffix(strings.TrimSpace(got), appName) {
		t.Errorf("cache path = %q, %v", got, err)
	}
}

func TestDefaultCategories(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		explicit []string
		all      bool
		want     int
	}{
		{"csv defaults to main cast", "words.csv", nil, false, len(dataset.MainCast)},
		{"json takes everything", "words.json", nil, false, 0},
		{"all", "words.csv", nil, true, 0},
		{"explicit wins", "words.csv", []string{"Raj"}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultCategories(tt.input, tt.explicit, tt.all); len(got) != tt.want {
				t.Errorf("got %v", got)
			}
		})
	}
}

func TestBaseOptionsFromConfig(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	c.Config.Forces.Seed = 9
	c.Config.Forces.CategoryStrength = 0.2
	c.Config.Palette = map[string]string{"Raj": "#000000"}

	opts := c.baseOptions()
	if opts.Seed != 9 || opts.Params.CategoryStrength != 0.2 || opts.Palette["Raj"] != "#000000" {
		t.Errorf("options = %+v", opts)
	}
	if opts.Margin != pipeline.DefaultMargin {
		t.Errorf("margin = %v", opts.Margin)
	}
}
