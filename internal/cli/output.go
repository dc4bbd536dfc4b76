package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/bigbang/pkg/render"
)

// layoutExt is appended to layout JSON files so they never collide with a
// JSON data file of the same name.
const layoutExt = ".layout.json"

// basePath strips the data or layout extension from input.
func basePath(input string) string {
	if strings.HasSuffix(input, layoutExt) {
		return strings.TrimSuffix(input, layoutExt)
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// outputPath returns where format f is written. An explicit output is used
// as-is for a single format and as a base path for several.
func outputPath(input, output string, f render.Format, single bool) string {
	if output != "" && single {
		return output
	}
	base := basePath(input)
	if output != "" {
		base = basePath(output)
	}
	if f == render.FormatJSON {
		return base + layoutExt
	}
	return base + f.Ext()
}

// writeArtifacts writes each artifact in the order of formats and returns
// the paths written.
func writeArtifacts(artifacts map[render.Format][]byte, formats []render.Format, input, output string) ([]string, error) {
	var paths []string
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			continue
		}
		path := outputPath(input, output, f, len(formats) == 1)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// shortID abbreviates a layout ID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
