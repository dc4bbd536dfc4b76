package render

import (
	"strings"

	"github.com/matzehuels/bigbang/pkg/errors"
)

// Format is an output format.
type Format string

// Supported output formats.
const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
	FormatDOT  Format = "dot"
)

// Formats lists every supported format.
var Formats = []Format{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT}

// ParseFormat normalizes s ("SVG", ".png") and checks it is supported.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want svg, png, pdf, json or dot)", s)
}

// ParseFormats parses a comma-separated list, dropping duplicates.
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	seen := make(map[Format]bool)
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + string(f) }

// ContentType returns the MIME type for HTTP responses.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	}
	return "application/octet-stream"
}

// Binary reports whether the format cannot be printed to a terminal.
func (f Format) Binary() bool { return f == FormatPNG || f == FormatPDF }
