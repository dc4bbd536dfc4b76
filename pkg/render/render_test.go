package render

import (
	"context"
	"reflect"
	"testing"

	"github.com/matzehuels/bigbang/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"svg", FormatSVG, true},
		{"PNG", FormatPNG, true},
		{".pdf", FormatPDF, true},
		{" json ", FormatJSON, true},
		{"dot", FormatDOT, true},
		{"gif", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.ok != (err == nil) || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ParseFormat(%q) code = %s", tt.in, errors.GetCode(err))
		}
	}
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats("svg, png,svg,,json")
	if err != nil {
		t.Fatal(err)
	}
	if want := []Format{FormatSVG, FormatPNG, FormatJSON}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if _, err := ParseFormats("svg,bmp"); err == nil {
		t.Error("expected error for bmp")
	}
}

func TestFormatAttributes(t *testing.T) {
	if FormatSVG.ContentType() != "image/svg+xml" || FormatSVG.Ext() != ".svg" {
		t.Errorf("svg: %s %s", FormatSVG.ContentType(), FormatSVG.Ext())
	}
	if !FormatPNG.Binary() || FormatDOT.Binary() {
		t.Error("Binary() wrong")
	}
	if Format("x").ContentType() != "application/octet-stream" {
		t.Error("unknown content type")
	}
}

func TestPalette(t *testing.T) {
	p := DefaultPalette()
	if got := p.Color("Sheldon"); got != "#FF6B6B" {
		t.Errorf("Sheldon = %s", got)
	}

	p.Assign([]string{"Stuart", "Leslie"})
	if got := p.Color("Leslie"); got != DefaultFallback[1] {
		t.Errorf("Leslie = %s, want %s", got, DefaultFallback[1])
	}
	if got := p.Color("Stuart"); got != DefaultFallback[0] {
		t.Errorf("Stuart = %s, want %s", got, DefaultFallback[0])
	}

	empty := &Palette{}
	if got := empty.Color("anyone"); got != NeutralColor {
		t.Errorf("empty palette = %s", got)
	}
}

func TestNewPaletteCopies(t *testing.T) {
	colors := map[string]string{"Raj": "#000000"}
	p := NewPalette(colors)
	colors["Raj"] = "#FFFFFF"
	if got := p.Color("Raj"); got != "#000000" {
		t.Errorf("palette shares caller map: %s", got)
	}
}

func TestToPNGRequiresRSVG(t *testing.T) {
	if CanConvert() {
		t.Skip("rsvg-convert installed")
	}
	_, err := ToPNG(context.Background(), []byte("<svg/>"), 2)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("err = %v, want UNSUPPORTED", err)
	}
}
