package layout

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/bigbang/pkg/errors"
)

// Marshal serializes a Layout to pretty-printed JSON bytes.
func Marshal(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Layout and validates it.
// A missing ID is filled in from the content.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	if l.ID == "" {
		l.ID = l.ContentID()
	}
	return l, nil
}

// Validate checks the canvas and that every bubble belongs to a known
// category and has a positive radius.
func (l Layout) Validate() error {
	if err := errors.ValidateDimension("width", l.Width); err != nil {
		return err
	}
	if err := errors.ValidateDimension("height", l.Height); err != nil {
		return err
	}
	known := make(map[string]bool, len(l.Anchors))
	for _, a := range l.Anchors {
		known[a.Category] = true
	}
	for i, b := range l.Bubbles {
		if !known[b.Category] {
			return errors.Invalid(i, "category", "no anchor for %q", b.Category)
		}
		if !(b.Radius > 0) {
			return errors.Invalid(i, "radius", "must be positive, got %v", b.Radius)
		}
	}
	return nil
}

// WriteFile writes a Layout to a JSON file.
func WriteFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Layout from a JSON file.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
