// Package store archives settled layouts by ID.
//
// The HTTP service saves every layout it computes so clients can fetch it
// again with GET /v1/layouts/{id}. Layout IDs are content-derived, so saving
// the same layout twice is a no-op rather than a duplicate.
//
// Two implementations exist: [MemoryStore] for single-process use and
// tests, and [MongoStore] for a persistent archive.
package store

import (
	"context"
	"time"

	"github.com/matzehuels/bigbang/pkg/errors"
	"github.com/matzehuels/bigbang/pkg/layout"
)

// Store persists layouts.
type Store interface {
	// Save inserts or replaces the layout with l.ID.
	Save(ctx context.Context, l layout.Layout) error

	// Load returns the layout with the given ID, or an error with code
	// LAYOUT_NOT_FOUND.
	Load(ctx context.Context, id string) (layout.Layout, error)

	// List returns summaries of the most recently saved layouts, newest
	// first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]Summary, error)

	// Delete removes a layout. Deleting a missing layout is not an error.
	Delete(ctx context.Context, id string) error

	Close() error
}

// Summary describes a stored layout without its bubbles.
type Summary struct {
	ID         string    `json:"id" bson:"_id"`
	Width      float64   `json:"width" bson:"width"`
	Height     float64   `json:"height" bson:"height"`
	Bubbles    int       `json:"bubbles" bson:"bubble_count"`
	Categories []string  `json:"categories" bson:"categories"`
	SavedAt    time.Time `json:"saved_at" bson:"saved_at"`
}

func summarize(l layout.Layout, at time.Time) Summary {
	return Summary{
		ID:         l.ID,
		Width:      l.Width,
		Height:     l.Height,
		Bubbles:    len(l.Bubbles),
		Categories: l.Categories,
		SavedAt:    at,
	}
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeLayoutNotFound, "layout %s not found", id)
}

func checkID(id string) error {
	if id == "" {
		return errors.New(errors.ErrCodeInvalidInput, "layout id is required")
	}
	return nil
}
