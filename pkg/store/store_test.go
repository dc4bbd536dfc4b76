package store

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/bigbang/pkg/errors"
	"github.com/matzehuels/bigbang/pkg/layout"
)

func sample(id string, bubbles int) layout.Layout {
	l := layout.Layout{
		ID:         id,
		Width:      700,
		Height:     500,
		Categories: []string{"Sheldon"},
		Anchors:    []layout.Anchor{{Category: "Sheldon", X: 350, Y: 250}},
	}
	for i := range bubbles {
		l.Bubbles = append(l.Bubbles, layout.Bubble{
			ID: string(rune('a' + i)), Category: "Sheldon", Radius: 10, X: 350, Y: 250,
		})
	}
	return l
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	if err := s.Save(ctx, sample("one", 2)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(ctx, "one")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Bubbles) != 2 {
		t.Errorf("loaded %d bubbles, want 2", len(got.Bubbles))
	}

	if _, err := s.Load(ctx, "missing"); !errors.Is(err, errors.ErrCodeLayoutNotFound) {
		t.Errorf("Load(missing) err = %v, want LAYOUT_NOT_FOUND", err)
	}
	if err := s.Save(ctx, layout.Layout{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Save without ID err = %v", err)
	}

	if err := s.Delete(ctx, "one"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "one"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
	if _, err := s.Load(ctx, "one"); err == nil {
		t.Error("layout still present after Delete")
	}
}

func TestMemoryStoreSaveReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_ = s.Save(ctx, sample("one", 1))
	_ = s.Save(ctx, sample("one", 3))

	list, _ := s.List(ctx, 0)
	if len(list) != 1 || list[0].Bubbles != 3 {
		t.Errorf("List = %+v, want one entry with 3 bubbles", list)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for _, id := range []string{"first", "second", "third"} {
		if err := s.Save(ctx, sample(id, 1)); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		limit int
		want  []string
	}{
		{0, []string{"third", "second", "first"}},
		{2, []string{"third", "second"}},
		{10, []string{"third", "second", "first"}},
	}
	for _, tt := range tests {
		list, err := s.List(ctx, tt.limit)
		if err != nil {
			t.Fatal(err)
		}
		var ids []string
		for _, sum := range list {
			ids = append(ids, sum.ID)
		}
		if len(ids) != len(tt.want) {
			t.Fatalf("limit %d: got %v, want %v", tt.limit, ids, tt.want)
		}
		for i := range ids {
			if ids[i] != tt.want[i] {
				t.Errorf("limit %d: got %v, want %v", tt.limit, ids, tt.want)
				break
			}
		}
	}
}
