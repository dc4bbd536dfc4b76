package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

// captureOutput redirects status output to a buffer for the test's duration.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })
	return &buf
}

func quietSpinner(ctx context.Context, msg string) (*Spinner, *bytes.Buffer) {
	var buf bytes.Buffer
	s := newSpinnerWithContext(ctx, msg)
	s.w = &buf
	return s, &buf
}

func TestSpinnerDrawsMessage(t *testing.T) {
	s, buf := quietSpinner(context.Background(), "Loading records...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.SetMessage("Settling layout... tick 10")
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	got := buf.String()
	if !strings.Contains(got, "Loading records...") {
		t.Error("initial message never drawn")
	}
	if !strings.Contains(got, "tick 10") {
		t.Error("updated message never drawn")
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) }},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 20*time.Millisecond)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			s, _ := quietSpinner(ctx, "waiting")
			s.Start()
			cancel()
			time.Sleep(100 * time.Millisecond)
			if !s.Cancelled() {
				t.Error("spinner not cancelled")
			}
			s.Stop()
		})
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s, _ := quietSpinner(context.Background(), "stopping")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s, _ := quietSpinner(context.Background(), "never started")
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a spinner that was never started")
	}
}

func TestSpinnerStopWithStatus(t *testing.T) {
	buf := captureOutput(t)

	s, _ := quietSpinner(context.Background(), "rendering")
	s.Start()
	s.StopWithSuccess("Rendered")
	s2, _ := quietSpinner(context.Background(), "rendering")
	s2.Start()
	s2.StopWithError("Render failed")

	got := buf.String()
	if !strings.Contains(got, "Rendered") || !strings.Contains(got, "Render failed") {
		t.Errorf("status lines missing:\n%s", got)
	}
}
