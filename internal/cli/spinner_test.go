package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerDrawsAndClears(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Rendering svg...")
	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Update("Writing doc.svg...")
	time.Sleep(3 * spinnerInterval)
	elapsed := s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Rendering svg...") || !strings.Contains(out, "Writing doc.svg...") {
		t.Errorf("spinner output missing phase messages: %q", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("line not cleared on stop: %q", out)
	}
	if elapsed < 6*spinnerInterval {
		t.Errorf("elapsed = %v, want at least %v", elapsed, 6*spinnerInterval)
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinner(ctx, &bytes.Buffer{}, "Rendering dot...")
	s.Start()
	cancel()

	if !s.Cancelled() {
		t.Error("spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinner(ctx, &bytes.Buffer{}, "Rendering json...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should be cancelled after context timeout")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), &bytes.Buffer{}, "Rendering...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinner(context.Background(), &bytes.Buffer{}, "Rendering...")
	if d := s.Stop(); d != 0 {
		t.Errorf("Stop() = %v, want 0", d)
	}
}
