package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer written by the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsMessage(t *testing.T) {
	var w syncBuffer
	s := newSpinner(context.Background(), &w, "Building 3 key(s)...")
	s.Start()
	time.Sleep(3 * spinnerInterval)
	s.Setf("Building keys %d/%d...", 2, 3)
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	out := w.String()
	if !strings.Contains(out, "Building 3 key(s)...") {
		t.Errorf("output missing initial message: %q", out)
	}
	if !strings.Contains(out, "Building keys 2/3...") {
		t.Errorf("output missing updated message: %q", out)
	}
	if s.Message() != "Building keys 2/3..." {
		t.Errorf("Message() = %q", s.Message())
	}
	if s.Cancelled() {
		t.Error("Cancelled() = true after a normal Stop")
	}
}

func TestSpinnerCancelled(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 10*time.Millisecond)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			var w syncBuffer
			s := newSpinner(ctx, &w, "Laying out keys...")
			s.Start()
			time.Sleep(50 * time.Millisecond)
			s.Stop()

			if !s.Cancelled() {
				t.Error("Cancelled() = false after the parent context ended")
			}
		})
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var w syncBuffer
	s := newSpinner(context.Background(), &w, "Building...")
	s.Stop() // before Start
	s.Start()
	s.Stop()
	s.Stop()
}
