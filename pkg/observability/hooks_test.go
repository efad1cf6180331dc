package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Build hooks
	b := NoopBuildHooks{}
	b.OnBuildStart(ctx, "GLK_KL_R2_100x100")
	b.OnBuildComplete(ctx, "GLK_KL_R2_100x100", time.Second, nil)
	b.OnExportComplete(ctx, "GLK_KL_R2_100x100", "stl", 1024, time.Second, nil)
	b.OnBatchStart(ctx, 26)
	b.OnBatchComplete(ctx, 26, 1, time.Second)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "mesh")
	c.OnCacheMiss(ctx, "preview")
	c.OnCacheSet(ctx, "layout", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Build().(NoopBuildHooks); !ok {
		t.Error("Build() should return NoopBuildHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customBuild := &testBuildHooks{}
	SetBuildHooks(customBuild)
	if Build() != customBuild {
		t.Error("SetBuildHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Build().(NoopBuildHooks); !ok {
		t.Error("Reset() should restore NoopBuildHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testBuildHooks{}
	SetBuildHooks(custom)

	// Setting nil should be ignored
	SetBuildHooks(nil)

	if Build() != custom {
		t.Error("SetBuildHooks(nil) should be ignored")
	}

	Reset()
}

func TestLogBuildHooks(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		emit func(h *LogBuildHooks)
		want string
	}{
		{"start", func(h *LogBuildHooks) { h.OnBuildStart(ctx, "K1") }, "build started"},
		{"done", func(h *LogBuildHooks) { h.OnBuildComplete(ctx, "K1", time.Second, nil) }, "build done"},
		{"failed", func(h *LogBuildHooks) { h.OnBuildComplete(ctx, "K1", 0, errors.New("boom")) }, "boom"},
		{"export", func(h *LogBuildHooks) { h.OnExportComplete(ctx, "K1", "stl", 10, 0, nil) }, "exported"},
		{"batch", func(h *LogBuildHooks) { h.OnBatchComplete(ctx, 3, 1, 0) }, "failed=1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := NewLogBuildHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
			tt.emit(h)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("log = %q, want it to contain %q", buf.String(), tt.want)
			}
		})
	}
}

// Test implementations
type testBuildHooks struct{ NoopBuildHooks }
type testCacheHooks struct{ NoopCacheHooks }
