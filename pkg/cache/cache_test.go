package cache

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	mesh := []byte("solid keycap\n\x00\x01binary\nbytes")
	if err := c.Set(ctx, "mesh:abc", mesh, time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, hit, err := c.Get(ctx, "mesh:abc")
	if err != nil || !hit {
		t.Fatalf("Get() = hit %v, err %v; want hit", hit, err)
	}
	if !bytes.Equal(got, mesh) {
		t.Errorf("Get() = %q, want %q", got, mesh)
	}

	if err := c.Delete(ctx, "mesh:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "mesh:abc"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "mesh:abc"); err != nil {
		t.Errorf("Delete of missing key error = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	tests := []struct {
		name string
		ttl  time.Duration
		hit  bool
	}{
		{"no expiry", 0, true},
		{"future", time.Hour, true},
		{"expired", time.Nanosecond, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.Set(ctx, tt.name, []byte("x"), tt.ttl); err != nil {
				t.Fatalf("Set: %v", err)
			}
			time.Sleep(time.Millisecond)
			if _, hit, _ := c.Get(ctx, tt.name); hit != tt.hit {
				t.Errorf("Get() hit = %v, want %v", hit, tt.hit)
			}
		})
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	path := c.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("no header"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("Get() = hit %v, err %v; want clean miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheStatsAndClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte("1234"), 0); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	s, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	// each entry is the "-\n" header plus four bytes
	if s.Entries != 3 || s.Bytes != 3*6 {
		t.Errorf("Stats() = %+v, want 3 entries of 6 bytes", s)
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s, _ := c.Stats(ctx); s.Entries != 0 {
		t.Errorf("Stats() after Clear = %+v, want empty", s)
	}
	if _, err := os.Stat(c.Dir()); err != nil {
		t.Errorf("Clear should keep the directory: %v", err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"default file", Options{Dir: t.TempDir()}, false},
		{"file", Options{Backend: BackendFile, Dir: t.TempDir()}, false},
		{"none", Options{Backend: BackendNone}, false},
		{"file without dir", Options{Backend: BackendFile}, true},
		{"unknown", Options{Backend: "memcached"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Open(ctx, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if c != nil {
				c.Close()
			}
		})
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("KEYFORGE_TEST_REDIS")
	if addr == "" {
		t.Skip("KEYFORGE_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr, Prefix: "keyforge-test:"})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	defer c.Clear(ctx)

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(got) != "v" {
		t.Errorf("Get() = %q, %v, %v; want v, true, nil", got, hit, err)
	}
	s, err := c.Stats(ctx)
	if err != nil || s.Entries != 1 {
		t.Errorf("Stats() = %+v, %v; want 1 entry", s, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestSetHash(t *testing.T) {
	a := SetHash([]string{"GLK_KL_R1_100x100", "GLK_KL_R2_100x100"})
	b := SetHash([]string{"GLK_KL_R2_100x100", "GLK_KL_R1_100x100"})
	if a != b {
		t.Error("SetHash should ignore order")
	}
	if a == SetHash([]string{"GLK_KL_R1_100x100"}) {
		t.Error("Different sets should produce different hashes")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	tests := []struct {
		name string
		a, b string
	}{
		{
			"mesh format",
			k.MeshKey("spec", MeshKeyOpts{Format: "stl", Cells: 200}),
			k.MeshKey("spec", MeshKeyOpts{Format: "stl", Cells: 300}),
		},
		{
			"mesh supports",
			k.MeshKey("spec", MeshKeyOpts{Format: "stl", Cells: 200}),
			k.MeshKey("spec", MeshKeyOpts{Format: "stl", Cells: 200, SupportLegs: true}),
		},
		{
			"preview",
			k.PreviewKey("spec", PreviewKeyOpts{Format: "png", Size: 256}),
			k.PreviewKey("spec", PreviewKeyOpts{Format: "webp", Size: 256}),
		},
		{
			"layout",
			k.LayoutKey("set", LayoutKeyOpts{Format: "pdf"}),
			k.LayoutKey("set", LayoutKeyOpts{Format: "stl"}),
		},
		{
			"artifact kinds",
			k.MeshKey("spec", MeshKeyOpts{Format: "png"}),
			k.PreviewKey("spec", PreviewKeyOpts{Format: "png"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a == tt.b {
				t.Errorf("keys should differ: %s", tt.a)
			}
		})
	}

	if got := k.MeshKey("spec", MeshKeyOpts{Format: "stl"}); got[:5] != "mesh:" {
		t.Errorf("MeshKey() = %s, want mesh: prefix", got)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "v1:")

	opts := MeshKeyOpts{Format: "stl", Cells: 200}
	if got, want := scoped.MeshKey("h", opts), "v1:"+inner.MeshKey("h", opts); got != want {
		t.Errorf("MeshKey() = %s, want %s", got, want)
	}
	if got := scoped.PreviewKey("h", PreviewKeyOpts{}); got[:3] != "v1:" {
		t.Errorf("PreviewKey() should be prefixed: %s", got)
	}
	if got := scoped.LayoutKey("h", LayoutKeyOpts{}); got[:3] != "v1:" {
		t.Errorf("LayoutKey() should be prefixed: %s", got)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	want := "prefix:" + NewDefaultKeyer().MeshKey("h", MeshKeyOpts{})
	if got := scoped.MeshKey("h", MeshKeyOpts{}); got != want {
		t.Errorf("Unexpected key with nil inner: %s", got)
	}
}

func TestRetryableError(t *testing.T) {
	// Retryable(nil) returns nil
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	// Non-nil error is wrapped
	err := Retryable(ErrUnavailable)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}

	// Error message is preserved
	if err.Error() != ErrUnavailable.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}

	// Non-wrapped errors are not retryable
	if IsRetryable(ErrUnavailable) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryPolicy(t *testing.T) {
	fast := RetryPolicy{Attempts: 3, Delay: time.Millisecond}
	errBad := errors.New("bad key")

	tests := []struct {
		name      string
		failures  int   // calls that fail before success
		err       error // returned while failing
		wantCalls int
		wantErr   error
	}{
		{"first try", 0, nil, 1, nil},
		{"not retryable", 5, errBad, 1, errBad},
		{"recovers", 2, Retryable(ErrUnavailable), 3, nil},
		{"exhausted", 5, Retryable(ErrUnavailable), 3, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := fast.Do(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryPolicyDefaults(t *testing.T) {
	p := RetryPolicy{}.withDefaults()
	if p != DefaultRetryPolicy {
		t.Errorf("withDefaults() = %+v, want %+v", p, DefaultRetryPolicy)
	}
}

func TestRetryPolicyContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := DefaultRetryPolicy.Do(ctx, func() error {
		return Retryable(ErrUnavailable)
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
