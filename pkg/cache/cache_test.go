package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always return a clean miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(8)
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit || string(data) != "v" {
		t.Errorf("Get = (%q, %v), want (v, true)", data, hit)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted key still present")
	}
}

func TestMemoryCacheLRUEviction(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(3)
	defer c.Close()

	for i := range 3 {
		_ = c.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), 0)
	}

	// Touch k0 so k1 is the least recently used.
	if _, hit, _ := c.Get(ctx, "k0"); !hit {
		t.Fatal("k0 missing before eviction")
	}
	_ = c.Set(ctx, "k3", []byte("v"), 0)

	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}
	if _, hit, _ := c.Get(ctx, "k1"); hit {
		t.Error("k1 should have been evicted as least recently used")
	}
	for _, k := range []string{"k0", "k2", "k3"} {
		if _, hit, _ := c.Get(ctx, k); !hit {
			t.Errorf("%s unexpectedly evicted", k)
		}
	}
}

func TestMemoryCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(8)
	defer c.Close()

	_ = c.Set(ctx, "k", []byte("v"), time.Nanosecond)
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should report a miss")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not removed, Len = %d", c.Len())
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "layout:abc", []byte(`{"x":1}`), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "layout:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit || string(data) != `{"x":1}` {
		t.Errorf("Get = (%q, %v)", data, hit)
	}

	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "layout:abc"); hit {
		t.Error("deleted entry still present")
	}
	// Deleting again is not an error.
	if err := c.Delete(ctx, "layout:abc"); err != nil {
		t.Errorf("second Delete error: %v", err)
	}
}

func TestFileCacheCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}

	_ = c.Set(ctx, "k", []byte("v"), 0)

	// Corrupt the entry file on disk.
	hash := Hash([]byte("k"))
	path := filepath.Join(dir, hash[:2], hash[2:]+".json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Errorf("corrupt entry: Get = (hit=%v, err=%v), want clean miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry file should self-delete")
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	_ = c.Set(ctx, "k", []byte("v"), time.Nanosecond)
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should report a miss")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	sk1 := k.SectionsKey("abc", SectionsKeyOpts{MaxColumns: 4})
	sk2 := k.SectionsKey("abc", SectionsKeyOpts{MaxColumns: 3})
	if sk1 == sk2 {
		t.Error("different SectionsKeyOpts should produce different keys")
	}
	if sk1 != k.SectionsKey("abc", SectionsKeyOpts{MaxColumns: 4}) {
		t.Error("SectionsKey should be deterministic")
	}

	lk1 := k.LayoutKey("hash123", LayoutKeyOpts{Strategy: "skyline", ContainerWidth: 1280})
	lk2 := k.LayoutKey("hash123", LayoutKeyOpts{Strategy: "row-first", ContainerWidth: 1280})
	lk3 := k.LayoutKey("other", LayoutKeyOpts{Strategy: "skyline", ContainerWidth: 1280})
	if lk1 == lk2 {
		t.Error("different strategies should produce different layout keys")
	}
	if lk1 == lk3 {
		t.Error("different section hashes should produce different layout keys")
	}
}
