package observability

import (
	"context"
	"testing"
	"time"
)

type recordingPackHooks struct {
	estimateStarts int
	packStarts     int
	packCompletes  int
	lastStrategy   string
}

func (h *recordingPackHooks) OnEstimateStart(context.Context, int)                   { h.estimateStarts++ }
func (h *recordingPackHooks) OnEstimateComplete(context.Context, int, time.Duration) {}
func (h *recordingPackHooks) OnPackStart(_ context.Context, strategy string, _ int) {
	h.packStarts++
	h.lastStrategy = strategy
}
func (h *recordingPackHooks) OnPackComplete(context.Context, string, int, time.Duration, error) {
	h.packCompletes++
}

type recordingCacheHooks struct {
	hits, misses, sets int
}

func (h *recordingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *recordingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *recordingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// Must not panic.
	Pack().OnEstimateStart(ctx, 5)
	Pack().OnPackStart(ctx, "skyline", 5)
	Pack().OnPackComplete(ctx, "skyline", 5, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "layout")
	Cache().OnCacheMiss(ctx, "layout")
	Cache().OnCacheSet(ctx, "layout", 128)
}

func TestSetPackHooks(t *testing.T) {
	defer Reset()

	h := &recordingPackHooks{}
	SetPackHooks(h)

	ctx := context.Background()
	Pack().OnEstimateStart(ctx, 3)
	Pack().OnPackStart(ctx, "row-first", 3)
	Pack().OnPackComplete(ctx, "row-first", 3, time.Millisecond, nil)

	if h.estimateStarts != 1 || h.packStarts != 1 || h.packCompletes != 1 {
		t.Errorf("hook counts: %+v", h)
	}
	if h.lastStrategy != "row-first" {
		t.Errorf("lastStrategy = %q", h.lastStrategy)
	}
}

func TestSetCacheHooks(t *testing.T) {
	defer Reset()

	h := &recordingCacheHooks{}
	SetCacheHooks(h)

	ctx := context.Background()
	Cache().OnCacheHit(ctx, "layout")
	Cache().OnCacheMiss(ctx, "layout")
	Cache().OnCacheSet(ctx, "layout", 64)

	if h.hits != 1 || h.misses != 1 || h.sets != 1 {
		t.Errorf("hook counts: %+v", h)
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	defer Reset()

	h := &recordingCacheHooks{}
	SetCacheHooks(h)
	SetCacheHooks(nil)

	Cache().OnCacheHit(context.Background(), "layout")
	if h.hits != 1 {
		t.Error("nil registration should keep the previous hooks")
	}
}

func TestReset(t *testing.T) {
	h := &recordingCacheHooks{}
	SetCacheHooks(h)
	Reset()

	Cache().OnCacheHit(context.Background(), "layout")
	if h.hits != 0 {
		t.Error("Reset should restore no-op hooks")
	}
}
