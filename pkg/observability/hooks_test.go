package observability

import (
	"context"
	"testing"
	"time"
)

type recordingCacheHooks struct {
	hits, misses, sets int
}

func (r *recordingCacheHooks) OnCacheHit(context.Context, string)      { r.hits++ }
func (r *recordingCacheHooks) OnCacheMiss(context.Context, string)     { r.misses++ }
func (r *recordingCacheHooks) OnCacheSet(context.Context, string, int) { r.sets++ }

type recordingRenderHooks struct {
	starts, completes int
}

func (r *recordingRenderHooks) OnRenderStart(context.Context, string, string) { r.starts++ }
func (r *recordingRenderHooks) OnRenderComplete(context.Context, string, string, time.Duration, error) {
	r.completes++
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// Must not panic.
	Render().OnRenderStart(ctx, "001", "png")
	Render().OnRenderComplete(ctx, "001", "png", time.Second, nil)
	Cache().OnCacheHit(ctx, "render")
	HTTP().OnRequest(ctx, "GET", "api.example.com", "/icon.svg")
}

func TestSetAndResetHooks(t *testing.T) {
	t.Cleanup(Reset)
	ctx := context.Background()

	cacheRec := &recordingCacheHooks{}
	renderRec := &recordingRenderHooks{}
	SetCacheHooks(cacheRec)
	SetRenderHooks(renderRec)

	Cache().OnCacheHit(ctx, "render")
	Cache().OnCacheMiss(ctx, "render")
	Render().OnRenderStart(ctx, "001", "svg")

	if cacheRec.hits != 1 || cacheRec.misses != 1 {
		t.Errorf("cache hooks not invoked: %+v", cacheRec)
	}
	if renderRec.starts != 1 {
		t.Errorf("render hooks not invoked: %+v", renderRec)
	}

	Reset()
	Cache().OnCacheHit(ctx, "render")
	if cacheRec.hits != 1 {
		t.Error("Reset() did not restore no-op hooks")
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)
	SetCacheHooks(nil)

	Cache().OnCacheHit(context.Background(), "render")
	if rec.hits != 1 {
		t.Error("Set(nil) should keep the registered hooks")
	}
}
