package httputil

import (
	"errors"
	"testing"
	"time"
)

type testPayload struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

func TestCacheSetGet(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	want := testPayload{Name: "rocket", Size: 50}
	if err := c.Set("twemoji:rocket", want); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	var got testPayload
	ok, err := c.Get("twemoji:rocket", &got)
	if err != nil || !ok {
		t.Fatalf("Get() = (%v, %v), want hit", ok, err)
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestCacheMiss(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)
	var v testPayload
	ok, err := c.Get("missing", &v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("Get() returned hit for missing key")
	}
}

func TestCacheExpiry(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Nanosecond)
	if err := c.Set("key", testPayload{Name: "x"}); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	var v testPayload
	ok, err := c.Get("key", &v)
	if ok {
		t.Error("expired entry should be a miss")
	}
	if !errors.Is(err, ErrExpired) {
		t.Errorf("Get() error = %v, want ErrExpired", err)
	}
}

func TestCacheZeroTTLNeverExpires(t *testing.T) {
	c, _ := NewCache(t.TempDir(), 0)
	_ = c.Set("key", testPayload{Name: "x"})

	var v testPayload
	ok, err := c.Get("key", &v)
	if err != nil || !ok {
		t.Fatalf("Get() = (%v, %v), want hit", ok, err)
	}
}

func TestCacheNamespaceIsolation(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)
	a := c.Namespace("twemoji:")
	b := c.Namespace("material-symbols:")

	_ = a.Set("rocket", testPayload{Name: "a"})
	_ = b.Set("rocket", testPayload{Name: "b"})

	var got testPayload
	if ok, _ := a.Get("rocket", &got); !ok || got.Name != "a" {
		t.Errorf("namespace a: got %+v", got)
	}
	if ok, _ := b.Get("rocket", &got); !ok || got.Name != "b" {
		t.Errorf("namespace b: got %+v", got)
	}
	if ok, _ := c.Get("rocket", &got); ok {
		t.Error("root cache should not see namespaced keys")
	}
}
