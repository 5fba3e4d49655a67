package doctree

import (
	"testing"
	"testing/fstest"
)

func TestContent_LoadCaches(t *testing.T) {
	fsys := fstest.MapFS{"a.md": {Data: []byte("hello")}}

	var c Content
	if c.Bound() {
		t.Fatal("expected zero Content to be unbound")
	}
	data, err := c.Load(fsys)
	if err != nil || data != nil {
		t.Fatalf("expected unbound load to return nil, nil; got %q, %v", data, err)
	}

	c.Bind("a.md")
	c.Bind("b.md")
	if c.Ref() != "a.md" {
		t.Errorf("expected first bind to win, got %q", c.Ref())
	}

	data, err = c.Load(fsys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "hello" || !c.Loaded() {
		t.Errorf("expected loaded content %q, got %q", "hello", data)
	}

	// Cached: a changed filesystem is not consulted again.
	delete(fsys, "a.md")
	data, err = c.Load(fsys)
	if err != nil || string(data) != "hello" {
		t.Errorf("expected cached content, got %q, %v", data, err)
	}
}

func TestContent_LoadMissing(t *testing.T) {
	var c Content
	c.Bind("missing.md")
	if _, err := c.Load(fstest.MapFS{}); err == nil {
		t.Error("expected an error for a missing source")
	}
	if c.Loaded() {
		t.Error("expected failed load to leave content unloaded")
	}
}

func TestContent_Release(t *testing.T) {
	fsys := fstest.MapFS{"a.md": {Data: []byte("v1")}}

	var c Content
	c.Bind("a.md")
	if _, err := c.Load(fsys); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.Release()
	if c.Loaded() || c.Ref() != "a.md" {
		t.Fatalf("expected released content to stay bound but unloaded, ref=%q", c.Ref())
	}

	fsys["a.md"] = &fstest.MapFile{Data: []byte("v2")}
	data, err := c.Load(fsys)
	if err != nil || string(data) != "v2" {
		t.Errorf("expected a fresh read after release, got %q, %v", data, err)
	}
}
