package doctree

import (
	"fmt"
	"io/fs"
)

// Content is the lazy binding between a node and its raw source. It is
// either unloaded (reference only) or loaded (bytes cached after the first
// successful Load).
type Content struct {
	ref    string
	data   []byte
	loaded bool
}

// Bind sets the source reference if none is bound yet.
func (c *Content) Bind(ref string) {
	if c.ref == "" {
		c.ref = ref
	}
}

// Ref returns the source reference, "" when unbound.
func (c *Content) Ref() string { return c.ref }

// Bound reports whether a source reference is set.
func (c *Content) Bound() bool { return c.ref != "" }

// Loaded reports whether the bytes have been fetched.
func (c *Content) Loaded() bool { return c.loaded }

// Load returns the raw bytes, reading them from fsys on first use.
func (c *Content) Load(fsys fs.FS) ([]byte, error) {
	if c.loaded {
		return c.data, nil
	}
	if c.ref == "" {
		return nil, nil
	}
	data, err := fs.ReadFile(fsys, c.ref)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", c.ref, err)
	}
	c.data = data
	c.loaded = true
	return data, nil
}

// Release drops the cached bytes. The binding is kept, so the next Load
// reads the source again.
func (c *Content) Release() {
	c.data = nil
	c.loaded = false
}
