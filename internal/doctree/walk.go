package doctree

import (
	"iter"
	"slices"
	"strings"
)

// Walk yields n and every descendant depth-first in pre-order, visiting
// children in display order. Stopping the range loop stops the walk.
func (t *Tree) Walk(n *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for node := range t.WalkDepth(n) {
			if !yield(node) {
				return
			}
		}
	}
}

// WalkDepth is Walk with the depth of each node relative to n (n itself is 0).
func (t *Tree) WalkDepth(n *Node) iter.Seq2[*Node, int] {
	return func(yield func(*Node, int) bool) {
		if n == nil {
			return
		}
		t.walk(n, 0, yield)
	}
}

func (t *Tree) walk(n *Node, depth int, yield func(*Node, int) bool) bool {
	if !yield(n, depth) {
		return false
	}
	for _, c := range t.Children(n) {
		if !t.walk(c, depth+1, yield) {
			return false
		}
	}
	return true
}

// Entry is one line of a table of contents.
type Entry struct {
	Node  *Node
	Level int
}

// TableOfContents lists every node below the root in walk order. Top level
// nodes have level 0.
func (t *Tree) TableOfContents() []Entry {
	var out []Entry
	for n, depth := range t.WalkDepth(t.Root()) {
		if n.IsRoot() {
			continue
		}
		out = append(out, Entry{Node: n, Level: depth - 1})
	}
	return out
}

// Find returns the node that best matches query.
//
// A node whose slug equals query exactly always wins. Otherwise "index"
// segments are dropped from the query and the first node in walk order
// whose trailing slug segments equal the remaining query segments is
// returned. Partial segments never match. Returns nil when nothing matches.
func (t *Tree) Find(query string) *Node {
	if n := t.Get(query); n != nil {
		return n
	}

	want := normalizeQuery(query)
	for n := range t.Walk(t.Root()) {
		if hasSegmentSuffix(n.Slug, want) {
			return n
		}
	}
	return nil
}

// normalizeQuery splits query into segments and drops "index" segments.
// Trailing empty segments are ignored; leading and interior ones are kept
// and never match a real slug segment.
func normalizeQuery(query string) []string {
	segments := strings.Split(query, "/")
	for len(segments) > 0 && segments[len(segments)-1] == "" {
		segments = segments[:len(segments)-1]
	}
	return slices.DeleteFunc(segments, func(seg string) bool { return seg == "index" })
}

func hasSegmentSuffix(slug string, want []string) bool {
	var have []string
	if slug != "" {
		have = strings.Split(slug, "/")
	}
	if len(have) < len(want) {
		return false
	}
	return slices.Equal(have[len(have)-len(want):], want)
}
