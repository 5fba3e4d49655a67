package doctree

import (
	"errors"
	"slices"
	"testing"
	"time"
)

func slugs(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Slug)
	}
	return out
}

func mustAdd(t *testing.T, tree *Tree, slug string) *Node {
	t.Helper()
	n, err := tree.Add(slug, Meta{})
	if err != nil {
		t.Fatalf("Add(%q): unexpected error: %v", slug, err)
	}
	return n
}

func TestAdd_TopLevel(t *testing.T) {
	tree := New()
	n := mustAdd(t, tree, "foo")

	if n.Slug != "foo" || n.Title != "foo" {
		t.Errorf("expected slug and title %q, got %q / %q", "foo", n.Slug, n.Title)
	}
	if tree.Parent(n) != tree.Root() {
		t.Error("expected top-level node to hang off the root")
	}
	if got := slugs(tree.Children(tree.Root())); !slices.Equal(got, []string{"foo"}) {
		t.Errorf("expected root children [foo], got %v", got)
	}
}

func TestAdd_SynthesizesAncestors(t *testing.T) {
	tree := New()
	n := mustAdd(t, tree, "foo/bar/baz")

	if n.Title != "baz" {
		t.Errorf("expected title %q, got %q", "baz", n.Title)
	}

	parent := tree.Parent(n)
	grandparent := tree.Parent(parent)
	if parent.Slug != "foo/bar" {
		t.Errorf("expected parent slug %q, got %q", "foo/bar", parent.Slug)
	}
	if grandparent.Slug != "foo" {
		t.Errorf("expected grandparent slug %q, got %q", "foo", grandparent.Slug)
	}
	if parent.Kind != KindNone || parent.Source() != "" {
		t.Error("expected synthesized ancestors to carry no kind or source")
	}
	if tree.Len() != 4 {
		t.Errorf("expected 4 nodes including root, got %d", tree.Len())
	}
	if !grandparent.IsDir() || n.IsDir() {
		t.Error("expected only nodes with children to be directories")
	}
}

func TestAdd_ExistingSlugMergesFirstWins(t *testing.T) {
	tree := New()
	first := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	later := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// Synthesized first, then filled in by a real document.
	mustAdd(t, tree, "notes/today")
	n, err := tree.Add("notes", Meta{LastModified: first, Source: "notes/index.md", Kind: KindDocument})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Source() != "notes/index.md" || !n.LastModified.Equal(first) || n.Kind != KindDocument {
		t.Errorf("expected metadata to fill a synthesized node, got %v source=%q kind=%v", n, n.Source(), n.Kind)
	}

	again, err := tree.Add("notes", Meta{LastModified: later, Source: "other.md"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != n {
		t.Fatal("expected the same node for a repeated slug")
	}
	if again.Source() != "notes/index.md" || !again.LastModified.Equal(first) || again.Kind != KindDocument {
		t.Error("expected first non-empty values to be kept")
	}
	if tree.Len() != 3 {
		t.Errorf("expected no duplicate nodes, got %d", tree.Len())
	}
}

func TestAdd_EmptySlugMergesIntoRoot(t *testing.T) {
	tree := New()
	n, err := tree.Add("", Meta{Source: "index.md", Kind: KindDocument})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != tree.Root() {
		t.Fatal("expected the root node")
	}
	if n.Source() != "index.md" {
		t.Errorf("expected root source %q, got %q", "index.md", n.Source())
	}
}

func TestAdd_InvalidSlug(t *testing.T) {
	tree := New()
	for _, slug := range []string{"/foo", "foo/", "foo//bar"} {
		if _, err := tree.Add(slug, Meta{}); !errors.Is(err, ErrInvalidSlug) {
			t.Errorf("Add(%q): expected ErrInvalidSlug, got %v", slug, err)
		}
	}
	if tree.Len() != 1 {
		t.Errorf("expected failed adds to leave only the root, got %d nodes", tree.Len())
	}
}

func TestAdd_KindConflict(t *testing.T) {
	tree := New()
	if _, err := tree.Add("img.png", Meta{Kind: KindMedia}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := tree.Add("img.png/child", Meta{}); !errors.Is(err, ErrKindConflict) {
		t.Errorf("expected ErrKindConflict for a child of a media file, got %v", err)
	}

	mustAdd(t, tree, "dir/file")
	if _, err := tree.Add("dir", Meta{Kind: KindMedia}); !errors.Is(err, ErrKindConflict) {
		t.Errorf("expected ErrKindConflict for a directory added as media, got %v", err)
	}
}

func TestTitle_NumericPrefix(t *testing.T) {
	tree := New()
	n := mustAdd(t, tree, "01 - Intro/02 - Setup")
	if n.Title != "Setup" {
		t.Errorf("expected stripped title %q, got %q", "Setup", n.Title)
	}
	if n.Slug != "01 - Intro/02 - Setup" {
		t.Errorf("expected slug to keep the raw segments, got %q", n.Slug)
	}

	raw := New(WithNumericPrefixStripping(false))
	n = mustAdd(t, raw, "01 - Intro")
	if n.Title != "01 - Intro" {
		t.Errorf("expected unstripped title, got %q", n.Title)
	}
}

func TestChildren_DisplayOrder(t *testing.T) {
	tree := New()
	mustAdd(t, tree, "zeta")
	mustAdd(t, tree, "alpha")
	mustAdd(t, tree, "mid/child")
	mustAdd(t, tree, "beta/child")

	got := slugs(tree.Children(tree.Root()))
	want := []string{"beta", "mid", "alpha", "zeta"}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestURI(t *testing.T) {
	tree := New()
	tests := []struct {
		slug string
		want string
	}{
		{"foo/bar", "/foo/bar"},
		{"a/page with spaces", "/a/page%20with%20spaces"},
		{"My Notes/a b", "/My%20Notes/a%20b"},
		{"100%/done?", "/100%25/done%3F"},
	}
	for _, tt := range tests {
		n := mustAdd(t, tree, tt.slug)
		if got := n.URI(); got != tt.want {
			t.Errorf("URI(%q) = %q, want %q", tt.slug, got, tt.want)
		}
	}
	if got := tree.Root().URI(); got != "/" {
		t.Errorf("expected root URI %q, got %q", "/", got)
	}
}

func TestAncestors(t *testing.T) {
	tree := New()
	n := mustAdd(t, tree, "a/b/c")
	got := slugs(tree.Ancestors(n))
	want := []string{"a/b", "a", ""}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if tree.Ancestors(tree.Root()) != nil {
		t.Error("expected the root to have no ancestors")
	}
}

func TestNodeHandles(t *testing.T) {
	tree := New()
	n := mustAdd(t, tree, "a/b")
	if tree.Node(n.ID()) != n {
		t.Error("expected handle lookup to return the node")
	}
	if tree.Node(NodeID(99)) != nil || tree.Node(NoParent) != nil {
		t.Error("expected out of range handles to return nil")
	}
	if n.Segment() != "b" {
		t.Errorf("expected segment %q, got %q", "b", n.Segment())
	}
}
