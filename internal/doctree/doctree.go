package doctree

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"
)

var (
	// ErrInvalidSlug is returned when a slug contains an empty path segment.
	ErrInvalidSlug = errors.New("invalid slug")
	// ErrKindConflict is returned when a media file would need children, or a
	// node that already has children is added as a media file.
	ErrKindConflict = errors.New("node kind conflict")
)

// NodeID is a stable handle to a node inside a Tree's arena.
type NodeID int

// NoParent is the parent handle of the root node.
const NoParent NodeID = -1

// Kind classifies what a node was added as.
type Kind int

const (
	KindNone     Kind = iota // synthesized ancestor
	KindDocument             // markdown document
	KindMedia                // attachment file
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindMedia:
		return "media"
	default:
		return "none"
	}
}

// Meta is the mergeable metadata supplied to Add. Zero values mean "unset".
type Meta struct {
	LastModified time.Time
	Source       string // opaque source reference, usually a vault-relative path
	Kind         Kind
	IsImage      bool
}

// Node is a single entry in a Tree.
type Node struct {
	Slug         string
	Title        string
	LastModified time.Time
	Kind         Kind
	IsImage      bool

	id         NodeID
	parent     NodeID
	segment    string
	content    Content
	children   []NodeID
	childIndex map[string]NodeID
}

// ID returns the node's arena handle.
func (n *Node) ID() NodeID { return n.id }

// Segment returns the last raw path segment of the slug.
func (n *Node) Segment() string { return n.segment }

// IsRoot reports whether n is the tree root.
func (n *Node) IsRoot() bool { return n.parent == NoParent }

// IsDir reports whether the node currently has children.
func (n *Node) IsDir() bool { return len(n.children) > 0 }

// Source returns the bound source reference, or "" when unbound.
func (n *Node) Source() string { return n.content.ref }

// Content returns the node's lazy content binding.
func (n *Node) Content() *Content { return &n.content }

// URI returns the percent-encoded absolute path of the node.
func (n *Node) URI() string {
	if n.Slug == "" {
		return "/"
	}
	parts := strings.Split(n.Slug, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return "/" + strings.Join(parts, "/")
}

func (n *Node) String() string {
	return fmt.Sprintf("Node(slug: %q, title: %q)", n.Slug, n.Title)
}

func (n *Node) merge(meta Meta) {
	if n.LastModified.IsZero() {
		n.LastModified = meta.LastModified
	}
	n.content.Bind(meta.Source)
	if n.Kind == KindNone {
		n.Kind = meta.Kind
		n.IsImage = meta.IsImage
	}
}

var numericPrefix = regexp.MustCompile(`^\d+ - `)

// Option configures a Tree.
type Option func(*Tree)

// WithNumericPrefixStripping controls whether "12 - " style ordering
// prefixes are removed from titles. Slugs always keep the raw segment.
func WithNumericPrefixStripping(strip bool) Option {
	return func(t *Tree) { t.stripPrefix = strip }
}

// Tree is an ordered hierarchical namespace keyed by slash separated slugs.
// Nodes live in an arena and refer to each other by NodeID.
type Tree struct {
	nodes       []*Node
	bySlug      map[string]NodeID
	stripPrefix bool
}

// New creates a tree holding only the root node (slug "").
func New(opts ...Option) *Tree {
	t := &Tree{
		bySlug:      make(map[string]NodeID),
		stripPrefix: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	root := &Node{id: 0, parent: NoParent, childIndex: map[string]NodeID{}}
	t.nodes = append(t.nodes, root)
	t.bySlug[""] = 0
	return t
}

// Root returns the root node.
func (t *Tree) Root() *Node { return t.nodes[0] }

// Len returns the number of live nodes, root included.
func (t *Tree) Len() int { return len(t.bySlug) }

// Get returns the node whose slug is exactly slug, or nil.
func (t *Tree) Get(slug string) *Node {
	id, ok := t.bySlug[slug]
	if !ok {
		return nil
	}
	return t.nodes[id]
}

// Node returns the live node for a handle, or nil.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Parent returns n's parent, or nil for the root.
func (t *Tree) Parent(n *Node) *Node {
	if n == nil || n.parent == NoParent {
		return nil
	}
	return t.nodes[n.parent]
}

// Ancestors returns the parent chain of n, nearest first, ending at the root.
func (t *Tree) Ancestors(n *Node) []*Node {
	var out []*Node
	for p := t.Parent(n); p != nil; p = t.Parent(p) {
		out = append(out, p)
	}
	return out
}

// Add inserts the node for slug, synthesizing missing ancestors, and merges
// meta into it. Adding an existing slug keeps the first non-empty value of
// each field. An empty slug merges meta into the root.
func (t *Tree) Add(slug string, meta Meta) (*Node, error) {
	if slug == "" {
		root := t.Root()
		root.merge(meta)
		return root, nil
	}

	segments := strings.Split(slug, "/")
	if slices.Contains(segments, "") {
		return nil, fmt.Errorf("add %q: %w", slug, ErrInvalidSlug)
	}

	parent := t.Root()
	for _, seg := range segments[:len(segments)-1] {
		child, err := t.child(parent, seg, Meta{})
		if err != nil {
			return nil, fmt.Errorf("add %q: %w", slug, err)
		}
		parent = child
	}

	node, err := t.child(parent, segments[len(segments)-1], meta)
	if err != nil {
		return nil, fmt.Errorf("add %q: %w", slug, err)
	}
	return node, nil
}

// child returns parent's child for segment, creating it when absent, and
// merges meta into it.
func (t *Tree) child(parent *Node, segment string, meta Meta) (*Node, error) {
	if parent.Kind == KindMedia {
		return nil, fmt.Errorf("%w: media file %q cannot contain %q", ErrKindConflict, parent.Slug, segment)
	}

	if id, ok := parent.childIndex[segment]; ok {
		existing := t.nodes[id]
		if meta.Kind == KindMedia && existing.IsDir() {
			return nil, fmt.Errorf("%w: directory %q cannot be a media file", ErrKindConflict, existing.Slug)
		}
		existing.merge(meta)
		return existing, nil
	}

	n := &Node{
		Slug:       joinSlug(parent.Slug, segment),
		Title:      t.title(segment),
		id:         NodeID(len(t.nodes)),
		parent:     parent.id,
		segment:    segment,
		childIndex: map[string]NodeID{},
	}
	n.merge(meta)

	t.nodes = append(t.nodes, n)
	t.bySlug[n.Slug] = n.id
	parent.children = append(parent.children, n.id)
	parent.childIndex[segment] = n.id
	return n, nil
}

func (t *Tree) title(segment string) string {
	if !t.stripPrefix {
		return segment
	}
	return numericPrefix.ReplaceAllString(segment, "")
}

// Children returns n's children in display order: nodes with children
// first, then leaves, each group sorted by slug.
func (t *Tree) Children(n *Node) []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, id := range n.children {
		out = append(out, t.nodes[id])
	}
	slices.SortFunc(out, func(a, b *Node) int {
		if a.IsDir() != b.IsDir() {
			if a.IsDir() {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Slug, b.Slug)
	})
	return out
}

// remove detaches n from its parent and frees its whole subtree. It
// returns the number of nodes freed.
func (t *Tree) remove(n *Node) int {
	if p := t.Parent(n); p != nil {
		p.children = slices.DeleteFunc(p.children, func(id NodeID) bool { return id == n.id })
		delete(p.childIndex, n.segment)
	}
	return t.free(n)
}

func (t *Tree) free(n *Node) int {
	count := 1
	for _, id := range n.children {
		count += t.free(t.nodes[id])
	}
	delete(t.bySlug, n.Slug)
	t.nodes[n.id] = nil
	return count
}

func joinSlug(parent, segment string) string {
	if parent == "" {
		return segment
	}
	return parent + "/" + segment
}
