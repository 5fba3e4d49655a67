package doctree

import (
	"slices"
	"strings"
)

// References records which slugs of one tree are reachable through links.
// Marks are never cleared.
type References struct {
	slugs map[string]struct{}
}

func NewReferences() *References {
	return &References{slugs: make(map[string]struct{})}
}

// Mark flags slug and all of its ancestors as referenced.
func (r *References) Mark(t *Tree, slug string) {
	r.slugs[slug] = struct{}{}

	if n := t.Get(slug); n != nil {
		for _, a := range t.Ancestors(n) {
			r.slugs[a.Slug] = struct{}{}
		}
		return
	}

	// Not in the tree: fall back to the slug's own prefixes.
	parts := strings.Split(slug, "/")
	for i := len(parts) - 1; i > 0; i-- {
		r.slugs[strings.Join(parts[:i], "/")] = struct{}{}
	}
	r.slugs[""] = struct{}{}
}

// IsReferenced reports whether slug was marked.
func (r *References) IsReferenced(slug string) bool {
	_, ok := r.slugs[slug]
	return ok
}

// Len returns the number of marked slugs.
func (r *References) Len() int { return len(r.slugs) }

// Slugs returns the marked slugs, sorted.
func (r *References) Slugs() []string {
	out := make([]string, 0, len(r.slugs))
	for s := range r.slugs {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// Prune removes every subtree whose root slug was never marked. The tree
// root is always kept. It returns the number of nodes removed.
func (r *References) Prune(t *Tree) int {
	return r.prune(t, t.Root())
}

func (r *References) prune(t *Tree, n *Node) int {
	removed := 0
	for _, c := range t.Children(n) {
		if !r.IsReferenced(c.Slug) {
			removed += t.remove(c)
			continue
		}
		removed += r.prune(t, c)
	}
	return removed
}
