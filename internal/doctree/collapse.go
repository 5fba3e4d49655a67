package doctree

import "slices"

// Collapse lifts the only child of a node into that node's place, repeatedly,
// so chains of single-child directories disappear. The root is never
// replaced. A lift is skipped when the child's segment is already used by
// another sibling.
func (t *Tree) Collapse() {
	t.collapse(t.Root())
}

func (t *Tree) collapse(n *Node) {
	for _, id := range slices.Clone(n.children) {
		c := t.nodes[id]
		for len(c.children) == 1 {
			g := t.nodes[c.children[0]]
			if taken, ok := n.childIndex[g.segment]; ok && taken != c.id {
				break
			}
			t.lift(n, c, g)
			c = g
		}
		t.collapse(c)
	}
}

// lift replaces c (a child of n) with g (c's only child).
func (t *Tree) lift(n, c, g *Node) {
	i := slices.Index(n.children, c.id)
	n.children[i] = g.id
	delete(n.childIndex, c.segment)
	n.childIndex[g.segment] = g.id

	delete(t.bySlug, c.Slug)
	t.nodes[c.id] = nil

	g.parent = n.id
	t.rename(g, joinSlug(n.Slug, g.segment))
}

// rename moves n and its subtree under slug. Old keys are all dropped
// before new ones are written, since a new slug may equal an old slug of a
// node that has not been renamed yet.
func (t *Tree) rename(n *Node, slug string) {
	var moved []*Node
	var relabel func(n *Node, slug string)
	relabel = func(n *Node, slug string) {
		delete(t.bySlug, n.Slug)
		n.Slug = slug
		moved = append(moved, n)
		for _, id := range n.children {
			c := t.nodes[id]
			relabel(c, joinSlug(slug, c.segment))
		}
	}
	relabel(n, slug)

	for _, m := range moved {
		t.bySlug[m.Slug] = m.id
	}
}
