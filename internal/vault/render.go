package vault

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/dgallion1/docvault/internal/doctree"
	"github.com/dgallion1/docvault/internal/parser"
)

// Page is a rendered document.
type Page struct {
	Node        *doctree.Node
	Frontmatter map[string]any
	Raw         string // source text as read
	Body        string // markdown after frontmatter removal and link expansion
	HTML        string
	Links       []parser.Link
}

// Render fetches, expands and renders the document behind n. Every link
// target that resolves is marked as referenced. A node without a source
// renders to nil without error.
func (v *Vault) Render(n *doctree.Node) (*Page, error) {
	if n == nil || !n.Content().Bound() {
		return nil, nil
	}

	raw, err := n.Content().Load(v.fsys)
	if err != nil {
		return nil, fmt.Errorf("render %q: %w", n.Slug, err)
	}

	meta, body := parser.SplitFrontmatter(raw)
	expanded := v.expander.Expand(string(body))

	doc := v.markdown.Parse([]byte(expanded))
	html, err := doc.HTML()
	if err != nil {
		return nil, fmt.Errorf("render %q: %w", n.Slug, err)
	}

	links := doc.Links()
	for _, l := range links {
		v.markHref(l.Href)
	}
	for _, img := range doc.Images() {
		v.markHref(img.Href)
	}

	return &Page{
		Node:        n,
		Frontmatter: meta,
		Raw:         string(raw),
		Body:        expanded,
		HTML:        html,
		Links:       links,
	}, nil
}

// RenderAll renders every document that has a source, in walk order.
// Documents that fail to render are logged and skipped. Source bytes are
// released after each render; a later Render reads them again.
func (v *Vault) RenderAll() []*Page {
	var nodes []*doctree.Node
	for n := range v.docs.Walk(v.docs.Root()) {
		if n.Content().Bound() {
			nodes = append(nodes, n)
		}
	}

	pages := make([]*Page, 0, len(nodes))
	for _, n := range nodes {
		page, err := v.Render(n)
		n.Content().Release()
		if err != nil {
			v.log.Warn("render failed", "slug", n.Slug, "source", n.Source(), "error", err)
			continue
		}
		pages = append(pages, page)
	}
	return pages
}

// markHref marks the node an internal href points to, trying documents
// before media. External and fragment-only hrefs are ignored.
func (v *Vault) markHref(href string) {
	slug, ok := hrefSlug(href, v.opts.DocExtension)
	if !ok {
		return
	}
	if n := v.docs.Find(slug); n != nil {
		v.docRefs.Mark(v.docs, n.Slug)
		return
	}
	if n := v.media.Find(slug); n != nil {
		v.mediaRefs.Mark(v.media, n.Slug)
	}
}

func hrefSlug(href, ext string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}
	slug := strings.Trim(path.Clean("/"+u.Path), "/")
	return parser.TrimDocExtension(slug, ext), true
}
