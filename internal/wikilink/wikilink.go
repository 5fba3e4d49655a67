// Package wikilink rewrites [[wikilink]] and ![[attachment]] syntax into
// plain markdown links and images by resolving targets against page trees.
package wikilink

import (
	"regexp"
	"strings"

	"github.com/dgallion1/docvault/internal/doctree"
)

var (
	wikilinkSyntax = regexp.MustCompile(
		`\[\[` +
			`(?P<target>[^\]#|]*)` + // link target
			`(?:#(?P<fragment>[^|\]]*))?` + // optional heading fragment
			`(?:\|(?P<text>[^\]]*))?` + // optional display text
			`\]\]`)

	attachmentSyntax = regexp.MustCompile(
		`!\[\[` +
			`(?P<target>[^\]#|]*)` +
			`(?:#(?P<fragment>[^|\]]*))?` +
			`(?:\|(?P<text>[^\]]*))?` +
			`\]\]`)
)

// Target is a tree that links resolve against, with the reference table
// that records successful resolutions. Refs may be nil.
type Target struct {
	Tree *doctree.Tree
	Refs *doctree.References
}

func (t Target) find(slug string) *doctree.Node {
	if t.Tree == nil {
		return nil
	}
	n := t.Tree.Find(slug)
	if n != nil && t.Refs != nil {
		t.Refs.Mark(t.Tree, n.Slug)
	}
	return n
}

// Expander resolves documents against Docs and attachments against Media.
type Expander struct {
	Docs  Target
	Media Target
}

// Expand rewrites attachments first, then wikilinks.
func (e *Expander) Expand(markdown string) string {
	return e.ExpandWikilinks(e.ExpandAttachments(markdown))
}

// ExpandWikilinks turns [[target#fragment|text]] into [text](uri#fragment).
// Unresolvable targets become plain text.
func (e *Expander) ExpandWikilinks(markdown string) string {
	return replace(wikilinkSyntax, markdown, func(m match) string {
		return linkTo(e.Docs, m)
	})
}

// ExpandAttachments turns ![[target]] into image syntax when the target is
// an image in the media tree. Other attachments become links into the media
// tree, and targets missing from the media tree are resolved as wikilinks.
func (e *Expander) ExpandAttachments(markdown string) string {
	return replace(attachmentSyntax, markdown, func(m match) string {
		attachment := e.Media.find(m.target)
		if attachment == nil {
			return linkTo(e.Docs, m)
		}
		if !attachment.IsImage {
			return linkTo(e.Media, m)
		}
		return "![" + m.text + "](" + href(attachment, m) + ")"
	})
}

func linkTo(t Target, m match) string {
	n := t.find(m.target)
	if n == nil {
		if m.hasText {
			return m.text
		}
		return lastSegment(strings.TrimRight(m.target, "/"))
	}

	text := m.text
	if !m.hasText {
		text = lastSegment(n.Slug)
	}
	return "[" + text + "](" + href(n, m) + ")"
}

func href(n *doctree.Node, m match) string {
	if m.hasFragment {
		return n.URI() + "#" + m.fragment
	}
	return n.URI()
}

func lastSegment(slug string) string {
	return slug[strings.LastIndexByte(slug, '/')+1:]
}

type match struct {
	target      string
	fragment    string
	text        string
	hasFragment bool
	hasText     bool
}

func replace(re *regexp.Regexp, src string, fn func(match) string) string {
	targetIdx := re.SubexpIndex("target")
	fragmentIdx := re.SubexpIndex("fragment")
	textIdx := re.SubexpIndex("text")

	locs := re.FindAllStringSubmatchIndex(src, -1)
	if len(locs) == 0 {
		return src
	}

	out := make([]byte, 0, len(src))
	last := 0
	for _, loc := range locs {
		out = append(out, src[last:loc[0]]...)

		m := match{target: src[loc[2*targetIdx]:loc[2*targetIdx+1]]}
		if loc[2*fragmentIdx] >= 0 {
			m.fragment = src[loc[2*fragmentIdx]:loc[2*fragmentIdx+1]]
			m.hasFragment = true
		}
		if loc[2*textIdx] >= 0 {
			m.text = src[loc[2*textIdx]:loc[2*textIdx+1]]
			m.hasText = true
		}

		out = append(out, fn(m)...)
		last = loc[1]
	}
	out = append(out, src[last:]...)
	return string(out)
}
