package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	gmparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Link is an outgoing hyperlink found in a rendered document.
type Link struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

// Markdown renders CommonMark (plus tables, task lists and autolinks) to HTML.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown returns a renderer with smart punctuation, hard line breaks
// and raw HTML passthrough enabled.
func NewMarkdown() *Markdown {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.TaskList,
			extension.Linkify,
			extension.Typographer,
		),
		goldmark.WithParserOptions(gmparser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(),
		),
	)
	return &Markdown{md: md}
}

// Document is a parsed markdown source.
type Document struct {
	md     goldmark.Markdown
	root   ast.Node
	source []byte
}

// Parse parses src. Heading ids are unique within the document.
func (m *Markdown) Parse(src []byte) *Document {
	ctx := gmparser.NewContext(gmparser.WithIDs(newHeadingIDs()))
	root := m.md.Parser().Parse(text.NewReader(src), gmparser.WithContext(ctx))
	return &Document{md: m.md, root: root, source: src}
}

// HTML renders the document.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := d.md.Renderer().Render(&buf, d.source, d.root); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// Links returns every link in document order: markdown links, autolinks
// and anchors written as raw HTML.
func (d *Document) Links() []Link {
	var links []Link
	var raw strings.Builder

	flushRaw := func() {
		if raw.Len() > 0 {
			links = append(links, LinksFromHTML(raw.String())...)
			raw.Reset()
		}
	}

	ast.Walk(d.root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			flushRaw()
			links = append(links, Link{
				Href: string(node.Destination),
				Text: textContent(node, d.source),
			})
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			flushRaw()
			label := string(node.Label(d.source))
			links = append(links, Link{Href: string(node.URL(d.source)), Text: label})
		case *ast.RawHTML:
			segs := node.Segments
			for i := 0; i < segs.Len(); i++ {
				seg := segs.At(i)
				raw.Write(seg.Value(d.source))
			}
		case *ast.HTMLBlock:
			flushRaw()
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				raw.Write(line.Value(d.source))
			}
			if node.HasClosure() {
				raw.Write(node.ClosureLine.Value(d.source))
			}
			flushRaw()
		case *ast.Text:
			if raw.Len() > 0 {
				raw.Write(node.Segment.Value(d.source))
			}
		}
		return ast.WalkContinue, nil
	})
	flushRaw()

	return links
}

// Images returns the destination and alt text of every markdown image.
func (d *Document) Images() []Link {
	var images []Link
	ast.Walk(d.root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if img, ok := n.(*ast.Image); ok && entering {
			images = append(images, Link{
				Href: string(img.Destination),
				Text: textContent(img, d.source),
			})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return images
}

// textContent gets the plain text below an inline node.
func textContent(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(textContent(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
