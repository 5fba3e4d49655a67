package parser

import (
	"strings"

	"golang.org/x/net/html"
)

// LinksFromHTML extracts <a href> anchors from an HTML fragment. Anchors
// without an href are ignored.
func LinksFromHTML(fragment string) []Link {
	var links []Link
	z := html.NewTokenizer(strings.NewReader(fragment))

	var current *Link
	var label strings.Builder

	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way we are done.
			if current != nil {
				current.Text = strings.TrimSpace(label.String())
				links = append(links, *current)
			}
			return links

		case html.StartTagToken:
			tok := z.Token()
			if tok.Data != "a" {
				continue
			}
			if current != nil {
				current.Text = strings.TrimSpace(label.String())
				links = append(links, *current)
				current = nil
			}
			if href, ok := attr(tok, "href"); ok {
				current = &Link{Href: href}
				label.Reset()
			}

		case html.TextToken:
			if current != nil {
				label.Write(z.Text())
			}

		case html.EndTagToken:
			tok := z.Token()
			if tok.Data == "a" && current != nil {
				current.Text = strings.TrimSpace(label.String())
				links = append(links, *current)
				current = nil
			}
		}
	}
}

func attr(tok html.Token, key string) (string, bool) {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
