package parser

import "testing"

func TestLinksFromHTML(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     []Link
	}{
		{"single anchor", `<a href="/foo">Foo</a>`, []Link{{Href: "/foo", Text: "Foo"}}},
		{"nested markup", `<p>See <a href="/a"><b>bold</b> text</a>.</p>`, []Link{{Href: "/a", Text: "bold text"}}},
		{"no href", `<a name="top">Top</a>`, nil},
		{"several", `<a href="/1">one</a> and <a href='/2'>two</a>`, []Link{{Href: "/1", Text: "one"}, {Href: "/2", Text: "two"}}},
		{"unclosed", `<a href="/open">dangling`, []Link{{Href: "/open", Text: "dangling"}}},
		{"other tags", `<img src="/x.png"><span>hi</span>`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinksFromHTML(tt.fragment)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d links, got %d: %v", len(tt.want), len(got), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("link %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
