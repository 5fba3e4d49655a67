package parser

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// headingIDs generates kramdown style heading anchors: leading non-letters
// dropped, only [a-zA-Z0-9 -] kept, spaces turned into dashes, lowercased.
// Repeats get a numeric suffix.
type headingIDs struct {
	used map[string]int
}

func newHeadingIDs() *headingIDs {
	return &headingIDs{used: map[string]int{}}
}

func (h *headingIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	id := HeadingID(string(value))
	if n, ok := h.used[id]; ok {
		n++
		h.used[id] = n
		return []byte(id + "-" + strconv.Itoa(n))
	}
	h.used[id] = 0
	return []byte(id)
}

func (h *headingIDs) Put(value []byte) {
	if _, ok := h.used[string(value)]; !ok {
		h.used[string(value)] = 0
	}
}

// HeadingID converts heading text into an anchor id without deduplication.
func HeadingID(title string) string {
	title = strings.TrimLeftFunc(title, func(r rune) bool { return !isASCIILetter(r) })

	var b strings.Builder
	for _, r := range title {
		switch {
		case isASCIILetter(r) || (r >= '0' && r <= '9') || r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}

	id := strings.ToLower(b.String())
	if id == "" {
		return "section"
	}
	return id
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
