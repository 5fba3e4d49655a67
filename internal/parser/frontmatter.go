package parser

import (
	"bytes"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

const frontmatterDelim = "---"

var yamlFormat = frontmatter.NewFormat(frontmatterDelim, frontmatterDelim, yaml.Unmarshal)

// SplitFrontmatter separates a leading "---" delimited YAML block from the
// markdown body. Without a closing delimiter the whole input is body. A
// block that is not a valid YAML mapping yields empty metadata; the body is
// returned untouched either way.
func SplitFrontmatter(src []byte) (map[string]any, []byte) {
	end, ok := frontmatterEnd(src)
	if !ok {
		return map[string]any{}, src
	}

	var meta map[string]any
	if _, err := frontmatter.Parse(bytes.NewReader(src[:end]), &meta, yamlFormat); err != nil || meta == nil {
		return map[string]any{}, src[end:]
	}
	return meta, src[end:]
}

// frontmatterEnd returns the offset just past the closing delimiter line.
func frontmatterEnd(src []byte) (int, bool) {
	offset := 0
	first := true
	for offset < len(src) {
		next := bytes.IndexByte(src[offset:], '\n')
		lineEnd := len(src)
		if next >= 0 {
			lineEnd = offset + next + 1
		}
		line := bytes.TrimRight(src[offset:lineEnd], "\r\n")

		if first {
			if string(line) != frontmatterDelim {
				return 0, false
			}
			first = false
		} else if string(line) == frontmatterDelim {
			return lineEnd, true
		}
		offset = lineEnd
	}
	return 0, false
}
