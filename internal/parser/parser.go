package parser

import (
	"path"
	"strings"
)

// DefaultDocExtension is the extension of files indexed as documents.
const DefaultDocExtension = ".md"

// IsDocument reports whether name has the document extension ext.
// The comparison ignores case.
func IsDocument(name, ext string) bool {
	return ext != "" && strings.EqualFold(path.Ext(name), ext)
}

// TrimDocExtension removes ext from the end of name, ignoring case.
func TrimDocExtension(name, ext string) string {
	if IsDocument(name, ext) {
		return name[:len(name)-len(ext)]
	}
	return name
}
