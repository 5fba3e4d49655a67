// Package mediatype classifies attachment files by content type.
package mediatype

import (
	"io/fs"
	"mime"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const fallbackMIME = "application/octet-stream"

// Kind is the detected content type of a file.
type Kind struct {
	MIME string
}

// IsImage reports whether the content type is an image/* type.
func (k Kind) IsImage() bool {
	return strings.HasPrefix(k.MIME, "image/")
}

// Classifier detects content types of files inside FS.
type Classifier struct {
	FS fs.FS
}

// Classify returns the content type of name. The extension is consulted
// first; unknown extensions are sniffed from the file contents.
func (c Classifier) Classify(name string) Kind {
	if t := ByExtension(name); t != "" {
		return Kind{MIME: t}
	}
	if c.FS == nil {
		return Kind{MIME: fallbackMIME}
	}

	f, err := c.FS.Open(name)
	if err != nil {
		return Kind{MIME: fallbackMIME}
	}
	defer f.Close()

	m, err := mimetype.DetectReader(f)
	if err != nil {
		return Kind{MIME: fallbackMIME}
	}
	return Kind{MIME: stripParams(m.String())}
}

// ByExtension maps a file extension to a content type, "" when unknown.
func ByExtension(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return ""
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return stripParams(t)
	}
	if m := mimetype.Lookup(extensionTypes[ext]); m != nil {
		return stripParams(m.String())
	}
	return ""
}

// Common vault attachments that the platform mime table may lack.
var extensionTypes = map[string]string{
	".webp": "image/webp",
	".avif": "image/avif",
	".heic": "image/heic",
	".bmp":  "image/bmp",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/x-m4a",
	".ogg":  "audio/ogg",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".pdf":  "application/pdf",
}

func stripParams(t string) string {
	if i := strings.IndexByte(t, ';'); i >= 0 {
		return strings.TrimSpace(t[:i])
	}
	return t
}
