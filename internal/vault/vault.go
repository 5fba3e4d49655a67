// Package vault indexes a directory of markdown documents and attachments
// into two page trees and renders documents with their wikilinks resolved.
//
// A Vault is not safe for concurrent use. All entries should be added
// before anything is resolved, rendered or pruned, since resolution
// depends on the final shape of the trees.
package vault

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/dgallion1/docvault/internal/doctree"
	"github.com/dgallion1/docvault/internal/mediatype"
	"github.com/dgallion1/docvault/internal/parser"
	"github.com/dgallion1/docvault/internal/wikilink"
)

// Entry is one item of a directory listing, relative to the vault root.
type Entry struct {
	Path     string
	Modified time.Time
	IsDir    bool
}

// Classifier decides the content type of attachment files.
type Classifier interface {
	Classify(name string) mediatype.Kind
}

// Options controls how entries are indexed.
type Options struct {
	DocExtension       string // defaults to ".md"
	StripNumericPrefix bool
	Classifier         Classifier
}

// DefaultOptions indexes ".md" files as documents and strips ordering
// prefixes from titles.
func DefaultOptions() Options {
	return Options{
		DocExtension:       parser.DefaultDocExtension,
		StripNumericPrefix: true,
	}
}

// Vault owns the document tree, the media tree and their reference tables.
type Vault struct {
	fsys fs.FS
	opts Options
	log  *slog.Logger

	docs      *doctree.Tree
	media     *doctree.Tree
	docRefs   *doctree.References
	mediaRefs *doctree.References

	markdown *parser.Markdown
	expander *wikilink.Expander
}

// New creates an empty vault reading sources from fsys.
func New(fsys fs.FS, opts Options, log *slog.Logger) *Vault {
	if opts.DocExtension == "" {
		opts.DocExtension = parser.DefaultDocExtension
	}
	if opts.Classifier == nil {
		opts.Classifier = mediatype.Classifier{FS: fsys}
	}
	if log == nil {
		log = slog.Default()
	}

	v := &Vault{
		fsys:      fsys,
		opts:      opts,
		log:       log,
		docs:      doctree.New(doctree.WithNumericPrefixStripping(opts.StripNumericPrefix)),
		media:     doctree.New(doctree.WithNumericPrefixStripping(opts.StripNumericPrefix)),
		docRefs:   doctree.NewReferences(),
		mediaRefs: doctree.NewReferences(),
		markdown:  parser.NewMarkdown(),
	}
	v.expander = &wikilink.Expander{
		Docs:  wikilink.Target{Tree: v.docs, Refs: v.docRefs},
		Media: wikilink.Target{Tree: v.media, Refs: v.mediaRefs},
	}
	return v
}

// AddEntry indexes one listing entry. Directories are skipped; their nodes
// are synthesized from the files below them. Documents are keyed by their
// path without extension, and "index" documents stand for their directory.
// Every other file goes into the media tree under its full path.
func (v *Vault) AddEntry(e Entry) (*doctree.Node, error) {
	if e.IsDir {
		return nil, nil
	}
	rel := path.Clean(e.Path)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return nil, fmt.Errorf("add entry %q: %w", e.Path, doctree.ErrInvalidSlug)
	}

	if parser.IsDocument(rel, v.opts.DocExtension) {
		return v.docs.Add(DocumentSlug(rel, v.opts.DocExtension), doctree.Meta{
			LastModified: e.Modified,
			Source:       rel,
			Kind:         doctree.KindDocument,
		})
	}

	kind := v.opts.Classifier.Classify(rel)
	return v.media.Add(rel, doctree.Meta{
		LastModified: e.Modified,
		Source:       rel,
		Kind:         doctree.KindMedia,
		IsImage:      kind.IsImage(),
	})
}

// DocumentSlug derives a document slug from its vault-relative path.
func DocumentSlug(rel, ext string) string {
	slug := parser.TrimDocExtension(rel, ext)
	if path.Base(slug) != "index" {
		return slug
	}
	dir := path.Dir(slug)
	if dir == "." {
		return ""
	}
	return dir
}

// Docs returns the document tree.
func (v *Vault) Docs() *doctree.Tree { return v.docs }

// Media returns the attachment tree.
func (v *Vault) Media() *doctree.Tree { return v.media }

// FS returns the filesystem sources are read from.
func (v *Vault) FS() fs.FS { return v.fsys }

// Find resolves slug against the document tree.
func (v *Vault) Find(slug string) *doctree.Node { return v.docs.Find(slug) }

// FindMedia resolves slug against the media tree.
func (v *Vault) FindMedia(slug string) *doctree.Node { return v.media.Find(slug) }

// MarkReferenced flags a document slug and its ancestors as reachable.
func (v *Vault) MarkReferenced(slug string) { v.docRefs.Mark(v.docs, slug) }

// MarkMediaReferenced flags a media slug and its ancestors as reachable.
func (v *Vault) MarkMediaReferenced(slug string) { v.mediaRefs.Mark(v.media, slug) }

// IsReferenced reports whether a document slug was marked.
func (v *Vault) IsReferenced(slug string) bool { return v.docRefs.IsReferenced(slug) }

// IsMediaReferenced reports whether a media slug was marked.
func (v *Vault) IsMediaReferenced(slug string) bool { return v.mediaRefs.IsReferenced(slug) }

// Prune drops every unreferenced subtree from both trees and returns how
// many document and media nodes were removed.
func (v *Vault) Prune() (docs, media int) {
	docs = v.docRefs.Prune(v.docs)
	media = v.mediaRefs.Prune(v.media)
	v.log.Info("pruned unreferenced nodes", "documents", docs, "media", media)
	return docs, media
}

// Collapse lifts single children in the document tree.
func (v *Vault) Collapse() {
	v.docs.Collapse()
}
