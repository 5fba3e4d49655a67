package api

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"net/http"
	"time"

	"github.com/dgallion1/docvault/internal/mediatype"
	"github.com/dgallion1/docvault/internal/parser"
	"github.com/dgallion1/docvault/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

type pageResponse struct {
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	URI         string         `json:"uri"`
	Frontmatter map[string]any `json:"frontmatter"`
	HTML        string         `json:"html"`
	Links       []parser.Link  `json:"links"`
	ETag        string         `json:"-"`
}

// handlePage renders the document a slug resolves to. Rendered pages are
// cached by slug until the vault is rebuilt.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "*")

	s.mu.Lock()
	n := s.vault.Find(slug)
	if n == nil || !n.Content().Bound() {
		s.mu.Unlock()
		jsonError(w, "page not found", http.StatusNotFound)
		return
	}

	resp, cached := s.pages.Get(n.Slug)
	if !cached {
		page, err := s.vault.Render(n)
		if err != nil {
			s.mu.Unlock()
			s.log.Error("render failed", "slug", n.Slug, "error", err)
			jsonError(w, "failed to render page", http.StatusInternalServerError)
			return
		}
		resp = &pageResponse{
			Slug:        n.Slug,
			Title:       n.Title,
			URI:         n.URI(),
			Frontmatter: page.Frontmatter,
			HTML:        page.HTML,
			Links:       page.Links,
			ETag:        `"` + pipeline.ContentHashHex([]byte(page.HTML)) + `"`,
		}
		if resp.Links == nil {
			resp.Links = []parser.Link{}
		}
		s.pages.Add(n.Slug, resp)
	}
	s.mu.Unlock()

	w.Header().Set("ETag", resp.ETag)
	if r.Header.Get("If-None-Match") == resp.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleMedia serves the raw bytes of an attachment.
func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "*")

	s.mu.Lock()
	n := s.vault.FindMedia(slug)
	var source string
	var modified time.Time
	if n != nil {
		source = n.Source()
		modified = n.LastModified
	}
	fsys := s.vault.FS()
	s.mu.Unlock()

	if source == "" {
		jsonError(w, "media not found", http.StatusNotFound)
		return
	}

	data, err := fs.ReadFile(fsys, source)
	if err != nil {
		s.log.Error("read media failed", "source", source, "error", err)
		jsonError(w, "media not readable", http.StatusNotFound)
		return
	}

	kind := mediatype.Classifier{FS: fsys}.Classify(source)
	w.Header().Set("Content-Type", kind.MIME)
	http.ServeContent(w, r, source, modified, bytes.NewReader(data))
}
