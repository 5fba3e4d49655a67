package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dgallion1/docvault/internal/doctree"
)

type nodeResponse struct {
	Slug         string          `json:"slug"`
	Title        string          `json:"title"`
	URI          string          `json:"uri"`
	Kind         string          `json:"kind"`
	IsImage      bool            `json:"is_image,omitempty"`
	LastModified time.Time       `json:"last_modified,omitzero"`
	Children     []*nodeResponse `json:"children,omitempty"`
}

func newNodeResponse(n *doctree.Node) *nodeResponse {
	return &nodeResponse{
		Slug:         n.Slug,
		Title:        n.Title,
		URI:          n.URI(),
		Kind:         n.Kind.String(),
		IsImage:      n.IsImage,
		LastModified: n.LastModified,
	}
}

func buildTree(t *doctree.Tree, n *doctree.Node) *nodeResponse {
	out := newNodeResponse(n)
	for _, c := range t.Children(n) {
		out.Children = append(out.Children, buildTree(t, c))
	}
	return out
}

// selectTree picks the document tree unless ?tree=media is given.
func (s *Server) selectTree(r *http.Request) (*doctree.Tree, bool) {
	switch r.URL.Query().Get("tree") {
	case "", "docs":
		return s.vault.Docs(), true
	case "media":
		return s.vault.Media(), true
	default:
		return nil, false
	}
}

// handleTree returns the whole tree as nested JSON.
func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	t, ok := s.selectTree(r)
	if !ok {
		s.mu.Unlock()
		jsonError(w, "tree must be docs or media", http.StatusBadRequest)
		return
	}
	root := buildTree(t, t.Root())
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(root)
}

// handleTOC returns the document tree flattened in display order.
func (s *Server) handleTOC(w http.ResponseWriter, r *http.Request) {
	type tocEntry struct {
		Slug  string `json:"slug"`
		Title string `json:"title"`
		URI   string `json:"uri"`
		Level int    `json:"level"`
	}

	s.mu.Lock()
	toc := s.vault.Docs().TableOfContents()
	entries := make([]tocEntry, 0, len(toc))
	for _, e := range toc {
		entries = append(entries, tocEntry{
			Slug:  e.Node.Slug,
			Title: e.Node.Title,
			URI:   e.Node.URI(),
			Level: e.Level,
		})
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"entries": entries})
}

// handleFind resolves a possibly partial slug.
func (s *Server) handleFind(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("q") {
		jsonError(w, "q query parameter is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	t, ok := s.selectTree(r)
	if !ok {
		s.mu.Unlock()
		jsonError(w, "tree must be docs or media", http.StatusBadRequest)
		return
	}
	n := t.Find(q.Get("q"))
	var resp *nodeResponse
	if n != nil {
		resp = newNodeResponse(n)
	}
	s.mu.Unlock()

	if resp == nil {
		jsonError(w, "no match for "+q.Get("q"), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
