package api

import (
	"encoding/json"
	"net/http"
)

// handleReindex rebuilds the vault from disk and drops cached pages.
func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	if s.indexer == nil {
		jsonError(w, "reindexing unavailable", http.StatusServiceUnavailable)
		return
	}

	v, report, err := s.indexer.Run(r.Context())
	if err != nil {
		s.mu.Lock()
		s.report = report
		s.mu.Unlock()
		jsonError(w, "reindex failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	s.vault = v
	s.report = report
	s.pages.Purge()
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report.Snapshot())
}

// handleIndexStatus reports the outcome of the last indexing run.
func (s *Server) handleIndexStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	report := s.report
	s.mu.Unlock()

	if report == nil {
		jsonError(w, "no index run recorded", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report.Snapshot())
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
