package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// Status represents the state of an indexing run.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusScanning   Status = "scanning"
	StatusIndexing   Status = "indexing"
	StatusRendering  Status = "rendering"
	StatusPruning    Status = "pruning"
	StatusCollapsing Status = "collapsing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Report tracks the progress of a single indexing run.
type Report struct {
	mu sync.Mutex

	Status   Status   `json:"status"`
	Phase    string   `json:"phase"`
	Progress Progress `json:"progress"`

	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`

	errors []string
}

// Progress counts what a run has done so far.
type Progress struct {
	Entries     int      `json:"entries"`
	Documents   int      `json:"documents"`
	Media       int      `json:"media"`
	Rendered    int      `json:"rendered"`
	PrunedDocs  int      `json:"pruned_documents"`
	PrunedMedia int      `json:"pruned_media"`
	Errors      []string `json:"errors"`
}

// NewReport returns a queued report.
func NewReport() *Report {
	now := time.Now()
	return &Report{Status: StatusQueued, Phase: "queued", StartedAt: now, UpdatedAt: now}
}

// SetStatus updates the run status atomically.
func (r *Report) SetStatus(status Status, phase string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Status = status
	r.Phase = phase
	r.UpdatedAt = time.Now()
}

// AddError records a non-fatal error.
func (r *Report) AddError(err string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
	r.Progress.Errors = r.errors
	r.UpdatedAt = time.Now()
}

// SetEntries records how many listing entries were found.
func (r *Report) SetEntries(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Progress.Entries = n
	r.UpdatedAt = time.Now()
}

// AddIndexed counts one indexed document or attachment.
func (r *Report) AddIndexed(document bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if document {
		r.Progress.Documents++
	} else {
		r.Progress.Media++
	}
	r.UpdatedAt = time.Now()
}

// SetRendered records the rendered page count.
func (r *Report) SetRendered(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Progress.Rendered = n
	r.UpdatedAt = time.Now()
}

// SetPruned records how many nodes pruning removed.
func (r *Report) SetPruned(docs, media int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Progress.PrunedDocs = docs
	r.Progress.PrunedMedia = media
	r.UpdatedAt = time.Now()
}

// ReportSnapshot is a read-only, JSON-safe copy of report state.
type ReportSnapshot struct {
	Status    Status    `json:"status"`
	Phase     string    `json:"phase"`
	Progress  Progress  `json:"progress"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the report.
func (r *Report) Snapshot() ReportSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.Progress
	p.Errors = append([]string{}, r.errors...)
	return ReportSnapshot{
		Status:    r.Status,
		Phase:     r.Phase,
		Progress:  p,
		StartedAt: r.StartedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
