package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/dgallion1/docvault/internal/doctree"
	"github.com/dgallion1/docvault/internal/vault"
)

// Options selects the optional phases of an indexing run.
type Options struct {
	Vault    vault.Options
	Prune    bool // drop documents and attachments nothing links to
	Collapse bool // lift single children into their parent's place
}

// Indexer builds a vault from a directory tree.
type Indexer struct {
	fsys fs.FS
	opts Options
	log  *slog.Logger
}

func NewIndexer(fsys fs.FS, opts Options, log *slog.Logger) *Indexer {
	if log == nil {
		log = slog.Default()
	}
	return &Indexer{fsys: fsys, opts: opts, log: log.With("component", "indexer")}
}

// Run scans, indexes and renders the whole vault. Entries that cannot be
// indexed are recorded in the report and skipped. The returned error is
// set only when the scan fails or ctx is cancelled.
func (ix *Indexer) Run(ctx context.Context) (*vault.Vault, *Report, error) {
	report := NewReport()
	log := ix.log

	// Phase 1: Scan
	report.SetStatus(StatusScanning, "scanning")
	entries, err := Scan(ctx, ix.fsys)
	if err != nil {
		log.Error("scan failed", "error", err)
		report.AddError(err.Error())
		report.SetStatus(StatusFailed, "scanning")
		return nil, report, err
	}
	report.SetEntries(len(entries))
	log.Info("scanned vault", "entries", len(entries))

	// Phase 2: Index
	report.SetStatus(StatusIndexing, "indexing")
	v := vault.New(ix.fsys, ix.opts.Vault, log)
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			report.SetStatus(StatusFailed, "indexing")
			return nil, report, err
		}
		n, err := v.AddEntry(e)
		if err != nil {
			log.Warn("skipping entry", "path", e.Path, "error", err)
			report.AddError(err.Error())
			continue
		}
		if n != nil {
			report.AddIndexed(n.Kind == doctree.KindDocument)
		}
	}
	log.Info("indexed vault", "documents", v.Docs().Len()-1, "media", v.Media().Len()-1)

	// Phase 3: Render. Rendering resolves every link, which is what marks
	// nodes as referenced for the prune phase.
	report.SetStatus(StatusRendering, "rendering")
	if err := ctx.Err(); err != nil {
		report.SetStatus(StatusFailed, "rendering")
		return nil, report, err
	}
	pages := v.RenderAll()
	report.SetRendered(len(pages))

	// Phase 4: Prune
	if ix.opts.Prune {
		report.SetStatus(StatusPruning, "pruning")
		docs, media := v.Prune()
		report.SetPruned(docs, media)
	}

	// Phase 5: Collapse
	if ix.opts.Collapse {
		report.SetStatus(StatusCollapsing, "collapsing")
		v.Collapse()
	}

	report.SetStatus(StatusCompleted, "done")
	snap := report.Snapshot()
	log.Info("indexing complete",
		"rendered", snap.Progress.Rendered,
		"pruned_documents", snap.Progress.PrunedDocs,
		"pruned_media", snap.Progress.PrunedMedia,
		"errors", len(snap.Progress.Errors),
	)
	return v, report, nil
}

// Build is a convenience wrapper that runs an Indexer once.
func Build(ctx context.Context, fsys fs.FS, opts Options, log *slog.Logger) (*vault.Vault, *Report, error) {
	v, report, err := NewIndexer(fsys, opts, log).Run(ctx)
	if err != nil {
		return nil, report, fmt.Errorf("build vault: %w", err)
	}
	return v, report, nil
}
