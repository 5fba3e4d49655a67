package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/dgallion1/docvault/internal/vault"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testVault() fstest.MapFS {
	return fstest.MapFS{
		"index.md":               {Data: []byte("# Home\n\n[[cat]] ![[cat.png]]\n")},
		"animals/cat.md":         {Data: []byte("# Cat\n\nSee also [[dog]].\n")},
		"animals/dog.md":         {Data: []byte("# Dog\n")},
		"animals/fish.md":        {Data: []byte("# Fish\n")},
		"attachments/cat.png":    {Data: []byte("png")},
		"attachments/unused.pdf": {Data: []byte("%PDF")},
		"drafts/todo.md":         {Data: []byte("unlinked")},
		".obsidian/app.json":     {Data: []byte("{}")},
		".hidden.md":             {Data: []byte("secret")},
	}
}

func TestScan_SkipsHidden(t *testing.T) {
	entries, err := Scan(context.Background(), testVault())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var files []string
	for _, e := range entries {
		if e.Path == ".obsidian" || e.Path == ".obsidian/app.json" || e.Path == ".hidden.md" {
			t.Errorf("expected hidden entry %q to be skipped", e.Path)
		}
		if !e.IsDir {
			files = append(files, e.Path)
		}
	}
	slices.Sort(files)
	want := []string{
		"animals/cat.md", "animals/dog.md", "animals/fish.md",
		"attachments/cat.png", "attachments/unused.pdf",
		"drafts/todo.md", "index.md",
	}
	if !slices.Equal(files, want) {
		t.Errorf("expected files %v, got %v", want, files)
	}
}

func TestScan_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Scan(ctx, testVault()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestIndexer_Run(t *testing.T) {
	ix := NewIndexer(testVault(), Options{Vault: vault.DefaultOptions()}, quietLogger())
	v, report, err := ix.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := report.Snapshot()
	if snap.Status != StatusCompleted {
		t.Errorf("expected status %q, got %q", StatusCompleted, snap.Status)
	}
	if snap.Progress.Documents != 5 || snap.Progress.Media != 2 {
		t.Errorf("expected 5 documents and 2 media, got %+v", snap.Progress)
	}
	if snap.Progress.Rendered != 5 {
		t.Errorf("expected 5 rendered pages, got %d", snap.Progress.Rendered)
	}
	if len(snap.Progress.Errors) != 0 {
		t.Errorf("expected no errors, got %v", snap.Progress.Errors)
	}

	if v.Find("drafts/todo") == nil {
		t.Error("expected unlinked pages to be kept without pruning")
	}
	if !v.IsReferenced("animals/dog") {
		t.Error("expected links found while rendering to be marked")
	}
}

func TestIndexer_Prune(t *testing.T) {
	v, report, err := Build(context.Background(), testVault(), Options{
		Vault: vault.DefaultOptions(),
		Prune: true,
	}, quietLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, slug := range []string{"animals/cat", "animals/dog"} {
		if v.Docs().Get(slug) == nil {
			t.Errorf("expected linked page %q to survive pruning", slug)
		}
	}
	for _, slug := range []string{"animals/fish", "drafts", "drafts/todo"} {
		if v.Docs().Get(slug) != nil {
			t.Errorf("expected unlinked %q to be pruned", slug)
		}
	}
	if v.Media().Get("attachments/cat.png") == nil || v.Media().Get("attachments/unused.pdf") != nil {
		t.Error("expected only the embedded attachment to survive")
	}

	p := report.Snapshot().Progress
	if p.PrunedDocs != 3 || p.PrunedMedia != 1 {
		t.Errorf("expected 3 documents and 1 attachment pruned, got %+v", p)
	}
}

func TestIndexer_Collapse(t *testing.T) {
	fsys := fstest.MapFS{
		"a.md":             {Data: []byte("a")},
		"deep/nested/b.md": {Data: []byte("b")},
		"pair/one.md":      {Data: []byte("1")},
		"pair/two.md":      {Data: []byte("2")},
	}
	v, _, err := Build(context.Background(), fsys, Options{
		Vault:    vault.DefaultOptions(),
		Collapse: true,
	}, quietLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v.Docs().Get("b") == nil {
		t.Error("expected single-child chain to collapse to b")
	}
	if v.Docs().Get("pair/one") == nil || v.Docs().Get("pair/two") == nil {
		t.Error("expected branching directory to be kept")
	}
}

func TestIndexer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, report, err := NewIndexer(testVault(), Options{Vault: vault.DefaultOptions()}, quietLogger()).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if report.Snapshot().Status != StatusFailed {
		t.Errorf("expected failed status, got %q", report.Snapshot().Status)
	}
}
