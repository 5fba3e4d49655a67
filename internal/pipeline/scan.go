package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"github.com/dgallion1/docvault/internal/vault"
)

// Scan lists every file and directory below the root of fsys. Hidden
// entries (names starting with ".") are skipped, along with everything
// beneath hidden directories.
func Scan(ctx context.Context, fsys fs.FS) ([]vault.Entry, error) {
	var entries []vault.Entry
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p == "." {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", p, err)
		}
		entries = append(entries, vault.Entry{
			Path:     p,
			Modified: info.ModTime(),
			IsDir:    d.IsDir(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan vault: %w", err)
	}
	return entries, nil
}
