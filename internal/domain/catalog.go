package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"shelve.dev/pkg/shelve/internal/adapter"
	m "shelve.dev/pkg/shelve/internal/model"
)

// CatalogBuilder discovers the candidate destination directories below a root.
type CatalogBuilder interface {
	Build(ctx context.Context, root m.Path, maxDepth int) (m.Catalog, error)
}

type catalogBuilder struct {
	fsAdapter adapter.SourceFSAdapter
}

// NewCatalogBuilder constructs a CatalogBuilder backed by the filesystem adapter.
func NewCatalogBuilder(fsAdapter adapter.SourceFSAdapter) CatalogBuilder {
	return &catalogBuilder{fsAdapter: fsAdapter}
}

// Build walks root depth-first up to maxDepth levels below it.
//
// Depth 0 is root itself, which is never part of the catalog; entries come
// from depths 1 through maxDepth. Hidden entries and everything below them
// are skipped. A directory that cannot be listed is recorded in
// Catalog.Skipped and its subtree abandoned.
func (b *catalogBuilder) Build(ctx context.Context, root m.Path, maxDepth int) (m.Catalog, error) {
	if maxDepth < 0 {
		return m.Catalog{}, fmt.Errorf("max depth must not be negative, got %d", maxDepth)
	}

	resolved, err := b.fsAdapter.ResolvePath(ctx, root)
	if err != nil {
		return m.Catalog{}, fmt.Errorf("resolve catalog root: %w", err)
	}

	info, err := b.fsAdapter.FileInfo(ctx, resolved)
	if err != nil {
		return m.Catalog{}, fmt.Errorf("stat catalog root: %w", err)
	}

	if !info.IsDir() {
		return m.Catalog{}, fmt.Errorf("catalog root %s is not a directory", resolved)
	}

	catalog := m.Catalog{Root: resolved}

	if err := b.walk(ctx, &catalog, resolved, 0, maxDepth); err != nil {
		return m.Catalog{}, err
	}

	slog.Debug("built catalog", "root", resolved, "maxDepth", maxDepth,
		"entries", catalog.Len(), "skipped", len(catalog.Skipped))

	return catalog, nil
}

// walk lists dir, which sits at depth, and appends its visible
// subdirectories. Children land at depth+1, so nothing is listed once depth
// reaches maxDepth.
func (b *catalogBuilder) walk(ctx context.Context, catalog *m.Catalog, dir m.Path, depth, maxDepth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth >= maxDepth {
		return nil
	}

	children, err := b.fsAdapter.ListDir(ctx, dir)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		slog.Warn("skipping unreadable directory", "path", dir, "error", err)
		catalog.Skipped = append(catalog.Skipped, m.SkippedDir{Path: dir, Err: err.Error()})

		return nil
	}

	for _, child := range children {
		if child.Hidden() || !child.IsDir {
			continue
		}

		if resolved, err := b.fsAdapter.ResolvePath(ctx, child.Path); err == nil {
			child.Real = resolved
		} else {
			slog.Debug("could not resolve catalog entry", "path", child.Path, "error", err)
		}

		catalog.Entries = append(catalog.Entries, child)

		if err := b.walk(ctx, catalog, child.Path, depth+1, maxDepth); err != nil {
			return err
		}
	}

	return nil
}

// ExcludeSource drops every entry that is source or one of its ancestors.
// Descendants of source are kept. An entry is also dropped when its resolved
// form is source or an ancestor, so a symlink pointing there is excluded.
func ExcludeSource(catalog m.Catalog, source m.Path) m.Catalog {
	filtered := m.Catalog{
		Root:    catalog.Root,
		Skipped: catalog.Skipped,
		Entries: make([]m.Location, 0, len(catalog.Entries)),
	}

	for _, entry := range catalog.Entries {
		if isSameOrAncestor(entry.Path, source) || (entry.Real != "" && isSameOrAncestor(entry.Real, source)) {
			slog.Debug("excluding source conflict from catalog", "entry", entry.Path, "source", source)
			continue
		}

		filtered.Entries = append(filtered.Entries, entry)
	}

	return filtered
}

// isSameOrAncestor reports whether dir equals path or contains it, comparing
// whole path components.
func isSameOrAncestor(dir, path m.Path) bool {
	rel, err := filepath.Rel(filepath.Clean(string(dir)), filepath.Clean(string(path)))
	if err != nil {
		return false
	}

	if rel == "." {
		return true
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
