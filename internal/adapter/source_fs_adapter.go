// Package adapter contains the filesystem, classifier and storage adapters for shelve.
package adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	m "shelve.dev/pkg/shelve/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when discovering directories and moving files. It hides direct `os`
// access so the sorting logic can be tested against temporary trees.
type SourceFSAdapter interface {
	// ResolvePath returns the absolute, symlink-normalized form of path.
	ResolvePath(ctx context.Context, path m.Path) (m.Path, error)

	// ListDir returns the immediate children of dir sorted by name.
	// Symlinks are followed when deciding whether a child is a directory.
	ListDir(ctx context.Context, dir m.Path) ([]m.Location, error)

	// FileInfo returns metadata for a path so the domain can check existence or
	// distinguish between files and directories when necessary.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)

	// Rename moves src to dst. It never copies across volumes.
	Rename(ctx context.Context, src, dst m.Path) error

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// ResolvePath makes path absolute and evaluates symlinks.
func (a *LocalSourceFSAdapter) ResolvePath(ctx context.Context, path m.Path) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", fmt.Errorf("absolute path of %s: %w", path, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", abs, err)
	}

	return m.Path(resolved), nil
}

// ListDir lists the immediate children of dir in lexicographic order.
func (a *LocalSourceFSAdapter) ListDir(ctx context.Context, dir m.Path) ([]m.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	locations := make([]m.Location, 0, len(entries))

	for _, entry := range entries {
		childPath := filepath.Join(string(dir), entry.Name())

		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			// A dangling link is neither a usable directory nor a file to sort.
			info, statErr := os.Stat(childPath)
			if statErr != nil {
				continue
			}

			isDir = info.IsDir()
		} else if !isDir && !entry.Type().IsRegular() {
			continue
		}

		locations = append(locations, m.Location{
			Path:  m.Path(childPath),
			Name:  entry.Name(),
			IsDir: isDir,
		})
	}

	return locations, nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Stat(string(path))
}

// Rename performs an atomic rename of src to dst.
func (a *LocalSourceFSAdapter) Rename(ctx context.Context, src, dst m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.Rename(string(src), string(dst))
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
