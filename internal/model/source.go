// Package model defines the data structures shared by the sorting workflow.
package model

import "strings"

// Path represents a file system path.
type Path string

// HiddenMarker prefixes the names of directories that are never offered as
// destinations.
const HiddenMarker = "."

// Location is a single filesystem entry discovered while listing a directory.
type Location struct {
	Path  Path
	Name  string
	IsDir bool
	// Real is Path with symlinks evaluated. Only catalog entries carry it;
	// it is empty when resolution failed.
	Real Path
}

// Hidden reports whether the entry name starts with the hidden marker.
func (l Location) Hidden() bool {
	return strings.HasPrefix(l.Name, HiddenMarker)
}

// SkippedDir records a directory whose listing failed during catalog discovery.
type SkippedDir struct {
	Path Path
	Err  string
}

// Catalog is the ordered set of candidate destination directories.
//
// Entries are kept in depth-first pre-order with siblings sorted
// lexicographically. A catalog is read-only once built.
type Catalog struct {
	Root    Path
	Entries []Location
	Skipped []SkippedDir
}

// Paths returns the entry paths in catalog order.
func (c Catalog) Paths() []Path {
	paths := make([]Path, 0, len(c.Entries))
	for _, entry := range c.Entries {
		paths = append(paths, entry.Path)
	}

	return paths
}

// Len returns the number of catalog entries.
func (c Catalog) Len() int {
	return len(c.Entries)
}
