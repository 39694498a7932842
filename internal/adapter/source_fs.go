// Package adapter contains filesystem and report persistence adapters for the
// owngrep CLI.
package adapter

import (
	"os"
	"path/filepath"

	m "owngrep.dev/pkg/owngrep/internal/model"
)

// SourceFS abstracts the filesystem operations the audit pipeline relies on.
// It intentionally hides direct `os` access so the workflow logic can be
// tested without touching the disk.
type SourceFS interface {
	// Walk traverses root depth-first and calls fn with every entry's
	// root-relative, slash-separated path. Returning filepath.SkipDir from fn
	// for a directory prevents descent into it. Traversal errors abort the
	// walk and propagate.
	Walk(root m.Path, fn WalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path so callers can check existence or
	// distinguish files from directories.
	FileInfo(path m.Path) (os.FileInfo, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// WalkFunc receives the root-relative path of each visited entry together
// with its directory entry.
type WalkFunc func(relPath string, entry os.DirEntry) error

// LocalSourceFS is the os-backed implementation of SourceFS.
type LocalSourceFS struct{}

// NewLocalSourceFS constructs a LocalSourceFS ready to be wired into the
// workflow.
func NewLocalSourceFS() *LocalSourceFS {
	return &LocalSourceFS{}
}

// Walk iterates over the entries under root in directory-listing order. The
// root itself is not reported.
func (fs *LocalSourceFS) Walk(root m.Path, fn WalkFunc) error {
	rootStr := string(root)

	return filepath.WalkDir(rootStr, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path == rootStr {
			return nil
		}

		rel, err := filepath.Rel(rootStr, path)
		if err != nil {
			return err
		}

		return fn(filepath.ToSlash(rel), entry)
	})
}

// ReadFile loads file contents from disk.
func (fs *LocalSourceFS) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (fs *LocalSourceFS) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// JoinPath joins path elements into a single path.
func (fs *LocalSourceFS) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
