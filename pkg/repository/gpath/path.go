package gpath

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RepositoryPath is the absolute path to a repository's working directory root.
type RepositoryPath string

// AbsolutePath is any absolute path within the repository's filesystem.
type AbsolutePath string

// MetaPath is a path within the .gitlet metadata directory.
type MetaPath string

// RelativePath is a normalized repository-relative path (forward slashes, no "..").
type RelativePath string

// ObjectPath is the two-level sharded on-disk path of an object, "ab/cdef...".
type ObjectPath string

func (ap AbsolutePath) String() string {
	return string(ap)
}

func (ap AbsolutePath) IsValid() bool {
	return len(ap) > 0 && filepath.IsAbs(string(ap))
}

func (ap AbsolutePath) Join(elem ...string) AbsolutePath {
	parts := append([]string{string(ap)}, elem...)
	return AbsolutePath(filepath.Join(parts...))
}

func (ap AbsolutePath) RelativeTo(base RepositoryPath) (RelativePath, error) {
	rel, err := filepath.Rel(string(base), string(ap))
	if err != nil {
		return "", fmt.Errorf("relative path: %w", err)
	}
	return RelativePath(rel).Normalize(), nil
}

func (ap AbsolutePath) Base() string {
	return filepath.Base(string(ap))
}

func (ap AbsolutePath) Dir() AbsolutePath {
	return AbsolutePath(filepath.Dir(string(ap)))
}

// NewAbsolutePath converts path to an absolute path, resolving it against
// the process working directory if relative. Does not resolve symlinks;
// use Canonicalize for that.
func NewAbsolutePath(path string) (AbsolutePath, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute path: %w", err)
	}
	return AbsolutePath(abs), nil
}

// Canonicalize resolves path to its absolute, symlink-free form, for use as
// an index key. On failure to resolve symlinks (e.g. a missing parent
// directory), it falls back to the lexically absolute form so that
// canonicalization never fails outright.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("canonicalize: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return filepath.Clean(abs), nil
	}
	return resolved, nil
}

func NormalizePath(path string) string {
	path = filepath.ToSlash(filepath.Clean(path))
	path = strings.TrimPrefix(path, "./")
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
