package gpath

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (rp RepositoryPath) String() string {
	return string(rp)
}

func (rp RepositoryPath) IsValid() bool {
	return filepath.IsAbs(string(rp))
}

func (rp RepositoryPath) Join(elem ...string) AbsolutePath {
	parts := append([]string{string(rp)}, elem...)
	return AbsolutePath(filepath.Join(parts...))
}

// JoinRelative joins a normalized RelativePath to the repository root,
// rejecting any result that would escape the root.
func (rp RepositoryPath) JoinRelative(relPath RelativePath) (AbsolutePath, error) {
	if !relPath.IsValid() {
		return "", fmt.Errorf("invalid relative path: %s", relPath)
	}

	normalized := relPath.Normalize()
	if normalized == "" || normalized == "." {
		return AbsolutePath(rp), nil
	}

	absResult := AbsolutePath(filepath.Join(string(rp), string(normalized)))
	relCheck, err := filepath.Rel(string(rp), string(absResult))
	if err != nil {
		return "", fmt.Errorf("validate path: %w", err)
	}
	if filepath.IsAbs(relCheck) || relCheck == ".." || strings.HasPrefix(relCheck, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes repository: %s", relPath)
	}

	return absResult, nil
}

// MetaPath returns the path to the repository's .gitlet directory.
func (rp RepositoryPath) MetaPath() MetaPath {
	return MetaPath(filepath.Join(string(rp), GitletDir))
}

// Contains reports whether resolvedPath (an absolute, already symlink-
// resolved path) lies within the repository root. Used to refuse working-
// tree deletions that would escape the repository.
func (rp RepositoryPath) Contains(resolvedPath string) bool {
	rootResolved, err := filepath.EvalSymlinks(string(rp))
	if err != nil {
		rootResolved = filepath.Clean(string(rp))
	}

	rel, err := filepath.Rel(rootResolved, resolvedPath)
	if err != nil {
		return false
	}
	return rel == "." || (!filepath.IsAbs(rel) && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// NewRepositoryPath resolves path to an absolute RepositoryPath.
func NewRepositoryPath(path string) (RepositoryPath, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute path: %w", err)
	}
	return RepositoryPath(abs), nil
}
