package gpath

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (rp RelativePath) String() string {
	return string(rp)
}

func (rp RelativePath) IsValid() bool {
	s := string(rp)
	if len(s) == 0 {
		return false
	}
	if filepath.IsAbs(s) || strings.HasPrefix(s, "/") {
		return false
	}
	return !strings.Contains(s, "..")
}

// Normalize converts to forward slashes, cleans "." segments, and strips any
// leading "./".
func (rp RelativePath) Normalize() RelativePath {
	normalized := filepath.ToSlash(filepath.Clean(string(rp)))
	normalized = strings.TrimPrefix(normalized, "./")
	return RelativePath(normalized)
}

func (rp RelativePath) Components() []string {
	normalized := rp.Normalize()
	if normalized == "" || normalized == "." {
		return []string{}
	}
	return strings.Split(string(normalized), "/")
}

func (rp RelativePath) Join(elem ...string) RelativePath {
	parts := append([]string{string(rp)}, elem...)
	return RelativePath(filepath.Join(parts...)).Normalize()
}

func (rp RelativePath) Base() string {
	components := rp.Normalize().Components()
	if len(components) == 0 {
		return ""
	}
	return components[len(components)-1]
}

func (rp RelativePath) Dir() RelativePath {
	components := rp.Normalize().Components()
	if len(components) <= 1 {
		return ""
	}
	return RelativePath(strings.Join(components[:len(components)-1], "/"))
}

// NewRelativePath normalizes and validates path as a RelativePath.
func NewRelativePath(path string) (RelativePath, error) {
	rp := RelativePath(path).Normalize()
	if !rp.IsValid() {
		return "", fmt.Errorf("invalid relative path: %s", path)
	}
	return rp, nil
}
