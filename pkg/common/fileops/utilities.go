package fileops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gitletcore/gitlet/pkg/repository/gpath"
)

// Exists reports whether a file or directory exists at p. A filesystem
// error other than not-exist is returned rather than swallowed.
func Exists(p gpath.AbsolutePath) (bool, error) {
	_, err := os.Stat(p.String())
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("check existence: %w", err)
}

// EnsureDir creates path and any missing parents.
func EnsureDir(path gpath.AbsolutePath) error {
	if err := os.MkdirAll(path.String(), 0o755); err != nil {
		return fmt.Errorf("ensure directory %s: %w", path.String(), err)
	}
	return nil
}

// EnsureParentDir creates the parent directory of p.
func EnsureParentDir(p gpath.AbsolutePath) error {
	dir := filepath.Dir(p.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure parent directory: %w", err)
	}
	return nil
}

// ReadBytesStrict reads the full contents of the file at p, failing if it
// does not exist.
func ReadBytesStrict(p gpath.AbsolutePath) ([]byte, error) {
	data, err := os.ReadFile(p.String())
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// WriteReadOnly writes data to p with 0444 permissions, intended for
// immutable content-addressed objects. Ensures the parent directory exists.
func WriteReadOnly(p gpath.AbsolutePath, data []byte) error {
	if err := EnsureParentDir(p); err != nil {
		return err
	}
	if err := os.WriteFile(p.String(), data, 0o444); err != nil {
		return fmt.Errorf("write read-only file: %w", err)
	}
	return nil
}

// SafeRemove deletes the file or directory at p. Directories are removed
// recursively. Removing a path that does not exist is not an error.
func SafeRemove(p gpath.AbsolutePath) error {
	if err := os.RemoveAll(p.String()); err != nil {
		return fmt.Errorf("remove %s: %w", p.String(), err)
	}
	return nil
}

// IsRegularFile reports whether path exists and is a regular file (not a
// directory, symlink, device, etc).
func IsRegularFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat path: %w", err)
	}
	return info.Mode().IsRegular(), nil
}
