package fileops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/gitletcore/gitlet/pkg/repository/gpath"
)

// AtomicWrite writes data to targetPath by writing to a sibling temporary
// file, fsyncing it, and renaming it into place. When the rename succeeds a
// reader can never observe a partially written file: the target only
// appears at the rename step. If the rename fails with EXDEV, the data is
// copied into the target directly, and that copy is not atomic.
func AtomicWrite(targetPath gpath.AbsolutePath, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(targetPath.String())
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	defer func() {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
	}()

	if err := writeTempFile(data, tmpFile); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	return renameTempFile(tmpFile.Name(), targetPath.String(), mode)
}

func writeTempFile(data []byte, tmpFile *os.File) error {
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// renameTempFile applies mode to the temp file and renames it into place.
// If the rename fails because tmpPath and targetPath are on different
// filesystems (EXDEV), it falls back to a copy-then-remove.
func renameTempFile(tmpPath string, targetPath string, mode os.FileMode) error {
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}

	err := os.Rename(tmpPath, targetPath)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return fmt.Errorf("rename: %w", err)
	}

	return copyAcrossDevices(tmpPath, targetPath, mode)
}

func copyAcrossDevices(tmpPath, targetPath string, mode os.FileMode) error {
	src, err := os.Open(tmpPath)
	if err != nil {
		return fmt.Errorf("reopen temp file: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create target: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy across devices: %w", err)
	}
	if err := dst.Sync(); err != nil {
		return fmt.Errorf("sync target: %w", err)
	}

	os.Remove(tmpPath)
	return nil
}
