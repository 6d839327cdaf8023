package store

import (
	"compress/flate"
	"fmt"

	"github.com/gitletcore/gitlet/pkg/common/fileops"
	"github.com/gitletcore/gitlet/pkg/common/scerr"
	"github.com/gitletcore/gitlet/pkg/objects"
	"github.com/gitletcore/gitlet/pkg/repository/gpath"
)

// FileObjectStore stores objects under <root>/<sha[0:2]>/<sha[2:]>,
// DEFLATE-compressed, written atomically and never rewritten.
//
// Directory Structure:
//
//	┌─ .gitlet/objects/
//	│ ├─ ab/ ← First 2 characters of the identifier
//	│ │ └─ cdef123... ← Remaining 38 characters
//	│ └─ ...
//
// Not thread-safe; concurrent access across processes must be serialized
// by the caller.
type FileObjectStore struct {
	objectsPath      gpath.MetaPath
	compressionLevel int
}

// NewFileObjectStore returns a store rooted at the given .gitlet metadata
// path's objects directory, compressing at flate.BestCompression.
func NewFileObjectStore(metaPath gpath.MetaPath) *FileObjectStore {
	return &FileObjectStore{
		objectsPath:      metaPath.ObjectsPath(),
		compressionLevel: flate.BestCompression,
	}
}

// NewFileObjectStoreWithLevel returns a store that compresses at the given
// flate level rather than the default. See pkg/config for level wiring.
func NewFileObjectStoreWithLevel(metaPath gpath.MetaPath, level int) *FileObjectStore {
	return &FileObjectStore{
		objectsPath:      metaPath.ObjectsPath(),
		compressionLevel: level,
	}
}

// PathFor computes the sharded object path without touching the filesystem.
func (f *FileObjectStore) PathFor(uid objects.ObjectHash) (gpath.MetaPath, error) {
	if err := uid.Validate(); err != nil {
		return "", scerr.New(scerr.Format, "path_for", "invalid object identifier", err)
	}
	return f.objectsPath.Join(uid.String()[:2], uid.String()[2:]), nil
}

// WriteIfAbsent compresses data and writes it to uid's path if no object
// is stored there yet. A concurrent reader never observes a partially
// written file: the object appears only at the atomic rename step.
func (f *FileObjectStore) WriteIfAbsent(uid objects.ObjectHash, data []byte) error {
	path, err := f.PathFor(uid)
	if err != nil {
		return err
	}
	abs := path.ToAbsolutePath()

	exists, err := fileops.Exists(abs)
	if err != nil {
		return scerr.New(scerr.IO, "write_if_absent", "check object existence", err).WithPath(abs.String())
	}
	if exists {
		return nil
	}

	compressed, err := objects.ObjectContent(data).CompressLevel(f.compressionLevel)
	if err != nil {
		return scerr.New(scerr.Format, "write_if_absent", "compress object", err).WithPath(abs.String())
	}

	if err := fileops.EnsureParentDir(abs); err != nil {
		return scerr.New(scerr.IO, "write_if_absent", "create object directory", err).WithPath(abs.String())
	}
	if err := fileops.AtomicWrite(abs, compressed.Bytes(), 0o444); err != nil {
		return scerr.New(scerr.IO, "write_if_absent", "write object", err).WithPath(abs.String())
	}

	return nil
}

// Read fetches and decompresses the object stored at uid.
func (f *FileObjectStore) Read(uid objects.ObjectHash) ([]byte, error) {
	path, err := f.PathFor(uid)
	if err != nil {
		return nil, err
	}
	abs := path.ToAbsolutePath()

	exists, err := fileops.Exists(abs)
	if err != nil {
		return nil, scerr.New(scerr.IO, "read", "check object existence", err).WithPath(abs.String())
	}
	if !exists {
		return nil, scerr.New(scerr.NotFound, "read", fmt.Sprintf("no object for %s", uid), nil).WithPath(abs.String())
	}

	compressed, err := fileops.ReadBytesStrict(abs)
	if err != nil {
		return nil, scerr.New(scerr.IO, "read", "read object file", err).WithPath(abs.String())
	}

	decompressed, err := objects.CompressedData(compressed).Decompress()
	if err != nil {
		return nil, scerr.New(scerr.Format, "read", "decompress object", err).WithPath(abs.String())
	}

	return decompressed.Bytes(), nil
}

// Has reports whether an object is stored at uid.
func (f *FileObjectStore) Has(uid objects.ObjectHash) (bool, error) {
	path, err := f.PathFor(uid)
	if err != nil {
		return false, err
	}
	return fileops.Exists(path.ToAbsolutePath())
}
