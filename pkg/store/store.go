package store

import (
	"github.com/gitletcore/gitlet/pkg/objects"
	"github.com/gitletcore/gitlet/pkg/repository/gpath"
)

// ObjectStore is the content-addressed, compressed object database rooted
// at a repository's .gitlet/objects directory.
type ObjectStore interface {
	// PathFor computes the sharded on-disk path for uid. Pure; never
	// touches the filesystem.
	PathFor(uid objects.ObjectHash) (gpath.MetaPath, error)

	// WriteIfAbsent compresses and writes data for uid if no object is
	// currently stored there. A pre-existing object is left untouched.
	WriteIfAbsent(uid objects.ObjectHash, data []byte) error

	// Read fetches and decompresses the object stored at uid. Fails with
	// scerr.NotFound if no object is stored there.
	Read(uid objects.ObjectHash) ([]byte, error)

	// Has reports whether an object is stored at uid.
	Has(uid objects.ObjectHash) (bool, error)
}
