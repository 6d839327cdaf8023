// Package blob implements blob objects: content-addressed snapshots of a
// single file's bytes.
package blob

import (
	"fmt"
	"io"

	"github.com/gitletcore/gitlet/pkg/common/fileops"
	"github.com/gitletcore/gitlet/pkg/common/scerr"
	"github.com/gitletcore/gitlet/pkg/objects"
	"github.com/gitletcore/gitlet/pkg/repository/gpath"
	"github.com/gitletcore/gitlet/pkg/store"
)

// Blob is an immutable snapshot of one file's byte content. Its identifier
// is computed lazily and cached. Name is the working-tree basename the blob
// was built from; it is never part of the hash and is null (empty) for
// blobs obtained via Read.
type Blob struct {
	content objects.ObjectContent
	uid     *objects.ObjectHash
	name    string
}

// NewBlob wraps raw file content in a Blob. The identifier is computed
// lazily on first access.
func NewBlob(data []byte) *Blob {
	return &Blob{content: objects.ObjectContent(data)}
}

// FromFile reads path fully and builds a Blob from its content. Fails with
// scerr.NotReadable if the path is missing, not a regular file, or
// unreadable.
func FromFile(path gpath.AbsolutePath) (*Blob, error) {
	regular, err := fileops.IsRegularFile(path.String())
	if err != nil {
		return nil, scerr.New(scerr.NotReadable, "from_file", "stat file", err).WithPath(path.String())
	}
	if !regular {
		return nil, scerr.New(scerr.NotReadable, "from_file", "not a regular file", nil).WithPath(path.String())
	}

	data, err := fileops.ReadBytesStrict(path)
	if err != nil {
		return nil, scerr.New(scerr.NotReadable, "from_file", "read file", err).WithPath(path.String())
	}

	b := NewBlob(data)
	b.name = path.Base()
	return b, nil
}

// ComputeUID returns the identifier path's content would hash to, without
// persisting anything.
func ComputeUID(path gpath.AbsolutePath) (objects.ObjectHash, error) {
	b, err := FromFile(path)
	if err != nil {
		return "", err
	}
	return b.Hash()
}

// Name returns the working-tree basename the blob was built from, or "" if
// unknown (e.g. for blobs obtained via Read).
func (b *Blob) Name() string {
	return b.name
}

func (b *Blob) Type() objects.ObjectType {
	return objects.BlobType
}

func (b *Blob) Content() (objects.ObjectContent, error) {
	return b.content, nil
}

// Hash returns the blob's identifier, computed over "blob <len>\0<content>"
// and cached after first computation.
func (b *Blob) Hash() (objects.ObjectHash, error) {
	if b.uid != nil {
		return *b.uid, nil
	}
	hash := objects.ComputeObjectHash(objects.BlobType, b.content)
	b.uid = &hash
	return hash, nil
}

func (b *Blob) RawHash() (objects.RawHash, error) {
	hash, err := b.Hash()
	if err != nil {
		return objects.RawHash{}, err
	}
	return hash.Raw()
}

func (b *Blob) Size() (objects.ObjectSize, error) {
	return b.content.Size(), nil
}

// Serialize writes the blob in its canonical framed form: "blob <size>\0<content>".
func (b *Blob) Serialize(w io.Writer) error {
	serialized := objects.NewSerializedObject(objects.BlobType, b.content)
	if _, err := w.Write(serialized.Bytes()); err != nil {
		return fmt.Errorf("write blob: %w", err)
	}
	return nil
}

func (b *Blob) String() string {
	hash, err := b.Hash()
	if err != nil {
		return fmt.Sprintf("Blob{size: %s, error: %v}", b.content.Size(), err)
	}
	return fmt.Sprintf("Blob{size: %s, hash: %s}", b.content.Size(), hash.Short())
}

// Persist compresses the blob's framed bytes once and writes them to objStore
// if absent. Re-persisting an already-stored blob is a no-op and never
// raises.
func (b *Blob) Persist(objStore store.ObjectStore) (objects.ObjectHash, error) {
	uid, err := b.Hash()
	if err != nil {
		return "", err
	}
	serialized := objects.NewSerializedObject(objects.BlobType, b.content)
	if err := objStore.WriteIfAbsent(uid, serialized.Bytes()); err != nil {
		return "", err
	}
	return uid, nil
}

// Read fetches the object stored at uid, decompresses it, parses its header,
// and verifies both the declared content length and SHA1(raw) == uid. A
// decompression failure or any mismatch fails with scerr.Corrupt. The
// returned blob has name == "".
func Read(objStore store.ObjectStore, uid objects.ObjectHash) (*Blob, error) {
	raw, err := objStore.Read(uid)
	if err != nil {
		if scerr.Is(err, scerr.Format) {
			return nil, scerr.New(scerr.Corrupt, "read", "decompress blob", err)
		}
		return nil, err
	}

	serialized := objects.SerializedObject(raw)
	content, err := objects.ParseSerializedObject(raw, objects.BlobType)
	if err != nil {
		return nil, scerr.New(scerr.Corrupt, "read", "parse blob header", err)
	}

	computed := objects.NewObjectHash(serialized.Bytes())
	if !computed.Equal(uid) {
		return nil, scerr.New(scerr.Corrupt, "read",
			fmt.Sprintf("hash mismatch: expected %s, computed %s", uid, computed), nil)
	}

	return &Blob{content: content, uid: &uid}, nil
}
