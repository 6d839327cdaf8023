package tree

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gitletcore/gitlet/pkg/objects"
	"github.com/gitletcore/gitlet/pkg/repository/gpath"
)

// TreeEntry is one child of a tree: a mode, a name, and the child object's
// identifier.
//
// Serialized format: mode SPACE name NULL 40_hex_ascii_sha. This stores the
// child identifier as 40 ASCII hex bytes rather than Git's canonical 20 raw
// bytes - a deliberate departure from git-compatible encoding, kept for
// determinism within this system.
type TreeEntry struct {
	mode objects.FileMode
	name gpath.RelativePath
	uid  objects.ObjectHash
}

// NewTreeEntry creates a validated TreeEntry.
func NewTreeEntry(mode objects.FileMode, name gpath.RelativePath, uid objects.ObjectHash) (*TreeEntry, error) {
	if !name.IsValid() {
		return nil, fmt.Errorf("invalid path: %s", name)
	}
	if err := uid.Validate(); err != nil {
		return nil, fmt.Errorf("invalid object identifier: %w", err)
	}

	return &TreeEntry{
		mode: mode,
		name: name.Normalize(),
		uid:  uid,
	}, nil
}

// NewTreeEntryFromStrings builds a TreeEntry from its string-encoded fields.
func NewTreeEntryFromStrings(modeStr, name, uidStr string) (*TreeEntry, error) {
	mode, err := objects.FromOctalString(modeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid mode: %w", err)
	}

	path, err := gpath.NewRelativePath(name)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	uid, err := objects.ParseObjectHash(uidStr)
	if err != nil {
		return nil, fmt.Errorf("invalid object identifier: %w", err)
	}

	return NewTreeEntry(mode, path, uid)
}

func (e *TreeEntry) Mode() objects.FileMode {
	return e.mode
}

func (e *TreeEntry) Name() string {
	return e.name.String()
}

func (e *TreeEntry) Path() gpath.RelativePath {
	return e.name
}

func (e *TreeEntry) UID() objects.ObjectHash {
	return e.uid
}

func (e *TreeEntry) IsDirectory() bool {
	return e.mode.IsDirectory()
}

func (e *TreeEntry) IsFile() bool {
	return e.mode.IsRegular()
}

// Serialize writes: mode SPACE name NULL 40_hex_ascii_sha.
func (e *TreeEntry) Serialize(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s %s%c", e.mode.ToOctalString(), e.name.String(), objects.NullByte); err != nil {
		return fmt.Errorf("write entry header: %w", err)
	}
	if _, err := w.Write([]byte(e.uid.String())); err != nil {
		return fmt.Errorf("write entry identifier: %w", err)
	}
	return nil
}

// CompareTo orders entries by name, byte-wise lexicographic.
func (e *TreeEntry) CompareTo(other *TreeEntry) int {
	if e.name == other.name {
		return 0
	}
	if e.name < other.name {
		return -1
	}
	return 1
}

// DeserializeTreeEntry parses one entry starting at offset, returning the
// entry and the offset immediately following it.
func DeserializeTreeEntry(data []byte, offset int) (*TreeEntry, int, error) {
	spaceIndex := bytes.IndexByte(data[offset:], objects.SpaceByte)
	if spaceIndex == -1 {
		return nil, 0, fmt.Errorf("invalid tree entry: missing space")
	}
	spaceIndex += offset

	modeStr := string(data[offset:spaceIndex])

	nullIndex := bytes.IndexByte(data[spaceIndex+1:], objects.NullByte)
	if nullIndex == -1 {
		return nil, 0, fmt.Errorf("invalid tree entry: missing null byte")
	}
	nullIndex += spaceIndex + 1

	nameStr := string(data[spaceIndex+1 : nullIndex])

	start := nullIndex + 1
	end := start + objects.HashLength
	if end > len(data) {
		return nil, 0, fmt.Errorf("invalid tree entry: incomplete identifier")
	}

	uidStr := string(data[start:end])

	entry, err := NewTreeEntryFromStrings(modeStr, nameStr, uidStr)
	if err != nil {
		return nil, 0, err
	}

	return entry, end, nil
}
