// Package tree implements tree objects: ordered directory snapshots whose
// entries reference blob or subtree objects by identifier.
package tree

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/gitletcore/gitlet/pkg/objects"
)

// Tree is an ordered directory object. Entries are sorted by name
// (byte-wise lexicographic) before raw bytes are computed, making the
// identifier a pure function of the entry set.
type Tree struct {
	name    string
	entries []*TreeEntry
	uid     *objects.ObjectHash
}

// NewTree creates a Tree from entries, sorting them immediately.
func NewTree(entries []*TreeEntry) *Tree {
	t := &Tree{entries: entries}
	t.sortEntries()
	return t
}

// NewNamedTree creates a Tree for a named subdirectory.
func NewNamedTree(name string, entries []*TreeEntry) *Tree {
	t := NewTree(entries)
	t.name = name
	return t
}

func NewEmptyTree() *Tree {
	return &Tree{entries: []*TreeEntry{}}
}

// ParseTree parses a tree object from its framed serialized form.
func ParseTree(data []byte) (*Tree, error) {
	content, err := objects.ParseSerializedObject(data, objects.TreeType)
	if err != nil {
		return nil, err
	}

	entries, err := parseEntries(content.Bytes())
	if err != nil {
		return nil, err
	}

	t := &Tree{entries: entries}
	t.sortEntries()

	hash := objects.NewObjectHash(objects.SerializedObject(data))
	t.uid = &hash

	return t, nil
}

func (t *Tree) Type() objects.ObjectType {
	return objects.TreeType
}

func (t *Tree) Name() string {
	return t.name
}

func (t *Tree) Content() (objects.ObjectContent, error) {
	data, err := t.serializeContent()
	if err != nil {
		return nil, err
	}
	return objects.ObjectContent(data), nil
}

func (t *Tree) Hash() (objects.ObjectHash, error) {
	if t.uid != nil {
		return *t.uid, nil
	}

	content, err := t.Content()
	if err != nil {
		return "", fmt.Errorf("get tree content: %w", err)
	}

	hash := objects.ComputeObjectHash(objects.TreeType, content)
	t.uid = &hash
	return hash, nil
}

func (t *Tree) RawHash() (objects.RawHash, error) {
	hash, err := t.Hash()
	if err != nil {
		return objects.RawHash{}, err
	}
	return hash.Raw()
}

func (t *Tree) Size() (objects.ObjectSize, error) {
	content, err := t.Content()
	if err != nil {
		return 0, err
	}
	return content.Size(), nil
}

// Serialize writes the tree in its canonical framed form.
func (t *Tree) Serialize(w io.Writer) error {
	content, err := t.Content()
	if err != nil {
		return fmt.Errorf("get tree content: %w", err)
	}

	serialized := objects.NewSerializedObject(objects.TreeType, content)
	if _, err := w.Write(serialized.Bytes()); err != nil {
		return fmt.Errorf("write tree: %w", err)
	}
	return nil
}

func (t *Tree) String() string {
	hash, err := t.Hash()
	if err != nil {
		return fmt.Sprintf("Tree{entries: %d, error: %v}", len(t.entries), err)
	}
	size, _ := t.Size()
	return fmt.Sprintf("Tree{entries: %d, size: %s, hash: %s}", len(t.entries), size, hash.Short())
}

// Entries returns a copy of the tree's entries to prevent external mutation.
func (t *Tree) Entries() []*TreeEntry {
	entries := make([]*TreeEntry, len(t.entries))
	copy(entries, t.entries)
	return entries
}

func (t *Tree) IsEmpty() bool {
	return len(t.entries) == 0
}

func (t *Tree) sortEntries() {
	sort.Slice(t.entries, func(i, j int) bool {
		return t.entries[i].CompareTo(t.entries[j]) < 0
	})
}

func (t *Tree) serializeContent() ([]byte, error) {
	if len(t.entries) == 0 {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	for _, entry := range t.entries {
		if err := entry.Serialize(&buf); err != nil {
			return nil, fmt.Errorf("serialize tree entry: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func parseEntries(content []byte) ([]*TreeEntry, error) {
	var entries []*TreeEntry
	offset := 0

	for offset < len(content) {
		entry, next, err := DeserializeTreeEntry(content, offset)
		if err != nil {
			return nil, fmt.Errorf("parse tree entry: %w", err)
		}
		entries = append(entries, entry)
		offset = next
	}

	return entries, nil
}
