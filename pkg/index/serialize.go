package index

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/gitletcore/gitlet/pkg/objects"
)

// indexMagic identifies the index file format; indexVersion allows the
// layout to evolve without breaking LoadOrCreate's graceful-recovery path.
const (
	indexMagic   = "GLIX"
	indexVersion = uint32(1)
)

// Serialize encodes the index into its on-disk form:
//
//	magic(4) version(4) tracked-section added-section removed-section
//
// Each of the tracked/added sections is a count(4) followed by that many
// (path_len(4) path_bytes uid(40)) tuples. The removed section is a
// count(4) followed by that many (path_len(4) path_bytes) tuples. Entries
// within each section are written in sorted path order so that Serialize
// is deterministic given the same logical content.
func (idx *Index) Serialize() []byte {
	var buf bytes.Buffer
	buf.WriteString(indexMagic)
	_ = binary.Write(&buf, binary.BigEndian, indexVersion)

	writeHashMap(&buf, idx.tracked)
	writeHashMap(&buf, idx.added)
	writePathSet(&buf, idx.removed)

	return buf.Bytes()
}

// Deserialize decodes an index previously produced by Serialize. Any
// structural problem (bad magic, unsupported version, truncated section,
// malformed identifier) is reported as an error; callers such as
// LoadOrCreate treat that as a recoverable condition, not a fatal one.
func Deserialize(data []byte) (*Index, error) {
	r := bytes.NewReader(data)

	magic := make([]byte, len(indexMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if string(magic) != indexMagic {
		return nil, fmt.Errorf("bad index magic %q", magic)
	}

	var version uint32
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}
	if version != indexVersion {
		return nil, fmt.Errorf("unsupported index version %d", version)
	}

	tracked, err := readHashMap(r)
	if err != nil {
		return nil, fmt.Errorf("read tracked section: %w", err)
	}
	added, err := readHashMap(r)
	if err != nil {
		return nil, fmt.Errorf("read added section: %w", err)
	}
	removed, err := readPathSet(r)
	if err != nil {
		return nil, fmt.Errorf("read removed section: %w", err)
	}

	return &Index{tracked: tracked, added: added, removed: removed}, nil
}

func writeHashMap(buf *bytes.Buffer, m map[string]objects.ObjectHash) {
	paths := sortedKeys(m)
	_ = binary.Write(buf, binary.BigEndian, uint32(len(paths)))
	for _, p := range paths {
		writeString(buf, p)
		buf.WriteString(m[p].String())
	}
}

func readHashMap(r *bytes.Reader) (map[string]objects.ObjectHash, error) {
	var count uint32
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, fmt.Errorf("read count: %w", err)
	}

	m := make(map[string]objects.ObjectHash, count)
	for i := uint32(0); i < count; i++ {
		p, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("read path: %w", err)
		}

		uidBytes := make([]byte, objects.HashLength)
		if _, err := io.ReadFull(r, uidBytes); err != nil {
			return nil, fmt.Errorf("read identifier: %w", err)
		}
		uid, err := objects.NewObjectHashFromString(string(uidBytes))
		if err != nil {
			return nil, fmt.Errorf("parse identifier: %w", err)
		}

		m[p] = uid
	}
	return m, nil
}

func writePathSet(buf *bytes.Buffer, set map[string]struct{}) {
	paths := make([]string, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	_ = binary.Write(buf, binary.BigEndian, uint32(len(paths)))
	for _, p := range paths {
		writeString(buf, p)
	}
}

func readPathSet(r *bytes.Reader) (map[string]struct{}, error) {
	var count uint32
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, fmt.Errorf("read count: %w", err)
	}

	set := make(map[string]struct{}, count)
	for i := uint32(0); i < count; i++ {
		p, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("read path: %w", err)
		}
		set[p] = struct{}{}
	}
	return set, nil
}

func writeString(buf *bytes.Buffer, s string) {
	_ = binary.Write(buf, binary.BigEndian, uint32(len(s)))
	buf.WriteString(s)
}

func readString(r *bytes.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", fmt.Errorf("read length: %w", err)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("read bytes: %w", err)
	}
	return string(b), nil
}

func sortedKeys(m map[string]objects.ObjectHash) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
