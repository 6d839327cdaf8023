package objects

import (
	"bytes"
	"compress/flate"
	"fmt"
	"io"
)

// ObjectContent is raw object data before header framing and compression.
type ObjectContent []byte

// CompressedData is DEFLATE-compressed data, as written on disk.
type CompressedData []byte

// SerializedObject is an object in its header-framed form:
// "<type> <size>\0<content>".
type SerializedObject []byte

// ObjectSize is the size of object content in bytes.
type ObjectSize int64

func (oc ObjectContent) Bytes() []byte {
	return []byte(oc)
}

func (oc ObjectContent) String() string {
	return string(oc)
}

func (oc ObjectContent) Size() ObjectSize {
	return ObjectSize(len(oc))
}

func (oc ObjectContent) IsEmpty() bool {
	return len(oc) == 0
}

// Compress DEFLATE-compresses content at the best-compression level.
// Decompress(Compress(x)) == x, including for empty input.
func (oc ObjectContent) Compress() (CompressedData, error) {
	return oc.CompressLevel(flate.BestCompression)
}

// CompressLevel DEFLATE-compresses content at the given flate level, as
// configured by pkg/config. Decompress(CompressLevel(x, l)) == x for any
// valid l, including for empty input.
func (oc ObjectContent) CompressLevel(level int) (CompressedData, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("create compressor: %w", err)
	}

	if _, err := w.Write(oc); err != nil {
		w.Close()
		return nil, fmt.Errorf("compress data: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize compression: %w", err)
	}

	return CompressedData(buf.Bytes()), nil
}

func (cd CompressedData) Bytes() []byte {
	return []byte(cd)
}

func (cd CompressedData) Size() ObjectSize {
	return ObjectSize(len(cd))
}

func (cd CompressedData) IsEmpty() bool {
	return len(cd) == 0
}

// Decompress reverses Compress. No extra framing is assumed beyond raw
// DEFLATE - callers that need empty-input round-tripping rely on flate
// itself producing a valid (if tiny) stream for zero bytes.
func (cd CompressedData) Decompress() (ObjectContent, error) {
	r := flate.NewReader(bytes.NewReader(cd))
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompress data: %w", err)
	}

	return ObjectContent(data), nil
}

func (so SerializedObject) Bytes() []byte {
	return []byte(so)
}

func (so SerializedObject) Size() ObjectSize {
	return ObjectSize(len(so))
}

func (so SerializedObject) IsEmpty() bool {
	return len(so) == 0
}

// ParseHeader splits a serialized object into its type, declared content
// size, and the byte offset where content begins.
func (so SerializedObject) ParseHeader() (ObjectType, ObjectSize, int, error) {
	data := []byte(so)
	spaceIndex, nullIndex, err := splitHeader(data)
	if err != nil {
		return "", 0, 0, err
	}

	objType, err := ParseObjectType(string(data[:spaceIndex]))
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid object type: %w", err)
	}

	var size int64
	if _, err := fmt.Sscanf(string(data[spaceIndex+1:nullIndex]), "%d", &size); err != nil {
		return "", 0, 0, fmt.Errorf("invalid size in header: %w", err)
	}

	return objType, ObjectSize(size), nullIndex + 1, nil
}

// Content extracts the content portion, validating it matches the declared
// header size.
func (so SerializedObject) Content() (ObjectContent, error) {
	_, expectedSize, contentStart, err := so.ParseHeader()
	if err != nil {
		return nil, err
	}

	content := []byte(so)[contentStart:]
	if ObjectSize(len(content)) != expectedSize {
		return nil, fmt.Errorf("content size mismatch: expected %d, got %d", expectedSize, len(content))
	}

	return ObjectContent(content), nil
}

func (so SerializedObject) Type() (ObjectType, error) {
	objType, _, _, err := so.ParseHeader()
	return objType, err
}

func (so SerializedObject) Compress() (CompressedData, error) {
	return ObjectContent(so).Compress()
}

// NewSerializedObject frames content with its type/size header.
func NewSerializedObject(objType ObjectType, content ObjectContent) SerializedObject {
	header := CreateHeader(objType, int64(content.Size()))
	fullData := append(header, content.Bytes()...)
	return SerializedObject(fullData)
}

func (os ObjectSize) IsValid() bool {
	return os >= 0
}

func (os ObjectSize) String() string {
	return formatBytes(int64(os))
}

func (os ObjectSize) Int64() int64 {
	return int64(os)
}

func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
