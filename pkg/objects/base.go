package objects

import (
	"bytes"
	"fmt"
	"io"
)

// ObjectType identifies the kind of a stored object.
type ObjectType string

const (
	BlobType ObjectType = "blob"
	TreeType ObjectType = "tree"
)

const (
	NullByte  = byte(0)
	SpaceByte = byte(' ')
)

func (o ObjectType) String() string {
	return string(o)
}

// BaseObject is implemented by every storable object kind.
type BaseObject interface {
	Type() ObjectType
	Content() (ObjectContent, error)
	Hash() (ObjectHash, error)
	RawHash() (RawHash, error)
	Size() (ObjectSize, error)
	Serialize(w io.Writer) error
	String() string
}

// ParseObjectType converts a string to ObjectType.
func ParseObjectType(s string) (ObjectType, error) {
	switch ObjectType(s) {
	case BlobType, TreeType:
		return ObjectType(s), nil
	default:
		return "", fmt.Errorf("unknown object type: %s", s)
	}
}

// ParseSerializedObject parses a serialized object and validates its type.
func ParseSerializedObject(data []byte, expectedType ObjectType) (ObjectContent, error) {
	serialized := SerializedObject(data)

	objType, err := serialized.Type()
	if err != nil {
		return nil, err
	}

	if objType != expectedType {
		return nil, fmt.Errorf("object type mismatch: expected %s, got %s", expectedType, objType)
	}

	return serialized.Content()
}

// CreateHeader builds the "<type> <size>\0" header used to frame object content.
func CreateHeader(ot ObjectType, contentSize int64) []byte {
	header := fmt.Sprintf("%s %d%c", ot.String(), contentSize, NullByte)
	return []byte(header)
}

// splitHeader locates the space and null byte delimiters in a raw header.
func splitHeader(data []byte) (spaceIndex, nullIndex int, err error) {
	nullIndex = bytes.IndexByte(data, NullByte)
	if nullIndex == -1 {
		return 0, 0, fmt.Errorf("invalid object header: missing null byte")
	}
	spaceIndex = bytes.IndexByte(data[:nullIndex], SpaceByte)
	if spaceIndex == -1 {
		return 0, 0, fmt.Errorf("invalid object header: missing space")
	}
	return spaceIndex, nullIndex, nil
}
