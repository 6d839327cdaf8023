package objects

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

// ObjectHash is a SHA-1 hash identifying a stored object, as a 40-character
// lowercase hex string. Example: "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391".
type ObjectHash string

// ShortHash is an abbreviated hash prefix, typically 7 characters.
type ShortHash string

// RawHash is a SHA-1 hash as a 20-byte array.
type RawHash [20]byte

const (
	HashLength      = 40
	ShortHashLength = 7
	RawHashLength   = 20
)

// ZeroHash is the all-zero hash used for uninitialized or null references.
func ZeroHash() ObjectHash {
	return ObjectHash("0000000000000000000000000000000000000000")
}

// Sum computes the SHA-1 hash over the concatenation of parts, without any
// additional framing. Used both for the canonical "<type> <len>\0<content>"
// object identifier and anywhere else a plain content hash is needed.
func Sum(parts ...[]byte) ObjectHash {
	h := sha1.New()
	for _, p := range parts {
		h.Write(p)
	}
	return ObjectHash(hex.EncodeToString(h.Sum(nil)))
}

// NewObjectHash hashes a single byte slice.
func NewObjectHash(data []byte) ObjectHash {
	return Sum(data)
}

// NewObjectHashFromRaw creates an ObjectHash from a 20-byte array.
func NewObjectHashFromRaw(raw RawHash) ObjectHash {
	return ObjectHash(hex.EncodeToString(raw[:]))
}

// NewObjectHashFromString validates and lowercases a hex hash string.
func NewObjectHashFromString(s string) (ObjectHash, error) {
	hash := ObjectHash(strings.ToLower(s))
	if err := hash.Validate(); err != nil {
		return "", err
	}
	return hash, nil
}

// ParseObjectHash is an alias for NewObjectHashFromString.
func ParseObjectHash(s string) (ObjectHash, error) {
	return NewObjectHashFromString(s)
}

func (h ObjectHash) String() string {
	return string(h)
}

func (h ObjectHash) IsValid() bool {
	return h.Validate() == nil
}

func (h ObjectHash) Validate() error {
	if len(h) != HashLength {
		return fmt.Errorf("hash must be %d characters long, got %d", HashLength, len(h))
	}
	for _, c := range h {
		if !isHexChar(c) {
			return fmt.Errorf("hash must contain only hex characters, found '%c'", c)
		}
	}
	return nil
}

func (h ObjectHash) IsZero() bool {
	return h == ZeroHash()
}

func (h ObjectHash) Short() ShortHash {
	return h.ShortN(ShortHashLength)
}

func (h ObjectHash) ShortN(n int) ShortHash {
	if n <= 0 {
		n = ShortHashLength
	}
	if n > len(h) {
		n = len(h)
	}
	return ShortHash(h[:n])
}

func (h ObjectHash) Bytes() ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return hex.DecodeString(string(h))
}

func (h ObjectHash) Raw() (RawHash, error) {
	bytes, err := h.Bytes()
	if err != nil {
		return RawHash{}, err
	}
	var raw RawHash
	copy(raw[:], bytes)
	return raw, nil
}

func (h ObjectHash) Equal(other ObjectHash) bool {
	return strings.EqualFold(string(h), string(other))
}

func (h ObjectHash) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(h), strings.ToLower(prefix))
}

func (h ObjectHash) MarshalText() ([]byte, error) {
	return []byte(h), nil
}

func (h *ObjectHash) UnmarshalText(text []byte) error {
	hash, err := NewObjectHashFromString(string(text))
	if err != nil {
		return err
	}
	*h = hash
	return nil
}

func (sh ShortHash) String() string {
	return string(sh)
}

func (sh ShortHash) IsValid() bool {
	if len(sh) == 0 || len(sh) > HashLength {
		return false
	}
	for _, c := range sh {
		if !isHexChar(c) {
			return false
		}
	}
	return true
}

func (sh ShortHash) Matches(hash ObjectHash) bool {
	return hash.HasPrefix(string(sh))
}

func (sh ShortHash) Length() int {
	return len(sh)
}

func (rh RawHash) Hash() ObjectHash {
	return NewObjectHashFromRaw(rh)
}

func (rh RawHash) String() string {
	return hex.EncodeToString(rh[:])
}

func (rh RawHash) Short() ShortHash {
	return rh.Hash().Short()
}

func (rh RawHash) IsZero() bool {
	for _, b := range rh {
		if b != 0 {
			return false
		}
	}
	return true
}

func (rh RawHash) Equal(other RawHash) bool {
	return rh == other
}

func isHexChar(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// ComputeHash computes the raw SHA-1 hash of data.
func ComputeHash(data []byte) RawHash {
	return sha1.Sum(data)
}

// ComputeObjectHash hashes the canonical "<type> <len>\0<content>" framing
// of an object, independent of how it's stored on disk.
func ComputeObjectHash(objType ObjectType, content ObjectContent) ObjectHash {
	serialized := NewSerializedObject(objType, content)
	return NewObjectHash(serialized.Bytes())
}
