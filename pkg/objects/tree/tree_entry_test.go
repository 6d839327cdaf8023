package tree

import (
	"bytes"
	"testing"

	"github.com/gitletcore/gitlet/pkg/objects"
	"github.com/gitletcore/gitlet/pkg/repository/gpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleUID = "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0"

func TestNewTreeEntry(t *testing.T) {
	tests := []struct {
		name    string
		mode    objects.FileMode
		ename   string
		uid     string
		wantErr bool
	}{
		{"valid regular file entry", objects.FileModeRegular, "README.md", sampleUID, false},
		{"valid directory entry", objects.FileModeDirectory, "src", sampleUID, false},
		{"invalid uid", objects.FileModeRegular, "README.md", "not-a-hash", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := gpath.NewRelativePath(tt.ename)
			require.NoError(t, err)

			uid := objects.ObjectHash(tt.uid)
			entry, err := NewTreeEntry(tt.mode, path, uid)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.mode, entry.Mode())
			assert.Equal(t, tt.ename, entry.Name())
			assert.Equal(t, uid, entry.UID())
		})
	}
}

func TestNewTreeEntryFromStrings(t *testing.T) {
	entry, err := NewTreeEntryFromStrings("100644", "hello.txt", sampleUID)
	require.NoError(t, err)
	assert.True(t, entry.IsFile())
	assert.False(t, entry.IsDirectory())

	dirEntry, err := NewTreeEntryFromStrings("040000", "src", sampleUID)
	require.NoError(t, err)
	assert.True(t, dirEntry.IsDirectory())
	assert.False(t, dirEntry.IsFile())

	_, err = NewTreeEntryFromStrings("bogus", "hello.txt", sampleUID)
	require.Error(t, err)
}

func TestTreeEntry_SerializeUses40HexBytes(t *testing.T) {
	entry, err := NewTreeEntryFromStrings("100644", "hello.txt", sampleUID)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, entry.Serialize(&buf))

	expected := "100644 hello.txt\x00" + sampleUID
	assert.Equal(t, expected, buf.String())
	assert.Len(t, buf.Bytes(), len("100644 hello.txt\x00")+40)
}

func TestTreeEntry_SerializeDeserialize_RoundTrip(t *testing.T) {
	entry, err := NewTreeEntryFromStrings("040000", "subdir", sampleUID)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, entry.Serialize(&buf))

	parsed, next, err := DeserializeTreeEntry(buf.Bytes(), 0)
	require.NoError(t, err)
	assert.Equal(t, buf.Len(), next)
	assert.Equal(t, entry.Mode(), parsed.Mode())
	assert.Equal(t, entry.Name(), parsed.Name())
	assert.Equal(t, entry.UID(), parsed.UID())
}

func TestTreeEntry_CompareTo(t *testing.T) {
	a, err := NewTreeEntryFromStrings("100644", "a.txt", sampleUID)
	require.NoError(t, err)
	b, err := NewTreeEntryFromStrings("100644", "b.txt", sampleUID)
	require.NoError(t, err)

	assert.Negative(t, a.CompareTo(b))
	assert.Positive(t, b.CompareTo(a))
	assert.Zero(t, a.CompareTo(a))
}
