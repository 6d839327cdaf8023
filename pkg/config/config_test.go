package config

import (
	"compress/flate"
	"testing"

	"github.com/gitletcore/gitlet/pkg/repository/gpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoot(t *testing.T) gpath.RepositoryPath {
	t.Helper()
	root, err := gpath.NewRepositoryPath(t.TempDir())
	require.NoError(t, err)
	return root
}

func TestNew_BuiltinDefaults(t *testing.T) {
	cfg := New(testRoot(t))

	assert.Equal(t, flate.BestCompression, cfg.CompressionLevel)
	assert.Equal(t, BuiltinLevel, cfg.CompressionLevelSource())
	assert.NotNil(t, cfg.Sink)
}

func TestWithCompressionLevel_Valid(t *testing.T) {
	cfg := New(testRoot(t))

	updated, err := cfg.WithCompressionLevel(flate.BestSpeed)
	require.NoError(t, err)
	assert.Equal(t, flate.BestSpeed, updated.CompressionLevel)
	assert.Equal(t, OverrideLevel, updated.CompressionLevelSource())
}

func TestWithCompressionLevel_Invalid(t *testing.T) {
	cfg := New(testRoot(t))

	_, err := cfg.WithCompressionLevel(999)
	assert.Error(t, err)
}

func TestWithSink_NilRestoresDefault(t *testing.T) {
	cfg := New(testRoot(t))
	original := cfg.Sink

	cfg.WithSink(nil)
	assert.Equal(t, original, cfg.Sink)
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "override", OverrideLevel.String())
	assert.Equal(t, "builtin", BuiltinLevel.String())
	assert.Equal(t, "unknown", Level(99).String())
}
