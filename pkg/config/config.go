// Package config holds the small set of typed values the core needs to
// stay configurable without reaching for a global: the object store's
// compression level and the diagnostic sink warnings are surfaced through.
//
// This is not the teacher's multi-level (command-line/repository/user/
// system/builtin) hierarchy manager - that machinery lives outside the
// object-store and staging core this package configures. Only the
// precedence-ordered Level type is kept, trimmed to the two sources that
// matter here: a value built in, or one overridden by the caller.
package config

import (
	"compress/flate"
	"fmt"
	"log/slog"

	"github.com/gitletcore/gitlet/pkg/common/logger"
	"github.com/gitletcore/gitlet/pkg/repository/gpath"
)

// Level orders where a Config value came from, highest precedence first.
type Level int

const (
	// OverrideLevel is a value explicitly set by the caller (CLI flag, env var).
	OverrideLevel Level = iota

	// BuiltinLevel is the hardcoded default, used when nothing overrides it.
	BuiltinLevel
)

func (l Level) String() string {
	switch l {
	case OverrideLevel:
		return "override"
	case BuiltinLevel:
		return "builtin"
	default:
		return "unknown"
	}
}

// DefaultCompressionLevel is the DEFLATE level objects are compressed at
// when no override is configured.
const DefaultCompressionLevel = flate.BestCompression

// Config is the core's runtime configuration: the repository root it
// operates against, the compression level its object store uses, and the
// diagnostic sink warnings (e.g. a corrupt index) are logged through.
type Config struct {
	Root             gpath.RepositoryPath
	CompressionLevel int
	compressionSrc   Level
	Sink             *slog.Logger
}

// New builds a Config for root with builtin defaults: best-compression
// DEFLATE and the package-wide default logger.
func New(root gpath.RepositoryPath) *Config {
	return &Config{
		Root:             root,
		CompressionLevel: DefaultCompressionLevel,
		compressionSrc:   BuiltinLevel,
		Sink:             logger.Default,
	}
}

// WithCompressionLevel overrides the compression level, validating it
// against the range flate.NewWriter accepts.
func (c *Config) WithCompressionLevel(level int) (*Config, error) {
	if level != flate.DefaultCompression && (level < flate.HuffmanOnly || level > flate.BestCompression) {
		return nil, fmt.Errorf("invalid compression level: %d", level)
	}
	c.CompressionLevel = level
	c.compressionSrc = OverrideLevel
	return c, nil
}

// WithSink overrides the diagnostic sink warnings are logged through. A nil
// logger restores the builtin default.
func (c *Config) WithSink(sink *slog.Logger) *Config {
	if sink == nil {
		sink = logger.Default
	}
	c.Sink = sink
	return c
}

// CompressionLevelSource reports whether CompressionLevel is the builtin
// default or an explicit override.
func (c *Config) CompressionLevelSource() Level {
	return c.compressionSrc
}
