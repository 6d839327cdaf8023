// Package scerr provides the one error family used across the core, each
// instance differentiated by a Kind rather than by a distinct Go type.
//
// # Usage
//
//	return scerr.New(scerr.NotReadable, "blob.from_file", "path is a directory", nil)
//
//	if scerr.Is(err, scerr.Corrupt) {
//	    // handle corrupt object
//	}
package scerr
