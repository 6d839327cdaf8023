package gpath

const (
	// GitletDir is the name of the repository metadata directory.
	GitletDir = ".gitlet"

	// ObjectsDir is the name of the object store directory.
	ObjectsDir = "objects"

	// RefsDir is the name of the refs directory (reserved, read-only for the core).
	RefsDir = "refs"

	// HeadsDir is the name of the heads directory under refs.
	HeadsDir = "heads"

	// RemotesDir is the name of the remotes directory under refs.
	RemotesDir = "remotes"

	// LogsDir is the name of the reflog directory (reserved, unused by the core).
	LogsDir = "logs"

	// IndexFile is the name of the serialized index file.
	IndexFile = "index"

	// HeadFile is the name of the HEAD file.
	HeadFile = "HEAD"
)
