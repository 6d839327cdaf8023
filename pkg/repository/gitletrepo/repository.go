// Package gitletrepo locates and bootstraps a repository's .gitlet
// metadata directory: the single process-wide root the rest of the core
// operates against.
package gitletrepo

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gitletcore/gitlet/pkg/common/fileops"
	"github.com/gitletcore/gitlet/pkg/config"
	"github.com/gitletcore/gitlet/pkg/index"
	"github.com/gitletcore/gitlet/pkg/repository/gpath"
	"github.com/gitletcore/gitlet/pkg/store"
)

const defaultHeadRef = "ref: refs/heads/main\n"

// Repository is a handle to a repository's working directory and its
// .gitlet metadata: the object store plus the paths needed to load and
// save the staging index.
type Repository struct {
	root     gpath.RepositoryPath
	objStore store.ObjectStore
}

// Exists reports whether a .gitlet directory is present at path.
func Exists(path gpath.RepositoryPath) (bool, error) {
	return fileops.Exists(path.MetaPath().ToAbsolutePath())
}

// Initialize creates the .gitlet skeleton and an empty index at path,
// recursively creating every directory it needs, compressing objects at the
// builtin default level. Fails if a repository already exists there.
func Initialize(path gpath.RepositoryPath) (*Repository, error) {
	return InitializeWithConfig(config.New(path))
}

// InitializeWithConfig is Initialize with an explicit configuration,
// wiring cfg.CompressionLevel into the repository's object store.
func InitializeWithConfig(cfg *config.Config) (*Repository, error) {
	path := cfg.Root

	exists, err := Exists(path)
	if err != nil {
		return nil, fmt.Errorf("check repository existence: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("already a gitlet repository: %s", path)
	}

	meta := path.MetaPath()
	dirs := []gpath.AbsolutePath{
		meta.ObjectsPath().ToAbsolutePath(),
		meta.RefsPath().Join(gpath.HeadsDir).ToAbsolutePath(),
		meta.RefsPath().Join(gpath.RemotesDir).ToAbsolutePath(),
		meta.Join(gpath.LogsDir).ToAbsolutePath(),
	}
	for _, dir := range dirs {
		if err := fileops.EnsureDir(dir); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	headPath := meta.HeadPath().ToAbsolutePath()
	if err := fileops.AtomicWrite(headPath, []byte(defaultHeadRef), 0o644); err != nil {
		return nil, fmt.Errorf("create HEAD file: %w", err)
	}

	objStore := store.NewFileObjectStoreWithLevel(meta, cfg.CompressionLevel)

	repo := &Repository{root: path, objStore: objStore}
	if err := index.New().Save(repo.IndexPath()); err != nil {
		return nil, fmt.Errorf("create empty index: %w", err)
	}

	return repo, nil
}

// Open returns a handle to an existing repository at path, compressing
// objects at the builtin default level. Fails if no .gitlet directory is
// present.
func Open(path gpath.RepositoryPath) (*Repository, error) {
	return OpenWithConfig(config.New(path))
}

// OpenWithConfig is Open with an explicit configuration, wiring
// cfg.CompressionLevel into the repository's object store.
func OpenWithConfig(cfg *config.Config) (*Repository, error) {
	path := cfg.Root

	exists, err := Exists(path)
	if err != nil {
		return nil, fmt.Errorf("check repository existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("not a gitlet repository: %s", path)
	}

	return &Repository{
		root:     path,
		objStore: store.NewFileObjectStoreWithLevel(path.MetaPath(), cfg.CompressionLevel),
	}, nil
}

// FindRepository walks up from start looking for a .gitlet directory,
// stopping at the filesystem root. Returns (nil, nil) if none is found.
func FindRepository(start gpath.RepositoryPath) (*Repository, error) {
	current := start.String()

	for {
		repoPath, err := gpath.NewRepositoryPath(current)
		if err != nil {
			return nil, fmt.Errorf("resolve candidate path: %w", err)
		}

		exists, err := Exists(repoPath)
		if err != nil {
			return nil, fmt.Errorf("check repository existence: %w", err)
		}
		if exists {
			return Open(repoPath)
		}

		parent := filepath.Dir(current)
		if parent == current {
			return nil, nil
		}
		current = parent
	}
}

// Root returns the repository's working directory.
func (r *Repository) Root() gpath.RepositoryPath {
	return r.root
}

// MetaPath returns the path to the repository's .gitlet directory.
func (r *Repository) MetaPath() gpath.MetaPath {
	return r.root.MetaPath()
}

// ObjectStore returns the repository's object store.
func (r *Repository) ObjectStore() store.ObjectStore {
	return r.objStore
}

// IndexPath returns the path to the repository's serialized index file.
func (r *Repository) IndexPath() gpath.AbsolutePath {
	return r.root.MetaPath().IndexPath().ToAbsolutePath()
}

// LoadIndex loads the repository's staging index, recovering to an empty
// index on any deserialization failure. Failures are reported through
// sink (or logger.Default if sink is nil).
func (r *Repository) LoadIndex(sink *slog.Logger) *index.Index {
	return index.LoadOrCreate(r.IndexPath(), sink)
}
