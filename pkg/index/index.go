// Package index implements the staging area: the bridge between the
// working directory and the object store, tracking what the next tree
// snapshot will contain.
package index

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/gitletcore/gitlet/pkg/common/fileops"
	"github.com/gitletcore/gitlet/pkg/common/logger"
	"github.com/gitletcore/gitlet/pkg/common/scerr"
	"github.com/gitletcore/gitlet/pkg/objects"
	"github.com/gitletcore/gitlet/pkg/objects/blob"
	"github.com/gitletcore/gitlet/pkg/repository/gpath"
	"github.com/gitletcore/gitlet/pkg/store"
)

// Index is the staging area. It holds three maps keyed by canonicalized
// absolute path:
//
//   - tracked: the HEAD snapshot, as last recorded by ApplyHeadSnapshot.
//   - added:   paths staged for addition, not yet in tracked, or staged to
//     override a tracked entry's content.
//   - removed: paths staged for removal from tracked.
//
// The effective working set the next tree is built from is
// tracked - removed + added.
type Index struct {
	added   map[string]objects.ObjectHash
	removed map[string]struct{}
	tracked map[string]objects.ObjectHash
}

// New returns an empty index.
func New() *Index {
	return &Index{
		added:   make(map[string]objects.ObjectHash),
		removed: make(map[string]struct{}),
		tracked: make(map[string]objects.ObjectHash),
	}
}

// Added returns a copy of the staged-addition map, keyed by canonicalized path.
func (idx *Index) Added() map[string]objects.ObjectHash {
	return copyHashMap(idx.added)
}

// Removed returns the staged-deletion set as a sorted slice of canonicalized paths.
func (idx *Index) Removed() []string {
	out := make([]string, 0, len(idx.removed))
	for p := range idx.removed {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Tracked returns a copy of the HEAD snapshot, keyed by canonicalized path.
func (idx *Index) Tracked() map[string]objects.ObjectHash {
	return copyHashMap(idx.tracked)
}

func copyHashMap(m map[string]objects.ObjectHash) map[string]objects.ObjectHash {
	out := make(map[string]objects.ObjectHash, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Add stages file for the next tree snapshot.
//
// The file must exist and be a regular, readable file. If its content
// matches what is already tracked at HEAD, any pending staged addition is
// dropped and the path is left as-is (tracked, nothing new to write). Local
// modifications, however old, are never silently lost: a pending removal
// for the same path is always cleared first. Otherwise a blob is built,
// persisted, and the path is recorded in added.
func (idx *Index) Add(objStore store.ObjectStore, indexPath gpath.AbsolutePath, file gpath.AbsolutePath) error {
	regular, err := fileops.IsRegularFile(file.String())
	if err != nil {
		return scerr.New(scerr.NotReadable, "add", "stat file", err).WithPath(file.String())
	}
	if !regular {
		return scerr.New(scerr.NotReadable, "add", "not a regular file", nil).WithPath(file.String())
	}

	p, err := gpath.Canonicalize(file.String())
	if err != nil {
		return scerr.New(scerr.NotReadable, "add", "canonicalize path", err).WithPath(file.String())
	}

	newUID, err := blob.ComputeUID(file)
	if err != nil {
		return err
	}

	delete(idx.removed, p)

	if trackedUID, ok := idx.tracked[p]; ok && trackedUID.Equal(newUID) {
		delete(idx.added, p)
		return idx.Save(indexPath)
	}

	b, err := blob.FromFile(file)
	if err != nil {
		return err
	}
	if _, err := b.Persist(objStore); err != nil {
		return err
	}

	idx.added[p] = newUID
	return idx.Save(indexPath)
}

// Remove stages file for removal from the next tree snapshot.
//
// force permits removing a tracked file that has local modifications.
// cached leaves the working-tree file in place, staging the removal only.
//
// Fails with scerr.PathspecNoMatch if file is neither tracked nor staged
// for addition. Fails with scerr.HasLocalModifications if file is tracked,
// present in the working tree, modified relative to the tracked content,
// and force is false; this check happens before any state is mutated.
func (idx *Index) Remove(repoRoot gpath.RepositoryPath, indexPath gpath.AbsolutePath, file gpath.AbsolutePath, force, cached bool) error {
	resolved, err := gpath.Canonicalize(file.String())
	if err != nil {
		resolved = file.String()
	}
	p := resolved

	existsInWorkingTree, err := fileops.Exists(file)
	if err != nil {
		return scerr.New(scerr.IO, "remove", "check file existence", err).WithPath(file.String())
	}

	trackedUID, isTracked := idx.tracked[p]
	_, isStagedAdd := idx.added[p]

	if !isTracked && !isStagedAdd {
		return scerr.New(scerr.PathspecNoMatch, "remove",
			fmt.Sprintf("pathspec %q did not match any tracked or staged file", file.Base()), nil)
	}

	if isTracked && existsInWorkingTree && !force {
		workingUID, err := blob.ComputeUID(file)
		if err != nil {
			return err
		}
		if !workingUID.Equal(trackedUID) {
			return scerr.New(scerr.HasLocalModifications, "remove",
				fmt.Sprintf("%s has local modifications", file.Base()), nil)
		}
	}

	if isStagedAdd {
		delete(idx.added, p)
	}
	if isTracked {
		idx.removed[p] = struct{}{}
	}

	if !cached && existsInWorkingTree {
		if !repoRoot.Contains(resolved) {
			return scerr.New(scerr.IO, "remove", "refusing to delete path outside repository", nil).WithPath(file.String())
		}
		if err := fileops.SafeRemove(file); err != nil {
			return scerr.New(scerr.IO, "remove", "delete working-tree file", err).WithPath(file.String())
		}
	}

	return idx.Save(indexPath)
}

// CleanStageArea empties added and removed, leaving tracked untouched.
// Called after a commit folds the staged changes into a new HEAD snapshot.
func (idx *Index) CleanStageArea(indexPath gpath.AbsolutePath) error {
	idx.added = make(map[string]objects.ObjectHash)
	idx.removed = make(map[string]struct{})
	return idx.Save(indexPath)
}

// ApplyHeadSnapshot replaces tracked wholesale with newTracked, canonicalizing
// its keys. Used to adopt a commit's tree as the new baseline.
func (idx *Index) ApplyHeadSnapshot(indexPath gpath.AbsolutePath, newTracked map[string]objects.ObjectHash) error {
	tracked := make(map[string]objects.ObjectHash, len(newTracked))
	for path, uid := range newTracked {
		p, err := gpath.Canonicalize(path)
		if err != nil {
			p = path
		}
		tracked[p] = uid
	}
	idx.tracked = tracked
	return idx.Save(indexPath)
}

// LoadOrCreate reads and deserializes the index file at indexPath. A missing
// file yields an empty index silently. A deserialization failure also
// yields an empty index, but is surfaced as a warning through sink (falling
// back to logger.Default if sink is nil) rather than failing the caller or
// deleting the corrupt file.
func LoadOrCreate(indexPath gpath.AbsolutePath, sink *slog.Logger) *Index {
	if sink == nil {
		sink = logger.Default
	}

	exists, err := fileops.Exists(indexPath)
	if err != nil || !exists {
		return New()
	}

	data, err := fileops.ReadBytesStrict(indexPath)
	if err != nil {
		sink.Warn("index: failed to read index file, starting with empty index",
			"path", indexPath.String(), "error", err)
		return New()
	}

	idx, err := Deserialize(data)
	if err != nil {
		sink.Warn("index: failed to deserialize index, starting with empty index",
			"path", indexPath.String(), "error", err)
		return New()
	}

	return idx
}

// Save serializes and atomically writes the index to indexPath.
func (idx *Index) Save(indexPath gpath.AbsolutePath) error {
	data := idx.Serialize()

	if err := fileops.EnsureParentDir(indexPath); err != nil {
		return scerr.New(scerr.IO, "save", "create index directory", err).WithPath(indexPath.String())
	}
	if err := fileops.AtomicWrite(indexPath, data, 0o644); err != nil {
		return scerr.New(scerr.IO, "save", "write index file", err).WithPath(indexPath.String())
	}
	return nil
}
