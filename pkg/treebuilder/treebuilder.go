// Package treebuilder constructs tree objects from the staging index's
// effective working set.
package treebuilder

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gitletcore/gitlet/pkg/index"
	"github.com/gitletcore/gitlet/pkg/objects"
	"github.com/gitletcore/gitlet/pkg/objects/tree"
	"github.com/gitletcore/gitlet/pkg/repository/gpath"
	"github.com/gitletcore/gitlet/pkg/store"
)

// Build computes the effective working set (tracked - removed + added,
// remapped to repository-relative paths) and recursively partitions it
// into a tree of trees, persisting every child before its parent. An empty
// working set yields the well-known empty-tree identifier.
func Build(objStore store.ObjectStore, repoRoot gpath.RepositoryPath, idx *index.Index) (*tree.Tree, error) {
	effective, err := effectiveWorkingSet(repoRoot, idx)
	if err != nil {
		return nil, fmt.Errorf("compute effective working set: %w", err)
	}

	root, err := buildLevel(effective, objStore)
	if err != nil {
		return nil, err
	}

	if err := persist(root, objStore); err != nil {
		return nil, err
	}

	return root, nil
}

// effectiveWorkingSet starts from tracked, drops everything staged for
// removal, then overlays staged additions, all remapped to repository-
// relative paths.
func effectiveWorkingSet(repoRoot gpath.RepositoryPath, idx *index.Index) (map[string]objects.ObjectHash, error) {
	effective := make(map[string]objects.ObjectHash)

	for absPath, uid := range idx.Tracked() {
		rel := remapToRelative(repoRoot, absPath)
		effective[rel] = uid
	}

	for _, absPath := range idx.Removed() {
		rel := remapToRelative(repoRoot, absPath)
		delete(effective, rel)
	}

	for absPath, uid := range idx.Added() {
		rel := remapToRelative(repoRoot, absPath)
		effective[rel] = uid
	}

	return effective, nil
}

// remapToRelative converts an absolute, canonicalized index key to a
// forward-slash repository-relative path. A path that does not resolve
// under the root falls back to a lexical normalization of its absolute
// form rather than failing outright.
func remapToRelative(repoRoot gpath.RepositoryPath, absPath string) string {
	rel, err := filepath.Rel(repoRoot.String(), absPath)
	if err != nil {
		return gpath.NormalizePath(absPath)
	}

	normalized := gpath.NormalizePath(rel)
	if normalized == ".." || strings.HasPrefix(normalized, "../") {
		return gpath.NormalizePath(absPath)
	}
	return normalized
}

// buildLevel partitions entries into blob entries (no "/" in their key)
// and subdirectory groups (entries sharing a first path segment),
// recursing on each subdirectory before assembling this level's tree.
func buildLevel(entries map[string]objects.ObjectHash, objStore store.ObjectStore) (*tree.Tree, error) {
	blobs := make(map[string]objects.ObjectHash)
	subdirs := make(map[string]map[string]objects.ObjectHash)

	for relPath, uid := range entries {
		slash := strings.IndexByte(relPath, '/')
		if slash < 0 {
			blobs[relPath] = uid
			continue
		}

		first, rest := relPath[:slash], relPath[slash+1:]
		if subdirs[first] == nil {
			subdirs[first] = make(map[string]objects.ObjectHash)
		}
		subdirs[first][rest] = uid
	}

	treeEntries := make([]*tree.TreeEntry, 0, len(blobs)+len(subdirs))

	for name, uid := range blobs {
		entry, err := newEntry(objects.FileModeRegular, name, uid)
		if err != nil {
			return nil, err
		}
		treeEntries = append(treeEntries, entry)
	}

	for name, childEntries := range subdirs {
		childTree, err := buildLevel(childEntries, objStore)
		if err != nil {
			return nil, err
		}
		if err := persist(childTree, objStore); err != nil {
			return nil, err
		}

		childUID, err := childTree.Hash()
		if err != nil {
			return nil, fmt.Errorf("hash subtree %q: %w", name, err)
		}

		entry, err := newEntry(objects.FileModeDirectory, name, childUID)
		if err != nil {
			return nil, err
		}
		treeEntries = append(treeEntries, entry)
	}

	return tree.NewTree(treeEntries), nil
}

func newEntry(mode objects.FileMode, name string, uid objects.ObjectHash) (*tree.TreeEntry, error) {
	relName, err := gpath.NewRelativePath(name)
	if err != nil {
		return nil, fmt.Errorf("invalid entry name %q: %w", name, err)
	}
	return tree.NewTreeEntry(mode, relName, uid)
}

// persist writes t's framed bytes to objStore if not already present.
// Persisting an already-stored tree is a no-op.
func persist(t *tree.Tree, objStore store.ObjectStore) error {
	uid, err := t.Hash()
	if err != nil {
		return fmt.Errorf("hash tree: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Serialize(&buf); err != nil {
		return fmt.Errorf("serialize tree: %w", err)
	}

	return objStore.WriteIfAbsent(uid, buf.Bytes())
}
