package gitletrepo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gitletcore/gitlet/pkg/repository/gpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDir(t *testing.T) gpath.RepositoryPath {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "gitlet-repo-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	repoPath, err := gpath.NewRepositoryPath(tempDir)
	require.NoError(t, err)
	return repoPath
}

func TestInitialize_CreatesDirectorySkeletonRecursively(t *testing.T) {
	repoPath := setupTestDir(t)

	repo, err := Initialize(repoPath)
	require.NoError(t, err)
	require.NotNil(t, repo)

	meta := repoPath.MetaPath()
	for _, dir := range []string{
		meta.ObjectsPath().String(),
		meta.RefsPath().Join("heads").String(),
		meta.RefsPath().Join("remotes").String(),
		meta.Join("logs").String(),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err, "expected directory %s to exist", dir)
		assert.True(t, info.IsDir())
	}
}

func TestInitialize_CreatesHeadFile(t *testing.T) {
	repoPath := setupTestDir(t)

	_, err := Initialize(repoPath)
	require.NoError(t, err)

	headPath := repoPath.MetaPath().HeadPath()
	content, err := os.ReadFile(headPath.String())
	require.NoError(t, err)
	assert.Equal(t, "ref: refs/heads/main\n", string(content))
}

func TestInitialize_CreatesEmptyIndex(t *testing.T) {
	repoPath := setupTestDir(t)

	repo, err := Initialize(repoPath)
	require.NoError(t, err)

	idx := repo.LoadIndex(nil)
	assert.Empty(t, idx.Tracked())
	assert.Empty(t, idx.Added())
	assert.Empty(t, idx.Removed())
}

func TestInitialize_FailsIfAlreadyInitialized(t *testing.T) {
	repoPath := setupTestDir(t)

	_, err := Initialize(repoPath)
	require.NoError(t, err)

	_, err = Initialize(repoPath)
	assert.Error(t, err)
}

func TestExists(t *testing.T) {
	repoPath := setupTestDir(t)

	exists, err := Exists(repoPath)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = Initialize(repoPath)
	require.NoError(t, err)

	exists, err = Exists(repoPath)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestOpen(t *testing.T) {
	repoPath := setupTestDir(t)

	_, err := Initialize(repoPath)
	require.NoError(t, err)

	repo, err := Open(repoPath)
	require.NoError(t, err)
	assert.Equal(t, repoPath.String(), repo.Root().String())
}

func TestOpen_NonExistentFails(t *testing.T) {
	repoPath := setupTestDir(t)

	_, err := Open(repoPath)
	assert.Error(t, err)
}

func TestFindRepository_WalksUpFromSubdirectory(t *testing.T) {
	repoPath := setupTestDir(t)

	_, err := Initialize(repoPath)
	require.NoError(t, err)

	subDir := filepath.Join(repoPath.String(), "src", "main")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	subDirPath, err := gpath.NewRepositoryPath(subDir)
	require.NoError(t, err)

	found, err := FindRepository(subDirPath)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, repoPath.String(), found.Root().String())
}

func TestFindRepository_ReturnsNilWhenNoneFound(t *testing.T) {
	repoPath := setupTestDir(t)

	found, err := FindRepository(repoPath)
	require.NoError(t, err)
	assert.Nil(t, found)
}
