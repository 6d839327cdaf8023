package main

import (
	"fmt"
	"os"

	"github.com/gitletcore/gitlet/pkg/repository/gitletrepo"
	"github.com/gitletcore/gitlet/pkg/repository/gpath"
)

// findRepository locates the gitlet repository containing the current
// working directory, walking up to the filesystem root.
func findRepository() (*gitletrepo.Repository, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get current directory: %w", err)
	}

	start, err := gpath.NewRepositoryPath(cwd)
	if err != nil {
		return nil, fmt.Errorf("invalid working directory: %w", err)
	}

	repo, err := gitletrepo.FindRepository(start)
	if err != nil {
		return nil, fmt.Errorf("find repository: %w", err)
	}
	if repo == nil {
		return nil, fmt.Errorf("not a gitlet repository (or any parent up to mount point)")
	}

	return repo, nil
}

// resolveArgPaths converts command-line file arguments to absolute paths.
func resolveArgPaths(args []string) ([]gpath.AbsolutePath, error) {
	paths := make([]gpath.AbsolutePath, 0, len(args))
	for _, arg := range args {
		abs, err := gpath.NewAbsolutePath(arg)
		if err != nil {
			return nil, fmt.Errorf("resolve path %q: %w", arg, err)
		}
		paths = append(paths, abs)
	}
	return paths, nil
}
