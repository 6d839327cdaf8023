package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitletcore/gitlet/pkg/treebuilder"
)

func newWriteTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write-tree",
		Short: "Build and persist a tree object from the staging index",
		Long: `Compute the effective working set from the staging index
(tracked - removed + added) and persist it as a tree of tree objects,
printing the root tree's identifier.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			idx := repo.LoadIndex(nil)
			tr, err := treebuilder.Build(repo.ObjectStore(), repo.Root(), idx)
			if err != nil {
				return fmt.Errorf("write tree: %w", err)
			}

			hash, err := tr.Hash()
			if err != nil {
				return fmt.Errorf("hash tree: %w", err)
			}

			fmt.Println(hash.String())
			return nil
		},
	}

	return cmd
}
