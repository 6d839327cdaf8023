package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitletcore/gitlet/pkg/objects/blob"
	"github.com/gitletcore/gitlet/pkg/repository/gpath"
)

func newHashObjectCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "hash-object <file>",
		Short: "Compute a blob's object identifier, optionally persisting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := gpath.NewAbsolutePath(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			if !write {
				uid, err := blob.ComputeUID(path)
				if err != nil {
					return fmt.Errorf("compute hash: %w", err)
				}
				fmt.Println(uid.String())
				return nil
			}

			repo, err := findRepository()
			if err != nil {
				return err
			}

			b, err := blob.FromFile(path)
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			uid, err := b.Persist(repo.ObjectStore())
			if err != nil {
				return fmt.Errorf("persist blob: %w", err)
			}

			fmt.Println(uid.String())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the object into the repository's object store")

	return cmd
}
