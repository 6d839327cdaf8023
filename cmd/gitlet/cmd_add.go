package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitletcore/gitlet/cmd/ui"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <file>...",
		Short: "Add file contents to the staging area",
		Long: `Add file contents to the staging area (index).
This stages changes for the next tree snapshot.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			paths, err := resolveArgPaths(args)
			if err != nil {
				return err
			}

			idx := repo.LoadIndex(nil)
			for i, path := range paths {
				if err := idx.Add(repo.ObjectStore(), repo.IndexPath(), path); err != nil {
					return fmt.Errorf("add %s: %w", args[i], err)
				}
				fmt.Println(ui.FormatAdded(args[i]))
			}

			return nil
		},
	}

	return cmd
}
