package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitletcore/gitlet/cmd/ui"
)

func newRmCmd() *cobra.Command {
	var force bool
	var cached bool

	cmd := &cobra.Command{
		Use:   "rm <file>...",
		Short: "Remove files from the working tree and the staging area",
		Long: `Stage file for removal from the next tree snapshot.
By default the working-tree copy is also deleted; --cached leaves it in
place. --force allows removing a file with local modifications.`,
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
				if err := idx.Remove(repo.Root(), repo.IndexPath(), path, force, cached); err != nil {
					return fmt.Errorf("remove %s: %w", args[i], err)
				}
				fmt.Println(ui.FormatDeleted(args[i]))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Remove even if the file has local modifications")
	cmd.Flags().BoolVar(&cached, "cached", false, "Only remove from the index, leave the working-tree file in place")

	return cmd
}
