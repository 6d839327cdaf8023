package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/gitletcore/gitlet/cmd/ui"
	"github.com/gitletcore/gitlet/pkg/objects"
	"github.com/gitletcore/gitlet/pkg/repository/gpath"
)

func newStatusCmd() *cobra.Command {
	var useTable bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the staging area status",
		Long: `Show the state of the staging index: what is staged for addition
and what is staged for removal. With --table, tracked entries that are not
staged are listed as well. When nothing is staged, only a clean-status
message is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := findRepository()
			if err != nil {
				return err
			}

			idx := repo.LoadIndex(nil)
			added := idx.Added()
			removed := idx.Removed()
			tracked := idx.Tracked()

			fmt.Println(ui.Header(" Staging Area Status "))
			fmt.Println()

			if len(added) == 0 && len(removed) == 0 {
				fmt.Println(ui.SuccessMessage("Nothing staged, staging area clean"))
				return nil
			}

			if useTable {
				displayStatusAsTable(repo.Root(), added, removed, tracked)
				return nil
			}

			if len(added) > 0 {
				fmt.Println(ui.Section("Changes staged for the next tree:"))
				for path := range added {
					fmt.Println(ui.FormatAdded(relativeDisplayPath(repo.Root(), path)))
				}
				fmt.Println()
			}

			if len(removed) > 0 {
				fmt.Println(ui.Section("Staged for removal:"))
				for _, path := range removed {
					fmt.Println(ui.FormatDeleted(relativeDisplayPath(repo.Root(), path)))
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&useTable, "table", "t", false, "Display status in table format")

	return cmd
}

func relativeDisplayPath(root gpath.RepositoryPath, absPath string) string {
	rel, err := gpath.AbsolutePath(absPath).RelativeTo(root)
	if err != nil {
		return absPath
	}
	return rel.String()
}

func displayStatusAsTable(root gpath.RepositoryPath, added map[string]objects.ObjectHash, removed []string, tracked map[string]objects.ObjectHash) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Path", "State", "Object")

	for path, uid := range added {
		table.Append(relativeDisplayPath(root, path), ui.Green("added"), string(uid.Short()))
	}
	for _, path := range removed {
		table.Append(relativeDisplayPath(root, path), ui.Red("removed"), "-")
	}
	removedSet := make(map[string]struct{}, len(removed))
	for _, path := range removed {
		removedSet[path] = struct{}{}
	}

	for path, uid := range tracked {
		if _, staged := added[path]; staged {
			continue
		}
		if _, staged := removedSet[path]; staged {
			continue
		}
		table.Append(relativeDisplayPath(root, path), ui.Cyan("tracked"), string(uid.Short()))
	}

	table.Render()
}
