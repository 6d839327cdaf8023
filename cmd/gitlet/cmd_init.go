package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gitletcore/gitlet/cmd/ui"
	"github.com/gitletcore/gitlet/pkg/config"
	"github.com/gitletcore/gitlet/pkg/repository/gitletrepo"
	"github.com/gitletcore/gitlet/pkg/repository/gpath"
)

func newInitCmd() *cobra.Command {
	var compressionLevel int

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Initialize a new gitlet repository",
		Long: `Initialize a new gitlet repository in the current directory or the
given path, creating the .gitlet metadata directory tree and an empty index.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			repoPath, err := gpath.NewRepositoryPath(absPath)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			cfg := config.New(repoPath)
			if cmd.Flags().Changed("compression") {
				if cfg, err = cfg.WithCompressionLevel(compressionLevel); err != nil {
					return fmt.Errorf("invalid compression level: %w", err)
				}
			}

			if _, err := gitletrepo.InitializeWithConfig(cfg); err != nil {
				return fmt.Errorf("initialize repository: %w", err)
			}

			fmt.Printf("%s\n", ui.SuccessMessage("Initialized empty gitlet repository in",
				filepath.Join(absPath, ".gitlet")))

			return nil
		},
	}

	cmd.Flags().IntVar(&compressionLevel, "compression", config.DefaultCompressionLevel,
		"DEFLATE compression level for stored objects (0-9, or -1 for default)")

	return cmd
}
