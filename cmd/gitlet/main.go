package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitletcore/gitlet/pkg/common/logger"
)

var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
	CommitSHA = "unknown"
)

var (
	logLevel  string
	logFormat string
	verbose   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "gitlet",
		Short:   "gitlet - a content-addressed object store and staging engine",
		Long:    getBanner(),
		Version: fmt.Sprintf("%s (built: %s, commit: %s)", Version, BuildTime, CommitSHA),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (sets log level to debug)")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newRmCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newWriteTreeCmd())
	rootCmd.AddCommand(newCatFileCmd())
	rootCmd.AddCommand(newHashObjectCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func getBanner() string {
	return `
╔═════════════════════════════════════════════════════════════════════╗
║                                                                       ║
║    ██████╗ ██╗████████╗██╗     ███████╗████████╗                     ║
║   ██╔════╝ ██║╚══██╔══╝██║     ██╔════╝╚══██╔══╝                     ║
║   ██║  ███╗██║   ██║   ██║     █████╗     ██║                        ║
║   ██║   ██║██║   ██║   ██║     ██╔══╝     ██║                        ║
║   ╚██████╔╝██║   ██║   ███████╗███████╗   ██║                        ║
║    ╚═════╝ ╚═╝   ╚═╝   ╚══════╝╚══════╝   ╚═╝                        ║
║                                                                       ║
╚═════════════════════════════════════════════════════════════════════╝

  A content-addressed object store and staging engine.

  Get started with: gitlet init
  Check status with: gitlet status
  Need help? Run:    gitlet --help

`
}

func setupLogging() {
	level := logger.LevelInfo
	if verbose {
		level = logger.LevelDebug
	} else {
		switch logLevel {
		case "debug":
			level = logger.LevelDebug
		case "info":
			level = logger.LevelInfo
		case "warn":
			level = logger.LevelWarn
		case "error":
			level = logger.LevelError
		}
	}

	format := logger.FormatText
	if logFormat == "json" {
		format = logger.FormatJSON
	}

	logger.Default = logger.New(logger.Config{
		Level:  level,
		Format: format,
		Output: os.Stderr,
	})
}
