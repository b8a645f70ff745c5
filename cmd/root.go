package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/FroogalTheDragon/devclean/internal/scanner"
)

var (
	// Global flags
	debug      bool
	cfgFile    string
	maxDepth   int
	olderThan  string
	jsonOutput bool

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "devclean [path]",
	Short: "Find and remove regenerable build artifacts",
	Long: `devclean - reclaim disk space from development projects.

Walks a directory tree, recognises projects of 17 ecosystems (Rust, Node.js,
Python, Java, .NET, Go, Zig, CMake, Swift, Elixir, Haskell, Dart, Ruby,
Scala, Unity, Godot, Terraform) and reports or deletes their build outputs,
dependency caches and virtual environments. Source files are never touched.

Without a subcommand devclean behaves like "devclean scan".`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runScan,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&debug, "debug", false, "Show detailed operation logs")
	flags.StringVar(&cfgFile, "config", "", "Config file (default is <user config dir>/devclean/config.json)")
	flags.IntVarP(&maxDepth, "max-depth", "d", scanner.NoDepthLimit, "Maximum directory depth to scan (-1 for unlimited)")
	flags.StringVarP(&olderThan, "older-than", "o", "", "Only projects not modified within this age (e.g. 30d, 4w, 3m, 1y)")
	flags.BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	// Register all subcommands
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLogging routes logrus to stderr; warnings only unless --debug.
func setupLogging(cmd *cobra.Command, args []string) error {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !debug,
		FullTimestamp:    true,
	})
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
	return nil
}
