package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/FroogalTheDragon/devclean/internal/config"
	"github.com/FroogalTheDragon/devclean/internal/core"
	"github.com/FroogalTheDragon/devclean/internal/scanner"
	"github.com/FroogalTheDragon/devclean/internal/ui"
)

// ─── Config ──────────────────────────────────────────────────────────────────

func openStore() (*config.Store, error) {
	return config.NewOSStore(cfgFile, logrus.StandardLogger())
}

func loadConfig() (config.Config, error) {
	store, err := openStore()
	if err != nil {
		return config.Default(), err
	}
	return store.Load()
}

// ─── Scan pipeline ───────────────────────────────────────────────────────────

// resolveRoot picks the scan root: the argument, else the first configured
// default root, else the working directory.
func resolveRoot(args []string, cfg config.Config) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return config.ExpandHome(args[0]), nil
	}
	if root, ok := cfg.DefaultRoot(); ok {
		return root, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("determine working directory: %w", err)
	}
	return wd, nil
}

// scanOptions merges config and flags; an explicit --max-depth wins.
func scanOptions(cmd *cobra.Command, cfg config.Config) (scanner.Options, error) {
	opts := scanner.DefaultOptions()
	opts.Logger = logrus.StandardLogger()
	opts.IgnorePaths = cfg.ResolvedIgnorePaths()
	opts.ExcludeKinds = cfg.ExcludedKinds(opts.Logger)

	if cfg.MaxDepth != nil {
		opts.MaxDepth = *cfg.MaxDepth
	}
	if cmd.Flags().Changed("max-depth") {
		opts.MaxDepth = maxDepth
	}
	if opts.MaxDepth < scanner.NoDepthLimit {
		return opts, fmt.Errorf("invalid max depth %d", opts.MaxDepth)
	}
	return opts, nil
}

// scanProjects runs a scan for the command's path argument and applies the
// age filter. Results are sorted by size, largest first.
func scanProjects(cmd *cobra.Command, args []string) (string, []scanner.ScannedProject, error) {
	var age time.Duration
	if olderThan != "" {
		d, err := core.ParseAge(olderThan)
		if err != nil {
			return "", nil, err
		}
		age = d
	}

	cfg, err := loadConfig()
	if err != nil {
		return "", nil, err
	}
	root, err := resolveRoot(args, cfg)
	if err != nil {
		return "", nil, err
	}
	opts, err := scanOptions(cmd, cfg)
	if err != nil {
		return "", nil, err
	}

	if !jsonOutput && ui.IsTerminal(os.Stderr) {
		progress := ui.StartScanProgress(root, os.Stderr)
		opts.Progress = progress.Update
		defer progress.Stop()
	}

	projects, err := scanner.Scan(root, opts)
	if err != nil {
		return root, nil, err
	}
	if olderThan != "" {
		projects = scanner.FilterOlderThan(projects, age, time.Now())
	}
	scanner.SortBySize(projects)
	return root, projects, nil
}

// ─── Output ──────────────────────────────────────────────────────────────────

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
