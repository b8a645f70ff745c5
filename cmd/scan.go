package cmd

import (
	"github.com/spf13/cobra"

	"github.com/FroogalTheDragon/devclean/internal/ui"
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "List projects with cleanable artifacts",
	Long:  "Scan a directory tree for development projects and report their build artifacts, largest first. Nothing is deleted.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

var scanTargets bool

func init() {
	scanCmd.Flags().BoolVarP(&scanTargets, "targets", "t", false, "Show each project's artifact directories as a tree")
}

func runScan(cmd *cobra.Command, args []string) error {
	_, projects, err := scanProjects(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, projects)
	}
	if scanTargets {
		ui.PrintTargetTree(out, projects)
		return nil
	}
	ui.PrintResultsTable(out, projects)
	return nil
}
