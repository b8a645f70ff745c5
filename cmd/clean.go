package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/FroogalTheDragon/devclean/internal/clean"
	"github.com/FroogalTheDragon/devclean/internal/core"
	"github.com/FroogalTheDragon/devclean/internal/scanner"
	"github.com/FroogalTheDragon/devclean/internal/ui"
)

var (
	cleanAll    bool
	cleanDryRun bool
	cleanYes    bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Short: "Remove build artifacts from selected projects",
	Long: `Scan a directory tree, pick projects interactively (or all of them with
--all) and delete their build artifacts. Use --dry-run to preview what
would be freed without touching the disk.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "Clean every project found without prompting for a selection")
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "Preview without deleting")
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "Skip the confirmation prompt")
}

// cleanReport is the JSON shape of a clean run.
type cleanReport struct {
	DryRun          bool                `json:"dry_run"`
	ProjectsCleaned int                 `json:"projects_cleaned"`
	TotalBytesFreed int64               `json:"total_bytes_freed"`
	TotalFreedHuman string              `json:"total_bytes_freed_human"`
	Errors          []string            `json:"errors"`
	Results         []clean.CleanResult `json:"results"`
}

func runClean(cmd *cobra.Command, args []string) error {
	_, projects, err := scanProjects(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(projects) == 0 {
		if jsonOutput {
			return writeJSON(out, newCleanReport(nil, cleanDryRun))
		}
		ui.PrintResultsTable(out, projects)
		return nil
	}

	chosen, err := chooseProjects(cmd, projects)
	if err != nil {
		return err
	}
	if len(chosen) == 0 {
		fmt.Fprintln(out, ui.MutedStyle().Render("Nothing cleaned."))
		return nil
	}

	results := clean.CleanProjects(chosen, cleanDryRun)
	if jsonOutput {
		return writeJSON(out, newCleanReport(results, cleanDryRun))
	}
	ui.PrintCleanSummary(out, results, cleanDryRun)
	return nil
}

// chooseProjects applies --all, the interactive selector or the plain
// prompt, then the confirmation step unless --yes or --dry-run.
func chooseProjects(cmd *cobra.Command, projects []scanner.ScannedProject) ([]scanner.ScannedProject, error) {
	out := cmd.OutOrStdout()
	needConfirm := !cleanYes && !cleanDryRun

	if cleanAll {
		if !needConfirm {
			return projects, nil
		}
		if jsonOutput {
			return nil, fmt.Errorf("--json with --all needs --yes or --dry-run")
		}
		ui.PrintResultsTable(out, projects)
		ok, err := ui.Confirm(cmd.InOrStdin(), out, fmt.Sprintf("Delete artifacts of %d project(s)?", len(projects)))
		if err != nil || !ok {
			return nil, err
		}
		return projects, nil
	}

	if jsonOutput {
		return nil, fmt.Errorf("--json needs --all to select projects")
	}

	if cmd.InOrStdin() == os.Stdin && ui.IsTerminal(os.Stdin) && ui.IsTerminal(os.Stdout) {
		return ui.RunSelect(projects, needConfirm, os.Stdin, os.Stdout)
	}

	in := bufio.NewReader(cmd.InOrStdin())
	chosen, err := ui.PromptSelect(projects, in, out)
	if err != nil {
		return nil, err
	}
	if !needConfirm {
		return chosen, nil
	}
	var total int64
	for _, p := range chosen {
		total += p.TotalCleanableBytes
	}
	ok, err := ui.Confirm(in, out, fmt.Sprintf("Delete %s from %d project(s)?", core.FormatSize(total), len(chosen)))
	if err != nil || !ok {
		return nil, err
	}
	return chosen, nil
}

func newCleanReport(results []clean.CleanResult, dryRun bool) cleanReport {
	if results == nil {
		results = []clean.CleanResult{}
	}
	totals := clean.Sum(results)
	report := cleanReport{
		DryRun:          dryRun,
		ProjectsCleaned: totals.Projects,
		TotalBytesFreed: totals.BytesFreed,
		TotalFreedHuman: core.FormatSize(totals.BytesFreed),
		Errors:          []string{},
		Results:         results,
	}
	for _, r := range results {
		report.Errors = append(report.Errors, r.Errors...)
	}
	return report
}
