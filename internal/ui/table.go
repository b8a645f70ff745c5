package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/FroogalTheDragon/devclean/internal/clean"
	"github.com/FroogalTheDragon/devclean/internal/core"
	"github.com/FroogalTheDragon/devclean/internal/scanner"
	"github.com/FroogalTheDragon/devclean/internal/status"
)

// maxTargetsWidth bounds the targets column before it is truncated.
const maxTargetsWidth = 40

func newTable() *table.Table {
	header := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(ColorText).Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorMuted)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}

// ProjectRows renders projects as table rows, numbered from 1.
func ProjectRows(projects []scanner.ScannedProject) [][]string {
	rows := make([][]string, 0, len(projects))
	for i, p := range projects {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			p.Name,
			p.Kind.String(),
			truncate(strings.Join(p.TargetNames(), ", "), maxTargetsWidth),
			core.FormatSize(p.TotalCleanableBytes),
			core.FormatAge(p.LastModified),
			p.Path,
		})
	}
	return rows
}

// PrintResultsTable writes the scan results table followed by a total line.
func PrintResultsTable(w io.Writer, projects []scanner.ScannedProject) {
	if len(projects) == 0 {
		fmt.Fprintln(w, MutedStyle().Render("No projects with cleanable artifacts found."))
		return
	}

	t := newTable().
		Headers("#", "Project", "Kind", "Targets", "Size", "Modified", "Path").
		Rows(ProjectRows(projects)...)
	fmt.Fprintln(w, t.Render())

	var total int64
	for _, p := range projects {
		total += p.TotalCleanableBytes
	}
	fmt.Fprintf(w, "%s %s reclaimable across %s\n",
		TitleStyle().Render(IconDiamond),
		lipgloss.NewStyle().Bold(true).Render(core.FormatSize(total)),
		pluralize(len(projects), "project"))
}

// PrintCleanSummary writes the outcome of a clean run.
func PrintCleanSummary(w io.Writer, results []clean.CleanResult, dryRun bool) {
	totals := clean.Sum(results)

	verb := "Freed"
	if dryRun {
		verb = "Would free"
		fmt.Fprintln(w, TagWarningStyle().Render(" DRY RUN "))
	}

	for _, r := range results {
		mark := SuccessStyle().Render(IconCheck)
		if r.Failed() {
			mark = ErrorStyle().Render(IconCross)
		}
		fmt.Fprintf(w, "%s %s  %s\n", mark, r.ProjectName, MutedStyle().Render(core.FormatSize(r.BytesFreed)))
		for _, e := range r.Errors {
			fmt.Fprintf(w, "    %s\n", ErrorStyle().Render(e))
		}
	}

	fmt.Fprintf(w, "%s %s %s from %s (%s)\n",
		TitleStyle().Render(IconDiamond),
		verb,
		lipgloss.NewStyle().Bold(true).Render(core.FormatSize(totals.BytesFreed)),
		pluralize(totals.Projects, "project"),
		pluralize(totals.TargetsCleaned, "target"))
	if totals.Errors > 0 {
		fmt.Fprintln(w, ErrorStyle().Render(fmt.Sprintf("%s %s", IconWarning, pluralize(totals.Errors, "error"))))
	}
}

// PrintSummary writes per-kind totals and, when known, the scanned volume's
// free space.
func PrintSummary(w io.Writer, s scanner.Summary, vol *status.VolumeUsage) {
	if s.TotalProjects == 0 {
		fmt.Fprintln(w, MutedStyle().Render("No projects with cleanable artifacts found."))
	} else {
		rows := make([][]string, 0, len(s.ByKind))
		for _, k := range s.ByKind {
			rows = append(rows, []string{
				k.Kind.String(),
				humanize.Comma(int64(k.Projects)),
				core.FormatSize(k.Bytes),
			})
		}
		t := newTable().Headers("Kind", "Projects", "Reclaimable").Rows(rows...)
		fmt.Fprintln(w, t.Render())
		fmt.Fprintf(w, "%s %s reclaimable across %s\n",
			TitleStyle().Render(IconDiamond),
			lipgloss.NewStyle().Bold(true).Render(core.FormatSize(s.TotalBytes)),
			pluralize(s.TotalProjects, "project"))
	}

	if vol != nil {
		fmt.Fprintf(w, "%s %s free of %s (%.0f%% used)\n",
			MutedStyle().Render(IconPipe),
			core.FormatSize(int64(vol.Free)),
			core.FormatSize(int64(vol.Total)),
			vol.UsedPercent)
	}
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
