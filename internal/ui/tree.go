package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/FroogalTheDragon/devclean/internal/core"
	"github.com/FroogalTheDragon/devclean/internal/scanner"
)

// maxTargetsShown caps the targets listed per project.
const maxTargetsShown = 20

// PrintTargetTree writes a plain-text tree of projects and their clean
// targets, largest targets first. ASCII connectors keep it readable on any
// console and in redirected output.
func PrintTargetTree(w io.Writer, projects []scanner.ScannedProject) {
	if len(projects) == 0 {
		fmt.Fprintln(w, "  No projects with cleanable artifacts found.")
		return
	}

	var total int64
	for i, p := range projects {
		total += p.TotalCleanableBytes
		connector, childPrefix := "+-- ", "|   "
		if i == len(projects)-1 {
			connector, childPrefix = "\\-- ", "    "
		}
		fmt.Fprintf(w, "  %s%s [%s]  %s\n", connector, p.Path, p.Kind, core.FormatSize(p.TotalCleanableBytes))
		printTargets(w, p.CleanTargets, "  "+childPrefix)
	}

	fmt.Fprintln(w, "  "+strings.Repeat("-", 58))
	fmt.Fprintf(w, "  Total: %s\n", core.FormatSize(total))
}

func printTargets(w io.Writer, targets []scanner.CleanTarget, prefix string) {
	sorted := make([]scanner.CleanTarget, len(targets))
	copy(sorted, targets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SizeBytes > sorted[j].SizeBytes
	})

	shown := sorted
	if len(shown) > maxTargetsShown {
		shown = shown[:maxTargetsShown]
	}
	for i, t := range shown {
		connector := "+-- "
		if i == len(shown)-1 && len(sorted) == len(shown) {
			connector = "\\-- "
		}
		fmt.Fprintf(w, "%s%s%s/  %s\n", prefix, connector, t.Name, core.FormatSize(t.SizeBytes))
	}
	if remaining := len(sorted) - len(shown); remaining > 0 {
		fmt.Fprintf(w, "%s\\-- ... and %d more targets\n", prefix, remaining)
	}
}
