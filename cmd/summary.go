package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/FroogalTheDragon/devclean/internal/core"
	"github.com/FroogalTheDragon/devclean/internal/scanner"
	"github.com/FroogalTheDragon/devclean/internal/status"
	"github.com/FroogalTheDragon/devclean/internal/ui"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [path]",
	Short: "Show reclaimable space per project kind",
	Long:  "Scan a directory tree and total the reclaimable space, overall and per project kind, next to the free space of the volume it lives on.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSummary,
}

type kindReport struct {
	Kind             string `json:"kind"`
	Projects         int    `json:"projects"`
	ReclaimableBytes int64  `json:"reclaimable_bytes"`
	ReclaimableHuman string `json:"reclaimable_human"`
}

type summaryReport struct {
	Path                  string              `json:"path"`
	TotalProjects         int                 `json:"total_projects"`
	TotalReclaimableBytes int64               `json:"total_reclaimable_bytes"`
	TotalReclaimableHuman string              `json:"total_reclaimable_human"`
	ByKind                []kindReport        `json:"by_kind"`
	Volume                *status.VolumeUsage `json:"volume,omitempty"`
}

func runSummary(cmd *cobra.Command, args []string) error {
	root, projects, err := scanProjects(cmd, args)
	if err != nil {
		return err
	}
	summary := scanner.Summarize(projects)

	var vol *status.VolumeUsage
	if v, err := status.Volume(root); err != nil {
		logrus.WithError(err).Debug("volume usage unavailable")
	} else {
		vol = &v
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, newSummaryReport(root, summary, vol))
	}
	ui.PrintSummary(out, summary, vol)
	return nil
}

func newSummaryReport(root string, s scanner.Summary, vol *status.VolumeUsage) summaryReport {
	report := summaryReport{
		Path:                  root,
		TotalProjects:         s.TotalProjects,
		TotalReclaimableBytes: s.TotalBytes,
		TotalReclaimableHuman: core.FormatSize(s.TotalBytes),
		ByKind:                make([]kindReport, 0, len(s.ByKind)),
		Volume:                vol,
	}
	for _, k := range s.ByKind {
		report.ByKind = append(report.ByKind, kindReport{
			Kind:             k.Kind.ID(),
			Projects:         k.Projects,
			ReclaimableBytes: k.Bytes,
			ReclaimableHuman: core.FormatSize(k.Bytes),
		})
	}
	return report
}
