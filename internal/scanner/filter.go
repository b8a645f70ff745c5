package scanner

import (
	"sort"
	"time"
)

// SortBySize orders projects by cleanable bytes, largest first, breaking
// ties by path so output is stable.
func SortBySize(projects []ScannedProject) {
	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].TotalCleanableBytes != projects[j].TotalCleanableBytes {
			return projects[i].TotalCleanableBytes > projects[j].TotalCleanableBytes
		}
		return projects[i].Path < projects[j].Path
	})
}

// FilterOlderThan keeps projects last modified strictly before now-age.
func FilterOlderThan(projects []ScannedProject, age time.Duration, now time.Time) []ScannedProject {
	cutoff := now.Add(-age)
	out := make([]ScannedProject, 0, len(projects))
	for _, p := range projects {
		if p.LastModified.Before(cutoff) {
			out = append(out, p)
		}
	}
	return out
}

// KindSummary aggregates the projects of one kind.
type KindSummary struct {
	Kind     Kind  `json:"kind"`
	Projects int   `json:"projects"`
	Bytes    int64 `json:"reclaimable_bytes"`
}

// Summary aggregates a scan result.
type Summary struct {
	TotalProjects int           `json:"total_projects"`
	TotalBytes    int64         `json:"total_reclaimable_bytes"`
	ByKind        []KindSummary `json:"by_kind"`
}

// Summarize totals projects overall and per kind, kinds ordered by bytes
// descending then priority order.
func Summarize(projects []ScannedProject) Summary {
	byKind := make(map[Kind]*KindSummary)
	s := Summary{TotalProjects: len(projects), ByKind: []KindSummary{}}

	for _, p := range projects {
		s.TotalBytes += p.TotalCleanableBytes
		ks, ok := byKind[p.Kind]
		if !ok {
			ks = &KindSummary{Kind: p.Kind}
			byKind[p.Kind] = ks
		}
		ks.Projects++
		ks.Bytes += p.TotalCleanableBytes
	}

	for _, k := range AllKinds() {
		if ks, ok := byKind[k]; ok {
			s.ByKind = append(s.ByKind, *ks)
		}
	}
	sort.SliceStable(s.ByKind, func(i, j int) bool {
		return s.ByKind[i].Bytes > s.ByKind[j].Bytes
	})
	return s
}
