package scanner

import "time"

// CleanTarget is one resolved artifact directory inside a project.
type CleanTarget struct {
	// Path is the absolute path of the directory.
	Path string `json:"path"`

	// Name is the pattern or project-relative path that found it.
	Name string `json:"name"`

	// SizeBytes is the recursive size of the directory, always > 0.
	SizeBytes int64 `json:"size_bytes"`
}

// ScannedProject is a project discovered on disk together with its
// cleanable artifacts. TotalCleanableBytes is the sum of the targets' sizes.
type ScannedProject struct {
	Path                string        `json:"path"`
	Kind                Kind          `json:"kind"`
	Name                string        `json:"name"`
	LastModified        time.Time     `json:"last_modified"`
	CleanTargets        []CleanTarget `json:"clean_targets"`
	TotalCleanableBytes int64         `json:"total_cleanable_bytes"`
}

// TargetNames returns the display names of the project's clean targets.
func (p ScannedProject) TargetNames() []string {
	names := make([]string, 0, len(p.CleanTargets))
	for _, t := range p.CleanTargets {
		names = append(names, t.Name)
	}
	return names
}
