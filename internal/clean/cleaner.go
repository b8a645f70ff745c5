package clean

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/sirupsen/logrus"

	"github.com/FroogalTheDragon/devclean/internal/core"
	"github.com/FroogalTheDragon/devclean/internal/scanner"
)

// ─── Results ─────────────────────────────────────────────────────────────────

// CleanResult reports what cleaning one project did. Errors holds one entry
// per target that could not be removed; it coexists with whatever succeeded.
type CleanResult struct {
	ProjectName    string   `json:"project_name"`
	ProjectPath    string   `json:"project_path"`
	TargetsCleaned int      `json:"targets_cleaned"`
	BytesFreed     int64    `json:"bytes_freed"`
	Errors         []string `json:"errors"`
}

// Failed reports whether any target of the project could not be removed.
func (r CleanResult) Failed() bool {
	return len(r.Errors) > 0
}

// Totals aggregates a batch of results.
type Totals struct {
	Projects       int   `json:"projects"`
	TargetsCleaned int   `json:"targets_cleaned"`
	BytesFreed     int64 `json:"bytes_freed"`
	Errors         int   `json:"errors"`
}

// Sum totals a batch of results.
func Sum(results []CleanResult) Totals {
	t := Totals{Projects: len(results)}
	for _, r := range results {
		t.TargetsCleaned += r.TargetsCleaned
		t.BytesFreed += r.BytesFreed
		t.Errors += len(r.Errors)
	}
	return t
}

// ─── Cleaning ────────────────────────────────────────────────────────────────

// CleanProject removes every clean target of project. In dryRun mode nothing
// is touched and every target is counted as cleaned. A target that fails to
// delete is recorded in the result and the remaining targets are still
// attempted, so a root that vanished since the scan yields one error per
// target. The error return is reserved for a root that is no longer a real
// directory, e.g. one swapped for a symlink.
func CleanProject(project scanner.ScannedProject, dryRun bool) (CleanResult, error) {
	result := CleanResult{
		ProjectName: project.Name,
		ProjectPath: project.Path,
		Errors:      []string{},
	}
	log := logrus.WithFields(logrus.Fields{
		"project": project.Path,
		"dry_run": dryRun,
	})

	if !dryRun {
		if err := core.CheckRealDir(project.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return result, fmt.Errorf("project %s: %w", project.Path, err)
		}
	}

	for _, target := range project.CleanTargets {
		if dryRun {
			result.TargetsCleaned++
			result.BytesFreed += target.SizeBytes
			continue
		}

		if err := core.SafeDeleteWithin(project.Path, target.Path, false); err != nil {
			log.WithError(err).WithField("target", target.Path).Warn("target not removed")
			result.Errors = append(result.Errors, fmt.Sprintf("failed to remove %s: %v", target.Path, err))
			continue
		}
		log.WithField("target", target.Path).Debug("removed")
		result.TargetsCleaned++
		result.BytesFreed += target.SizeBytes
	}

	return result, nil
}

// CleanProjects cleans each project independently. A project that cannot be
// cleaned at all yields a zero-count result carrying the error, and the batch
// carries on.
func CleanProjects(projects []scanner.ScannedProject, dryRun bool) []CleanResult {
	results := make([]CleanResult, 0, len(projects))
	for _, p := range projects {
		r, err := CleanProject(p, dryRun)
		if err != nil {
			logrus.WithError(err).WithField("project", p.Path).Warn("project not cleaned")
			r = CleanResult{
				ProjectName: p.Name,
				ProjectPath: p.Path,
				Errors:      []string{err.Error()},
			}
		}
		results = append(results, r)
	}
	return results
}
